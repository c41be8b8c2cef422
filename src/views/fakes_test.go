package views

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/antchfx/htmlquery"
	"go.uber.org/zap/zaptest"
	"golang.org/x/net/html"

	"github.com/BielosX/wombat/pokedex/src/pokeapi"
)

// fakeTransport answers requests from a list of routes and records every
// requested URL, the way the component tests stub fetch.
type fakeTransport struct {
	mu     sync.Mutex
	routes []fakeRoute
	calls  []string
}

type fakeRoute struct {
	match   func(url string) bool
	respond func(req *http.Request) (*http.Response, error)
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	url := req.URL.String()
	f.mu.Lock()
	f.calls = append(f.calls, url)
	routes := append([]fakeRoute(nil), f.routes...)
	f.mu.Unlock()
	for _, route := range routes {
		if route.match(url) {
			return route.respond(req)
		}
	}
	return nil, fmt.Errorf("unexpected fetch %s", url)
}

func (f *fakeTransport) on(match func(string) bool, respond func(*http.Request) (*http.Response, error)) *fakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes = append(f.routes, fakeRoute{match: match, respond: respond})
	return f
}

func (f *fakeTransport) json(match func(string) bool, body string) *fakeTransport {
	return f.on(match, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(req, body), nil
	})
}

func (f *fakeTransport) reject(match func(string) bool) *fakeTransport {
	return f.on(match, func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("network down")
	})
}

func (f *fakeTransport) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeTransport) CallsMatching(match func(string) bool) int {
	count := 0
	for _, call := range f.Calls() {
		if match(call) {
			count++
		}
	}
	return count
}

func jsonResponse(req *http.Request, body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}
}

func contains(part string) func(string) bool {
	return func(url string) bool { return strings.Contains(url, part) }
}

func endsWith(suffix string) func(string) bool {
	return func(url string) bool { return strings.HasSuffix(url, suffix) }
}

func newTestClient(t *testing.T, transport *fakeTransport) *pokeapi.Client {
	return pokeapi.NewClient(zaptest.NewLogger(t).Sugar(),
		pokeapi.WithHTTPClient(&http.Client{Transport: transport}))
}

type fakeRouter struct {
	mu        sync.Mutex
	params    map[string]string
	navigated []string
}

func newFakeRouter(params map[string]string) *fakeRouter {
	return &fakeRouter{params: params}
}

func (r *fakeRouter) CurrentParam(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.params[name]
}

func (r *fakeRouter) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.navigated = append(r.navigated, path)
}

func (r *fakeRouter) Navigated() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.navigated...)
}

func imageSources(n *html.Node) []string {
	var srcs []string
	for _, img := range htmlquery.Find(n, "//img") {
		srcs = append(srcs, htmlquery.SelectAttr(img, "src"))
	}
	return srcs
}

const bulbasaurDetail = `{
	"id": 1,
	"name": "bulbasaur",
	"sprites": {
		"front_default": "http://img.local/front.png",
		"back_default": "http://img.local/back.png",
		"other": {"official-artwork": {"front_default": "http://img.local/art.png"}}
	},
	"types": [{"slot": 1, "type": {"name": "grass"}}],
	"abilities": [{"ability": {"name": "overgrow"}}],
	"stats": [{"stat": {"name": "hp"}, "base_stat": 45}],
	"moves": [{"move": {"name": "tackle"}}, {"move": {"name": "vine-whip"}}, {"move": {"name": "razor-leaf"}}],
	"species": {"url": "https://pokeapi.co/api/v2/pokemon-species/1/"}
}`

const bulbasaurSpecies = `{"flavor_text_entries": [{"language": {"name": "es"}, "flavor_text": "Texto en español"}]}`
