package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/antchfx/htmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/BielosX/wombat/pokedex/src/pokeapi"
	"github.com/BielosX/wombat/pokedex/src/views"
)

func newFakePokeAPI(t *testing.T) *httptest.Server {
	var api *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("GET /pokemon", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"results": [
			{"name": "bulbasaur", "url": "%[1]s/pokemon/1/"},
			{"name": "ivysaur", "url": "%[1]s/pokemon/2/"}
		]}`, api.URL)
	})
	mux.HandleFunc("GET /pokemon/1/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": 1, "name": "bulbasaur", "sprites": {"front_default": "http://img.local/1.png"}}`)
	})
	mux.HandleFunc("GET /pokemon/2/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("GET /pokemon/1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"id": 1,
			"name": "bulbasaur",
			"sprites": {"front_default": "http://img.local/front.png", "back_default": "http://img.local/back.png"},
			"types": [{"slot": 1, "type": {"name": "grass"}}],
			"stats": [{"stat": {"name": "hp"}, "base_stat": 45}],
			"species": {"url": "%s/pokemon-species/1/"}
		}`, api.URL)
	})
	mux.HandleFunc("GET /pokemon-species/1/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"flavor_text_entries": [{"language": {"name": "es"}, "flavor_text": "Texto en español"}]}`)
	})
	mux.HandleFunc("GET /pokemon/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	api = httptest.NewServer(mux)
	t.Cleanup(api.Close)
	return api
}

func newTestServer(t *testing.T, apiUrl string) *httptest.Server {
	sugar := zaptest.NewLogger(t).Sugar()
	client := pokeapi.NewClient(sugar, pokeapi.WithBaseUrl(apiUrl))
	s := New(client, sugar, views.ListOptions{}, views.DetailOptions{Language: "es"})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func noRedirects() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func TestServer_List(t *testing.T) {
	ts := newTestServer(t, newFakePokeAPI(t).URL)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
	doc, err := htmlquery.Parse(resp.Body)
	require.NoError(t, err)

	boxes := htmlquery.Find(doc, "//a[contains(@class,'pokemon-box')]")
	require.Len(t, boxes, 2)
	assert.Equal(t, "/pokemon/1", htmlquery.SelectAttr(boxes[0], "href"))
	assert.Equal(t, "/pokemon/2", htmlquery.SelectAttr(boxes[1], "href"))
	assert.Equal(t, "1 bulbasaur", strings.TrimSpace(htmlquery.InnerText(boxes[0])))
	assert.Equal(t, "2 ivysaur", strings.TrimSpace(htmlquery.InnerText(boxes[1])))
	img := htmlquery.FindOne(boxes[0], ".//img")
	require.NotNil(t, img)
	assert.Equal(t, "http://img.local/1.png", htmlquery.SelectAttr(img, "src"))
}

func TestServer_ListFailure(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer api.Close()
	ts := newTestServer(t, api.URL)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	doc, err := htmlquery.Parse(resp.Body)
	require.NoError(t, err)
	assert.NotNil(t, htmlquery.FindOne(doc, "//p[@class='error']"))
}

func TestServer_Detail(t *testing.T) {
	ts := newTestServer(t, newFakePokeAPI(t).URL)

	resp, err := http.Get(ts.URL + "/pokemon/1")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	doc, err := htmlquery.Parse(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Bulbasaur | Pokédex", htmlquery.InnerText(htmlquery.FindOne(doc, "//title")))
	text := htmlquery.InnerText(htmlquery.FindOne(doc, "//body"))
	for _, expected := range []string{"#1", "Bulbasaur", "grass", "hp", "45", "Texto en español"} {
		assert.Contains(t, text, expected)
	}
	form := htmlquery.FindOne(doc, "//form[.//button[@class='back-button']]")
	require.NotNil(t, form)
	assert.Equal(t, "/pokemon/1/back", htmlquery.SelectAttr(form, "action"))
}

func TestServer_DetailErrors(t *testing.T) {
	ts := newTestServer(t, newFakePokeAPI(t).URL)

	testCases := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{name: "unknown pokemon", path: "/pokemon/9999", expectedStatus: http.StatusNotFound},
		{name: "invalid id", path: "/pokemon/pikachu", expectedStatus: http.StatusNotFound},
		{name: "unknown route", path: "/berries", expectedStatus: http.StatusNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tc.path)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
		})
	}
}

func TestServer_Back(t *testing.T) {
	ts := newTestServer(t, newFakePokeAPI(t).URL)

	for i := 0; i < 2; i++ {
		resp, err := noRedirects().Post(ts.URL+"/pokemon/1/back", "application/x-www-form-urlencoded", nil)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
	}
}
