package router

import "sync"

// History is an in-memory router. Every Navigate pushes a route and bumps
// the version, which lets a host notice that it has to swap views.
type History struct {
	mu      sync.Mutex
	stack   []Route
	version uint64
}

func NewHistory(start string) *History {
	route, ok := Match(start)
	if !ok {
		route, _ = Match(ListPath)
	}
	return &History{stack: []Route{route}}
}

func (h *History) CurrentParam(name string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stack[len(h.stack)-1].Params[name]
}

// Navigate ignores paths outside the route table.
func (h *History) Navigate(path string) {
	route, ok := Match(path)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stack = append(h.stack, route)
	h.version++
}

func (h *History) Current() (Route, uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stack[len(h.stack)-1], h.version
}

// At returns a Router pinned to route's params that still navigates through h.
func (h *History) At(route Route) Router {
	return boundRoute{history: h, params: route.Params}
}

type boundRoute struct {
	history *History
	params  map[string]string
}

func (b boundRoute) CurrentParam(name string) string {
	return b.params[name]
}

func (b boundRoute) Navigate(path string) {
	b.history.Navigate(path)
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.stack)
}
