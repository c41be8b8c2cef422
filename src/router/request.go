package router

import (
	"net/http"
	"sync"
)

// Request serves one HTTP request. Navigate only records the target; the
// handler turns it into a redirect once the view is done.
type Request struct {
	r *http.Request

	mu       sync.Mutex
	location string
}

func NewRequest(r *http.Request) *Request {
	return &Request{r: r}
}

func (rr *Request) CurrentParam(name string) string {
	return rr.r.PathValue(name)
}

func (rr *Request) Navigate(path string) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	rr.location = path
}

func (rr *Request) Location() (string, bool) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return rr.location, rr.location != ""
}
