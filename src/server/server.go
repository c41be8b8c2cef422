package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/BielosX/wombat/pokedex/src/pokeapi"
	"github.com/BielosX/wombat/pokedex/src/render"
	"github.com/BielosX/wombat/pokedex/src/router"
	"github.com/BielosX/wombat/pokedex/src/views"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	api    views.PokemonAPI
	sugar  *zap.SugaredLogger
	list   views.ListOptions
	detail views.DetailOptions
}

func New(api views.PokemonAPI, sugar *zap.SugaredLogger, list views.ListOptions, detail views.DetailOptions) *Server {
	return &Server{
		api:    api,
		sugar:  sugar,
		list:   list,
		detail: detail,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleList)
	mux.HandleFunc("GET "+router.DetailPattern, s.handleDetail)
	mux.HandleFunc("POST "+router.BackPattern, s.handleBack)
	return s.logRequests(mux)
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{Addr: addr, Handler: s.Handler()}
	errChan := make(chan error, 1)
	go func() {
		s.sugar.Infof("Listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()
	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.sugar.Infof("Shutting down")
		return server.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	view := views.NewListView(s.api, s.sugar, s.list)
	view.Activate(r.Context())
	defer view.Deactivate()
	state := view.State()
	status := http.StatusOK
	if state.Phase == views.PhaseFailed {
		status = http.StatusBadGateway
	}
	s.writePage(w, status, "Pokédex", views.RenderList(state))
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	view := views.NewDetailView(s.api, router.NewRequest(r), s.sugar, s.detail)
	view.Activate(r.Context())
	defer view.Deactivate()
	state := view.State()
	status := http.StatusOK
	title := "Pokédex"
	switch {
	case state.Phase == views.PhaseFailed && (errors.Is(state.Err, views.ErrInvalidIdentifier) || errors.Is(state.Err, pokeapi.ErrNotFound)):
		status = http.StatusNotFound
	case state.Phase == views.PhaseFailed:
		status = http.StatusBadGateway
	case state.Detail != nil:
		title = views.Capitalize(state.Detail.Name) + " | Pokédex"
	}
	s.writePage(w, status, title, views.RenderDetail(state))
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	rr := router.NewRequest(r)
	views.NewDetailView(s.api, rr, s.sugar, s.detail).GoBack()
	if location, ok := rr.Location(); ok {
		http.Redirect(w, r, location, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, router.ListPath, http.StatusSeeOther)
}

func (s *Server) writePage(w http.ResponseWriter, status int, title string, body *html.Node) {
	var buf bytes.Buffer
	if err := render.Write(&buf, render.Document(title, body)); err != nil {
		s.sugar.Errorf("Failed to render page: %s", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.sugar.Warnf("Failed to write response: %s", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestId := uuid.NewString()
		w.Header().Set("X-Request-Id", requestId)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.sugar.Infow("Handled request",
			"requestId", requestId,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
