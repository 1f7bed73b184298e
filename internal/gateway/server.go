// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package gateway

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/samber/oops"
)

// MaxBodyBytes bounds the size of a request body.
const MaxBodyBytes = 1 << 20

// Routes holds the handler behind each path.
type Routes struct {
	Auth     Handler
	Products Handler
	Reviews  Handler
}

// Server exposes Routes over HTTP.
type Server struct {
	addr       string
	handler    http.Handler
	opts       options
	listener   net.Listener
	httpServer *http.Server
	running    atomic.Bool
}

// NewServer builds the router for routes. Every route accepts any method;
// the handler decides which ones it serves.
func NewServer(addr string, routes Routes, opts ...Option) (*Server, error) {
	if routes.Auth == nil || routes.Products == nil || routes.Reviews == nil {
		return nil, oops.Code("GATEWAY_INVALID_CONFIG").Errorf("auth, products and reviews handlers are required")
	}

	s := &Server{addr: addr, opts: buildOptions(opts)}

	r := chi.NewRouter()
	r.Use(requestIDMW(), loggingMW(s.opts.logger, s.opts.metrics), recoverMW(s.opts.logger, s.opts.cors))
	r.HandleFunc("/auth", s.adapt(routes.Auth))
	r.HandleFunc("/products", s.adapt(routes.Products))
	r.HandleFunc("/reviews", s.adapt(routes.Reviews))
	r.NotFound(s.adapt(HandlerFunc(func(_ context.Context, e Event) Response {
		return respondError(s.opts.cors, e, http.StatusNotFound, MsgNotFound)
	})))
	r.MethodNotAllowed(s.adapt(HandlerFunc(func(_ context.Context, e Event) Response {
		return respondError(s.opts.cors, e, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
	})))
	s.handler = r

	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// adapt converts between net/http and the Event model.
func (s *Server) adapt(h Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
		if err != nil {
			status := http.StatusBadRequest
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			writeResponse(w, respondError(s.opts.cors, eventFromRequest(r, ""), status, err.Error()))
			return
		}
		writeResponse(w, h.Handle(r.Context(), eventFromRequest(r, string(body))))
	}
}

func eventFromRequest(r *http.Request, body string) Event {
	headers := make(map[string]string, len(r.Header))
	for k, v := range r.Header {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}
	query := make(map[string]string)
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			query[k] = v[0]
		}
	}
	return Event{
		Method:          r.Method,
		Path:            r.URL.Path,
		Headers:         headers,
		QueryParameters: query,
		Body:            body,
	}
}

func writeResponse(w http.ResponseWriter, resp Response) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	if resp.Body != "" {
		//nolint:errcheck // client may have gone away
		io.WriteString(w, resp.Body)
	}
}

// Start listens on the configured address and serves in the background.
// The returned channel receives a serve error, and is closed once the
// server stops.
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.Errorf("gateway server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.Code("GATEWAY_LISTEN_FAILED").With("addr", s.addr).Wrap(err)
	}
	s.listener = listener

	httpSrv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpSrv

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			s.opts.logger.Error("gateway server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	s.opts.logger.Info("gateway server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	if s.httpServer != nil {
		// Listeners are closed even when Shutdown times out; the server stays
		// stopped and only in-flight requests are left to drain.
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return oops.With("operation", "shutdown_gateway_server").Wrap(err)
		}
	}
	s.opts.logger.Info("gateway server stopped")
	return nil
}

// Addr returns the listen address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}
