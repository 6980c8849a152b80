package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/xlsforge/xlsforge/internal/docfile"
)

// Server is the HTTP boundary of the conversion service. Every request is
// a self-contained conversion: its own decoded document, extractor state,
// and output buffer. Nothing is shared across requests except the artifact
// store directory.
type Server struct {
	logger   zerolog.Logger
	docs     *docfile.Service
	store    *Store
	strategy string

	httpServer *http.Server
}

// NewServer wires the conversion service to an address.
func NewServer(logger zerolog.Logger, docs *docfile.Service, store *Store, addr, strategy string) *Server {
	s := &Server{
		logger:   logger,
		docs:     docs,
		store:    store,
		strategy: strategy,
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Post("/parse-questionnaire", s.handleParse("generic"))
	r.Post("/parse-employee-survey", s.handleParse("likert"))
	r.Post("/json-to-surveycto-excel", s.handleJSONToExcel("surveyCTO.xlsx", true))
	r.Post("/employee-json-to-surveycto-excel", s.handleJSONToExcel("employee_surveyCTO.xlsx", false))

	r.Post("/convert/docx-to-json", s.handleConvertDocxToJSON)
	r.Post("/convert/json-to-excel", s.handleConvertJSONToExcel)
	r.Get("/download/json/{filename}", s.handleDownload("application/json"))
	r.Get("/download/excel/{filename}", s.handleDownload(xlsxContentType))

	return r
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// requestLogger attaches a request-scoped child logger carrying a request
// id and logs the outcome of every request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		logger := s.logger.With().Str("request_id", requestID).Logger()
		ctx := logger.WithContext(r.Context())

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(ctx))

		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request handled")
	})
}

// writeDetail writes the error payload shape used by every endpoint.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
