// Package server exposes chord diagram rendering over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/ByLCY/fretsketch/chord"
	"github.com/ByLCY/fretsketch/dsl"
	"github.com/ByLCY/fretsketch/layout"
	"github.com/ByLCY/fretsketch/renderer"
)

const maxBodyBytes = 1 << 20

// Backend renders sheets and single diagrams.
type Backend interface {
	renderer.Renderer
	renderer.ImageRenderer
}

// Options configures the server.
type Options struct {
	AllowedOrigins []string
	Logger         *slog.Logger
	// Width is the output width in millimetres used when a request gives none.
	Width float64
}

// Server routes HTTP requests to a rendering backend.
type Server struct {
	backend Backend
	log     *slog.Logger
	width   float64
	handler http.Handler
}

// New builds a server around backend.
func New(backend Backend, opts Options) *Server {
	s := &Server{backend: backend, log: opts.Logger, width: opts.Width}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.width <= 0 {
		s.width = layout.DefaultWidth
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router := mux.NewRouter().StrictSlash(true)
	router.Use(s.requestID)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/instruments", s.handleInstruments).Methods(http.MethodGet)
	router.HandleFunc("/render", s.handleRender).Methods(http.MethodPost)
	router.HandleFunc("/sheet", s.handleSheet).Methods(http.MethodPost)

	s.handler = cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
	}).Handler(router)
	return s
}

// Handler returns the root handler including CORS.
func (s *Server) Handler() http.Handler { return s.handler }

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.handler, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type ctxKey struct{}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-ID", id)
		start := time.Now()
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
		s.log.Info("request", "id", id, "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok")
}

func (s *Server) handleInstruments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(chord.Instruments())
}

// RenderRequest is the body of POST /render.
type RenderRequest struct {
	Title      string          `json:"title,omitempty"`
	Names      string          `json:"names,omitempty"` // chord symbol, e.g. "Am7/G"
	Instrument string          `json:"instrument,omitempty"`
	Notes      []chord.Note    `json:"notes"`
	Settings   *chord.Settings `json:"settings,omitempty"`
	Width      float64         `json:"width,omitempty"` // mm
}

func (req RenderRequest) diagram() (layout.Diagram, error) {
	inst := chord.Guitar
	if req.Instrument != "" {
		var ok bool
		if inst, ok = chord.LookupInstrument(req.Instrument); !ok {
			return layout.Diagram{}, fmt.Errorf("unknown instrument %q", req.Instrument)
		}
	}
	settings := chord.DefaultSettings(inst)
	if req.Settings != nil {
		settings = *req.Settings
		if settings.Instrument.Strings == 0 {
			settings.Instrument = inst
		}
	}
	if err := settings.Validate(); err != nil {
		return layout.Diagram{}, err
	}
	if req.Width != 0 {
		if err := layout.CheckWidth(req.Width); err != nil {
			return layout.Diagram{}, err
		}
	}

	var names chord.Names
	if req.Names != "" {
		var err error
		if names, err = chord.ParseName(req.Names); err != nil {
			return layout.Diagram{}, err
		}
	}
	title := req.Title
	if title == "" {
		title = req.Names
	}
	return layout.NewDiagram(title, names, req.Notes, settings), nil
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format, err := formatParam(r, renderer.FormatPNG)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	var req RenderRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	d, err := req.diagram()
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	width := req.Width
	if width == 0 {
		width = s.width
	}
	data, err := s.backend.RenderImage(d, width, format)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	s.write(w, format, data)
}

func (s *Server) handleSheet(w http.ResponseWriter, r *http.Request) {
	doc, err := dsl.Parse(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("parse sheet: %w", err))
		return
	}
	result, err := layout.Build(doc, nil, layout.BuildOptions{})
	if err != nil {
		s.fail(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	data, err := s.backend.Render(result)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	s.write(w, renderer.FormatPDF, data)
}

func formatParam(r *http.Request, def renderer.Format) (renderer.Format, error) {
	v := r.URL.Query().Get("format")
	if v == "" {
		return def, nil
	}
	return renderer.ParseFormat(v)
}

func (s *Server) write(w http.ResponseWriter, format renderer.Format, data []byte) {
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.log.Warn("request failed", "id", requestIDFrom(r.Context()), "status", status, "err", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
