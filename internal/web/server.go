// Package web は lint の HTTP API とブラウザ UI を提供します。
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/phyten/dslint/decree"
	"github.com/phyten/dslint/internal/detect"
	"github.com/phyten/dslint/internal/engine"
	engineopts "github.com/phyten/dslint/internal/engine/opts"
	"github.com/phyten/dslint/internal/rules"
)

// Server は /api/* と画面を束ねた http.Handler を作ります。
type Server struct {
	defaults engine.Options
	maxBody  int64
	log      *zap.Logger
}

type Option func(*Server)

// WithLogger はリクエストログの出力先を差し替えます。
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMaxBodyBytes は POST /api/lint の本文上限です。
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// New は defaults を /api/scan の基準値として使うサーバを返します。
func New(defaults engine.Options, opts ...Option) *Server {
	s := &Server{defaults: defaults, maxBody: engineopts.DefaultMaxFileBytes, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	registerUI(mux)
	mux.HandleFunc("POST /api/lint", s.handleLint)
	mux.HandleFunc("GET /api/scan", s.handleScan)
	mux.HandleFunc("GET /api/rules", s.handleRules)
	mux.HandleFunc("GET /api/metadata", s.handleMetadata)
	return s.logRequests(mux)
}

// LintRequest は POST /api/lint の本文です。Rules で指定しなかった項目は有効のままです。
type LintRequest struct {
	Path   string          `json:"path"`
	Source string          `json:"source"`
	Rules  json.RawMessage `json:"rules,omitempty"`
}

type LintResponse struct {
	Diagnostics []engine.Item `json:"diagnostics"`
	Total       int           `json:"total"`
}

type RuleInfo struct {
	ID          string `json:"id"`
	Qualified   string `json:"qualified"`
	Group       string `json:"group"`
	Description string `json:"description"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleLint(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	var req LintRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	cfg, err := decodeRules(req.Rules)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	path := strings.TrimSpace(req.Path)
	if path == "" {
		path = "input.html"
	}
	lang := detect.FromPath(path).Name
	if lang == "" {
		lang = "html"
	}
	items := engine.LintSource(decree.New(cfg, decree.WithLogger(s.log)), path, lang, req.Source)
	if items == nil {
		items = []engine.Item{}
	}
	writeJSON(w, http.StatusOK, LintResponse{Diagnostics: items, Total: len(items)})
}

func decodeRules(raw json.RawMessage) (rules.Config, error) {
	cfg := rules.DefaultConfig()
	if len(raw) == 0 || string(raw) == "null" {
		return cfg, nil
	}
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid rules: %w", err)
	}
	return cfg, nil
}

// handleScan はサーバ起動時のリポジトリをクエリ条件で lint します。
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	opts, err := engineopts.ApplyWebQueryToOptions(s.defaults, r.URL.Query())
	if err == nil {
		err = engineopts.NormalizeAndValidate(&opts)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	opts.Progress = false
	opts.ProgressObserver = nil
	opts.Logger = s.log
	res, err := engine.Run(r.Context(), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	all := rules.All()
	out := make([]RuleInfo, 0, len(all))
	for _, rule := range all {
		out = append(out, RuleInfo{
			ID:          rule.ID,
			Qualified:   decree.QualifiedRule(rule.ID),
			Group:       rule.Group,
			Description: rule.Description,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, decree.Default().Metadata())
}

// writeJSON は HTML エスケープせずに書き出します。画面側で描画時にエスケープします。
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}
