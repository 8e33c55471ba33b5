/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

// Package web exposes the rendering pipeline over HTTP. It is a thin I/O
// wrapper: parameter decoding, a resolver lookup and a rate limit around
// one pure render call.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/molgrid/molgrid/mol"
	"github.com/molgrid/molgrid/render"
	"github.com/molgrid/molgrid/vector"
)

// A StructureSource supplies molfile text for a chemical identifier. The
// resolve package provides the production implementation.
type StructureSource interface {
	Molfile(ctx context.Context, identifier string) (string, error)
}

type Server struct {
	source  StructureSource
	limiter *clientLimiter
}

func NewServer(source StructureSource, requestsPerSecond float64, burst int) *Server {
	return &Server{
		source:  source,
		limiter: newClientLimiter(requestsPerSecond, burst),
	}
}

func (s *Server) Handler() http.Handler {
	renderMux := http.NewServeMux()
	renderMux.HandleFunc("/render", s.handleRender)
	renderMux.HandleFunc("/image.svg", s.handleSVG)
	renderMux.HandleFunc("/image.png", s.handlePNG)

	// health checks bypass the per-client limiter
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/", s.limiter.middleware(renderMux))
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// GET /render?name=...  — text diagram.
// Optional params: ascii, charge, padding, bond-chars, scale-bump,
// scale-attempts.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	m, ok := s.molecule(w, r)
	if !ok {
		return
	}

	diagram := render.Molecule(m, textOptions(r))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(diagram + "\n"))
}

// GET /image.svg?name=... — vector diagram. ink=... forces one ink color.
func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	m, ok := s.molecule(w, r)
	if !ok {
		return
	}

	data, err := vector.SVG(m, vectorOptions(r))
	if err != nil {
		slog.Error("svg render failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	if ink := r.URL.Query().Get("ink"); ink != "" {
		data = vector.Monochrome(data, ink)
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(data)
}

// GET /image.png?name=... — rasterized diagram.
func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	m, ok := s.molecule(w, r)
	if !ok {
		return
	}

	resolution := floatParam(r, "resolution", 5)
	data, err := vector.PNG(m, vectorOptions(r), resolution)
	if err != nil {
		slog.Error("png render failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(data)
}

// molecule resolves and parses the molecule named by the request. It
// writes the error response itself when the request cannot be served.
func (s *Server) molecule(w http.ResponseWriter, r *http.Request) (*mol.Molecule, bool) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "name parameter is required", http.StatusBadRequest)
		return nil, false
	}

	text, err := s.source.Molfile(r.Context(), name)
	if err != nil {
		slog.Info("structure lookup failed", "name", name, "error", err)
		http.Error(w, fmt.Sprintf("cannot resolve %q", name), http.StatusNotFound)
		return nil, false
	}

	m, err := mol.Parse(text)
	if err != nil {
		if errors.Is(err, mol.ErrTooShort) || errors.Is(err, mol.ErrUnsupportedVersion) || errors.Is(err, mol.ErrInvalidCounts) {
			http.Error(w, "unreadable structure: "+err.Error(), http.StatusBadGateway)
			return nil, false
		}
		http.Error(w, "parse failed", http.StatusInternalServerError)
		return nil, false
	}
	return m, true
}

func textOptions(r *http.Request) render.Options {
	opts := render.DefaultOptions()
	opts.UseUnicodeCharset = !boolParam(r, "ascii")
	if r.URL.Query().Get("charge") == "0" {
		opts.ShowFormalCharge = false
	}
	opts.Padding = intParam(r, "padding", opts.Padding)
	opts.TargetBondChars = floatParam(r, "bond-chars", opts.TargetBondChars)
	opts.ScaleBumpFactor = floatParam(r, "scale-bump", opts.ScaleBumpFactor)
	opts.MaxScaleAttempts = intParam(r, "scale-attempts", opts.MaxScaleAttempts)
	return opts
}

func vectorOptions(r *http.Request) vector.Options {
	opts := vector.DefaultOptions()
	opts.BondLength = floatParam(r, "bond-length", opts.BondLength)
	opts.LineWidth = floatParam(r, "line-width", opts.LineWidth)
	opts.FontSize = floatParam(r, "font-size", opts.FontSize)
	if r.URL.Query().Get("charge") == "0" {
		opts.ShowFormalCharge = false
	}
	return opts
}

func boolParam(r *http.Request, name string) bool {
	v := r.URL.Query().Get(name)
	return v == "1" || v == "true"
}

func intParam(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return def
	}
	return v
}

func floatParam(r *http.Request, name string, def float64) float64 {
	v, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	if err != nil {
		return def
	}
	return v
}
