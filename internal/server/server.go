// Package server exposes the subset-sum search as an HTTP API. It stands
// in for the original desktop front-end: upload or post a value list,
// get back the matching combinations with selection markers.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/sum-match/internal/solver"
	"github.com/iwvelando/sum-match/pkg/dataset"
	"github.com/iwvelando/sum-match/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the search API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Search API endpoint (JSON body or file upload)
	mux.HandleFunc("/api/search", h.handleSearch)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type searchRequest struct {
	Values           []float64 `json:"values"`
	Target           float64   `json:"target"`
	Tolerance        float64   `json:"tolerance"`
	Mode             string    `json:"mode"`
	Algorithm        string    `json:"algorithm"`
	AllowEmptySubset bool      `json:"allowEmptySubset"`
}

type searchResponse struct {
	Algorithm    string               `json:"algorithm"`
	Mode         string               `json:"mode"`
	Combinations []solver.Combination `json:"combinations"`
	Count        int                  `json:"count"`
	Duration     string               `json:"duration"`
	Cancelled    bool                 `json:"cancelled"`
	Warnings     []string             `json:"warnings,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	req, err := h.parseSearchRequest(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := validation.ValidateInputCount(len(req.Values)); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	mode, err := solver.ParseMode(req.Mode)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	algorithm, err := solver.ParseAlgorithm(req.Algorithm)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	// The request context carries client disconnects into the solver, so
	// an abandoned search stops consuming cores.
	result, err := solver.Search(r.Context(), req.Values, req.Target, req.Tolerance, solver.Options{
		Mode:             mode,
		Algorithm:        algorithm,
		AllowEmptySubset: req.AllowEmptySubset,
		Logger:           h.logger,
	})
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, solver.ErrTableTooLarge) {
			status = http.StatusInsufficientStorage
		}
		h.writeError(w, status, err)
		return
	}

	resp := searchResponse{
		Algorithm:    string(result.Algorithm),
		Mode:         mode.String(),
		Combinations: result.Combinations,
		Count:        len(result.Combinations),
		Duration:     result.Elapsed.Round(time.Microsecond).String(),
		Cancelled:    result.Cancelled,
		Warnings:     validation.SearchWarnings(req.Target, req.Tolerance),
	}

	h.logger.Info("search request served",
		zap.String("op", "server.handleSearch"),
		zap.String("algorithm", resp.Algorithm),
		zap.Int("inputs", len(req.Values)),
		zap.Int("combinations", resp.Count),
		zap.Bool("cancelled", resp.Cancelled),
	)
	h.writeJSON(w, http.StatusOK, resp)
}

// parseSearchRequest accepts either a JSON body or a multipart upload
// with a data file plus form fields.
func (h *handler) parseSearchRequest(r *http.Request) (*searchRequest, error) {
	contentType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("invalid content type: %w", err)
	}

	if contentType == "application/json" {
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, fmt.Errorf("failed to decode request: %w", err)
		}
		return &req, nil
	}

	if contentType != "multipart/form-data" {
		return nil, fmt.Errorf("expected application/json or multipart/form-data, got %s", contentType)
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		return nil, fmt.Errorf("failed to parse upload: %w", err)
	}
	file, header, err := r.FormFile("data")
	if err != nil {
		return nil, fmt.Errorf("missing data file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	format := dataset.FormatText
	if strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		format = dataset.FormatCSV
	}
	values, err := dataset.Load(file, format)
	if err != nil {
		return nil, err
	}

	req := &searchRequest{Values: values, Mode: r.FormValue("mode"), Algorithm: r.FormValue("algorithm")}
	if _, err := fmt.Sscanf(r.FormValue("target"), "%g", &req.Target); err != nil {
		return nil, fmt.Errorf("invalid target %q", r.FormValue("target"))
	}
	if v := r.FormValue("tolerance"); v != "" {
		if _, err := fmt.Sscanf(v, "%g", &req.Tolerance); err != nil {
			return nil, fmt.Errorf("invalid tolerance %q", v)
		}
	}
	req.AllowEmptySubset = r.FormValue("allowEmptySubset") == "true"
	return req, nil
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to write response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}

func (h *handler) writeError(w http.ResponseWriter, status int, err error) {
	h.logger.Warn("request rejected",
		zap.String("op", "server.writeError"),
		zap.Int("status", status),
		zap.Error(err),
	)
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}
