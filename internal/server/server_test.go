package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	return NewHandler(logger, 1024*1024, "test")
}

func postJSON(t *testing.T, handler http.Handler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestSearchEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	rec := postJSON(t, handler, map[string]interface{}{
		"values":    []float64{1.50, 2.25, 3.00, 4.75, 10, 20, 30, 40, 50, 60},
		"target":    5.25,
		"tolerance": 0.00,
		"mode":      "all",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp searchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("Count = %d, want 1; body = %s", resp.Count, rec.Body.String())
	}
	combo := resp.Combinations[0]
	if len(combo.Indices) != 2 || combo.Indices[0] != 1 || combo.Indices[1] != 2 {
		t.Errorf("Indices = %v, want [1 2]", combo.Indices)
	}
	if combo.Sum != 5.25 {
		t.Errorf("Sum = %v, want 5.25", combo.Sum)
	}
	if resp.Algorithm != "bit-enum" {
		t.Errorf("Algorithm = %q, want bit-enum", resp.Algorithm)
	}
	if resp.Cancelled {
		t.Error("search should not be cancelled")
	}
}

func TestSearchEndpointUpload(t *testing.T) {
	handler := newTestHandler(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("data", "amounts.txt")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	_, _ = fw.Write([]byte("1.50\n2.25\n3.00\n4.75\n10\n20\n30\n40\n50\n60\n"))
	_ = mw.WriteField("target", "5.25")
	_ = mw.WriteField("tolerance", "0")
	_ = mw.WriteField("mode", "all")
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/search", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp searchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 {
		t.Errorf("Count = %d, want 1", resp.Count)
	}
}

func TestSearchEndpointRejectsBadRequests(t *testing.T) {
	handler := newTestHandler(t)

	// wrong method
	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", rec.Code)
	}

	// too few values
	rec = postJSON(t, handler, map[string]interface{}{
		"values": []float64{1, 2, 3},
		"target": 3,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("short input status = %d, want 400", rec.Code)
	}

	// unreachable target surfaces as unprocessable
	rec = postJSON(t, handler, map[string]interface{}{
		"values": []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		"target": 10000,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("unreachable target status = %d, want 422", rec.Code)
	}

	// invalid algorithm name
	rec = postJSON(t, handler, map[string]interface{}{
		"values":    []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		"target":    10,
		"algorithm": "bogosort",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad algorithm status = %d, want 400", rec.Code)
	}

	// malformed body
	req = httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", rec.Code)
	}
}

func TestVersionEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "test" {
		t.Errorf("version = %q, want test", resp["version"])
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error = %v", err)
	}
	if cfg.Address == "" {
		t.Error("expected default address")
	}
	if cfg.UploadSizeBytes() <= 0 {
		t.Error("expected positive default upload size")
	}

	// missing file falls back to defaults
	cfg, err = LoadConfig("does-not-exist.yaml")
	if err != nil {
		t.Fatalf("LoadConfig(missing) error = %v", err)
	}
	if cfg.Address == "" {
		t.Error("expected default address for missing file")
	}
}

func TestConfigNormalizeSizes(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{input: "1024", want: 1024},
		{input: "256KB", want: 256 * 1024},
		{input: "2MB", want: 2 * 1024 * 1024},
		{input: "", want: 256 * 1024},
		{input: "lots", wantErr: true},
		{input: "-5", wantErr: true},
	}

	for _, tt := range tests {
		cfg := &Config{MaxUploadSize: tt.input}
		err := cfg.normalize()
		if tt.wantErr {
			if err == nil {
				t.Errorf("normalize(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("normalize(%q) error = %v", tt.input, err)
			continue
		}
		if cfg.UploadSizeBytes() != tt.want {
			t.Errorf("normalize(%q) = %d, want %d", tt.input, cfg.UploadSizeBytes(), tt.want)
		}
	}
}
