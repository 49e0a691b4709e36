package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openquant/capgain/internal/quadrature"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter(quadrature.Options{}))
	t.Cleanup(srv.Close)
	return srv
}

func postValue(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/value", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST /value: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestValueEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp := postValue(t, srv, `{"spot":100,"alpha":0.8,"cap":120,"rate":0.05,"vol":0.2,"horizon":1}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out ValueResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if math.Abs(out.Value-1.3705043947505) > 1e-3 {
		t.Errorf("value = %.10g, want ~1.3705", out.Value)
	}
	if out.AbsError <= 0 {
		t.Errorf("abs_error = %g, want > 0", out.AbsError)
	}
	if out.Warning != "" {
		t.Errorf("unexpected warning: %q", out.Warning)
	}
}

func TestValueRejectsInvalidParameters(t *testing.T) {
	srv := newTestServer(t)
	resp := postValue(t, srv, `{"spot":100,"alpha":0.8,"cap":120,"rate":0.05,"vol":0,"horizon":1}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "vol") {
		t.Errorf("error body %q does not name the bad parameter", body)
	}
}

func TestValueRejectsMalformedBody(t *testing.T) {
	srv := newTestServer(t)
	resp := postValue(t, srv, `{"spot":`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestValueWarnsOnToleranceFailure(t *testing.T) {
	srv := httptest.NewServer(NewRouter(quadrature.Options{
		RelTol: 1e-15, AbsTol: 1e-30, MaxIntervals: 1,
	}))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/value", "application/json",
		bytes.NewBufferString(`{"spot":100,"alpha":0.8,"cap":120,"rate":0.05,"vol":0.2,"horizon":1}`))
	if err != nil {
		t.Fatalf("POST /value: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 with warning", resp.StatusCode)
	}
	var out ValueResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if out.Warning == "" {
		t.Error("expected a warning on tolerance failure")
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ok" {
		t.Errorf("body = %q, want ok", body)
	}
}

func TestValueMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/value")
	if err != nil {
		t.Fatalf("GET /value: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", resp.StatusCode)
	}
}
