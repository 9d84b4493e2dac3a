package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/agent/api"
	serr "github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/errors"
)

func TestClient_postJSON_SetsHeaders_AndDecodesResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected method POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %q", ct)
		}
		if acc := r.Header.Get("Accept"); acc != "application/json" {
			t.Errorf("expected Accept application/json, got %q", acc)
		}

		var got map[string]any
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if got["a"] != float64(1) { // json numbers decode as float64 into map
			t.Errorf("expected a=1, got %#v", got["a"])
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL)

	var resp map[string]any
	err := c.PostJSON(context.Background(), "/x", map[string]any{"a": 1}, &resp)
	if err != nil {
		t.Fatalf("postJSON returned error: %v", err)
	}
	if resp["ok"] != true {
		t.Fatalf("expected ok=true, got %#v", resp["ok"])
	}
}

func TestClient_postJSON_Non2xx_ReturnsBodyAsError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, "bad request: invalid input")
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL)

	err := c.PostJSON(context.Background(), "/x", map[string]any{"a": 1}, nil)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "bad request: invalid input") {
		t.Fatalf("unexpected error: %v", err)
	}
	if !errors.Is(err, serr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected *APIError with 400, got %#v", err)
	}
}

func TestClient_Non2xx_JSONErrorBody_UsesErrorField(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		io.WriteString(w, `{"error":"already exists"}`)
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL)

	err := c.GetJSON(context.Background(), "/x", nil)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if err.Error() != "already exists" {
		t.Fatalf("expected message from error field, got %q", err.Error())
	}
	if !errors.Is(err, serr.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestClient_Non2xx_EmptyBody_UsesStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL)

	err := c.GetJSON(context.Background(), "/x", nil)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Fatalf("expected status text in error, got %q", err.Error())
	}
	if !errors.Is(err, serr.ErrUnexpectedError) {
		t.Fatalf("expected ErrUnexpectedError, got %v", err)
	}
}

func TestClient_postJSON_respNil_DoesNotDecode(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		// вернём не-JSON, но при resp=nil клиент не должен пытаться декодировать
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "not a json")
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL)

	if err := c.PostJSON(context.Background(), "/x", map[string]any{"a": 1}, nil); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestClient_getJSON_MalformedBody_ReturnsError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "[{not json")
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL)

	var resp []map[string]any
	if err := c.GetJSON(context.Background(), "/x", &resp); err == nil {
		t.Fatalf("expected decode error, got nil")
	}
}

func TestClient_postJSON_BadRequestEncoding_ReturnsError(t *testing.T) {
	// json.Encoder не умеет кодировать func
	bad := func() {}

	srv := httptest.NewTLSServer(http.NewServeMux())
	defer srv.Close()

	c := api.NewClient(srv.URL)

	var resp bytes.Buffer
	err := c.PostJSON(context.Background(), "/x", bad, &resp)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestClient_deleteJSON_204NoContent_ReturnsNil(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		if acc := r.Header.Get("Accept"); acc != "application/json" {
			t.Errorf("expected Accept application/json, got %q", acc)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL)

	if err := c.DeleteJSON(context.Background(), "/x", nil); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestClient_getJSON_200EmptyBody_EOFIsOK(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		// 200, но тело пустое
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL)

	var resp map[string]any
	if err := c.GetJSON(context.Background(), "/x", &resp); err != nil {
		t.Fatalf("expected nil error on empty body, got %v", err)
	}
}

func TestClient_postJSON_reqNil_DoesNotSetContentType(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "" {
			t.Errorf("expected no Content-Type, got %q", ct)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL)

	var resp map[string]any
	if err := c.PostJSON(context.Background(), "/x", nil, &resp); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	c := api.NewClient("http://127.0.0.1:3000///")
	if c.BaseURL() != "http://127.0.0.1:3000" {
		t.Fatalf("unexpected base url: %q", c.BaseURL())
	}
}

func TestClient_WithTimeout_AbortsSlowServer(t *testing.T) {
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()
	defer close(release)

	c := api.NewClient(srv.URL, api.WithTimeout(50*time.Millisecond))

	if err := c.GetJSON(context.Background(), "/x", nil); err == nil {
		t.Fatalf("expected timeout error, got nil")
	}
}

func TestClient_CanceledContext_ReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.NewServeMux())
	defer srv.Close()

	c := api.NewClient(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.GetJSON(ctx, "/x", nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
