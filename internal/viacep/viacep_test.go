package viacep

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLookup_OK(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ws/01310100/json/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"cep":"01310-100","logradouro":"Avenida Paulista","localidade":"São Paulo","uf":"sp"}`)
	})

	addr, err := c.Lookup(context.Background(), "01310100")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if addr.UF != "SP" || addr.Localidade != "São Paulo" {
		t.Fatalf("unexpected address: %#v", addr)
	}
}

func TestLookup_NotFound(t *testing.T) {
	for _, body := range []string{`{"erro": true}`, `{"erro": "true"}`} {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, body)
		})
		if _, err := c.Lookup(context.Background(), "99999999"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("body=%s: want ErrNotFound, got %v", body, err)
		}
	}
}

func TestLookup_Invalid(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, "<html>Bad Request</html>")
	})
	if _, err := c.Lookup(context.Background(), "0000000A"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}

func TestLookup_TransportError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(1500 * time.Millisecond)
	})
	_, err := c.Lookup(context.Background(), "01310100")
	if err == nil || errors.Is(err, ErrInvalid) || errors.Is(err, ErrNotFound) {
		t.Fatalf("want plain transport error, got %v", err)
	}
}

func TestLookup_MissingUF(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"cep":"01310-100"}`)
	})
	if _, err := c.Lookup(context.Background(), "01310100"); err == nil {
		t.Fatal("want error for response without uf")
	}
}
