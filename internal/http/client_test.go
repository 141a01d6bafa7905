package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "albumgrid" {
			t.Errorf("User-Agent = %q", ua)
		}
		switch r.URL.Path {
		case "/json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"name":"Kid A"}`))
		case "/text":
			w.Write([]byte("hello"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient()
	ctx := context.Background()

	s, err := c.GetString(ctx, srv.URL+"/text")
	if err != nil || s != "hello" {
		t.Errorf("GetString = %q, %v", s, err)
	}

	var doc struct {
		Name string `json:"name"`
	}
	if err := c.GetJSON(ctx, srv.URL+"/json", &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Name != "Kid A" {
		t.Errorf("Name = %q", doc.Name)
	}

	_, err = c.Get(ctx, srv.URL+"/missing")
	var se *StatusError
	if !errors.As(err, &se) || se.Status != http.StatusNotFound {
		t.Errorf("Get missing: err = %v", err)
	}
}
