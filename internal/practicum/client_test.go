package practicum

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hwbot/internal/watch"
)

func newTestClient(url string) *Client {
	return New(Config{Endpoint: url, Token: "prac-token", Timeout: 2 * time.Second})
}

func TestHomeworkStatusesRequestShape(t *testing.T) {
	t.Parallel()
	var gotAuth, gotFrom string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotFrom = r.URL.Query().Get("from_date")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"homeworks": [], "current_date": 1700000000}`))
	}))
	defer srv.Close()

	body, err := newTestClient(srv.URL).HomeworkStatuses(context.Background(), 1690000000)
	if err != nil {
		t.Fatalf("HomeworkStatuses() error: %v", err)
	}
	if gotAuth != "OAuth prac-token" {
		t.Fatalf("Authorization = %q, want %q", gotAuth, "OAuth prac-token")
	}
	if gotFrom != "1690000000" {
		t.Fatalf("from_date = %q, want %q", gotFrom, "1690000000")
	}

	m, ok := body.(map[string]any)
	if !ok {
		t.Fatalf("body type = %T, want map", body)
	}
	if _, ok := m["homeworks"]; !ok {
		t.Fatal("decoded body lost the homeworks key")
	}
}

func TestHomeworkStatusesNonSuccess(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).HomeworkStatuses(context.Background(), 0)
	var status *watch.UnexpectedStatusError
	if !errors.As(err, &status) {
		t.Fatalf("error = %v, want UnexpectedStatusError", err)
	}
	if status.Code != http.StatusServiceUnavailable {
		t.Fatalf("Code = %d, want 503", status.Code)
	}
}

func TestHomeworkStatusesBadBody(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).HomeworkStatuses(context.Background(), 0)
	var decode *watch.DecodeError
	if !errors.As(err, &decode) {
		t.Fatalf("error = %v, want DecodeError", err)
	}
}

func TestHomeworkStatusesTransportFailure(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := newTestClient(srv.URL).HomeworkStatuses(context.Background(), 0)
	var transport *watch.TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("error = %v, want TransportError", err)
	}
}
