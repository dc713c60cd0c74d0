package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestChatClient_AskSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/chat" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Message != "hello" {
			t.Errorf("message = %q, want hello", req.Message)
		}
		if req.SessionID != "sess-1" {
			t.Errorf("session_id = %q, want sess-1", req.SessionID)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"reply": "hi", "language": "en"})
	}))
	defer srv.Close()

	c := NewChatClient(srv.URL, "sess-1")
	reply, err := c.Ask(context.Background(), "hello")
	if err != nil {
		t.Fatal(err)
	}
	if reply != "hi" {
		t.Fatalf("reply = %q, want hi", reply)
	}
}

func TestChatClient_AskServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewChatClient(srv.URL, "")
	_, err := c.Ask(context.Background(), "hello")
	var rerr *RequestError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if rerr.Kind != KindServer {
		t.Fatalf("kind = %v, want server", rerr.Kind)
	}
}

func TestChatClient_AskTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewChatClient(srv.URL, "")
	c.AskTimeout = 20 * time.Millisecond
	_, err := c.Ask(context.Background(), "hello")
	var rerr *RequestError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if rerr.Kind != KindTimeout {
		t.Fatalf("kind = %v, want timeout", rerr.Kind)
	}
}

func TestChatClient_AskTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	c := NewChatClient(srv.URL, "")
	_, err := c.Ask(context.Background(), "hello")
	var rerr *RequestError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if rerr.Kind != KindTransport {
		t.Fatalf("kind = %v, want transport", rerr.Kind)
	}
}

func TestChatClient_AskEmptyReplyIsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"language": "en"})
	}))
	defer srv.Close()

	c := NewChatClient(srv.URL, "")
	_, err := c.Ask(context.Background(), "hello")
	var rerr *RequestError
	if !errors.As(err, &rerr) || rerr.Kind != KindServer {
		t.Fatalf("expected server-kind error for missing reply, got %v", err)
	}
}

func TestChatClient_Health(t *testing.T) {
	var status = http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(status)
	}))
	defer srv.Close()

	c := NewChatClient(srv.URL, "")
	if err := c.Health(context.Background()); err != nil {
		t.Fatalf("healthy server reported unhealthy: %v", err)
	}

	status = http.StatusServiceUnavailable
	err := c.Health(context.Background())
	var rerr *RequestError
	if !errors.As(err, &rerr) || rerr.Kind != KindServer {
		t.Fatalf("expected server-kind error, got %v", err)
	}
}

func TestChatClient_HealthTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewChatClient(srv.URL, "")
	c.HealthTimeout = 20 * time.Millisecond
	err := c.Health(context.Background())
	var rerr *RequestError
	if !errors.As(err, &rerr) || rerr.Kind != KindTimeout {
		t.Fatalf("expected timeout-kind error, got %v", err)
	}
}
