package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrorKind classifies a failed request. The retry policy treats all
// kinds the same; the distinction only shapes the message shown to the
// user and what gets logged.
type ErrorKind int

const (
	KindTransport ErrorKind = iota
	KindTimeout
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindServer:
		return "server"
	default:
		return "transport"
	}
}

// RequestError wraps a failed chat or health request with its kind.
type RequestError struct {
	Kind ErrorKind
	Err  error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Backend is the remote chat service as the conversation core sees it:
// one question in, one reply out, plus a liveness check.
type Backend interface {
	Ask(ctx context.Context, message string) (string, error)
	Health(ctx context.Context) error
}

// ChatClient talks to the Industrial Training FAQ server over its HTTP
// contract: POST /api/chat and GET /health.
type ChatClient struct {
	BaseURL       string
	SessionID     string
	AskTimeout    time.Duration
	HealthTimeout time.Duration
	HTTP          *http.Client
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

type chatResponse struct {
	Reply    string `json:"reply"`
	Language string `json:"language,omitempty"`
}

func NewChatClient(baseURL, sessionID string) *ChatClient {
	return &ChatClient{
		BaseURL:       strings.TrimRight(baseURL, "/"),
		SessionID:     sessionID,
		AskTimeout:    10 * time.Second,
		HealthTimeout: 3 * time.Second,
		HTTP:          &http.Client{},
	}
}

// Ask performs a single chat attempt with the client's 10s bound. Retries
// are the caller's concern.
func (c *ChatClient) Ask(ctx context.Context, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.AskTimeout)
	defer cancel()

	payload, err := json.Marshal(chatRequest{Message: message, SessionID: c.SessionID})
	if err != nil {
		return "", err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(request)
	if err != nil {
		return "", classifyTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", classifyTransport(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &RequestError{Kind: KindServer, Err: fmt.Errorf("chat endpoint returned status %d", resp.StatusCode)}
	}

	var decoded chatResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", &RequestError{Kind: KindServer, Err: fmt.Errorf("invalid chat response: %v", err)}
	}
	if decoded.Reply == "" {
		return "", &RequestError{Kind: KindServer, Err: errors.New("chat response carried no reply")}
	}
	return decoded.Reply, nil
}

// Health probes GET /health with a 3s bound. Any 2xx means online;
// anything else, including a timeout, is reported as an error.
func (c *ChatClient) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.HealthTimeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(request)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{Kind: KindServer, Err: fmt.Errorf("health endpoint returned status %d", resp.StatusCode)}
	}
	return nil
}

func classifyTransport(err error) error {
	kind := KindTransport
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		if uerr.Timeout() || errors.Is(uerr.Err, context.DeadlineExceeded) {
			kind = KindTimeout
		}
		err = uerr.Err
	}
	return &RequestError{Kind: kind, Err: err}
}
