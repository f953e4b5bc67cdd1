package assemblyai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestTranscribe_SubmitThenPoll(t *testing.T) {
	var polls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("authorization"); got != "test-key" {
			t.Errorf("unexpected authorization header: %s", got)
		}

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v2/transcript":
			json.NewEncoder(w).Encode(map[string]string{"id": "tr-1", "status": "queued"})
		case r.Method == http.MethodGet && r.URL.Path == "/v2/transcript/tr-1":
			if polls.Add(1) < 2 {
				json.NewEncoder(w).Encode(map[string]any{"id": "tr-1", "status": "processing"})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"id":     "tr-1",
				"status": "completed",
				"text":   "hello world",
				"words": []map[string]any{
					{"text": "hello", "start": 100, "end": 500},
					{"text": "world", "start": 550, "end": 1000},
				},
			})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	a := New(Config{
		BaseURL:      srv.URL,
		APIKey:       "test-key",
		PollInterval: 5 * time.Millisecond,
		Timeout:      5 * time.Second,
	})

	tr, err := a.Transcribe(context.Background(), "https://example.com/a.mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tr.Completed() {
		t.Errorf("expected completed transcript, got status %s", tr.Status)
	}
	if tr.FullText != "hello world" {
		t.Errorf("unexpected full text: %s", tr.FullText)
	}
	if len(tr.Words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(tr.Words))
	}
	// Millisecond timings converted to seconds.
	if tr.Words[0].Start != 0.1 || tr.Words[0].End != 0.5 {
		t.Errorf("unexpected first word timing: %+v", tr.Words[0])
	}
}

func TestTranscribe_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			json.NewEncoder(w).Encode(map[string]string{"id": "tr-2", "status": "queued"})
		default:
			json.NewEncoder(w).Encode(map[string]any{
				"id":     "tr-2",
				"status": "error",
				"error":  "unsupported codec",
			})
		}
	}))
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL, PollInterval: 5 * time.Millisecond, Timeout: 5 * time.Second})

	if _, err := a.Transcribe(context.Background(), "url"); err == nil {
		t.Error("expected error when the provider reports failure")
	}
}

func TestTranscribe_SubmitRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL, PollInterval: 5 * time.Millisecond, Timeout: time.Second})

	if _, err := a.Transcribe(context.Background(), "url"); err == nil {
		t.Error("expected error for rejected submission")
	}
}

func TestTranscribe_ContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]string{"id": "tr-3", "status": "queued"})
			return
		}
		// Never completes
		json.NewEncoder(w).Encode(map[string]any{"id": "tr-3", "status": "processing"})
	}))
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL, PollInterval: 5 * time.Millisecond, Timeout: 50 * time.Millisecond})

	if _, err := a.Transcribe(context.Background(), "url"); err == nil {
		t.Error("expected timeout error for a transcript that never completes")
	}
}
