package queue

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestWebhookRelay_DeliversEvent(t *testing.T) {
	var gotAuth, gotContentType string
	var gotEvent MutationEvent
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotEvent); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	relay := NewWebhookRelay(WebhookRelayParams{Endpoint: server.URL, APIKey: "secret"})
	body, _ := json.Marshal(MutationEvent{
		Object:     "relationship",
		Action:     "score_change",
		PublicID:   "abc123",
		Actor:      "user@example.com",
		OccurredAt: time.Now().UTC(),
	})

	if err := relay.HandleSyncMessage(context.Background(), body); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Fatalf("expected json content type, got %q", gotContentType)
	}
	if gotEvent.Object != "relationship" || gotEvent.Action != "score_change" || gotEvent.PublicID != "abc123" {
		t.Fatalf("unexpected event payload: %+v", gotEvent)
	}
}

func TestWebhookRelay_RetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	relay := NewWebhookRelay(WebhookRelayParams{
		Endpoint: server.URL,
		MaxTries: 5,
		Backoff:  time.Millisecond,
	})
	body, _ := json.Marshal(MutationEvent{Object: "account", Action: "create", PublicID: "a1"})

	if err := relay.HandleSyncMessage(context.Background(), body); err != nil {
		t.Fatalf("expected eventual success, got %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestWebhookRelay_GivesUpAfterMaxTries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	relay := NewWebhookRelay(WebhookRelayParams{
		Endpoint: server.URL,
		MaxTries: 2,
		Backoff:  time.Millisecond,
	})
	body, _ := json.Marshal(MutationEvent{Object: "contact", Action: "update", PublicID: "c1"})

	if err := relay.HandleSyncMessage(context.Background(), body); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestWebhookRelay_RejectsMalformedMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("malformed message should never reach the webhook")
	}))
	defer server.Close()

	relay := NewWebhookRelay(WebhookRelayParams{Endpoint: server.URL})

	if err := relay.HandleSyncMessage(context.Background(), []byte("{not json")); err == nil {
		t.Fatal("expected decode error")
	}
	if err := relay.HandleSyncMessage(context.Background(), []byte(`{"id":"x"}`)); err == nil {
		t.Fatal("expected validation error for missing object/action")
	}
}
