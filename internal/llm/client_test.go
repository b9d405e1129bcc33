package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func completionServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerate(t *testing.T) {
	var gotAuth, gotModel string
	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var req completionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotModel = req.Model
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "the answer"}},
			},
		})
	})

	c := NewClient(srv.URL, "test-model", []string{"key-1"}, 5*time.Second)
	got, err := c.Generate(context.Background(), "be brief", "what is up")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "the answer" {
		t.Errorf("got %q, want the answer", got)
	}
	if gotAuth != "Bearer key-1" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotModel != "test-model" {
		t.Errorf("model = %q", gotModel)
	}
}

func TestGenerateKeyRotation(t *testing.T) {
	var mu sync.Mutex
	seen := []string{}
	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Header.Get("Authorization"))
		mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "ok"}},
			},
		})
	})

	c := NewClient(srv.URL, "m", []string{"a", "b"}, 5*time.Second)
	for i := 0; i < 4; i++ {
		if _, err := c.Generate(context.Background(), "", "q"); err != nil {
			t.Fatalf("generate %d: %v", i, err)
		}
	}

	want := []string{"Bearer a", "Bearer b", "Bearer a", "Bearer b"}
	for i, w := range want {
		if seen[i] != w {
			t.Errorf("request %d used %q, want %q", i, seen[i], w)
		}
	}
}

func TestGenerateNoKeys(t *testing.T) {
	c := NewClient("http://unused", "m", nil, time.Second)
	if _, err := c.Generate(context.Background(), "", "q"); err == nil {
		t.Fatal("expected error without API keys")
	}
}

func TestGenerateAPIError(t *testing.T) {
	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 429, "message": "quota exceeded"},
		})
	})

	c := NewClient(srv.URL, "m", []string{"k"}, time.Second)
	_, err := c.Generate(context.Background(), "", "q")
	if err == nil {
		t.Fatal("expected API error")
	}
}

func TestGenerateEmptyChoices(t *testing.T) {
	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	c := NewClient(srv.URL, "m", []string{"k"}, time.Second)
	if _, err := c.Generate(context.Background(), "", "q"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestKeyringFiltersEmpty(t *testing.T) {
	k := NewKeyring([]string{"", "a", ""})
	if k.Len() != 1 {
		t.Fatalf("len = %d, want 1", k.Len())
	}
	if got := k.Next(); got != "a" {
		t.Errorf("next = %q, want a", got)
	}
}
