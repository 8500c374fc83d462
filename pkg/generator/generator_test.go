package generator

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt("Where did the cat sit?", "The cat sat on the mat.")

	if !strings.Contains(prompt, "The cat sat on the mat.") {
		t.Fatalf("prompt missing context: %q", prompt)
	}
	if !strings.Contains(prompt, "Question: Where did the cat sit?") {
		t.Fatalf("prompt missing question: %q", prompt)
	}
	if !strings.HasSuffix(prompt, "Answer:") {
		t.Fatalf("prompt should end with answer cue: %q", prompt)
	}
}

func TestOllamaGenerator_Answer(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req ollamaGenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotPrompt = req.Prompt
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "On the mat.", Done: true})
	}))
	defer srv.Close()

	g := NewOllamaGenerator(srv.URL, "test-model")
	answer, err := g.Answer("Where did the cat sit?", "The cat sat on the mat.")
	if err != nil {
		t.Fatalf("answer failed: %v", err)
	}
	if answer != "On the mat." {
		t.Fatalf("expected %q, got %q", "On the mat.", answer)
	}
	if !strings.Contains(gotPrompt, "The cat sat on the mat.") {
		t.Fatalf("server did not receive context in prompt")
	}
}

func TestOllamaGenerator_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	g := NewOllamaGenerator(srv.URL, "missing-model")
	if _, err := g.Answer("question", "context"); err == nil {
		t.Fatalf("expected error on server failure")
	}
}

func TestOllamaGenerator_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "", Done: true})
	}))
	defer srv.Close()

	g := NewOllamaGenerator(srv.URL, "test-model")
	if _, err := g.Answer("question", "context"); err == nil {
		t.Fatalf("expected error on empty response")
	}
}
