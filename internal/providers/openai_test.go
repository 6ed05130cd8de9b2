package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func Test_NewOpenAI_missingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := NewOpenAI("")
	if err == nil {
		t.Fatal("expected error when key is missing, got nil")
	}
	testboil.AssertStringContains(t, err.Error(), "OPENAI_API_KEY")
}

func Test_NewOpenAI_defaultModel(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	o, err := NewOpenAI("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testboil.FailTestIfDiff(t, o.Model, "gpt-3.5-turbo")
}

func Test_OpenAI_Complete(t *testing.T) {
	var gotAuth, gotModel string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		gotModel = req.Model
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-test",
			"object": "chat.completion",
			"choices": [{
				"index": 0,
				"message": {"role": "assistant", "content": "mocked reply"},
				"finish_reason": "stop"
			}]
		}`))
	}))
	defer ts.Close()
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_BASE_URL", ts.URL)

	o, err := NewOpenAI("gpt-3.5-turbo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := o.Complete(context.Background(), "Human: ping\n\nAssistant:")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testboil.FailTestIfDiff(t, got, "mocked reply")
	testboil.FailTestIfDiff(t, gotModel, "gpt-3.5-turbo")
	testboil.AssertStringContains(t, gotAuth, "test-key")
}

func Test_OpenAI_Complete_apiError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 401 is not retried by the sdk, which keeps this test fast
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "incorrect api key"}}`))
	}))
	defer ts.Close()
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_BASE_URL", ts.URL)

	o, err := NewOpenAI("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = o.Complete(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected error on 401 response, got nil")
	}
	testboil.AssertStringContains(t, err.Error(), "failed to create chat completion")
}
