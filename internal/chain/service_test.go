package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/baalimago/chatbox/internal/providers"
	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func Test_Service_cachesPerProviderAndModel(t *testing.T) {
	constructions := 0
	s := NewService()
	s.newCompleter = func(p providers.Provider, model string) (providers.Completer, error) {
		constructions++
		return &providers.Mock{}, nil
	}

	first, err := s.Chain(providers.Auto, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.Chain(providers.Auto, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatal("expected the same chain for the same provider and model")
	}
	testboil.FailTestIfDiff(t, constructions, 1)

	_, err = s.Chain(providers.Auto, "llama3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testboil.FailTestIfDiff(t, constructions, 2)

	_, err = s.Chain(providers.GPT, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testboil.FailTestIfDiff(t, constructions, 3)
}

func Test_Service_failedConstructionIsNotCached(t *testing.T) {
	constructions := 0
	s := NewService()
	s.newCompleter = func(p providers.Provider, model string) (providers.Completer, error) {
		constructions++
		if constructions == 1 {
			return nil, errors.New("key missing")
		}
		return &providers.Mock{}, nil
	}

	_, err := s.Chain(providers.GPT, "")
	if err == nil {
		t.Fatal("expected error on first construction, got nil")
	}
	_, err = s.Chain(providers.GPT, "")
	if err != nil {
		t.Fatalf("expected retry to succeed, got: %v", err)
	}
	testboil.FailTestIfDiff(t, constructions, 2)
}

func Test_Service_Invoke(t *testing.T) {
	s := NewService()
	s.newCompleter = func(p providers.Provider, model string) (providers.Completer, error) {
		return &providers.Mock{}, nil
	}

	got, err := s.Invoke(context.Background(), "ping", providers.Auto, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The mock echoes the templated prompt back
	testboil.FailTestIfDiff(t, got, "Human: ping\n\nAssistant:")
}

func Test_Service_Invoke_wrapsWithHints(t *testing.T) {
	s := NewService()
	s.newCompleter = func(p providers.Provider, model string) (providers.Completer, error) {
		return &providers.Mock{Err: errors.New("connection refused")}, nil
	}

	_, err := s.Invoke(context.Background(), "ping", providers.Auto, "")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	testboil.AssertStringContains(t, err.Error(), "Error with auto")
	testboil.AssertStringContains(t, err.Error(), "connection refused")
	testboil.AssertStringContains(t, err.Error(), "ollama serve")

	var provErr *providers.Error
	if !errors.As(err, &provErr) {
		t.Fatal("expected errors.As to find *providers.Error")
	}
}

func Test_Service_Invoke_wrapsConstructionFailure(t *testing.T) {
	s := NewService()
	s.newCompleter = func(p providers.Provider, model string) (providers.Completer, error) {
		return nil, errors.New("OpenAI API key not configured. Please set OPENAI_API_KEY environment variable")
	}

	_, err := s.Invoke(context.Background(), "ping", providers.GPT, "")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	testboil.AssertStringContains(t, err.Error(), "Error with gpt")
	testboil.AssertStringContains(t, err.Error(), "OPENAI_API_KEY")
	testboil.AssertStringContains(t, err.Error(), "Troubleshooting:")
}

func Test_cacheKey(t *testing.T) {
	testCases := []struct {
		provider providers.Provider
		model    string
		want     string
	}{
		{providers.Auto, "", "auto_default"},
		{providers.Auto, "llama3", "auto_llama3"},
		{providers.GPT, "gpt-4o", "gpt_gpt-4o"},
		{providers.Claude, "", "claude_default"},
	}
	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			testboil.FailTestIfDiff(t, cacheKey(tc.provider, tc.model), tc.want)
		})
	}
}
