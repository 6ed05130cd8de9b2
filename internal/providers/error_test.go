package providers

import (
	"errors"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

var errTest = errors.New("test error")

func Test_Wrap(t *testing.T) {
	if got := Wrap(Auto, nil); got != nil {
		t.Fatalf("expected nil for nil error, got: %v", got)
	}

	testCases := []struct {
		desc     string
		provider Provider
		wantHint string
	}{
		{
			desc:     "it should hint about the ollama daemon",
			provider: Auto,
			wantHint: "ollama serve",
		},
		{
			desc:     "it should hint about the openai key",
			provider: GPT,
			wantHint: "Check OpenAI API key",
		},
		{
			desc:     "it should hint about the anthropic key",
			provider: Claude,
			wantHint: "Check Anthropic API key",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			err := Wrap(tc.provider, errTest)
			testboil.AssertStringContains(t, err.Error(), "Error with "+string(tc.provider))
			testboil.AssertStringContains(t, err.Error(), "test error")
			testboil.AssertStringContains(t, err.Error(), "Troubleshooting:")
			testboil.AssertStringContains(t, err.Error(), tc.wantHint)
		})
	}
}

func Test_Error_unwraps(t *testing.T) {
	err := Wrap(GPT, errTest)
	if !errors.Is(err, errTest) {
		t.Fatal("expected errors.Is to see through the wrap")
	}
	var provErr *Error
	if !errors.As(err, &provErr) {
		t.Fatal("expected errors.As to find *Error")
	}
	testboil.FailTestIfDiff(t, provErr.Provider, GPT)
}
