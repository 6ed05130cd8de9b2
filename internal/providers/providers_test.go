package providers

import (
	"context"
	"strings"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func Test_Parse(t *testing.T) {
	testCases := []struct {
		desc    string
		given   string
		want    Provider
		wantErr bool
	}{
		{
			desc:  "it should accept auto",
			given: "auto",
			want:  Auto,
		},
		{
			desc:  "it should accept gpt",
			given: "gpt",
			want:  GPT,
		},
		{
			desc:  "it should accept claude",
			given: "claude",
			want:  Claude,
		},
		{
			desc:  "it should be case insensitive",
			given: "CLAUDE",
			want:  Claude,
		},
		{
			desc:  "it should trim whitespace",
			given: "  gpt\n",
			want:  GPT,
		},
		{
			desc:    "it should reject unknown providers",
			given:   "gemini",
			wantErr: true,
		},
		{
			desc:    "it should reject empty input",
			given:   "",
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got, err := Parse(tc.given)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got: %v", got)
				}
				testboil.AssertStringContains(t, err.Error(), "auto, gpt, claude")
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testboil.FailTestIfDiff(t, got, tc.want)
		})
	}
}

func Test_ValidString(t *testing.T) {
	testboil.FailTestIfDiff(t, ValidString(), "auto, gpt, claude")
}

func Test_New_routing(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	c, err := New(Auto, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := c.(*Ollama); !ok {
		t.Fatalf("expected *Ollama, got: %T", c)
	}

	c, err = New(GPT, "gpt-4o")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	o, ok := c.(*OpenAI)
	if !ok {
		t.Fatalf("expected *OpenAI, got: %T", c)
	}
	testboil.FailTestIfDiff(t, o.Model, "gpt-4o")

	c, err = New(Claude, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, ok := c.(*Anthropic)
	if !ok {
		t.Fatalf("expected *Anthropic, got: %T", c)
	}
	testboil.FailTestIfDiff(t, a.Model, "claude-3-haiku-20240307")

	_, err = New(Provider("nope"), "")
	if err == nil {
		t.Fatal("expected error for unsupported provider, got nil")
	}
}

func Test_Mock(t *testing.T) {
	ctx := context.Background()
	m := &Mock{}
	got, err := m.Complete(ctx, "echo this")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testboil.FailTestIfDiff(t, got, "echo this")

	m = &Mock{Response: "canned"}
	got, _ = m.Complete(ctx, "ignored")
	testboil.FailTestIfDiff(t, got, "canned")

	m = &Mock{Err: errTest}
	_, err = m.Complete(ctx, "x")
	if err == nil || !strings.Contains(err.Error(), "test error") {
		t.Fatalf("expected test error, got: %v", err)
	}
}
