package main

import (
	"os"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func Test_run_help(t *testing.T) {
	for _, arg := range []string{"h", "help", "-h", "--help"} {
		t.Run(arg, func(t *testing.T) {
			var gotStatusCode int
			gotStdout := testboil.CaptureStdout(t, func(t *testing.T) {
				gotStatusCode = run([]string{arg})
			})
			testboil.FailTestIfDiff(t, gotStatusCode, 0)
			testboil.AssertStringContains(t, gotStdout, "localchat - terminal chat against a local Ollama server")
			testboil.AssertStringContains(t, gotStdout, "OLLAMA_BASE_URL")
		})
	}
}

func Test_run_version(t *testing.T) {
	var gotStatusCode int
	gotStdout := testboil.CaptureStdout(t, func(t *testing.T) {
		gotStatusCode = run([]string{"version"})
	})
	testboil.FailTestIfDiff(t, gotStatusCode, 0)
	testboil.AssertStringContains(t, gotStdout, "version: ")
}

func Test_run_unknownCommand(t *testing.T) {
	var gotStatusCode int
	gotStdout := testboil.CaptureStdout(t, func(t *testing.T) {
		gotStatusCode = run([]string{"bogus"})
	})
	testboil.FailTestIfDiff(t, gotStatusCode, 1)
	testboil.AssertStringContains(t, gotStdout, "Usage: localchat")
}

func Test_run_quitsOnPipedQuit(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	oldStdin := os.Stdin
	t.Cleanup(func() { os.Stdin = oldStdin })
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdin = r
	t.Cleanup(func() { _ = r.Close() })
	_, _ = w.WriteString("quit\n")
	_ = w.Close()

	var gotStatusCode int
	gotStdout := testboil.CaptureStdout(t, func(t *testing.T) {
		gotStatusCode = run(nil)
	})
	testboil.FailTestIfDiff(t, gotStatusCode, 0)
	testboil.AssertStringContains(t, gotStdout, "Welcome to chatbox local chat!")
	testboil.AssertStringContains(t, gotStdout, "Goodbye!")
}
