package main

import (
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func Test_run_help(t *testing.T) {
	var gotStatusCode int
	gotStdout := testboil.CaptureStdout(t, func(t *testing.T) {
		gotStatusCode = run([]string{"-h"})
	})
	testboil.FailTestIfDiff(t, gotStatusCode, 0)
	testboil.AssertStringContains(t, gotStdout, "webchat - browser ui for the chatbox backend")
	testboil.AssertStringContains(t, gotStdout, "WEBCHAT_PORT")
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
	testboil.AssertStringContains(t, gotStdout, "Usage: webchat")
}
