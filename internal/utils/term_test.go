package utils

import (
	"os"
	"testing"
)

func Test_IsInteractive_pipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})
	if IsInteractive(r) {
		t.Error("expected pipe to be non-interactive")
	}
}
