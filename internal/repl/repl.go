// Package repl holds the interactive loops of the localchat and chatbox
// binaries. Input and output are plain readers and writers so the loops
// can be driven from tests.
package repl

import (
	"bufio"
	"slices"
	"strings"
)

var quitwords = []string{"quit", "exit", "q"}

func isQuitword(input string) bool {
	return slices.Contains(quitwords, strings.ToLower(input))
}

// readLine returns the next trimmed line. The second return is false once
// the input is exhausted.
func readLine(reader *bufio.Reader) (string, bool) {
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}
