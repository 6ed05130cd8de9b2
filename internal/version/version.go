// Package version prints build information for the chatbox binaries.
package version

import (
	"errors"
	"fmt"
	"io"
	"runtime/debug"
)

// Set with buildflag if built in pipeline and not using go install
var (
	BuildVersion  = ""
	BuildChecksum = ""
)

// Print writes the binary version followed by the versions of all module
// dependencies. The version comes from the build pipeline when set, with
// the embedded build info as fallback.
func Print(w io.Writer) error {
	hasPrintedVersion := false
	if BuildVersion != "" {
		hasPrintedVersion = true
		fmt.Fprintln(w, "version: "+BuildVersion)
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return errors.New("failed to read build info")
	}
	if !hasPrintedVersion {
		fmt.Fprintln(w, "version: "+bi.Main.Version)
	}
	for _, dep := range bi.Deps {
		fmt.Fprintf(w, "%s %s\n", dep.Path, dep.Version)
	}
	return nil
}
