// Package helpers provides small shared utilities with no domain logic.
package helpers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrScriptFilenameUnavailable indicates the runtime caller path could not be resolved.
var ErrScriptFilenameUnavailable = errors.New("failed to get script filename")

// HandleErr prints an error to stderr and optionally exits. When fatal is true,
// the process exits with code 1 after printing. When false, execution continues
// and callers are responsible for checking err themselves before calling.
func HandleErr(errText string, err error, fatal bool) {
	if err == nil {
		return
	}
	errString := errText + "\n" + err.Error()
	fmt.Fprintln(os.Stderr, errString)
	if fatal {
		os.Exit(1)
	}
}

// WasRunFromSrc checks if the binary was run from a Go build temp directory.
func WasRunFromSrc() bool {
	buildPath := filepath.Join(os.TempDir(), "go-build")
	return strings.HasPrefix(os.Args[0], buildPath)
}

// GetScriptDir returns the directory of the running script or binary.
func GetScriptDir() (string, error) {
	var (
		ok    bool
		err   error
		fname string
	)
	runFromSrc := WasRunFromSrc()
	if runFromSrc {
		_, fname, _, ok = runtime.Caller(0)
		if !ok {
			return "", ErrScriptFilenameUnavailable
		}
	} else {
		fname, err = os.Executable()
		if err != nil {
			return "", fmt.Errorf("resolve executable path: %w", err)
		}
	}
	return filepath.Dir(fname), nil
}
