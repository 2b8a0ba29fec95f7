package notify

import (
	"os"
	"os/exec"
	"runtime"
)

// ResolveEditor locates the editor binary used for the click action. An
// explicit override from settings wins; otherwise "code" is looked up on
// PATH, then at common install locations. Returns "" when nothing is
// found, which disables the click action.
func ResolveEditor(override string) string {
	if override != "" {
		if path, err := exec.LookPath(override); err == nil {
			return path
		}
		return override
	}

	if path, err := exec.LookPath("code"); err == nil {
		return path
	}

	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = []string{"/usr/local/bin/code", "/opt/homebrew/bin/code"}
	case "linux":
		candidates = []string{"/usr/bin/code", "/usr/local/bin/code"}
	case "windows":
		candidates = []string{"code.cmd", "code.exe"}
	}

	for _, c := range candidates {
		if path, err := exec.LookPath(c); err == nil {
			return path
		}
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}
