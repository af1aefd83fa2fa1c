package main

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/banshee-data/aperture/internal/monitoring"
)

// openBrowser opens a local file with the platform's default handler.
func openBrowser(path string) error {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	var cmd string
	var args []string
	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{path}
	case "linux":
		cmd = "xdg-open"
		args = []string{path}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", path}
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return exec.Command(cmd, args...).Start()
}

// openHTML opens every generated HTML chart when output.open is set.
func (a *app) openHTML(paths []string) {
	if !a.cfg.Output.Open {
		return
	}
	opened := false
	for _, p := range paths {
		if !strings.HasSuffix(p, ".html") {
			continue
		}
		opened = true
		if err := a.open(p); err != nil {
			monitoring.Logf("failed to open %s: %v", p, err)
		}
	}
	if !opened {
		monitoring.Logf("--open has no effect without html in --format")
	}
}
