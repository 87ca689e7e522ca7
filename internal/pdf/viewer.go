package pdf

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// OpenInViewer opens the PDF at path with the platform's default viewer.
func OpenInViewer(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("PDF not found: %s", path)
		}
		return fmt.Errorf("checking PDF: %w", err)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
