package pdf

import (
	"os/exec"
	"runtime"

	"github.com/pkg/errors"
)

// OpenExternally implements port.DocumentRenderer. It hands the file to the
// platform-default viewer and returns without waiting for it.
func (r *Renderer) OpenExternally(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}

	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "could not open '%s' with the default viewer", path)
	}

	return nil
}
