package core

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/worksentry/worksentry/errs"
)

// OpenFile delegates to the OS's default opener for path rather than
// implementing a viewer itself.
func (s *Service) OpenFile(path string) error {
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
		return fmt.Errorf("%w: open %s: %v", errs.ErrSourceRead, path, err)
	}
	return nil
}
