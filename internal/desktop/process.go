package desktop

import (
	"fmt"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// Process relaunches and exits the running executable
type Process struct {
	args   []string
	exit   func(code int)
	logger *zap.Logger
}

// NewProcess creates a process controller. exit runs before os.Exit, e.g.
// to quit the window host; it may be nil.
func NewProcess(args []string, exit func(code int), logger *zap.Logger) *Process {
	return &Process{
		args:   args,
		exit:   exit,
		logger: logger,
	}
}

// Relaunch starts a new instance with the same arguments
func (p *Process) Relaunch() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to resolve executable: %w", err)
	}

	cmd := exec.Command(exe, p.args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", exe, err)
	}

	p.logger.Info("Started new instance", zap.Int("pid", cmd.Process.Pid))
	return cmd.Process.Release()
}

// Exit terminates the process
func (p *Process) Exit(code int) {
	p.logger.Info("Exiting", zap.Int("code", code))
	_ = p.logger.Sync()
	if p.exit != nil {
		p.exit(code)
	}
	os.Exit(code)
}
