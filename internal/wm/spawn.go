package wm

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/1broseidon/tagwm/internal/config"
)

// Launcher starts external programs on behalf of the window manager.
type Launcher interface {
	// Start runs argv detached and returns once it started.
	Start(argv, env []string) error
	// Run runs argv and waits for it to exit.
	Run(argv []string) error
}

type execLauncher struct {
	logger *slog.Logger
}

func (l execLauncher) command(argv, env []string) *exec.Cmd {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = env
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	// New session so children outlive a restart of the manager.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	return cmd
}

func (l execLauncher) Start(argv, env []string) error {
	cmd := l.command(argv, env)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", argv[0], err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			l.logger.Debug("child exited", "command", argv[0], "error", err)
		}
	}()
	return nil
}

func (l execLauncher) Run(argv []string) error {
	if err := l.command(argv, nil).Run(); err != nil {
		return fmt.Errorf("failed to run %s: %w", argv[0], err)
	}
	return nil
}

func (m *Manager) spawn(argv, env []string) {
	if len(argv) == 0 {
		return
	}
	if err := m.launcher.Start(argv, env); err != nil {
		m.logger.Warn("spawn failed", "command", argv, "error", err)
		return
	}
	m.logger.Debug("spawned", "command", argv)
}

// statusClick runs the status command with the clicked button in BUTTON and
// the character index as its argument.
func (m *Manager) statusClick(t trigger) {
	if m.cfg.StatusCommand == "" {
		return
	}
	argv := []string{"/bin/sh", "-c", m.cfg.StatusCommand + ` "$0"`, strconv.Itoa(t.statusIndex)}
	env := append(os.Environ(), "BUTTON="+strconv.Itoa(int(t.button)))
	m.spawn(argv, env)
}

// RunAutostart runs autostart-blocking.sh and waits for it, then starts
// autostart.sh in the background. Both live in dir and are optional.
func (m *Manager) RunAutostart(dir string) {
	if !m.cfg.Autostart {
		return
	}
	blocking := filepath.Join(dir, "autostart-blocking.sh")
	if isExecutable(blocking) {
		if err := m.launcher.Run([]string{"/bin/sh", "-c", blocking}); err != nil {
			m.logger.Warn("blocking autostart failed", "script", blocking, "error", err)
		}
	}
	background := filepath.Join(dir, "autostart.sh")
	if isExecutable(background) {
		m.spawn([]string{"/bin/sh", "-c", background}, nil)
	}
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Mode()&0o111 != 0
}

// AutostartDir is the config directory, where the autostart scripts live.
func AutostartDir() (string, error) {
	return config.Dir()
}
