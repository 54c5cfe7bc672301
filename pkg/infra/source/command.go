package source

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/localstamp/pkg/domain/interfaces"
	"github.com/m-mizutani/localstamp/pkg/domain/model"
)

// Command asks the operating system for its offset by running
// `date +%z`, or `powershell Get-Date -Format "K "` on Windows
type Command struct {
	runner interfaces.CommandRunner
	goos   string
}

// CommandOption is a functional option for Command
type CommandOption func(*Command)

// WithGOOS overrides runtime.GOOS when choosing the command
func WithGOOS(goos string) CommandOption {
	return func(c *Command) {
		c.goos = goos
	}
}

// NewCommand creates a Command source. A nil runner executes real processes.
func NewCommand(runner interfaces.CommandRunner, opts ...CommandOption) *Command {
	if runner == nil {
		runner = ExecRunner{}
	}
	c := &Command{runner: runner, goos: runtime.GOOS}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements interfaces.OffsetSource
func (c *Command) Name() string {
	return "command"
}

// Args returns the command line used on the configured platform
func (c *Command) Args() (string, []string) {
	if c.goos == "windows" {
		return "powershell", []string{"Get-Date", "-Format", `"K "`}
	}
	return "date", []string{"+%z"}
}

// Offset implements interfaces.OffsetSource
func (c *Command) Offset(ctx context.Context) (model.Offset, error) {
	name, args := c.Args()
	out, err := c.runner.Run(ctx, name, args...)
	if err != nil {
		return model.UTC, goerr.Wrap(fmt.Errorf("%w: %w", model.ErrTimeCommand, err), "failed to run time command", goerr.V("command", name))
	}

	o, err := model.ParseOffset(string(out))
	if err != nil {
		return model.UTC, goerr.Wrap(fmt.Errorf("%w: %w", model.ErrParse, err), "unexpected time command output", goerr.V("output", string(out)))
	}
	return o, nil
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// Run implements interfaces.CommandRunner
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return nil, goerr.Wrap(err, "command failed", goerr.V("name", name), goerr.V("args", args))
	}
	return out, nil
}
