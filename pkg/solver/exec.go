package solver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

const (
	// maxStderr bounds how much of a failing solver's stderr is kept.
	maxStderr = 4096
	waitDelay = time.Second
)

// Exec runs an external solver program. The formula path is passed as
// the last argument and the program runs in a private temporary working
// directory, so side files such as zchaff's resolve_trace are removed
// together with it whatever the outcome.
type Exec struct {
	Path string
	Args []string
	// SuccessCodes lists the exit statuses of a normal termination.
	// Defaults to 0 only; competition solvers exit with 10 and 20.
	SuccessCodes []int
	Logger       logr.Logger
}

var _ Solver = Exec{}

func (s Exec) Solve(ctx context.Context, path string) (Result, error) {
	log := orDiscard(s.Logger).WithValues("solver", s.Path)

	abs, err := filepath.Abs(path)
	if err != nil {
		return Result{}, fmt.Errorf("resolving formula path %s: %w", path, err)
	}
	workdir, err := os.MkdirTemp("", "polypack-solver-")
	if err != nil {
		return Result{}, fmt.Errorf("creating solver working directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(workdir); err != nil {
			log.Error(err, "failed to remove solver working directory", "dir", workdir)
		}
	}()

	args := append(append([]string(nil), s.Args...), abs)
	cmd := exec.CommandContext(ctx, s.Path, args...)
	cmd.Dir = workdir
	// children of a killed solver may hold on to its output pipes
	cmd.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.V(1).Info("running solver", "args", args)
	err = cmd.Run()
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}

	code := 0
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		code = exitErr.ExitCode()
	case err != nil:
		return Result{}, &ProcessError{Command: s.Path, Err: err, Stderr: tail(stderr.String())}
	}
	log.V(1).Info("solver exited", "status", code)

	if !slices.Contains(s.successCodes(), code) {
		return Result{}, &ProcessError{Command: s.Path, ExitCode: code, Stderr: tail(stderr.String())}
	}
	res, err := ParseOutput(stdout.Bytes())
	if err != nil {
		return Result{}, &ProcessError{Command: s.Path, ExitCode: code, Err: err, Stderr: tail(stderr.String())}
	}
	return res, nil
}

func (s Exec) successCodes() []int {
	if len(s.SuccessCodes) == 0 {
		return []int{0}
	}
	return s.SuccessCodes
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxStderr {
		s = "..." + s[len(s)-maxStderr:]
	}
	return s
}
