package agent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"
)

// Invocation is one request to the external reviewer.
type Invocation struct {
	Prompt      string
	AttachFiles []string
	Model       string
	Timeout     time.Duration
	// Env holds extra environment variables merged into the subprocess
	// environment. Threaded explicitly by the caller; the runner reads no
	// ambient configuration of its own.
	Env map[string]string
	// OutputFile, when set, names a file the external tool writes its
	// response to. If present after the run it is preferred over captured
	// standard output as the authoritative response text.
	OutputFile string
}

// Result is the reviewer's reply.
type Result struct {
	Success      bool
	Output       string
	ErrorMessage string
}

// Runner abstracts the external reviewer process.
type Runner interface {
	// Preflight verifies the external tool is available and usable.
	Preflight(ctx context.Context) error
	// Invoke performs one blocking review call. A failed external process
	// yields Success=false with its stderr/stdout as ErrorMessage; err is
	// reserved for failures to run the process at all (missing binary,
	// timeout).
	Invoke(ctx context.Context, inv Invocation) (Result, error)
	Name() string
}

// CLIRunner runs an external reviewer binary, passing the prompt on stdin
// and attached file paths as arguments.
type CLIRunner struct {
	Command string
	Args    []string
	Dir     string
}

// NewCLIRunner creates a runner for the given binary.
func NewCLIRunner(command, dir string, args ...string) *CLIRunner {
	return &CLIRunner{Command: command, Args: args, Dir: dir}
}

func (r *CLIRunner) Name() string { return r.Command }

// Preflight checks that the command resolves on PATH and answers --version.
func (r *CLIRunner) Preflight(ctx context.Context) error {
	if _, err := exec.LookPath(r.Command); err != nil {
		return fmt.Errorf("reviewer command %q not found on PATH: %w", r.Command, err)
	}
	checkCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	cmd := exec.CommandContext(checkCtx, r.Command, "--version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("reviewer command %q is not responding (is your session authenticated?): %w", r.Command, err)
	}
	return nil
}

// Invoke spawns the reviewer once and blocks until it exits or the timeout
// elapses. On timeout the process is killed and an error returned; no
// partial output is trusted.
func (r *CLIRunner) Invoke(ctx context.Context, inv Invocation) (Result, error) {
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	args := append([]string(nil), r.Args...)
	if inv.Model != "" {
		args = append(args, "--model", inv.Model)
	}
	args = append(args, inv.AttachFiles...)

	cmd := exec.CommandContext(ctx, r.Command, args...)
	cmd.Dir = r.Dir
	cmd.Stdin = strings.NewReader(inv.Prompt)
	cmd.Env = mergedEnv(inv.Env)
	cmd.WaitDelay = 10 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		if inv.Timeout > 0 {
			return Result{}, fmt.Errorf("reviewer %q timed out after %s and was killed", r.Command, inv.Timeout)
		}
		return Result{}, fmt.Errorf("reviewer %q timed out and was killed", r.Command)
	}
	if ctx.Err() != nil {
		return Result{}, fmt.Errorf("reviewer %q canceled: %w", r.Command, ctx.Err())
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return Result{
				Success:      false,
				ErrorMessage: strings.TrimSpace(stderr.String() + "\n" + stdout.String()),
			}, nil
		}
		return Result{}, fmt.Errorf("running reviewer %q: %w", r.Command, runErr)
	}

	output := stdout.String()
	if inv.OutputFile != "" {
		if data, err := os.ReadFile(inv.OutputFile); err == nil {
			output = string(data)
		}
	}
	return Result{Success: true, Output: ExtractAnswer(output)}, nil
}

// mergedEnv combines the process environment with explicit extras, extras
// winning. Extras are appended in sorted order for determinism.
func mergedEnv(extra map[string]string) []string {
	env := os.Environ()
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+extra[k])
	}
	return env
}

// ExtractAnswer returns the text after the last "Answer:" delimiter when
// one is present, otherwise the whole output verbatim.
func ExtractAnswer(output string) string {
	const delim = "Answer:"
	idx := strings.LastIndex(output, delim)
	if idx < 0 {
		return output
	}
	return strings.TrimSpace(output[idx+len(delim):])
}
