package smapi

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"
)

// runFunc runs a command and returns its combined output and exit status.
// err is non-nil only when the command could not be started.
type runFunc func(ctx context.Context, name string, args ...string) (output []byte, exitCode int, err error)

// CLI invokes SMAPI functions through the smcli binary.
type CLI struct {
	Path string
	Sudo bool

	run runFunc
}

// NewCLI returns a CLI for the smcli binary at path, optionally run
// through sudo.
func NewCLI(path string, sudo bool) *CLI {
	return &CLI{Path: path, Sudo: sudo, run: execRun}
}

// Invoke calls SMAPI function api with args.
//
// A non-zero smcli exit status yields a Result with OverallRC
// OverallSMAPIFailed and the rc/rs parsed from the output. An error is
// returned only when smcli could not be run.
func (c *CLI) Invoke(ctx context.Context, api string, args []string) (Result, error) {
	name := c.Path
	argv := append([]string{api}, args...)
	if c.Sudo {
		name = "sudo"
		argv = append([]string{c.Path}, argv...)
	}

	run := c.run
	if run == nil {
		run = execRun
	}

	out, code, err := run(ctx, name, argv...)
	if err != nil {
		return Result{}, &InvocationError{API: api, Err: err}
	}

	lines := splitLines(out)
	if code == 0 {
		return Result{OverallRC: OverallOK, Response: lines}, nil
	}

	res := Result{OverallRC: OverallSMAPIFailed, RC: code, Response: lines}
	for _, l := range lines {
		if v, ok := codeAfter(l, "Return Code:"); ok {
			res.RC = v
		}
		if v, ok := codeAfter(l, "Reason Code:"); ok {
			res.RS = v
		}
	}
	return res, nil
}

func execRun(ctx context.Context, name string, args ...string) ([]byte, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out, exitErr.ExitCode(), nil
		}
		return out, -1, err
	}
	return out, 0, nil
}

func codeAfter(line, label string) (int, bool) {
	_, rest, found := strings.Cut(line, label)
	if !found {
		return 0, false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, false
	}
	return n, true
}

func splitLines(out []byte) []string {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		if l := strings.TrimRight(sc.Text(), " \t\r"); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
