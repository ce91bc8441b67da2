package gnuplot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Process is a running gnuplot program reading commands from a pipe.
type Process struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
}

// StartProcess launches opts.Command with a command pipe on its standard
// input. gnuplot's own output goes to the caller's stdout and stderr.
// Cancelling ctx kills the program.
func StartProcess(ctx context.Context, opts Options) (*Process, error) {
	var args []string
	if opts.ShouldPersist() {
		args = append(args, "-persist")
	}
	cmd := exec.CommandContext(ctx, opts.Command, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("unable to open gnuplot command pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("unable to start %s: %w", opts.Command, err)
	}
	tracer().Infof("started %s %s (pid %d)", opts.Command, strings.Join(args, " "), cmd.Process.Pid)
	return &Process{cmd: cmd, stdin: stdin}, nil
}

// Write sends raw bytes to gnuplot.
func (p *Process) Write(b []byte) (int, error) {
	return p.stdin.Write(b)
}

// Command sends one command line to gnuplot.
func (p *Process) Command(line string) error {
	_, err := io.WriteString(p.stdin, line+"\n")
	return err
}

// Close closes the command pipe and waits for gnuplot to exit.
func (p *Process) Close() error {
	if err := p.stdin.Close(); err != nil {
		return err
	}
	return p.cmd.Wait()
}

// ProbePersist reports whether command accepts the -persist flag. The
// program is started once with an empty command stream; a complaint about
// -persist, or failing to run at all, counts as not supported.
func ProbePersist(ctx context.Context, command string) bool {
	cmd := exec.CommandContext(ctx, command, "-persist")
	cmd.Stdin = strings.NewReader("")
	out, err := cmd.CombinedOutput()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		tracer().Infof("%s -persist could not be probed: %v", command, err)
		return false
	}
	ok := !bytes.Contains(out, []byte("-persist"))
	tracer().Infof("%s recognizes -persist: %v", command, ok)
	return ok
}
