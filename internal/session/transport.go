package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/execabs"
)

// sshBinary is a package variable so tests can point the transport at a
// stub executable.
var sshBinary = "ssh"

// Channel is one open ssh connection running a one-shot remote shell. The
// write side feeds the bootstrap script to the remote interpreter; the read
// side carries the watch-log lines the remote agent streams back.
type Channel struct {
	cmd    *execabs.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader
}

// Open starts the ssh subprocess with the profile's arguments plus a
// trailing "sh", wiring up the bidirectional pipe. The remote shell reads
// its program from stdin, so no remote-side installation is needed before
// the first connection.
func Open(ctx context.Context, sshArgs []string) (*Channel, error) {
	args := make([]string, 0, len(sshArgs)+1)
	args = append(args, sshArgs...)
	args = append(args, "sh")

	cmd := execabs.CommandContext(ctx, sshBinary, args...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("open stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("open stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", sshBinary, err)
	}

	return &Channel{
		cmd:    cmd,
		stdin:  stdin,
		stdout: bufio.NewReader(stdout),
	}, nil
}

// Send writes the rendered bootstrap script to the remote interpreter.
func (c *Channel) Send(script string) error {
	if _, err := io.WriteString(c.stdin, script); err != nil {
		return fmt.Errorf("send bootstrap script: %w", err)
	}
	return nil
}

// CloseWrite closes the write side of the channel, signalling EOF to the
// remote interpreter so it begins executing the script. Reads stay open.
func (c *Channel) CloseWrite() error {
	return c.stdin.Close()
}

// ReadLine returns the next newline-terminated line from the remote agent,
// without the trailing newline. It returns io.EOF once the connection
// closes and no partial data remains.
func (c *Channel) ReadLine() (string, error) {
	line, err := c.stdout.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			// A partial final line still counts as a record.
			return line, nil
		}
		return "", err
	}
	return line[:len(line)-1], nil
}

// Close tears down the subprocess. Safe to call after the process has
// already exited.
func (c *Channel) Close() error {
	_ = c.stdin.Close()
	if c.cmd.Process != nil {
		_ = c.cmd.Process.Kill()
	}
	return c.cmd.Wait()
}
