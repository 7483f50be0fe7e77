// Package feedback turns client outcomes into user-facing messages and
// gates destructive operations behind explicit confirmation. Every resource
// call site routes both its success and failure branch through here, so no
// outcome is silently swallowed.
package feedback

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/api"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/forms"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/session"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/logging"
)

// Coordinator reads confirmations from in and writes outcomes to out.
type Coordinator struct {
	in     *bufio.Reader
	out    io.Writer
	logger logging.Logger
}

func NewCoordinator(in io.Reader, out io.Writer, logger logging.Logger) *Coordinator {
	return &Coordinator{in: bufio.NewReader(in), out: out, logger: logger}
}

// ConfirmDestructive asks the user to confirm an irreversible action and
// blocks until an answer arrives. Anything but an explicit yes is a decline;
// EOF declines too. The caller must not issue the destructive call on false.
func (c *Coordinator) ConfirmDestructive(message string) (bool, error) {
	if _, err := fmt.Fprintf(c.out, "%s [y/N]: ", message); err != nil {
		return false, err
	}

	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// ReportSuccess surfaces a terminal success outcome.
func (c *Coordinator) ReportSuccess(ctx context.Context, message string) {
	fmt.Fprintln(c.out, message)
	c.logger.Info(ctx, message)
}

// ReportFailure surfaces a terminal failure outcome, preferring a
// server-supplied detail string over a generic one.
func (c *Coordinator) ReportFailure(ctx context.Context, err error) {
	msg := FailureMessage(err)
	fmt.Fprintln(c.out, "Error: "+msg)
	c.logger.Error(ctx, "operation failed", "error", err)
}

// FailureMessage maps the error taxonomy to user-facing text.
func FailureMessage(err error) string {
	var rejected *api.RejectedError
	if errors.As(err, &rejected) {
		return rejected.Message()
	}

	var invalid *forms.ValidationError
	if errors.As(err, &invalid) {
		return invalid.Error()
	}

	var status *api.UnexpectedStatusError
	if errors.As(err, &status) {
		return fmt.Sprintf("server answered with status %d", status.Status)
	}

	var fetch *api.FetchError
	if errors.As(err, &fetch) {
		return "network failure: " + fetch.Err.Error()
	}

	switch {
	case errors.Is(err, session.ErrNotAuthenticated):
		return "not logged in; run 'login' first"
	case errors.Is(err, api.ErrInvalidCredentials):
		return "invalid username or password"
	default:
		return err.Error()
	}
}
