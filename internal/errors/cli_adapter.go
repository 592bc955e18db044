package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
)

// CLIErrorAdapter handles error presentation and exit code determination for
// the helper binary.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger}
}

// ExitCodeFor determines the process exit code for an error. The probe
// tool's own exit code is forwarded verbatim; every other failure maps to 1.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var he *HelperError
	if stderrors.As(err, &he) && he.Kind == KindProbe && he.ExitCode != 0 {
		return he.ExitCode
	}
	return 1
}

// FormatError formats an error for user-facing display on stderr.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	var he *HelperError
	if !stderrors.As(err, &he) {
		return fmt.Sprintf("Error: %v", err)
	}
	if a.verbose {
		msg := he.Error()
		for k, v := range he.Context {
			msg += fmt.Sprintf(" [%s=%v]", k, v)
		}
		return msg
	}
	return fmt.Sprintf("Error: %s", he.Message)
}

// LogError reports err at the severity its kind calls for: NotFound is an
// expected branch and logged at debug, everything else at error.
func (a *CLIErrorAdapter) LogError(err error) {
	if err == nil {
		return
	}
	if IsNotFound(err) {
		a.logger.Debug("lookup missed", "error", err)
		return
	}
	a.logger.Error("operation failed", "error", err)
}
