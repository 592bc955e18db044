// Package probe normalizes the two probe-tool output grammars into one
// canonical KEY="VALUE" line stream.
//
// Two tool generations are in the field. The newer one supports an export
// mode whose stdout is already one KEY="VALUE" pair per line; the older one
// prints a single "path: KEY1="VAL1" KEY2="VAL2" ..." line. Which grammar a
// host speaks is detected from how the tool is installed: distributions ship
// the new tool behind a compatibility symlink at the old path, so a symlink
// means export mode and a regular executable means the legacy single-line
// grammar. The heuristic is part of the interop contract; do not replace it
// with version sniffing.
package probe

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"git.home.luguber.info/inful/devplug/internal/errors"
	"git.home.luguber.info/inful/devplug/internal/logfields"
	"git.home.luguber.info/inful/devplug/internal/metrics"
)

// Flavor identifies a probe-tool output grammar.
type Flavor string

const (
	// FlavorExport tools emit one KEY="VALUE" per line when asked for
	// export output; their stdout passes through unchanged.
	FlavorExport Flavor = "export"

	// FlavorSimple tools emit a single "path: KEY="VALUE" ..." line that
	// must be re-tokenized.
	FlavorSimple Flavor = "simple"
)

// Adapter runs the external probe tool against a device node and yields the
// canonical line stream.
type Adapter struct {
	tool   string
	rec    metrics.Recorder
	logger *slog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithRecorder injects a metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(a *Adapter) { a.rec = rec }
}

// WithLogger injects a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) { a.logger = logger }
}

// New creates an Adapter for the probe tool installed at toolPath.
func New(toolPath string, opts ...Option) *Adapter {
	a := &Adapter{
		tool:   toolPath,
		rec:    metrics.NoopRecorder{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Flavor detects the installed tool's output grammar from its install mode:
// symlink means export, regular executable means simple.
func (a *Adapter) Flavor() Flavor {
	fi, err := os.Lstat(a.tool)
	if err == nil && fi.Mode()&os.ModeSymlink != 0 {
		return FlavorExport
	}
	return FlavorSimple
}

// Probe runs the tool against the device node at path and returns the
// canonical KEY="VALUE" lines. A non-zero tool exit propagates as a
// KindProbe error carrying the tool's exit code verbatim.
func (a *Adapter) Probe(ctx context.Context, path string) ([]string, error) {
	flavor := a.Flavor()

	var cmd *exec.Cmd
	switch flavor {
	case FlavorExport:
		cmd = exec.CommandContext(ctx, a.tool, "--export", path)
	default:
		cmd = exec.CommandContext(ctx, a.tool, path)
	}

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		a.rec.IncProbeRun(string(flavor), metrics.ResultFailure)
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			return nil, errors.ProbeExit(exitErr.ExitCode(), err)
		}
		return nil, errors.ProbeFailed(err)
	}

	var lines []string
	switch flavor {
	case FlavorExport:
		for _, line := range strings.Split(stdout.String(), "\n") {
			if line != "" {
				lines = append(lines, line)
			}
		}
	default:
		var rest string
		lines, rest = parseSimple(path, strings.TrimRight(stdout.String(), "\n"))
		if rest != "" {
			err := errors.MalformedInput(rest)
			a.logger.Debug("dropped tokens that do not match the output grammar",
				logfields.Flavor(string(flavor)), logfields.Error(err))
		}
	}

	a.rec.IncProbeRun(string(flavor), metrics.ResultSuccess)
	a.logger.Debug("probed device node",
		logfields.Flavor(string(flavor)), logfields.Count(len(lines)))
	return lines, nil
}
