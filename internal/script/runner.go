// Package script runs the external analysis collaborators. Volume analysis
// and portfolio management live in helper scripts outside this process; the
// runner shells out and returns their stdout verbatim.
package script

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/finquery/finquery/internal/config"
	"github.com/finquery/finquery/internal/core"
	"github.com/finquery/finquery/internal/metrics"
	"go.uber.org/zap"
)

// Runner executes configured script commands with a per-script timeout.
type Runner struct {
	cfg config.ScriptsConfig
	log *zap.Logger
	met *metrics.Registry
}

// NewRunner creates a script runner. Logger and metrics may be nil.
func NewRunner(cfg config.ScriptsConfig, log *zap.Logger, met *metrics.Registry) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{cfg: cfg, log: log, met: met}
}

// Analyze runs the volume-analysis script for one symbol.
func (r *Runner) Analyze(ctx context.Context, args ...string) (string, error) {
	return r.run(ctx, "analyze", r.cfg.Analyze, args)
}

// Portfolio runs the portfolio script with a subcommand and its flags.
func (r *Runner) Portfolio(ctx context.Context, args ...string) (string, error) {
	return r.run(ctx, "portfolio", r.cfg.Portfolio, args)
}

func (r *Runner) run(ctx context.Context, name string, cfg config.ScriptConfig, extra []string) (string, error) {
	if len(cfg.Command) == 0 {
		r.record(name, "misconfigured")
		return "", core.WrapError(core.ErrScriptFailed, errors.New("no command configured"))
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	argv := append(append([]string{}, cfg.Command[1:]...), extra...)
	cmd := exec.CommandContext(ctx, cfg.Command[0], argv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	r.log.Debug("script finished",
		zap.String("script", name),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err))

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			r.record(name, "timeout")
			return "", core.WrapError(core.ErrScriptTimeout, ctx.Err())
		}
		r.record(name, "error")
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", core.WrapError(core.ErrScriptFailed, errors.New(msg))
	}

	r.record(name, "ok")
	return stdout.String(), nil
}

func (r *Runner) record(name, status string) {
	if r.met != nil {
		r.met.RecordScriptCall(name, status)
	}
}
