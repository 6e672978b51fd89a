package csswatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/yacobolo/csswatch/internal/watch"
)

// Orchestrator runs the compile-on-change pipeline: one unconditional
// initial compile, then, in watch mode, a loop feeding backend events into
// the coordinator until a terminating signal arrives.
type Orchestrator struct {
	// Dir is the watched working directory; fixed for the whole run.
	Dir string
	// OutDir receives compiled artifacts; it must exist and be writable.
	OutDir  string
	Options CompileOptions
	// Watch keeps the process alive consuming change events after the
	// initial compile.
	Watch bool
	// Backend forces a specific watch backend by name; empty selects
	// automatically.
	Backend      string
	Settle       time.Duration
	PollInterval time.Duration

	// Compiler overrides the compiler binary; defaults to CompilerBinary.
	Compiler string
	// Debug echoes each assembled compiler command line.
	Debug bool
	// Verbose logs backend selection, events, and the entry's imports.
	Verbose bool

	Stdout    io.Writer
	Stderr    io.Writer
	UseColors bool
}

// Run executes the pipeline until done (non-watch mode) or interrupted.
// A nil error means exit status 0, including the clean-interrupt path.
func (o *Orchestrator) Run(ctx context.Context) error {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}

	bin := o.Compiler
	if bin == "" {
		bin = CompilerBinary
	}
	if _, err := exec.LookPath(bin); err != nil {
		return fmt.Errorf("required compiler %q not found in PATH", bin)
	}
	if err := validateOutDir(o.OutDir); err != nil {
		return err
	}

	filter := watch.NewFilter(o.Dir)
	resolver := &Resolver{Dir: o.Dir, Ignore: filter.Ignored}
	invoker := &Invoker{
		Compiler:  bin,
		OutDir:    o.OutDir,
		Options:   o.Options,
		Debug:     o.Debug,
		Stdout:    o.Stdout,
		Stderr:    o.Stderr,
		UseColors: o.UseColors,
	}
	coordinator := NewCoordinator(resolver, invoker, o.Stderr)

	// Initial attempt, unhinted
	attempt, _ := coordinator.Trigger(ctx, "")
	o.reportImports(attempt)

	if !o.Watch {
		if attempt.Outcome == OutcomeNoEntry {
			return ErrNoEntry
		}
		return nil
	}

	return o.watchLoop(ctx, coordinator, filter)
}

// watchLoop selects a backend and pumps its events through the coordinator
// until a terminating signal cancels the context. Backend teardown runs on
// every exit path.
func (o *Orchestrator) watchLoop(ctx context.Context, coordinator *Coordinator, filter *watch.Filter) error {
	ctx, stop := signal.NotifyContext(ctx,
		os.Interrupt, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
	defer stop()

	backend, err := watch.Select(watch.Config{
		Dir:          o.Dir,
		Settle:       o.Settle,
		PollInterval: o.PollInterval,
		Filter:       filter,
		Force:        o.Backend,
		Logf:         o.warnf,
	})
	if err != nil {
		return err
	}
	defer backend.Close()

	fmt.Fprintf(o.Stdout, "watching %s with %s backend\n",
		RenderStyle(StyleCyan, o.Dir, o.UseColors),
		RenderStyle(StyleCyan, backend.Name(), o.UseColors))

	for {
		event, err := backend.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				// Clean interrupt
				return nil
			}
			o.warnf("watch backend %s: %v", backend.Name(), err)
			return err
		}
		if o.Verbose {
			fmt.Fprintf(o.Stdout, "%s %s\n",
				RenderStyle(StyleGray, event.Kind.String()+":", o.UseColors),
				event.Path)
		}
		attempt, ran := coordinator.Trigger(ctx, event.Path)
		if ran {
			o.reportImports(attempt)
		}
	}
}

// reportImports logs the entry file's @import targets after a successful
// compile when verbose output is on.
func (o *Orchestrator) reportImports(attempt Attempt) {
	if !o.Verbose || attempt.Outcome != OutcomeSuccess {
		return
	}
	imports, err := ImportedPartials(attempt.EntryFile)
	if err != nil || len(imports) == 0 {
		return
	}
	fmt.Fprintf(o.Stdout, "%s %s\n",
		RenderStyle(StyleGray, fmt.Sprintf("%s imports:", filepath.Base(attempt.EntryFile)), o.UseColors),
		strings.Join(imports, ", "))
}

func (o *Orchestrator) warnf(format string, args ...any) {
	fmt.Fprintf(o.Stderr, "%s %s\n",
		RenderStyle(StyleYellow, "warning:", o.UseColors),
		fmt.Sprintf(format, args...))
}

// validateOutDir fails fast when the output directory is missing or not
// writable; both are fatal startup conditions.
func validateOutDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("output directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output directory %s is not a directory", dir)
	}
	probe, err := os.CreateTemp(dir, ".csswatch-*")
	if err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	probe.Close()
	if err := os.Remove(probe.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("output directory %s: %w", dir, err)
	}
	return nil
}
