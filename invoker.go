package csswatch

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// CompilerBinary is the external CSS compiler this tool drives. Only its
// exit code is relied upon; stdout format is its own business.
const CompilerBinary = "lightningcss"

// Outcome classifies a compile attempt.
type Outcome int

const (
	// OutcomeSuccess means the compiler exited zero and wrote the output file.
	OutcomeSuccess Outcome = iota
	// OutcomeFailure means the compiler exited non-zero.
	OutcomeFailure
	// OutcomeNoEntry means no eligible entry file was found to compile.
	OutcomeNoEntry
)

// String returns the log-facing name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeNoEntry:
		return "no entry found"
	}
	return "unknown"
}

// Attempt records one compile invocation. It is produced, logged, and
// discarded; nothing is persisted across attempts.
type Attempt struct {
	EntryFile  string
	OutputFile string
	Duration   time.Duration
	Outcome    Outcome
}

// OutputPath derives the artifact path for an entry file:
// styles.css in /out becomes /out/styles.compiled.css. The suffix guarantees
// the output never matches the entry-file predicate.
func OutputPath(outDir, entry string) string {
	base := strings.TrimSuffix(filepath.Base(entry), filepath.Ext(entry))
	return filepath.Join(outDir, base+ArtifactSuffix)
}

// Invoker runs the compiler subprocess for one entry file at a time and
// reports a status line per attempt.
type Invoker struct {
	// Compiler is the binary to execute; defaults to CompilerBinary.
	Compiler string
	OutDir   string
	Options  CompileOptions
	// Debug echoes the assembled command line before each invocation.
	Debug bool

	Stdout    io.Writer
	Stderr    io.Writer
	UseColors bool
}

// Args assembles the compiler argument list for an entry/output pair. The
// command is always a structured argv handed straight to the process
// launcher; it never round-trips through a shell.
func (inv *Invoker) Args(entry, output string) []string {
	args := []string{"--bundle"}
	if inv.Options.Minify {
		args = append(args, "--minify")
	}
	if inv.Options.SourceMapInline {
		args = append(args, "--sourcemap=inline")
	}
	args = append(args, "--targets", inv.Options.BrowserTargets, entry, "-o", output)
	return args
}

// Invoke compiles entry into the output directory and returns the attempt
// record. The first run is quiet; on a non-zero exit the same command is run
// once more with its diagnostic stream attached so the compiler's own error
// output reaches the user.
func (inv *Invoker) Invoke(ctx context.Context, entry string) Attempt {
	output := OutputPath(inv.OutDir, entry)
	args := inv.Args(entry, output)
	bin := inv.compiler()

	if inv.Debug {
		fmt.Fprintf(inv.Stderr, "%s %s\n", bin, strings.Join(args, " "))
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, bin, args...)
	err := cmd.Run() // stdout/stderr discarded to keep steady-state output quiet
	elapsed := time.Since(start)

	attempt := Attempt{
		EntryFile:  entry,
		OutputFile: output,
		Duration:   elapsed,
		Outcome:    OutcomeSuccess,
	}

	if err != nil {
		attempt.Outcome = OutcomeFailure
		inv.rediagnose(ctx, bin, args)
		fmt.Fprintf(inv.Stderr, "%s %s\n",
			RenderStyle(StyleRed, "compile failed:", inv.UseColors),
			entry)
		return attempt
	}

	fmt.Fprintf(inv.Stdout, "%s %s %s %s\n",
		RenderStyle(StyleCyan, entry, inv.UseColors),
		"→",
		RenderStyle(StyleCyan, output, inv.UseColors),
		RenderStyle(StyleGray, fmt.Sprintf("(%dms)", elapsed.Milliseconds()), inv.UseColors))
	return attempt
}

// rediagnose re-runs the failed command with its output attached. The
// duplicate work buys visibility only on the failure path.
func (inv *Invoker) rediagnose(ctx context.Context, bin string, args []string) {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = inv.Stderr
	cmd.Stderr = inv.Stderr
	_ = cmd.Run()
}

func (inv *Invoker) compiler() string {
	if inv.Compiler != "" {
		return inv.Compiler
	}
	return CompilerBinary
}
