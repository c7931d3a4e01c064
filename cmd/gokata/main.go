package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"

	"gokata/internal/arrays"
	"gokata/internal/bits"
	"gokata/internal/catalog"
	"gokata/internal/diag"
	"gokata/internal/frontend"
	"gokata/internal/input"
	"gokata/internal/recursion"
	"gokata/internal/runner"
	"gokata/internal/validate"
)

var runSnippet = runner.Run

// diagOutput receives diagnostics from value parsing and lint.
var diagOutput io.Writer = os.Stderr

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		printGlobalUsage()
		return fmt.Errorf("missing command")
	}

	switch args[0] {
	case "maxand":
		return runMaxAnd(args[1:])
	case "binary":
		return runBinary(args[1:])
	case "josephus":
		return runJosephus(args[1:])
	case "arrays":
		return runArrays(args[1:])
	case "list":
		return runList(args[1:])
	case "lint":
		return runLint(args[1:])
	case "run":
		return runExercise(args[1:])
	default:
		printGlobalUsage()
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func printGlobalUsage() {
	fmt.Fprintf(os.Stderr, "gokata: small exercises and the tools that keep them honest\n\n")
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  gokata <command> [options]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  maxand     Maximum bitwise AND over any pair of values\n")
	fmt.Fprintf(os.Stderr, "  binary     Decimal to binary conversion\n")
	fmt.Fprintf(os.Stderr, "  josephus   Survivor index of the Josephus circle\n")
	fmt.Fprintf(os.Stderr, "  arrays     Array and slice walkthrough\n")
	fmt.Fprintf(os.Stderr, "  list       List catalogued exercise snippets\n")
	fmt.Fprintf(os.Stderr, "  lint       Check that exercise snippets are standalone and single-threaded\n")
	fmt.Fprintf(os.Stderr, "  run        Run an exercise snippet and compare it with its transcript\n")
}

func runMaxAnd(args []string) error {
	fs := flag.NewFlagSet("maxand", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	file := fs.String("f", "", "read values from file (- for stdin) instead of arguments")
	verify := fs.Bool("verify", false, "cross-check the result against the pairwise search")
	strict := fs.Bool("strict", false, "fail when fewer than two values are given")
	output := fs.String("o", "", "output file path (stdout when omitted)")
	diagFormat := fs.String("diag-format", "text", "diagnostic output format (text|json)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	name, src, err := valueSource(*file, fs.Args())
	if err != nil {
		return err
	}
	reporter := diag.NewReporter(diagOutput, *diagFormat)
	values, err := input.ParseValues(name, src, reporter)
	if err != nil {
		return err
	}

	var result uint32
	if *strict {
		result, err = bits.MaxPairAndChecked(values)
		if err != nil {
			return err
		}
	} else {
		if len(values) < 2 {
			reporter.Warningf("fewer than two values; the result is not a real pair")
		}
		result = bits.MaxPairAnd(values)
	}
	if *verify {
		if want := bits.PairwiseMaxAnd(values); want != result {
			return fmt.Errorf("verification failed: greedy=%d pairwise=%d", result, want)
		}
	}

	return withOutputWriter(*output, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Maximum AND value: %d\n", result)
		return err
	})
}

func valueSource(file string, args []string) (string, string, error) {
	switch file {
	case "":
		if len(args) == 0 {
			return "", "", fmt.Errorf("maxand requires values as arguments or -f")
		}
		return "<args>", strings.Join(args, " "), nil
	case "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	default:
		if len(args) > 0 {
			return "", "", fmt.Errorf("maxand takes values from -f or arguments, not both")
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return "", "", fmt.Errorf("read values: %w", err)
		}
		return file, string(data), nil
	}
}

func runBinary(args []string) error {
	fs := flag.NewFlagSet("binary", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	output := fs.String("o", "", "output file path (stdout when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("binary requires at least one integer")
	}

	nums := make([]int, 0, fs.NArg())
	for _, arg := range fs.Args() {
		n, err := parseInt(arg)
		if err != nil {
			return err
		}
		nums = append(nums, n)
	}
	return withOutputWriter(*output, func(w io.Writer) error {
		for _, n := range nums {
			if _, err := fmt.Fprintf(w, "Binary representation of %d is: %s\n", n, recursion.DecimalToBinary(n)); err != nil {
				return err
			}
		}
		return nil
	})
}

func runJosephus(args []string) error {
	fs := flag.NewFlagSet("josephus", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	n := fs.Int("n", 0, "number of people in the circle")
	k := fs.Int("k", 0, "step size")
	output := fs.String("o", "", "output file path (stdout when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	survivor, err := recursion.Josephus(*n, *k)
	if err != nil {
		return err
	}
	return withOutputWriter(*output, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "The last person at index: %d\n", survivor)
		return err
	})
}

func runArrays(args []string) error {
	fs := flag.NewFlagSet("arrays", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	visits := fs.Int("visits", 1, "number of times to run the walkthrough with one shared tally")
	output := fs.String("o", "", "output file path (stdout when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *visits < 1 {
		return fmt.Errorf("arrays requires -visits >= 1 (got %d)", *visits)
	}

	var tally arrays.Tally
	return withOutputWriter(*output, func(w io.Writer) error {
		for i := 0; i < *visits; i++ {
			if err := arrays.Walkthrough(w, &tally); err != nil {
				return err
			}
		}
		return nil
	})
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	catalogPath := fs.String("catalog", catalog.DefaultPath, "path to the exercise catalog")
	output := fs.String("o", "", "output file path (stdout when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cat, err := catalog.Load(*catalogPath)
	if err != nil {
		return err
	}
	entries, err := cat.Select(nil)
	if err != nil {
		return err
	}
	return withOutputWriter(*output, func(w io.Writer) error {
		for _, e := range entries {
			topic := e.Topic
			if topic == "" {
				topic = "-"
			}
			if _, err := fmt.Fprintf(w, "%-14s %-18s %s\n", e.Name, topic, e.Summary); err != nil {
				return err
			}
		}
		return nil
	})
}

func runLint(args []string) error {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	catalogPath := fs.String("catalog", catalog.DefaultPath, "path to the exercise catalog")
	diagFormat := fs.String("diag-format", "text", "diagnostic output format (text|json)")
	output := fs.String("o", "", "output file path for the per-exercise status (stdout when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cat, err := catalog.Load(*catalogPath)
	if err != nil {
		return err
	}
	entries, err := cat.Select(fs.Args())
	if err != nil {
		return err
	}

	var failed []string
	err = withOutputWriter(*output, func(w io.Writer) error {
		for _, e := range entries {
			status := "ok"
			if err := lintEntry(e, *diagFormat); err != nil {
				status = "FAIL"
				failed = append(failed, e.Name)
			}
			if _, err := fmt.Fprintf(w, "%-4s %s\n", status, e.Name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if len(failed) > 0 {
		return fmt.Errorf("lint failed for %s", strings.Join(failed, ", "))
	}
	return nil
}

func lintEntry(e catalog.Entry, diagFormat string) error {
	result, err := prepareProgram([]string{e.Source()}, diagFormat)
	if err != nil {
		return err
	}
	summary, err := validate.CheckProgram(result.program, result.ssaPkgs, result.pkgs, result.reporter)
	if err != nil {
		return err
	}
	recursive := len(summary.Recursive) > 0
	switch {
	case e.Recursive && !recursive:
		result.reporter.Warningf("%s: catalog marks the exercise recursive but no recursive function was found", e.Name)
	case !e.Recursive && recursive:
		result.reporter.Warningf("%s: recursive function(s) %s found but the catalog does not mark the exercise recursive", e.Name, strings.Join(summary.Recursive, ", "))
	}
	return nil
}

func runExercise(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	catalogPath := fs.String("catalog", catalog.DefaultPath, "path to the exercise catalog")
	goBin := fs.String("go", "", "path to the go binary (optional, falls back to PATH lookup)")
	expectPath := fs.String("expect", "", "path to the expected transcript (defaults to expected.out next to the snippet)")
	extraPath := fs.String("path", "", "directories to prepend to PATH for the snippet (list-separator separated)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("run requires exactly one exercise name")
	}

	cat, err := catalog.Load(*catalogPath)
	if err != nil {
		return err
	}
	entry, ok := cat.Lookup(fs.Arg(0))
	if !ok {
		return fmt.Errorf("unknown exercise %q", fs.Arg(0))
	}

	if *expectPath == "" {
		if candidate := entry.ExpectPath(); fileExists(candidate) {
			*expectPath = candidate
		}
	}

	_, err = runSnippet(context.Background(), runner.Options{
		Dir:        entry.Dir,
		Args:       entry.Args,
		GoBinary:   *goBin,
		ExpectPath: *expectPath,
		ExtraPath:  filepath.SplitList(*extraPath),
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	})
	return err
}

type frontendResult struct {
	reporter *diag.Reporter
	program  *ssa.Program
	ssaPkgs  []*ssa.Package
	pkgs     []*packages.Package
}

func prepareProgram(sources []string, diagFormat string) (*frontendResult, error) {
	reporter := diag.NewReporter(diagOutput, diagFormat)
	cfg := frontend.LoadConfig{Sources: sources}
	pkgs, _, err := frontend.LoadPackages(cfg, reporter)
	if err != nil {
		return nil, err
	}
	if reporter.HasErrors() {
		return nil, fmt.Errorf("errors reported while loading packages")
	}
	prog, ssaPkgs, err := frontend.BuildSSA(pkgs, reporter)
	if err != nil {
		return nil, err
	}
	if reporter.HasErrors() {
		return nil, fmt.Errorf("errors reported during SSA construction")
	}
	return &frontendResult{
		reporter: reporter,
		program:  prog,
		ssaPkgs:  ssaPkgs,
		pkgs:     pkgs,
	}, nil
}

func parseInt(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", raw)
	}
	return n, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func withOutputWriter(path string, fn func(io.Writer) error) error {
	w, cleanup, err := outputWriter(path)
	if err != nil {
		return err
	}
	if cleanup == nil {
		return fn(w)
	}
	err = fn(w)
	if closeErr := cleanup(); err == nil && closeErr != nil {
		err = closeErr
	}
	return err
}

func outputWriter(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
