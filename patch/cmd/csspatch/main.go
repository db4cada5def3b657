package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	flags "github.com/jessevdk/go-flags"
	patchservice "github.com/viant/csspatch/patch/service"
)

// Options defines CLI flags for the CSS placeholder patcher. All flags are optional;
// with none, the compiled-in table runs against the working directory.
type Options struct {
	Base      string   `short:"b" long:"base" description:"AFS base URL that table paths resolve against (default: working directory)"`
	Table     string   `short:"t" long:"table" description:"YAML patch table replacing the compiled-in one"`
	Paths     []string `short:"p" long:"path" description:"restrict the run to this table path (repeatable)"`
	DryRun    bool     `short:"n" long:"dry-run" description:"show what would change without writing files"`
	DiffBytes int      `long:"diff-bytes" description:"cap on the dry-run diff preview per file"`
	Verbose   bool     `short:"v" long:"verbose" description:"log rule application details"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the patcher and returns the process exit code. Per-entry
// failures are reported on stdout; once the table is loaded the run always exits 0.
func run(args []string, stdout, stderr io.Writer) int {
	var opts Options
	if _, err := flags.NewParser(&opts, flags.Default).ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return 0
		}
		return 2
	}

	svc := patchservice.NewService(&patchservice.Config{
		BaseURL:   strings.TrimRight(strings.TrimSpace(opts.Base), "/"),
		DryRun:    opts.DryRun,
		DiffBytes: opts.DiffBytes,
		Verbose:   opts.Verbose,
	})
	svc.SetOutput(stdout)

	ctx := context.Background()
	if v := strings.TrimSpace(opts.Table); v != "" {
		spec, err := patchservice.LoadSpec(ctx, svc.Storage(), tableURL(v))
		if err != nil {
			fmt.Fprintf(stderr, "failed to load patch table: %v\n", err)
			return 1
		}
		svc.SetSpec(spec)
	}

	if _, err := svc.RunTool(ctx, &patchservice.RunInput{Paths: opts.Paths}); err != nil {
		fmt.Fprintln(stderr, err)
	}
	return 0
}

func tableURL(location string) string {
	if strings.Contains(location, "://") {
		return location
	}
	if abs, err := filepath.Abs(location); err == nil {
		return "file://" + filepath.ToSlash(abs)
	}
	return location
}
