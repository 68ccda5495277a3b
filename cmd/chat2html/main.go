package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-chat2html/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// commands lists the subcommand names recognized in args[1].
var commands = map[string]bool{
	"convert": true,
	"version": true,
	"help":    true,
}

// isCommand reports whether s names a subcommand.
func isCommand(s string) bool {
	return commands[s]
}

// looksLikeInput reports whether s is meant as an input path rather than a
// mistyped command: a .json file, anything with a path separator, or an
// existing directory.
func looksLikeInput(s string) bool {
	if strings.EqualFold(filepath.Ext(s), logExtension) || fileutil.IsFilePath(s) {
		return true
	}
	info, err := os.Stat(s)
	return err == nil && info.IsDir()
}

// runMain dispatches args to a command and returns the process exit code.
// "convert" is the default command, so "chat2html logs/" works.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) {
		if !strings.HasPrefix(cmd, "-") && !looksLikeInput(cmd) {
			fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
			printUsage(env.Stderr)
			return ExitUsage
		}
		cmd, rest = "convert", args[1:]
	}

	switch cmd {
	case "version":
		fmt.Fprintf(env.Stdout, "go-chat2html %s\n", Version)
		return ExitSuccess
	case "help":
		runHelp(rest, env)
		return ExitSuccess
	default:
		ctx, stop := notifyContext(context.Background())
		defer stop()
		return runConvertCmd(ctx, rest, env)
	}
}

// runConvertCmd parses convert flags, runs the conversion and maps the
// outcome to an exit code.
func runConvertCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		// pflag already printed the error and usage
		return ExitUsage
	}

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}
