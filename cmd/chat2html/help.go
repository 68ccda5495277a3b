package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chat2html <command> [flags] [args]")
	fmt.Fprintln(w, "       chat2html <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert conversation logs to HTML (default)")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'chat2html help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chat2html convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert JSON conversation logs to HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .json file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  A file is written beside itself as <name>.html. A directory is mirrored")
	fmt.Fprintln(w, "  into <input>_HTML_EXPORT/, keeping sub-directories.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output directory, or .html file for a single input")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (.yaml, .yml, .toml)")
	fmt.Fprintln(w, "      --watch               Re-convert when input files change")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Image:")
	fmt.Fprintln(w, "      --image <path>        Character image PNG")
	fmt.Fprintln(w, "                            Default: first *.png beside the input, then in cwd")
	fmt.Fprintln(w, "      --no-image            Do not embed a character image")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --renderer <s>        Turn text renderer: inline (default), markdown")
	fmt.Fprintln(w, "      --highlight-style <s> Code highlight style for the markdown renderer")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           CSS style name (default, dark) or file path")
	fmt.Fprintln(w, "      --asset-path <path>   Custom asset directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --pdf                 Also write <name>.pdf beside each HTML file")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timing and debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  CHAT2HTML_CONFIG, CHAT2HTML_STYLE, CHAT2HTML_TIMEOUT, CHAT2HTML_INPUT_DIR,")
	fmt.Fprintln(w, "  CHAT2HTML_OUTPUT_DIR, CHAT2HTML_LOG_LEVEL")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: chat2html version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: chat2html help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
