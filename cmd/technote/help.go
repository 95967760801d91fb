package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: technote <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  validate   Check technote.toml and the root content file")
	fmt.Fprintln(w, "  metadata   Print the resolved metadata as JSON or YAML")
	fmt.Fprintln(w, "  tags       Print the citation and Open Graph head tags")
	fmt.Fprintln(w, "  settings   Print the document build settings")
	fmt.Fprintln(w, "  inject     Add head tags and the status notice to an HTML page")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'technote help <command>' for details on a specific command.")
}

// printCommonFlags prints the flags every project command accepts.
func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <path>       Path to technote.toml (default: <dir>/technote.toml)")
	fmt.Fprintln(w, "      --env-file <path>     Dotenv file with GITHUB_REF_NAME, GITHUB_REF_TYPE")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with styles/ and templates/ overrides")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
}

// printCommandUsage prints usage for command.
func printCommandUsage(w io.Writer, command string) {
	switch command {
	case cmdValidate:
		fmt.Fprintln(w, "Usage: technote validate [dir] [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Parse and validate technote.toml, then look for index.rst, index.md")
		fmt.Fprintln(w, "or index.ipynb. Every problem in technote.toml is reported at once.")
	case cmdMetadata:
		fmt.Fprintln(w, "Usage: technote metadata [dir] [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Print the metadata after reading the title and abstract from content.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Output:")
		fmt.Fprintln(w, "  -f, --format <s>          Output format: json, yaml (default: json)")
		fmt.Fprintln(w, "  -o, --output <path>       Write to a file instead of stdout")
		fmt.Fprintln(w, "      --no-discover         Use technote.toml only")
	case cmdTags:
		fmt.Fprintln(w, "Usage: technote tags [dir] [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Print Highwire Press, Open Graph and generator meta tags.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Output:")
		fmt.Fprintln(w, "  -o, --output <path>       Write to a file instead of stdout")
		fmt.Fprintln(w, "      --no-discover         Use technote.toml only")
	case cmdSettings:
		fmt.Fprintln(w, "Usage: technote settings [dir] [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Print extensions, intersphinx, linkcheck and nitpick settings.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Output:")
		fmt.Fprintln(w, "  -f, --format <s>          Output format: json, yaml (default: json)")
		fmt.Fprintln(w, "  -o, --output <path>       Write to a file instead of stdout")
	case cmdInject:
		fmt.Fprintln(w, "Usage: technote inject <page.html> [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Read the title and abstract from a rendered page, then add the head")
		fmt.Fprintln(w, "tags and, for draft or deprecated technotes, the status notice.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Output:")
		fmt.Fprintln(w, "  -d, --dir <path>          Technote directory (default: .)")
		fmt.Fprintln(w, "  -o, --output <path>       Write to a file instead of stdout")
	default:
		return
	}
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case cmdValidate, cmdMetadata, cmdTags, cmdSettings, cmdInject:
		printCommandUsage(env.Stdout, args[0])
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: technote version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: technote help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
