package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// Output formats for the metadata and settings commands.
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	envFile   string
	assetPath string
	quiet     bool
	verbose   bool
}

// commandFlags holds the flags of one command invocation.
type commandFlags struct {
	common     commonFlags
	format     string
	output     string
	dir        string
	noDiscover bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "path to technote.toml")
	fs.StringVar(&f.envFile, "env-file", "", "read GITHUB_REF_NAME and friends from a dotenv file")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding the status styles and templates")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addOutputFlag adds -o/--output.
func addOutputFlag(fs *flag.FlagSet, f *commandFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "write to a file instead of stdout")
}

// addFormatFlag adds --format.
func addFormatFlag(fs *flag.FlagSet, f *commandFlags) {
	fs.StringVarP(&f.format, "format", "f", formatJSON, "output format: json, yaml")
}

// addDiscoverFlag adds --no-discover.
func addDiscoverFlag(fs *flag.FlagSet, f *commandFlags) {
	fs.BoolVar(&f.noDiscover, "no-discover", false, "do not read the title and abstract from content")
}

// buildFlagSet creates the FlagSet for command.
func buildFlagSet(command string, f *commandFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	addCommonFlags(fs, &f.common)

	switch command {
	case cmdMetadata:
		addFormatFlag(fs, f)
		addOutputFlag(fs, f)
		addDiscoverFlag(fs, f)
	case cmdSettings:
		addFormatFlag(fs, f)
		addOutputFlag(fs, f)
	case cmdTags:
		addOutputFlag(fs, f)
		addDiscoverFlag(fs, f)
	case cmdInject:
		addOutputFlag(fs, f)
		fs.StringVarP(&f.dir, "dir", "d", ".", "technote directory")
	}
	return fs
}

// parseCommandFlags parses the flags of command and returns positional args.
func parseCommandFlags(command string, args []string, stderr io.Writer) (*commandFlags, []string, error) {
	f := &commandFlags{}
	fs := buildFlagSet(command, f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printCommandUsage(stderr, command) }

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}
	if f.format != "" && f.format != formatJSON && f.format != formatYAML {
		return nil, nil, fmt.Errorf("%w: %q (use json or yaml)", ErrUnknownFormat, f.format)
	}
	return f, fs.Args(), nil
}
