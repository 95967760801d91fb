package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	technote "github.com/alnah/go-technote"
	"github.com/alnah/go-technote/internal/fileutil"
	"github.com/alnah/go-technote/internal/hints"
	"github.com/alnah/go-technote/internal/yamlutil"
)

// Command names.
const (
	cmdValidate = "validate"
	cmdMetadata = "metadata"
	cmdTags     = "tags"
	cmdSettings = "settings"
	cmdInject   = "inject"
	cmdVersion  = "version"
	cmdHelp     = "help"
)

// Sentinel errors for CLI operations.
var (
	ErrInvalidFlags   = errors.New("invalid flags")
	ErrUnknownFormat  = errors.New("unknown output format")
	ErrUnknownCommand = errors.New("unknown command")
	ErrReadHTML       = errors.New("failed to read HTML file")
	ErrReadEnvFile    = errors.New("failed to read env file")
	ErrWriteOutput    = errors.New("failed to write output")
)

// filePermissions is rw-r--r--: published pages are world-readable.
const filePermissions = 0o644

// runMain dispatches args to a command and returns the process exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	command, rest := args[0], args[1:]
	switch command {
	case cmdHelp, "-h", "--help":
		return runHelp(rest, env)
	case cmdVersion, "--version":
		fmt.Fprintf(env.Stdout, "technote %s\n", Version)
		return ExitSuccess
	case cmdValidate, cmdMetadata, cmdTags, cmdSettings, cmdInject:
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", command)
		printUsage(env.Stderr)
		return exitCodeFor(ErrUnknownCommand)
	}

	flags, positional, err := parseCommandFlags(command, rest, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		printError(env.Stderr, err)
		return exitCodeFor(err)
	}

	logger := newLogger(env.Stderr, &flags.common)
	if err := runCommand(ctx, command, positional, flags, logger, env); err != nil {
		printError(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

func runCommand(ctx context.Context, command string, args []string, flags *commandFlags, logger *log.Logger, env *Environment) error {
	switch command {
	case cmdValidate:
		return runValidate(args, flags, logger, env)
	case cmdMetadata:
		return runMetadata(ctx, args, flags, logger, env)
	case cmdTags:
		return runTags(ctx, args, flags, logger, env)
	case cmdSettings:
		return runSettings(args, flags, logger, env)
	case cmdInject:
		return runInject(ctx, args, flags, logger, env)
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
}

// newLogger creates the stderr logger for one command.
func newLogger(w io.Writer, f *commonFlags) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "technote"})
	switch {
	case f.verbose:
		logger.SetLevel(log.DebugLevel)
	case f.quiet:
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}

// printError writes err and any known hint to w.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v%s\n", err, hintFor(err))
}

// hintFor returns a hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, technote.ErrConfigNotFound):
		return hints.ForConfigNotFound()
	case errors.Is(err, technote.ErrMalformedSyntax):
		return hints.ForMalformedSyntax()
	case errors.Is(err, technote.ErrValidation):
		return hints.ForValidation(err)
	case errors.Is(err, technote.ErrRootFileNotFound):
		return hints.ForRootFileNotFound(technote.RootFilenames)
	}
	return ""
}

// projectDir returns the single optional directory argument.
func projectDir(args []string) (string, error) {
	switch len(args) {
	case 0:
		return ".", nil
	case 1:
		return args[0], nil
	}
	return "", fmt.Errorf("%w: expected at most one directory, got %d arguments", ErrInvalidFlags, len(args))
}

// envLookup returns the build environment lookup. Variables from the
// process environment take precedence over those in the env file.
func envLookup(f *commonFlags, env *Environment) (func(string) (string, bool), error) {
	if f.envFile == "" {
		return env.LookupEnv, nil
	}
	vars, err := godotenv.Read(f.envFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadEnvFile, err)
	}
	return func(key string) (string, bool) {
		if v, ok := env.LookupEnv(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}, nil
}

// openProject opens the technote in dir with the command's options.
func openProject(dir string, flags *commandFlags, logger *log.Logger, env *Environment) (*technote.Project, error) {
	lookup, err := envLookup(&flags.common, env)
	if err != nil {
		return nil, err
	}
	opts := []technote.Option{
		technote.WithLogger(logger),
		technote.WithProjectClock(env.Now),
		technote.WithProjectEnv(lookup),
		technote.WithAssetPath(flags.common.assetPath),
	}
	if flags.common.config != "" {
		opts = append(opts, technote.WithConfigPath(flags.common.config))
	}
	if Version != "dev" {
		opts = append(opts, technote.WithVersion(Version))
	}
	return technote.Open(dir, opts...)
}

// openAndDiscover opens the project in the single directory argument and,
// unless disabled, reads the title and abstract from content.
func openAndDiscover(ctx context.Context, args []string, flags *commandFlags, logger *log.Logger, env *Environment) (*technote.Project, error) {
	dir, err := projectDir(args)
	if err != nil {
		return nil, err
	}
	p, err := openProject(dir, flags, logger, env)
	if err != nil {
		return nil, err
	}
	if !flags.noDiscover {
		if err := p.Discover(ctx); err != nil {
			return nil, err
		}
	}
	if p.Context().GitHubRefName() == "" {
		if h := hints.ForMissingRef(env.LookupEnv); h != "" {
			logger.Debug("version-control ref is not set" + h)
		}
	}
	return p, nil
}

func runValidate(args []string, flags *commandFlags, logger *log.Logger, env *Environment) error {
	dir, err := projectDir(args)
	if err != nil {
		return err
	}
	p, err := openProject(dir, flags, logger, env)
	if err != nil {
		return err
	}
	if len(p.Config.IgnoredTables) > 0 {
		logger.Info("tables left to other tools", "tables", p.Config.IgnoredTables)
	}
	if len(p.Config.Technote.IgnoredKeys) > 0 {
		logger.Warn("unknown keys in [technote]", "keys", p.Config.Technote.IgnoredKeys)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "%s: OK (root file %s)\n", p.ConfigPath, p.Context().RootFilename())
	}
	return nil
}

func runMetadata(ctx context.Context, args []string, flags *commandFlags, logger *log.Logger, env *Environment) error {
	p, err := openAndDiscover(ctx, args, flags, logger, env)
	if err != nil {
		return err
	}
	if _, err := p.Context().Title(); err != nil {
		logger.Warn("no title in technote.toml or content")
	}
	data, err := encode(p.Context().Data(), flags.format)
	if err != nil {
		return err
	}
	return writeOutput(flags.output, data, env)
}

func runTags(ctx context.Context, args []string, flags *commandFlags, logger *log.Logger, env *Environment) error {
	p, err := openAndDiscover(ctx, args, flags, logger, env)
	if err != nil {
		return err
	}
	return writeOutput(flags.output, []byte(p.Context().HeadTags()), env)
}

func runSettings(args []string, flags *commandFlags, logger *log.Logger, env *Environment) error {
	dir, err := projectDir(args)
	if err != nil {
		return err
	}
	p, err := openProject(dir, flags, logger, env)
	if err != nil {
		return err
	}
	data, err := encode(p.Settings(), flags.format)
	if err != nil {
		return err
	}
	return writeOutput(flags.output, data, env)
}

func runInject(ctx context.Context, args []string, flags *commandFlags, logger *log.Logger, env *Environment) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: inject takes exactly one HTML file", ErrInvalidFlags)
	}
	page, err := os.ReadFile(args[0]) // #nosec G304 -- path is user-provided
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadHTML, err)
	}

	p, err := openProject(flags.dir, flags, logger, env)
	if err != nil {
		return err
	}
	if err := p.DiscoverHTML(ctx, page); err != nil {
		return err
	}
	out, err := p.InjectHTML(ctx, string(page))
	if err != nil {
		return err
	}
	logger.Debug("injected metadata", "file", args[0], "bytes", len(out)-len(page))
	return writeOutput(flags.output, []byte(out), env)
}

// encode marshals v in the requested format.
func encode(v any, format string) ([]byte, error) {
	if format == formatYAML {
		return yamlutil.Marshal(v)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte, env *Environment) error {
	if path == "" {
		if _, err := env.Stdout.Write(data); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		return nil
	}
	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
