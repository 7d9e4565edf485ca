package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hpungsan/ideabox/internal/config"
	"github.com/hpungsan/ideabox/internal/logging"
	"github.com/hpungsan/ideabox/internal/mcp"
	"github.com/hpungsan/ideabox/internal/ops"
	"github.com/hpungsan/ideabox/internal/storage"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"add": true, "list": true, "delete": true,
	"export": true, "clear": true, "ui": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	if cliCommands[arg] {
		return true
	}
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   _     _            _
  (_) __| | ___  __ _| |__   _____  __
  | |/ _' |/ _ \/ _' | '_ \ / _ \ \/ /
  | | (_| |  __/ (_| | |_) | (_) >  <
  |_|\__,_|\___|\__,_|_.__/ \___/_/\_\

  Capture ideas before they get away

  Usage: ideabox <command> [options]
         ideabox ui        open the popup in a browser
         ideabox --help

  MCP server mode requires piped input.`)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before opening storage
	if isHelpOrVersion() {
		app := newCLIApp(nil, nil, "")
		if err := app.Run(os.Args); err != nil {
			fatal("%v", err)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fatal("could not determine home directory: %v", err)
	}
	baseDir := filepath.Join(homeDir, config.DirName)

	cwd, err := os.Getwd()
	if err != nil {
		cwd = baseDir
	}
	cfg, err := config.LoadWithRepo(baseDir, cwd)
	if err != nil {
		fatal("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fatal("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if unknown := mcp.ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		logger.Warn("ignoring unknown disabled_tools entries", zap.Strings("tools", unknown))
	}

	store, closeStore, err := storage.Open(cfg, baseDir, logger)
	if err != nil {
		fatal("failed to open storage: %v", err)
	}
	defer func() { _ = closeStore() }()

	repo := ops.NewRepository(store, cfg, ops.WithLogger(logger))

	// CLI mode: known subcommand
	if isCLIMode() {
		if !repo.Authoritative() {
			fmt.Fprintf(os.Stderr, "warning: %s\n", storage.FallbackWarning)
		}
		app := newCLIApp(repo, cfg, baseDir, withLogger(logger))
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			_ = closeStore()
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'ideabox --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	exportsDir := filepath.Join(baseDir, "exports")
	if err := mcp.Run(repo, cfg, exportsDir, Version); err != nil {
		logger.Error("mcp server stopped", zap.Error(err))
		_ = closeStore()
		os.Exit(1)
	}
}
