package main

import (
	"bufio"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hpungsan/ideabox/internal/config"
	"github.com/hpungsan/ideabox/internal/errors"
	"github.com/hpungsan/ideabox/internal/ops"
	"github.com/hpungsan/ideabox/internal/web"
)

// maxStdinBytes caps idea text read from stdin.
const maxStdinBytes = 64 * 1024

// appOption configures optional CLI dependencies.
type appOption func(*cliEnv)

// cliEnv holds what every command needs.
type cliEnv struct {
	repo    *ops.Repository
	cfg     *config.Config
	baseDir string
	logger  *zap.Logger
}

func withLogger(logger *zap.Logger) appOption {
	return func(e *cliEnv) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(repo *ops.Repository, cfg *config.Config, baseDir string, opts ...appOption) *cli.App {
	env := &cliEnv{
		repo:    repo,
		cfg:     cfg,
		baseDir: baseDir,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(env)
	}

	app := &cli.App{
		Name:    "ideabox",
		Usage:   "Capture ideas before they get away",
		Version: Version,
		Commands: []*cli.Command{
			addCmd(env),
			listCmd(env),
			deleteCmd(env),
			exportCmd(env),
			clearCmd(env),
			uiCmd(env),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// addCmd creates the add command.
func addCmd(env *cliEnv) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Capture a new idea (from arguments or stdin)",
		ArgsUsage: "<text...>",
		Action: func(c *cli.Context) error {
			text := strings.Join(c.Args().Slice(), " ")
			if text == "" && stdinHasData(c.App.Reader) {
				data, err := readStdin(c.App.Reader, maxStdinBytes)
				if err != nil {
					return outputError(err)
				}
				text = data
			}

			created, err := env.repo.Add(c.Context, text)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(c.App.Writer, created)
		},
	}
}

// listCmd creates the list command.
func listCmd(env *cliEnv) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List stored ideas, newest first",
		Action: func(c *cli.Context) error {
			output, err := env.repo.ListWithCount(c.Context)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(c.App.Writer, output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(env *cliEnv) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete an idea by id",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return outputError(errors.NewInvalidRequest("exactly one id is required"))
			}
			id, err := strconv.ParseInt(c.Args().First(), 10, 64)
			if err != nil {
				return outputError(errors.NewInvalidRequest("id must be an integer"))
			}

			output, err := env.repo.DeleteByID(c.Context, id)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(c.App.Writer, output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(env *cliEnv) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export all ideas to a .txt file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Destination .txt path (default: ~/.ideabox/exports/ideas-<millis>.txt)"},
		},
		Action: func(c *cli.Context) error {
			output, err := env.repo.WriteExport(c.Context, env.cfg, ops.ExportInput{
				Path:       c.String("path"),
				ExportsDir: filepath.Join(env.baseDir, "exports"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(c.App.Writer, output)
		},
	}
}

// clearCmd creates the clear command.
func clearCmd(env *cliEnv) *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Delete all ideas (asks for confirmation)",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"},
		},
		Action: func(c *cli.Context) error {
			if !c.Bool("yes") && !confirm(c.App.Reader, c.App.ErrWriter, web.ClearPrompt) {
				return outputJSON(c.App.Writer, ops.ClearOutput{Cleared: false})
			}

			output, err := env.repo.Clear(c.Context)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(c.App.Writer, output)
		},
	}
}

// uiCmd creates the ui command, which serves the popup over HTTP.
func uiCmd(env *cliEnv) *cli.Command {
	return &cli.Command{
		Name:  "ui",
		Usage: "Serve the ideas popup on a local address",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Usage: "Address to bind (default from config)"},
			&cli.IntFlag{Name: "port", Usage: "Port to listen on (default from config)"},
		},
		Action: func(c *cli.Context) error {
			cfg := *env.cfg
			if c.IsSet("bind") {
				cfg.UIBind = c.String("bind")
			}
			if c.IsSet("port") {
				cfg.UIPort = c.Int("port")
			}
			if err := cfg.Validate(); err != nil {
				return outputError(errors.NewInvalidRequest(err.Error()))
			}

			srv, err := web.NewServer(env.repo, &cfg, env.logger, Version)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			return web.Run(srv, env.logger)
		},
	}
}

// Helper functions

// outputJSON marshals result to w as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	var iErr *errors.IdeaError
	if stderrors.As(err, &iErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", iErr.Code, iErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// confirm writes prompt to w and reports whether the answer read from r is y or yes.
func confirm(r io.Reader, w io.Writer, prompt string) bool {
	if r == nil {
		return false
	}
	if w != nil {
		fmt.Fprintf(w, "%s [y/N]: ", prompt)
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// stdinHasData returns true if r is piped data rather than a terminal.
func stdinHasData(r io.Reader) bool {
	if r == nil {
		return false
	}
	f, ok := r.(*os.File)
	if !ok {
		return true
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads at most limit bytes from r.
func readStdin(r io.Reader, limit int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", errors.NewInternal(err)
	}
	if int64(len(data)) > limit {
		return "", errors.NewInvalidRequest(fmt.Sprintf("stdin exceeds %d bytes", limit))
	}
	return string(data), nil
}
