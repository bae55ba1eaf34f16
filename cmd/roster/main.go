package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/smileynet/roster"
	"github.com/smileynet/roster/internal/config"
	"github.com/smileynet/roster/internal/console"
	"github.com/smileynet/roster/internal/directory"
	"github.com/smileynet/roster/internal/logging"
	"github.com/smileynet/roster/internal/record"
	"github.com/smileynet/roster/internal/script"
	"github.com/smileynet/roster/internal/session"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for roster.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Open    OpenCmd          `cmd:"" default:"1" help:"Open the user directory."`
	Replay  ReplayCmd        `cmd:"" help:"Replay a script of form events and print the resulting table."`
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/roster/config.yaml"),
		".roster/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSession builds the store and session described by cfg.
func newSession(cfg *config.Config, logger *zap.Logger) (*session.Session, error) {
	ids, err := record.NewIDGenerator(cfg.IDs.Strategy, cfg.IDs.Prefix)
	if err != nil {
		return nil, err
	}
	store := record.NewStore(
		record.WithIDGenerator(ids),
		record.WithLogger(logger.Named("record")),
	)
	return session.New(store, session.WithLogger(logger.Named("session"))), nil
}

// setup loads config and builds the logger and session shared by all commands.
func setup() (*config.Config, *zap.Logger, *session.Session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, nil, err
	}
	s, err := newSession(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, nil, err
	}
	return cfg, logger, s, nil
}

// --- Open command ---

// OpenCmd opens the interactive directory, or the line console when stdout
// is not a terminal.
type OpenCmd struct {
	Plain bool `help:"Force the line console even if stdout is a TTY." default:"false"`
}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds real dependencies and launches the TUI or console.
func (o *OpenCmd) Run() error {
	cfg, logger, s, err := setup()
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	isTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if !isTTY || o.Plain {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		logger.Info("console started")
		return o.runConsole(ctx, os.Stdin, os.Stdout, s, logger)
	}

	var progOpts []tea.ProgramOption
	if cfg.UI.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	prog := tea.NewProgram(directory.NewModel(s), progOpts...)
	logger.Info("tui started", zap.Bool("alt_screen", cfg.UI.AltScreen))
	return o.run(prog)
}

// run executes the tea program, enabling testable wiring.
func (o *OpenCmd) run(prog teaRunner) error {
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("open: %w", err)
	}
	return nil
}

// runConsole runs the line console over r and w.
func (o *OpenCmd) runConsole(ctx context.Context, r io.Reader, w io.Writer, s *session.Session, logger *zap.Logger) error {
	_, _ = fmt.Fprintln(w, "roster console (type help for commands)")
	c := console.New(r, w, s, console.WithLogger(logger.Named("console")))
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("open: %w", err)
	}
	return nil
}

// --- Replay command ---

// ReplayCmd replays a YAML script of form events.
type ReplayCmd struct {
	Script string `arg:"" help:"Script name, relative to the scripts directory (the .yaml suffix is optional)."`
	Dir    string `help:"Directory searched before the embedded scripts (default: ui.scripts_dir)."`
	Quiet  bool   `short:"q" help:"Only print the final table."`
}

// Run loads the script and replays it against a fresh session.
func (r *ReplayCmd) Run() error {
	cfg, logger, s, err := setup()
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	dir := r.Dir
	if dir == "" {
		dir = cfg.UI.ScriptsDir
	}
	return r.run(os.Stdout, roster.OverlayFS(dir, roster.Scripts), s)
}

// run loads and replays the script from fsys, enabling testable wiring.
func (r *ReplayCmd) run(w io.Writer, fsys fs.FS, s *session.Session) error {
	sc, err := script.Load(fsys, r.Script)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	err = sc.Replay(s, func(i int, step script.Step, out session.Outcome) {
		if r.Quiet {
			return
		}
		_, _ = fmt.Fprintf(w, "%3d  %-7s %s\n", i+1, step.Event.Kind, console.Describe(out))
	})
	_, _ = fmt.Fprintln(w, console.RenderTable(s.Rows()))
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	return nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitSetup   = 1
	exitReplay  = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *script.StepError
	if errors.As(err, &se) {
		return exitReplay
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("roster"),
		kong.Description("Manage an in-memory user directory."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
