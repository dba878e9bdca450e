package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sadopc/workday/internal/config"
	"github.com/sadopc/workday/internal/logging"
	"github.com/sadopc/workday/internal/store"
	"github.com/sadopc/workday/internal/tui"
)

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

var errNotInteractive = errors.New("the calculator needs a terminal; use `workday calc` for a one-off pass")

// App holds the configuration and the resources opened for a command.
type App struct {
	Config config.Config

	// Now reads the wall clock. Defaults to time.Now.
	Now func() time.Time
	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// RunTUI runs the full-screen program. Defaults to a bubbletea
	// program on the alternate screen.
	RunTUI func(tea.Model) error

	Store  *store.Store
	Logger *zap.Logger
}

// NewRootCmd creates the top-level "workday" command. Without a
// subcommand it starts the interactive calculator.
func NewRootCmd(app *App) *cobra.Command {
	var logFile, logLevel string

	root := &cobra.Command{
		Use:           "workday",
		Short:         "Work-day time calculator",
		Long:          "Sum today's work intervals against a daily target and project when the target is reached.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("log-file") {
				app.Config.Log.File = logFile
			}
			if cmd.Flags().Changed("log-level") {
				app.Config.Log.Level = logLevel
			}
			return app.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.isInteractive() {
				return errNotInteractive
			}
			model := tui.NewApp(app.Store, app.Config,
				tui.WithLogger(app.Logger),
				tui.WithClock(app.now),
			)
			app.Logger.Info("starting calculator")
			return app.runTUI(model)
		},
	}

	root.PersistentFlags().StringVar(&logFile, "log-file", "", "Write JSON logs to this file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		newCalcCmd(app),
		newVersionCmd(),
	)

	return root
}

// open builds the logger and the settings store unless they were
// provided.
func (a *App) open() error {
	if a.Logger == nil {
		logger, err := logging.New(a.Config.Log)
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		a.Logger = logger
	}
	if a.Store != nil {
		return nil
	}

	s, path, err := openStore(a.Config.Settings)
	if err != nil {
		return err
	}
	a.Store = s
	a.Logger.Debug("settings store opened",
		zap.Bool("persist", a.Config.Settings.Persist),
		zap.String("path", path),
		zap.String("target", a.Config.Target),
		zap.Int("rows", a.Config.Rows),
	)
	return nil
}

// Close releases the store and flushes the logger. It is safe to call twice.
func (a *App) Close() error {
	var err error
	if a.Store != nil {
		err = a.Store.Close()
		a.Store = nil
	}
	if a.Logger != nil {
		// Sync fails on some outputs that cannot be synced; nothing to do then.
		_ = a.Logger.Sync()
	}
	return err
}

// openStore keeps preferences in memory unless persistence is enabled.
func openStore(cfg config.SettingsConfig) (*store.Store, string, error) {
	if !cfg.Persist {
		s, err := store.NewMemory()
		if err != nil {
			return nil, "", fmt.Errorf("open settings: %w", err)
		}
		return s, ":memory:", nil
	}

	path := cfg.Path
	if path == "" {
		var err error
		if path, err = store.DefaultDBPath(); err != nil {
			return nil, "", err
		}
	}
	s, err := store.New(path)
	if err != nil {
		return nil, "", fmt.Errorf("open settings %s: %w", path, err)
	}
	return s, path, nil
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) isInteractive() bool {
	if a.IsInteractive == nil {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	return a.IsInteractive()
}

func (a *App) runTUI(m tea.Model) error {
	if a.RunTUI != nil {
		return a.RunTUI(m)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// isTerminal reports whether w is a terminal, for styled output.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "workday %s\n", Version)
		},
	}
}
