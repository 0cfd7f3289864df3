package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"pkt.systems/psi"
	"pkt.systems/pslog"

	"github.com/vidyasagar/tpane/internal/app"
	"github.com/vidyasagar/tpane/internal/closedtabs"
	"github.com/vidyasagar/tpane/internal/logx"
	"github.com/vidyasagar/tpane/internal/storage"
	"github.com/vidyasagar/tpane/internal/theme"
	"github.com/vidyasagar/tpane/internal/workspace"
)

var version = "0.1.0"

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type rootFlags struct {
	config   string
	theme    string
	logLevel string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	root := &cobra.Command{
		Use:   "tpane [file or url...]",
		Short: "tpane - a terminal pager for files and web pages with location history",
		Example: `  tpane                          # start with the start page
  tpane main.go README.md        # open files in tabs
  tpane go.dev/doc               # auto-adds https://
  tpane --theme nord             # use the nord theme
  tpane closed                   # list recently closed tabs`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), flags, args)
		},
	}
	root.PersistentFlags().StringVar(&flags.config, "config", "", "config file (default is the user config dir)")
	root.Flags().StringVar(&flags.theme, "theme", "", "color theme ("+joinThemes()+")")
	root.Flags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newClosedCmd(&flags))
	root.AddCommand(newThemesCmd())
	return root
}

// session is what the commands share: config, logger and the preference
// store.
type session struct {
	cfg   *storage.Config
	db    *storage.DB
	prefs *storage.Prefs
	log   pslog.Logger
	close func()
}

func openSession(flags rootFlags) (*session, error) {
	cfg, err := storage.LoadConfig(flags.config)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	logFile, err := os.OpenFile(filepath.Join(cfg.DataDir, "tpane.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	log := logx.New(logFile, cfg.LogLevel)

	db, err := storage.OpenDB(cfg.DataDir)
	if err != nil {
		logFile.Close()
		return nil, err
	}
	return &session{
		cfg:   cfg,
		db:    db,
		prefs: storage.NewPrefs(db),
		log:   log,
		close: func() {
			if err := db.Close(); err != nil {
				log.Warn("closing database failed", "err", err)
			}
			logFile.Close()
		},
	}, nil
}

func runTUI(ctx context.Context, flags rootFlags, args []string) error {
	s, err := openSession(flags)
	if err != nil {
		return err
	}
	defer s.close()

	themeName := s.cfg.Theme
	if flags.theme != "" {
		themeName = flags.theme
	}
	if !theme.Set(themeName) {
		return fmt.Errorf("unknown theme %q (available: %s)", themeName, joinThemes())
	}

	ctx = pslog.ContextWithLogger(ctx, s.log)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	watcher, err := workspace.NewWatcher(ctx, s.log)
	if err != nil {
		// Files still open; they just won't follow edits on disk.
		s.log.Warn("file watching unavailable", "err", err)
		watcher = nil
	} else {
		defer watcher.Close()
	}

	s.log.Info("tpane starting", "version", version, "config", s.cfg.Path(), "db", s.db.Path())
	m := app.New(app.Options{
		Config:    s.cfg,
		Prefs:     s.prefs,
		Watcher:   watcher,
		Logger:    s.log,
		Context:   ctx,
		StartURIs: args,
	})
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return err
	}
	s.log.Info("tpane exited")
	return nil
}

func newClosedCmd(flags *rootFlags) *cobra.Command {
	var clear bool
	cmd := &cobra.Command{
		Use:   "closed",
		Short: "List the recently closed tabs saved by the last session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(*flags)
			if err != nil {
				return err
			}
			defer s.close()

			if clear {
				return s.prefs.Delete(closedtabs.PrefKey)
			}
			entries, ok, err := closedtabs.Decode(s.prefs)
			if err != nil {
				return err
			}
			if !ok || len(entries) == 0 {
				fmt.Fprintln(color.Output, "No recently closed tabs")
				return nil
			}
			printClosed(entries)
			return nil
		},
	}
	cmd.Flags().BoolVar(&clear, "clear", false, "forget the saved list")
	return cmd
}

// printClosed lists entries newest first, numbered as in the closed tabs menu.
func printClosed(entries []closedtabs.Entry) {
	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	closedtabs.Disambiguate(entries, nil)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("#"), bold.Sprint("Tab"), bold.Sprint("Pane"), bold.Sprint("Type"))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		tbl.AddRow(
			strconv.Itoa(len(entries)-i),
			closedtabs.EntryLabel(e),
			dim.Sprint(closedtabs.GroupLabel(e.TabGroupID)),
			dim.Sprint(e.ViewType),
		)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(color.Output, tbl)
}

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the available color themes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range theme.List() {
				fmt.Fprintln(color.Output, name)
			}
		},
	}
}

func joinThemes() string {
	return strings.Join(theme.List(), ", ")
}
