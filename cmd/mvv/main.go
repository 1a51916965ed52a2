// mvv is a terminal viewer for multiple-value dashboard payloads.
//
// It renders each data point of a (config, data) payload as a labeled
// value with an optional comparison delta, keeps any H:MM:SS or D:HH:MM:SS
// value ticking once per second, and reloads the payload when the file
// changes.
//
// Usage:
//
//	mvv                          # Auto-discover .mvv/payload.json
//	mvv --payload <path>         # Use a specific payload file
//	mvv --json                   # Dump the resolved layout as JSON and exit
//	mvv --config mvv.yaml        # Read viewer settings from a YAML file
//	mvv --refresh 5s             # Set polling fallback interval
//	mvv --log /tmp/mvv.log       # Write logs to a rotating file
//	mvv --version                # Print version and exit
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/daviddao/multivalue_viewer/internal/datasource"
	"github.com/daviddao/multivalue_viewer/internal/drill"
	"github.com/daviddao/multivalue_viewer/internal/layout"
	"github.com/daviddao/multivalue_viewer/internal/logging"
	"github.com/daviddao/multivalue_viewer/internal/settings"
	"github.com/daviddao/multivalue_viewer/internal/widget"
)

// Version is set via ldflags at build time (e.g. -X main.Version=v0.1.0).
var Version = "dev"

type options struct {
	payload    string
	config     string
	refresh    time.Duration
	logFile    string
	logLevel   string
	jsonMode   bool
	jsonWidth  int
	jsonHeight int
	version    bool
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mvv: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "mvv",
		Short:         "Live terminal viewer for multiple-value dashboard payloads",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.version {
				fmt.Fprintf(out, "mvv %s\n", Version)
				return nil
			}
			s, err := resolveSettings(cmd, opts)
			if err != nil {
				return err
			}
			if opts.jsonMode {
				return runJSON(out, s, layout.Viewport{Width: opts.jsonWidth, Height: opts.jsonHeight})
			}
			return runTUI(s)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.payload, "payload", "", "path to payload JSON (default: auto-discover)")
	f.StringVar(&opts.config, "config", "", "path to settings YAML (default: ./"+settings.DefaultFile+" if present)")
	f.DurationVar(&opts.refresh, "refresh", 0, "polling fallback interval (default from settings, 2s)")
	f.StringVar(&opts.logFile, "log", "", "write logs to this file")
	f.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	f.BoolVar(&opts.jsonMode, "json", false, "dump the resolved layout as JSON and exit (no TUI)")
	f.IntVar(&opts.jsonWidth, "width", 1024, "viewport width in pixels for --json")
	f.IntVar(&opts.jsonHeight, "height", 768, "viewport height in pixels for --json")
	f.BoolVar(&opts.version, "version", false, "print version and exit")
	return cmd
}

// resolveSettings layers explicitly set flags over the settings file and
// environment.
func resolveSettings(cmd *cobra.Command, opts options) (settings.Settings, error) {
	s, err := settings.Load(opts.config)
	if err != nil {
		return s, err
	}
	f := cmd.Flags()
	if f.Changed("payload") {
		s.Payload = opts.payload
	}
	if f.Changed("refresh") {
		s.Refresh = opts.refresh
	}
	if f.Changed("log") {
		s.Log.File = opts.logFile
	}
	if f.Changed("log-level") {
		s.Log.Level = opts.logLevel
	}
	return s, s.Validate()
}

// runJSON loads the payload once and prints the composed frame.
func runJSON(out io.Writer, s settings.Settings, vp layout.Viewport) error {
	p, _, err := datasource.Open(s.Payload)
	if err != nil {
		return err
	}

	bus := layout.NewBus()
	w := widget.New(nil)
	w.Mount(bus)
	bus.Publish(vp)
	w.SetData(p)
	defer w.Unmount()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(w.Describe()); err != nil {
		return fmt.Errorf("json: %w", err)
	}
	return nil
}

func runTUI(s settings.Settings) error {
	logger, logCloser, err := logging.New(s.Log)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	p, path, err := datasource.Open(s.Payload)
	if err != nil {
		return err
	}

	watcher, err := datasource.NewWatcher(path)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	menu := &drill.Menu{}
	w := widget.New(menu, widget.WithLogger(logger))
	m := newModel(w, menu, watcher, p, path, s, logger)

	prog := tea.NewProgram(m, tea.WithAltScreen())

	// Feed payload change events into the TUI.
	go func() {
		for range watcher.Changes() {
			prog.Send(payloadChangedMsg{})
		}
	}()
	go func() {
		for err := range watcher.Errors() {
			logger.Warn("payload watch error", "error", err)
		}
	}()

	// Polling fallback; unchanged payloads are dropped by digest.
	go func() {
		ticker := time.NewTicker(s.Refresh)
		defer ticker.Stop()
		for range ticker.C {
			prog.Send(payloadChangedMsg{})
		}
	}()

	logger.Info("viewer started", "payload", path, "points", len(p.Data))
	if _, err := prog.Run(); err != nil {
		return err
	}
	return nil
}
