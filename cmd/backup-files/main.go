// Package main is the entry point for the backup-files application.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term" //nolint:depguard // Required for TTY detection

	"github.com/joe/backup-files/internal/config"
	"github.com/joe/backup-files/internal/mirror"
	"github.com/joe/backup-files/internal/tui"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		runTUI(cfg)

		return
	}

	runHeadless(cfg)
}

// runTUI drives the full-screen terminal UI.
func runTUI(cfg *config.Config) {
	program := tea.NewProgram(tui.NewModel(cfg), tea.WithAltScreen())

	_, err := program.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runHeadless performs the backup without a UI, printing the summary
// to stdout. Interactive path entry needs a terminal, so unresolved
// paths are fatal here.
func runHeadless(cfg *config.Config) {
	if cfg.InteractiveMode {
		fmt.Fprintln(os.Stderr, "Error: no source/destination given and stdout is not a terminal")
		os.Exit(1)
	}

	engine, err := mirror.NewEngine(mirror.Options{
		Source:    cfg.SourcePath,
		Dest:      cfg.DestPath,
		LogDir:    cfg.LogDir,
		Pattern:   cfg.Pattern,
		Threshold: cfg.Threshold(),
		Workers:   cfg.Workers,
		MaxPath:   cfg.MaxPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	summary, err := engine.Run()

	_ = engine.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(summary.Render())

	if summary.Stats.Errors > 0 {
		fmt.Printf("\nSee the run log for details: %s\n", engine.LogPath())
		os.Exit(1)
	}
}
