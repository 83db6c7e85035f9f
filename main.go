package main

import (
	"flag"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vscroll/vscroll/app"
	"github.com/vscroll/vscroll/style"
	"github.com/vscroll/vscroll/ui/row"
)

var version = "dev"

func main() {
	items := flag.Int("items", 10000, "Number of demo rows to generate")
	minHeight := flag.Int("min-height", 1, "Minimum row height in lines")
	seed := flag.Int64("seed", 42, "Seed for deterministic row content")
	noColor := flag.Bool("no-color", false, "Disable ANSI colors")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.BoolVar(showVersion, "V", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("vscroll %s\n", version)
		os.Exit(0)
	}

	if *noColor {
		// Caller can set NO_COLOR=1 in the shell to disable colors.
		os.Setenv("NO_COLOR", "1")
	}

	if *items < 0 {
		fmt.Fprintln(os.Stderr, "vscroll: -items must be non-negative")
		os.Exit(2)
	}
	if *minHeight < 1 {
		fmt.Fprintln(os.Stderr, "vscroll: -min-height must be at least 1")
		os.Exit(2)
	}

	// Auto-detect terminal background and set theme before any rendering.
	if lipgloss.HasDarkBackground(os.Stdin, os.Stdout) {
		style.SetTheme("dark")
	} else {
		style.SetTheme("light")
	}

	m := app.New("vscroll", row.Generate(*items, *seed), *minHeight)

	// In bubbletea v2, WithAltScreen and WithMouseCellMotion are no longer
	// ProgramOptions. They are configured on the View struct returned by the
	// model's View() method. Pass no options here.
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "vscroll: %v\n", err)
		os.Exit(1)
	}
}
