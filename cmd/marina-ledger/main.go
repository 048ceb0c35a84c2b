package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/marina-ledger/internal/inventory"
	"github.com/ngmaloney/marina-ledger/internal/logging"
	"github.com/ngmaloney/marina-ledger/internal/shell"
	"github.com/ngmaloney/marina-ledger/internal/storage"
	"github.com/ngmaloney/marina-ledger/internal/ui"
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	useTUI := fs.Bool("tui", false, "Use the full-screen terminal interface instead of the command prompt")
	capacity := fs.Int("capacity", inventory.DefaultCapacity, "Maximum number of boats (0 for no limit)")
	debug := fs.Bool("debug", false, "Enable debug logging")
	logPath := fs.String("log", "", "Write JSON logs to this file")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] BoatData.csv\n", args[0])
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}
	path := fs.Arg(0)

	cleanup, err := logging.Setup(logging.Config{Path: *logPath, Debug: *debug, Stderr: stderr})
	if err != nil {
		fmt.Fprintf(stderr, "Error setting up logging: %v\n", err)
		return 1
	}
	defer cleanup()

	backend := storage.Open(path)
	boats, err := backend.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Could not open file: %v\n", err)
		return 1
	}
	inv := inventory.New(*capacity, boats...)
	slog.Info("inventory.loaded", "path", path, "boats", inv.Len(), "capacity", inv.Capacity())

	if *useTUI {
		return runTUI(inv, backend, stderr)
	}

	if err := shell.New(stdin, stdout, inv, backend).Run(); err != nil {
		return 1
	}
	return 0
}

func runTUI(inv *inventory.Inventory, backend storage.Backend, stderr io.Writer) int {
	p := tea.NewProgram(ui.NewModel(inv, backend), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(stderr, "Error running application: %v\n", err)
		return 1
	}

	if m, ok := final.(ui.Model); ok && !m.Saved() {
		fmt.Fprintf(stderr, "Quit without saving; %s was not changed.\n", backend.Path())
	}
	return 0
}
