package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"fitplan/catalog"
	"fitplan/config"
	"fitplan/design"
	"fitplan/geometry"
	"fitplan/persist"
)

func main() {
	var (
		listDocs   = flag.Bool("list", false, "List saved documents and exit")
		check      = flag.Bool("check", false, "Print a collision report for the document and exit")
		newShell   = flag.String("new", "", "Create the document with the given shell size, e.g. 20x8x8.5")
		dataDir    = flag.String("data", defaultDataDir(), "Directory holding saved documents")
		configPath = flag.String("config", defaultConfigPath(), "Path to the config file")
		verbose    = flag.Bool("v", false, "Debug-level logging")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [document]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "An interactive fixture-layout editor for small-space floor plans.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                       # Edit the default document\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s vanbuild              # Edit the document named vanbuild\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -new 20x8x8.5 vanbuild  # Create vanbuild with a 20ft x 8ft shell\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -list                 # Show saved documents\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -check vanbuild       # Report fixture collisions\n", os.Args[0])
	}
	flag.Parse()

	level := log.InfoLevel
	if *verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("bad config", "path", *configPath, "err", err)
		os.Exit(1)
	}

	store := persist.Open(*dataDir)

	if *listDocs {
		names, err := store.List()
		if err != nil {
			logger.Error("list documents", "err", err)
			os.Exit(1)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	name := "untitled"
	if args := flag.Args(); len(args) > 0 {
		name = args[0]
	}

	doc, err := openDocument(store, name, *newShell)
	if err != nil {
		logger.Error("open document", "doc", name, "err", err)
		os.Exit(1)
	}

	if *check {
		runCheck(doc, name)
		return
	}

	if err := runTUI(cfg, store, name, doc, logger); err != nil {
		logger.Error("editor session failed", "err", err)
		os.Exit(1)
	}
}

// openDocument loads the named document, creating it when -new is given or
// when it does not exist yet.
func openDocument(store persist.Store, name, newShell string) (*design.Design, error) {
	if newShell != "" {
		shell, err := parseShell(newShell)
		if err != nil {
			return nil, err
		}
		doc := &design.Design{Shell: shell}
		if err := store.Save(name, doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	doc, err := store.Load(name)
	if err == nil {
		return doc, nil
	}
	// Only fall back to a fresh document when the name is unknown; an
	// existing document that fails to load should surface its error.
	if names, lerr := store.List(); lerr == nil {
		for _, n := range names {
			if n == name {
				return nil, err
			}
		}
	}
	doc = &design.Design{Shell: design.Shell{LengthFt: 20, WidthFt: 8, HeightFt: 8.5}}
	return doc, nil
}

// parseShell parses "LxWxH" or "LxW" (feet) into a shell.
func parseShell(s string) (design.Shell, error) {
	var l, w, h float64
	if _, err := fmt.Sscanf(s, "%gx%gx%g", &l, &w, &h); err != nil {
		if _, err := fmt.Sscanf(s, "%gx%g", &l, &w); err != nil {
			return design.Shell{}, fmt.Errorf("invalid shell size %q, want LxW or LxWxH", s)
		}
		h = 8
	}
	if l <= 0 || w <= 0 || h <= 0 {
		return design.Shell{}, fmt.Errorf("shell dimensions must be positive, got %q", s)
	}
	return design.Shell{LengthFt: l, WidthFt: w, HeightFt: h}, nil
}

// runCheck prints fixture collisions without entering the TUI.
func runCheck(doc *design.Design, name string) {
	overlaps := geometry.Collisions(doc.Fixtures, catalog.Builtin())
	if len(overlaps) == 0 {
		fmt.Printf("%s: no collisions (%d fixtures)\n", name, len(doc.Fixtures))
		return
	}
	fmt.Printf("%s: %d collision(s)\n", name, len(overlaps))
	for _, o := range overlaps {
		fmt.Printf("  %s overlaps %s at (%.2f, %.2f) %gx%g ft\n",
			fixtureLabel(doc, o.A), fixtureLabel(doc, o.B),
			o.Rect.X, o.Rect.Y, o.Rect.Width, o.Rect.Height)
	}
	os.Exit(1)
}

func fixtureLabel(doc *design.Design, id string) string {
	if f := doc.Fixture(id); f != nil {
		return f.CatalogKey
	}
	return id
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fitplan"
	}
	return filepath.Join(home, ".fitplan")
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "fitplan.toml"
	}
	return filepath.Join(home, ".fitplan", "config.toml")
}
