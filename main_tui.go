package main

import (
	"github.com/charmbracelet/log"

	"fitplan/catalog"
	"fitplan/config"
	"fitplan/design"
	"fitplan/editor"
	"fitplan/persist"
	"fitplan/terminal"
)

// runTUI wires the editor core to the terminal host and runs the session.
func runTUI(cfg config.Config, store persist.Store, name string, doc *design.Design, logger *log.Logger) error {
	ed := editor.New(doc, catalog.Builtin(), editor.Options{
		SnapIncrement: cfg.SnapIncrement,
		HistoryLimit:  cfg.HistoryLimit,
		Observer:      editor.NewLogObserver(logger),
	})
	return terminal.Run(ed, terminal.Options{
		Store:    store,
		DocName:  name,
		Autosave: cfg.Autosave,
		Keymap:   cfg.Keymap(),
		Logger:   logger,
	})
}
