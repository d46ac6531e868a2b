package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"cppmirror/internal/model"
	"cppmirror/internal/ui"
	"cppmirror/meta"
)

var browseCmd = &cobra.Command{
	Use:   "browse <manifest.toml>",
	Short: "Interactively browse the scopes and methods of a manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("browse requires a terminal; use dump for plain output")
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "cppmirror",
	})
	m, err := model.LoadFile(args[0], logReporter{logger: logger})
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	names := append([]string{""}, m.ScopeNames()...)
	scopes := make([]ui.ScopeEntry, 0, len(names))
	for _, name := range names {
		id, ok := m.Scope(name)
		if !ok {
			continue
		}
		entry := ui.ScopeEntry{Name: name}
		mi := meta.NewEnumerator(m.Sess, id)
		for mi.Next() {
			entry.Methods = append(entry.Methods, ui.MethodEntry{
				Name:       mi.Name(),
				Doc:        mi.Title(),
				Mangled:    mi.MangledName(),
				Properties: append(mi.Property().Strings(), mi.ExtraProperty().Strings()...),
			})
		}
		scopes = append(scopes, entry)
	}

	program := tea.NewProgram(ui.NewBrowserModel(scopes), tea.WithOutput(os.Stdout))
	_, err = program.Run()
	return err
}
