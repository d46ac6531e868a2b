package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cppmirror/internal/diag"
	"cppmirror/internal/model"
	"cppmirror/internal/source"
	"cppmirror/meta"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] <manifest.toml>",
	Short: "Enumerate the methods of a scope in a declaration manifest",
	Long:  `Load a declaration manifest and walk a scope's methods the way the reflection layer enumerates them: implicit members forced, using declarations expanded, templates instantiated under their defaults`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().String("scope", "", "qualified scope to enumerate (default: every named scope)")
	dumpCmd.Flags().Bool("mangled", false, "show mangled symbol names")
	dumpCmd.Flags().Bool("props", false, "show property bits")
}

// logReporter forwards session diagnostics to the CLI logger.
type logReporter struct {
	logger *log.Logger
}

func (r logReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	switch sev {
	case diag.SevError:
		r.logger.Error(msg, "code", code.String())
	case diag.SevWarning:
		r.logger.Warn(msg, "code", code.String())
	default:
		r.logger.Info(msg, "code", code.String())
	}
}

func runDump(cmd *cobra.Command, args []string) error {
	scope, err := cmd.Flags().GetString("scope")
	if err != nil {
		return fmt.Errorf("failed to get scope flag: %w", err)
	}
	showMangled, err := cmd.Flags().GetBool("mangled")
	if err != nil {
		return fmt.Errorf("failed to get mangled flag: %w", err)
	}
	showProps, err := cmd.Flags().GetBool("props")
	if err != nil {
		return fmt.Errorf("failed to get props flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "cppmirror",
	})
	if quiet {
		logger.SetLevel(log.ErrorLevel)
	}

	m, err := model.LoadFile(args[0], logReporter{logger: logger})
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	scopes := []string{scope}
	if scope == "" {
		scopes = m.ScopeNames()
	}

	colored := useColor(cmd)
	scopeColor := color.New(color.FgCyan, color.Bold)
	symColor := color.New(color.FgYellow)
	scopeColor.DisableColor()
	symColor.DisableColor()
	if colored {
		scopeColor.EnableColor()
		symColor.EnableColor()
	}

	out := cmd.OutOrStdout()
	for _, name := range scopes {
		id, ok := m.Scope(name)
		if !ok {
			return fmt.Errorf("unknown scope: %s", name)
		}
		display := name
		if display == "" {
			display = "(global)"
		}
		fmt.Fprintf(out, "== %s ==\n", scopeColor.Sprint(display))

		mi := meta.NewEnumerator(m.Sess, id)
		for mi.Next() {
			fmt.Fprintf(out, "  %s\n", mi.Name())
			if title := mi.Title(); title != "" {
				fmt.Fprintf(out, "    %s\n", title)
			}
			if showMangled {
				fmt.Fprintf(out, "    %s\n", symColor.Sprint(mi.MangledName()))
			}
			if showProps {
				bits := append(mi.Property().Strings(), mi.ExtraProperty().Strings()...)
				fmt.Fprintf(out, "    [%s]\n", strings.Join(bits, " "))
			}
		}
	}
	return nil
}
