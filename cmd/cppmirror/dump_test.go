package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

const dumpManifest = `
schema = 1

[[class]]
name = "Widget"

  [[class.method]]
  name = "draw"
  doc = "Renders the widget"

  [[class.method]]
  name = "resize"
  params = ["int", "int"]
`

func newTestRoot() *cobra.Command {
	root := &cobra.Command{Use: "cppmirror"}
	root.PersistentFlags().String("color", "off", "")
	root.PersistentFlags().Bool("quiet", true, "")
	root.AddCommand(dumpCmd)
	return root
}

func TestDumpShowsMethodNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widget.toml")
	if err := os.WriteFile(path, []byte(dumpManifest), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	root := newTestRoot()
	root.SetOut(&buf)
	root.SetArgs([]string{"dump", path})
	if err := root.Execute(); err != nil {
		t.Fatalf("dump failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"== Widget ==",
		"Widget::draw",
		"Widget::resize",
		"Widget::Widget",
		"Widget::~Widget",
		"Renders the widget",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	for _, line := range strings.Split(out, "\n") {
		if line != "" && strings.TrimSpace(line) == "" {
			t.Errorf("output has a whitespace-only line:\n%s", out)
		}
	}
}
