package alang

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestExampleScripts runs every script under examples/ end-to-end and
// snapshots its stdout, so a change in output shape (exception formatting,
// promise scheduling order) shows up as a diff against a committed snapshot
// instead of silently passing.
func TestExampleScripts(t *testing.T) {
	dir := "../../examples"
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading %s: %v", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".alang" {
			continue
		}
		name := entry.Name()
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			src, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading %s: %v", path, err)
			}

			var out bytes.Buffer
			eng := New(WithOutput(&out), WithImportBaseDir(dir))
			eng.SetSource(string(src), name)
			if _, err := eng.Execute(); err != nil {
				t.Fatalf("executing %s: %v", name, err)
			}

			snaps.MatchSnapshot(t, out.String())
		})
	}
}

func TestMain(m *testing.M) {
	code := m.Run()
	snaps.Clean(m)
	os.Exit(code)
}
