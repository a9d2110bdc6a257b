package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"github.com/hailam/shogiplay/internal/storage"
)

const game = `V2.2
N+alice
N-bob
PI
+
+7776FU
-3334FU
+8822UM
%TORYO
`

func TestImportListShowExport(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "game.csa")
	if err := os.WriteFile(file, []byte(game), 0644); err != nil {
		t.Fatal(err)
	}

	st, err := storage.Open(filepath.Join(dir, "db"), logr.Discard())
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	if err := importFiles(logr.Discard(), st, []string{file}); err != nil {
		t.Fatalf("import: %v", err)
	}
	records, err := st.ListRecords()
	if err != nil || len(records) != 1 {
		t.Fatalf("ListRecords = %d records, %v", len(records), err)
	}
	id := records[0].ID

	var out bytes.Buffer
	if err := list(st, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "alice vs bob  3 moves  TORYO") {
		t.Errorf("list output: %q", out.String())
	}

	out.Reset()
	if err := show(st, id, &out); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"   1 P-7f", "   3 Bx2b+", "Result: toryo"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("show output missing %q:\n%s", want, out.String())
		}
	}

	exported := filepath.Join(dir, "out.csa")
	if err := export(st, []string{id, exported}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(exported)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "+8822UM\n%TORYO\n") {
		t.Errorf("exported record:\n%s", data)
	}
}
