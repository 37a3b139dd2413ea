package commands

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/LarsBremen/leshan/pkg/log"
)

func TestExportJSONL(t *testing.T) {
	path := createTestLogFile(t, sampleEvents(t))

	reader, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	var buf bytes.Buffer
	if err := export(reader, "jsonl", &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d", len(lines))
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["Endpoint"] != "dev-1" {
		t.Errorf("Endpoint = %v", decoded["Endpoint"])
	}
	if decoded["Tick"] == nil {
		t.Error("expected Tick payload")
	}
}

func TestExportCSV(t *testing.T) {
	path := createTestLogFile(t, sampleEvents(t))
	out := filepath.Join(t.TempDir(), "out.csv")

	if err := RunExport(path, "csv", out); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(records) != 7 {
		t.Fatalf("expected header plus 6 rows, got %d", len(records))
	}
	if records[0][0] != "timestamp" {
		t.Errorf("unexpected header: %v", records[0])
	}

	tick := records[2]
	if tick[2] != "TICK" || tick[3] != "3304" || tick[7] != "21.5" {
		t.Errorf("unexpected tick row: %v", tick)
	}
	read := records[4]
	if read[5] != "5700" || read[6] != "CONTENT" {
		t.Errorf("unexpected read row: %v", read)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	path := createTestLogFile(t, sampleEvents(t))
	if err := RunExport(path, "xml", filepath.Join(t.TempDir(), "out.xml")); err == nil {
		t.Error("expected error for unknown format")
	}
}
