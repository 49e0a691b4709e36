package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/openquant/capgain/internal/config"
	"github.com/openquant/capgain/internal/pricer"
	"github.com/openquant/capgain/internal/testutil"
)

var rec = Record{
	Scenario: config.ScenarioConfig{Spot: 100, Alpha: 0.8, Cap: 120, Rate: 0.05, Vol: 0.2, Horizon: 1},
	Result:   pricer.Valuation{Value: 1.3705, AbsError: 2e-9},
}

func TestWriteJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	if err := WriteJSON(rec, dir); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "valuation.json"))
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	var got Record
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got != rec {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, rec)
	}
}

func TestJSONReportGolden(t *testing.T) {
	testutil.CompareWithGolden(t, "valuation", rec)
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	if err := WriteCSV(rec, dir); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "valuation.csv"))
	if err != nil {
		t.Fatalf("opening report: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1 record", len(rows))
	}
	if rows[0][0] != "spot" || rows[0][6] != "value" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "100" || rows[1][2] != "120" || rows[1][6] != "1.3705" {
		t.Errorf("unexpected record row: %v", rows[1])
	}
}

func TestWriteJSONBadDir(t *testing.T) {
	if err := WriteJSON(rec, filepath.Join(t.TempDir(), "does", "not", "exist")); err == nil {
		t.Error("expected error for missing output directory")
	}
}
