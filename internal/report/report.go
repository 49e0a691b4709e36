// Package report writes valuation records to disk.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openquant/capgain/internal/config"
	"github.com/openquant/capgain/internal/pricer"
)

// Record pairs the valuation inputs with the computed result.
type Record struct {
	Scenario config.ScenarioConfig `json:"scenario"`
	Result   pricer.Valuation      `json:"result"`
}

// WriteJSON writes the record to valuation.json in outdir.
func WriteJSON(rec Record, outdir string) error {
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "valuation.json"), b, 0644)
}

// WriteCSV writes the record to valuation.csv in outdir, one header row and
// one data row.
func WriteCSV(rec Record, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "valuation.csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	headers := []string{"spot", "alpha", "cap", "rate", "vol", "horizon", "value", "abs_error"}
	if err := w.Write(headers); err != nil {
		return err
	}
	s := rec.Scenario
	row := []string{
		fmt.Sprintf("%g", s.Spot),
		fmt.Sprintf("%g", s.Alpha),
		fmt.Sprintf("%g", s.Cap),
		fmt.Sprintf("%g", s.Rate),
		fmt.Sprintf("%g", s.Vol),
		fmt.Sprintf("%g", s.Horizon),
		fmt.Sprintf("%.10g", rec.Result.Value),
		fmt.Sprintf("%.3g", rec.Result.AbsError),
	}
	return w.Write(row)
}
