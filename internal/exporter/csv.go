package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/gocarina/gocsv"

	"riskdesk/pkg/contracts/domain"
)

// CSV marshals a slice of view rows using their csv struct tags, keeping
// the column set identical to the xlsx rendition of the same view.
func CSV(rows any) ([]byte, error) {
	out, err := gocsv.MarshalBytes(rows)
	if err != nil {
		return nil, fmt.Errorf("marshal csv: %w", err)
	}
	return out, nil
}

// stressCSVRow flattens a StressRecord for tag-driven marshaling. Dates
// render in the export layout rather than the time.Time default.
type stressCSVRow struct {
	Date         string  `csv:"Date"`
	Scenario     string  `csv:"Scenario"`
	StressPnL    float64 `csv:"StressPnL"`
	Portfolio    string  `csv:"Portfolio"`
	ScenarioName string  `csv:"ScenarioName"`
}

func stressCSVRows(records []domain.StressRecord) []stressCSVRow {
	rows := make([]stressCSVRow, len(records))
	for i, r := range records {
		rows[i] = stressCSVRow{
			Date:         r.Date.Format(exportDateLayout),
			Scenario:     r.Scenario,
			StressPnL:    r.StressPnL,
			Portfolio:    r.Portfolio,
			ScenarioName: r.ScenarioName,
		}
	}
	return rows
}

// detailCSVRow flattens a StressDetailRecord; a zero date renders empty,
// matching the xlsx rendition.
type detailCSVRow struct {
	Name         string  `csv:"Name"`
	Date         string  `csv:"Date"`
	StressPnL    float64 `csv:"StressPnL"`
	Portfolio    string  `csv:"Portfolio"`
	ScenarioName string  `csv:"ScenarioName"`
}

func detailCSVRows(records []domain.StressDetailRecord) []detailCSVRow {
	rows := make([]detailCSVRow, len(records))
	for i, r := range records {
		date := ""
		if r.HasDate() {
			date = r.Date.Format(exportDateLayout)
		}
		rows[i] = detailCSVRow{
			Name:         r.Name,
			Date:         date,
			StressPnL:    r.StressPnL,
			Portfolio:    r.Portfolio,
			ScenarioName: r.ScenarioName,
		}
	}
	return rows
}

// CSVTable writes a dynamic-column table as csv. Used for the correlation
// series export, whose column set depends on the selection and so cannot
// carry struct tags.
func CSVTable(headers []string, rows [][]any) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(headers))
	for _, row := range rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = fmt.Sprint(row[i])
			}
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
