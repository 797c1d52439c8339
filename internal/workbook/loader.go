// Package workbook reads the three source Excel extracts (correlation,
// stress test, legend) and exposes them as immutable typed datasets behind
// a memoizing store.
package workbook

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"riskdesk/internal/dataprocessing"
	"riskdesk/pkg/contracts/domain"
)

// Legend workbook sheet names, fixed by the source extract format.
const (
	LegendPortfolioSheet = "Portafogli"
	LegendScenarioSheet  = "Scenari"
)

// SheetNames returns the sheet list of a workbook in file order.
func SheetNames(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// LoadCorrelationFrame reads one portfolio's correlation sheet: first
// column dates, remaining columns named series. Rows are sorted ascending
// by date after load so downstream range slicing can assume order.
func LoadCorrelationFrame(path, sheet string) (*domain.CorrelationFrame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	headers := rows[0]
	if len(headers) < 2 {
		return nil, fmt.Errorf("sheet %q: expected a date column plus at least one series", sheet)
	}
	order := make([]string, 0, len(headers)-1)
	for _, h := range headers[1:] {
		order = append(order, strings.TrimSpace(h))
	}

	type datedRow struct {
		date time.Time
		vals []float64
	}
	parsed := make([]datedRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		date := dataprocessing.ParseDate(row[0])
		if date.IsZero() {
			continue
		}
		vals := make([]float64, len(order))
		for i := range order {
			if i+1 < len(row) {
				vals[i], _ = strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
			}
		}
		parsed = append(parsed, datedRow{date: date, vals: vals})
	}
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].date.Before(parsed[j].date) })

	frame := &domain.CorrelationFrame{
		Portfolio: sheet,
		Order:     order,
		Dates:     make([]time.Time, len(parsed)),
		Series:    make(map[string][]float64, len(order)),
	}
	for _, id := range order {
		frame.Series[id] = make([]float64, len(parsed))
	}
	for i, r := range parsed {
		frame.Dates[i] = r.date
		for j, id := range order {
			frame.Series[id][i] = r.vals[j]
		}
	}
	slog.Debug("loaded correlation sheet",
		slog.String("sheet", sheet),
		slog.Int("rows", len(parsed)),
		slog.Int("series", len(order)))
	return frame, nil
}

// LoadStressTotals normalizes every sheet of the stress workbook in Total
// extraction mode and concatenates the results.
func LoadStressTotals(path string) ([]domain.StressRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	var sets [][]domain.StressRecord
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		set, err := dataprocessing.NormalizeTotals(sheet, rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return dataprocessing.ConcatTotals(sets), nil
}

// LoadStressDetails normalizes every sheet of the stress workbook in
// detail extraction mode; the combined dataset comes back sorted.
func LoadStressDetails(path string) ([]domain.StressDetailRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	var sets [][]domain.StressDetailRecord
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		set, err := dataprocessing.NormalizeDetails(sheet, rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return dataprocessing.ConcatDetails(sets), nil
}

// LoadLegendEntries reads the ticker-to-name table (columns A-C).
func LoadLegendEntries(path string) ([]domain.LegendEntry, error) {
	rows, err := legendRows(path, LegendPortfolioSheet)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.LegendEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.LegendEntry{
			Ticker:      col(row, 0),
			Name:        col(row, 1),
			Description: col(row, 2),
		})
	}
	return entries, nil
}

// LoadScenarioEntries reads the stress scenario descriptions (columns A-C).
func LoadScenarioEntries(path string) ([]domain.ScenarioEntry, error) {
	rows, err := legendRows(path, LegendScenarioSheet)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.ScenarioEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.ScenarioEntry{
			Scenario:    col(row, 0),
			Name:        col(row, 1),
			Description: col(row, 2),
		})
	}
	return entries, nil
}

func legendRows(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}
	// first row is the header
	return rows[1:], nil
}

func col(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}
