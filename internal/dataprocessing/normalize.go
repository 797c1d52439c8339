package dataprocessing

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"riskdesk/pkg/contracts/domain"
)

// KeyDelimiter joins portfolio and scenario identifiers in a compound
// stress sheet name, e.g. "E7X&&Rates +100bps".
const KeyDelimiter = "&&"

// SplitSheetKey splits a compound sheet name on the first delimiter
// occurrence. A key without the delimiter is not an error: both identifiers
// fall back to the whole key.
func SplitSheetKey(key string) (portfolio, scenario string) {
	if i := strings.Index(key, KeyDelimiter); i >= 0 {
		return key[:i], key[i+len(KeyDelimiter):]
	}
	return key, key
}

// dateLayouts are the cell formats observed in the source extracts.
// excelize formats date cells according to the workbook's number format,
// so both ISO and the common slashed forms show up.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01-02-06",
	"1/2/06",
	"01/02/2006",
	"2006-01-02 15:04:05",
	"1/2/06 15:04",
}

// ParseDate parses an Excel cell into a date, trying known layouts and the
// raw serial-number representation. The zero time signals an unparsable
// cell; callers decide whether that is tolerable.
func ParseDate(cell string) time.Time {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		// Excel epoch, with the historical 1900 leap-year offset.
		return time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC).AddDate(0, 0, int(serial))
	}
	return time.Time{}
}

// parseValue parses a numeric cell, tolerating thousands separators.
func parseValue(cell string) float64 {
	v, _ := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(cell), ",", ""), 64)
	return v
}

func cellAt(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

// NormalizeTotals extracts the pre-aggregated stress records from one raw
// sheet: only rows whose first column equals "Total" survive, tagged with
// the portfolio and scenario identifiers parsed from the sheet key.
// Rows is the full sheet including the header row.
func NormalizeTotals(sheet string, rows [][]string) ([]domain.StressRecord, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	portfolio, scenario := SplitSheetKey(sheet)
	headers := rows[0]

	dateCol, err := InferColumn(headers, DatePattern)
	if err != nil {
		return nil, &SheetSchemaError{Sheet: sheet, Pattern: DatePattern, Err: err}
	}
	pnlCol, err := InferColumn(headers, StressPnLPattern)
	if err != nil {
		return nil, &SheetSchemaError{Sheet: sheet, Pattern: StressPnLPattern, Err: err}
	}
	scenarioCol, err := InferColumn(headers, ScenarioPattern)
	if err != nil {
		return nil, &SheetSchemaError{Sheet: sheet, Pattern: ScenarioPattern, Err: err}
	}

	var records []domain.StressRecord
	for _, row := range rows[1:] {
		if cellAt(row, 0) != TotalRowName {
			continue
		}
		records = append(records, domain.StressRecord{
			Date:         ParseDate(cellAt(row, dateCol)),
			Scenario:     cellAt(row, scenarioCol),
			StressPnL:    parseValue(cellAt(row, pnlCol)),
			Portfolio:    portfolio,
			ScenarioName: scenario,
		})
	}
	slog.Debug("normalized total rows",
		slog.String("sheet", sheet),
		slog.Int("records", len(records)))
	return records, nil
}

// NormalizeDetails extracts the by-strategy records from one raw sheet.
// The name column is the sheet's first column; date and value columns are
// inferred from the headers. Unparsable dates are coerced to the zero date
// and the row kept; rows named "Total" are excluded.
func NormalizeDetails(sheet string, rows [][]string) ([]domain.StressDetailRecord, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	portfolio, scenario := SplitSheetKey(sheet)
	headers := rows[0]

	dateCol, err := InferColumn(headers, DatePattern)
	if err != nil {
		return nil, &SheetSchemaError{Sheet: sheet, Pattern: DatePattern, Err: err}
	}
	pnlCol, err := InferColumn(headers, StressPnLPattern)
	if err != nil {
		return nil, &SheetSchemaError{Sheet: sheet, Pattern: StressPnLPattern, Err: err}
	}

	var records []domain.StressDetailRecord
	for _, row := range rows[1:] {
		name := cellAt(row, 0)
		if name == "" || name == TotalRowName {
			continue
		}
		records = append(records, domain.StressDetailRecord{
			Name:         name,
			Date:         ParseDate(cellAt(row, dateCol)),
			StressPnL:    parseValue(cellAt(row, pnlCol)),
			Portfolio:    portfolio,
			ScenarioName: scenario,
		})
	}
	slog.Debug("normalized detail rows",
		slog.String("sheet", sheet),
		slog.Int("records", len(records)))
	return records, nil
}
