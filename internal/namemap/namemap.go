// Package namemap resolves short identifiers (tickers, codes) to the
// display names shown on labels, selectors, and exports.
package namemap

import (
	"strings"

	"riskdesk/pkg/contracts/domain"
)

// Map is an immutable ticker-to-display-name mapping built once from the
// legend workbook.
type Map struct {
	names map[string]string
}

// New builds a Map from legend entries. Later duplicates win, matching the
// source table's reading order.
func New(entries []domain.LegendEntry) *Map {
	names := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.Ticker != "" {
			names[e.Ticker] = e.Name
		}
	}
	return &Map{names: names}
}

// Resolve is total: a mapped identifier returns its display name, an
// unmapped one returns itself. Missing mappings are never an error.
func (m *Map) Resolve(id string) string {
	if m != nil {
		if name, ok := m.names[id]; ok && name != "" {
			return name
		}
	}
	return id
}

// ExportName derives a file-name-friendly form of an identifier's display
// name: lower-cased, spaces replaced with underscores.
func (m *Map) ExportName(id string) string {
	return strings.ReplaceAll(strings.ToLower(m.Resolve(id)), " ", "_")
}
