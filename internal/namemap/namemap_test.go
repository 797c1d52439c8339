package namemap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"riskdesk/pkg/contracts/domain"
)

func TestResolve(t *testing.T) {
	m := New([]domain.LegendEntry{
		{Ticker: "E7X", Name: "Euro Macro"},
		{Ticker: "B2K", Name: "Bond Kappa"},
		{Ticker: "", Name: "ignored"},
		{Ticker: "NIL", Name: ""},
	})

	tests := []struct {
		name string
		id   string
		want string
	}{
		{name: "mapped", id: "E7X", want: "Euro Macro"},
		{name: "unmapped falls back to identity", id: "ZZZ", want: "ZZZ"},
		{name: "empty display name falls back", id: "NIL", want: "NIL"},
		{name: "empty id", id: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Resolve(tt.id))
		})
	}
}

func TestResolveLaterDuplicateWins(t *testing.T) {
	m := New([]domain.LegendEntry{
		{Ticker: "E7X", Name: "Old Name"},
		{Ticker: "E7X", Name: "New Name"},
	})

	assert.Equal(t, "New Name", m.Resolve("E7X"))
}

func TestResolveNilMap(t *testing.T) {
	var m *Map
	assert.Equal(t, "E7X", m.Resolve("E7X"))
}

func TestExportName(t *testing.T) {
	m := New([]domain.LegendEntry{{Ticker: "E7X", Name: "Euro Macro Fund"}})

	assert.Equal(t, "euro_macro_fund", m.ExportName("E7X"))
	assert.Equal(t, "zzz", m.ExportName("ZZZ"))
}
