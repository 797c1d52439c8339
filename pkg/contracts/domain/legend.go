package domain

// LegendEntry maps a portfolio ticker to its display name. Columns A-C of
// the legend workbook's portfolio sheet.
type LegendEntry struct {
	Ticker      string `json:"ticker" csv:"Ticker"`
	Name        string `json:"name" csv:"Name"`
	Description string `json:"description" csv:"Description"`
}

// ScenarioEntry describes one stress scenario. Columns A-C of the legend
// workbook's scenario sheet.
type ScenarioEntry struct {
	Scenario    string `json:"scenario" csv:"Scenario"`
	Name        string `json:"name" csv:"Name"`
	Description string `json:"description" csv:"Description"`
}
