// Package dataprocessing turns raw stress-test sheets into typed record
// sets. It owns the compound sheet-key convention, header-based column
// inference, and the Total-row versus by-strategy extraction modes.
//
// A stress workbook carries one sheet per (portfolio, scenario) pair,
// named "PORTFOLIO&&SCENARIO". Each sheet's header row locates the date,
// scenario, and stress value columns by case-insensitive substring match,
// so cosmetic header differences between report producers do not break
// extraction. Sheets missing a required column fail with a
// SheetSchemaError naming the sheet and the pattern.
package dataprocessing
