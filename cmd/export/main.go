// Command export dumps the dashboard views to the configured export
// directory: per-portfolio correlation series and summaries over the
// full loaded range, plus the stress views for the most recent date.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"riskdesk/internal/config"
	"riskdesk/internal/exporter"
	"riskdesk/internal/infrastructure"
	"riskdesk/internal/services"
	"riskdesk/internal/workbook"
)

func main() {
	format := flag.String("format", exporter.FormatXLSX, "export format: xlsx or csv")
	flag.Parse()
	if *format != exporter.FormatXLSX && *format != exporter.FormatCSV {
		fmt.Fprintf(os.Stderr, "unsupported format %q\n", *format)
		os.Exit(2)
	}

	if err := run(*format); err != nil {
		slog.Error("export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(format string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	ctx := context.Background()
	store := workbook.NewStore(logger)
	legend := services.NewLegendService(store, cfg.Data.LegendFile, logger)
	correlation := services.NewCorrelationService(store, cfg.Data.CorrelationFile, legend, logger)
	stress := services.NewStressService(store, cfg.Data.StressFile, legend, logger)

	if err := os.MkdirAll(cfg.Data.ExportDir, 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	write := func(stem string, payload []byte) error {
		path := filepath.Join(cfg.Data.ExportDir, exporter.WithExt(stem, format))
		if err := os.WriteFile(path, payload, 0644); err != nil {
			return err
		}
		logger.Info("wrote export", slog.String("path", path), slog.Int("bytes", len(payload)))
		return nil
	}

	// Per-portfolio correlation series and summaries over the full
	// loaded range.
	portfolios, err := correlation.Portfolios(ctx)
	if err != nil {
		return err
	}
	for _, p := range portfolios {
		view, err := correlation.Series(ctx, services.SeriesRequest{Portfolio: p.ID})
		if err != nil {
			logger.Warn("skipping portfolio series",
				slog.String("portfolio", p.ID),
				slog.String("error", err.Error()))
			continue
		}
		payload, err := exporter.SeriesPayload(format, view)
		if err != nil {
			return err
		}
		stem := fmt.Sprintf("%s_%s", exporter.FileCorrelation, exporter.FileStem(p.ID))
		if err := write(stem, payload); err != nil {
			return err
		}

		summaries, err := correlation.Summary(ctx, services.SeriesRequest{Portfolio: p.ID})
		if err != nil {
			logger.Warn("skipping portfolio summary",
				slog.String("portfolio", p.ID),
				slog.String("error", err.Error()))
			continue
		}
		payload, err = exporter.SummaryPayload(format, summaries)
		if err != nil {
			return err
		}
		stem = fmt.Sprintf("%s_%s", exporter.FileSummary, exporter.FileStem(p.ID))
		if err := write(stem, payload); err != nil {
			return err
		}
	}

	// Stress views for the most recent date.
	dates, err := stress.Dates(ctx)
	if err != nil {
		return err
	}
	if len(dates) == 0 {
		return fmt.Errorf("stress workbook contains no dated Total rows")
	}
	latest := dates[len(dates)-1]

	records, err := stress.PnL(ctx, services.StressRequest{Date: latest})
	if err != nil {
		return err
	}
	payload, err := exporter.StressPayload(format, records)
	if err != nil {
		return err
	}
	if err := write(exporter.FileStressPnL, payload); err != nil {
		return err
	}

	resolve := legend.Resolve(ctx)

	// One by-strategy file per (portfolio, scenario) pair present on
	// the latest date.
	for _, rec := range records {
		details, err := stress.Details(ctx, services.TreemapRequest{
			Date:      latest,
			Portfolio: rec.Portfolio,
			Scenario:  rec.ScenarioName,
		})
		if err != nil {
			logger.Warn("skipping by-strategy",
				slog.String("portfolio", rec.Portfolio),
				slog.String("scenario", rec.ScenarioName),
				slog.String("error", err.Error()))
			continue
		}
		payload, err := exporter.DetailPayload(format, details)
		if err != nil {
			return err
		}
		stem := fmt.Sprintf("%s_%s_%s",
			exporter.FileByStrategy,
			exporter.FileStem(resolve(rec.Portfolio)),
			exporter.FileStem(rec.ScenarioName))
		if err := write(stem, payload); err != nil {
			return err
		}
	}

	// One comparison file per portfolio present on the latest date.
	seen := map[string]bool{}
	for _, rec := range records {
		if seen[rec.Portfolio] {
			continue
		}
		seen[rec.Portfolio] = true
		comparison, err := stress.Comparison(ctx, services.ComparisonRequest{Date: latest, Subject: rec.Portfolio})
		if err != nil {
			logger.Warn("skipping comparison",
				slog.String("portfolio", rec.Portfolio),
				slog.String("error", err.Error()))
			continue
		}
		payload, err := exporter.ComparisonPayload(format, comparison)
		if err != nil {
			return err
		}
		if err := write(exporter.ComparisonFileName(resolve(rec.Portfolio)), payload); err != nil {
			return err
		}
	}
	return nil
}
