// Package pipeline sequences the medallion stages: bronze scan, silver
// cleaning, gold aggregation. Stages run strictly one at a time, fail fast,
// and hand each other nothing but the immutable file artifact the previous
// stage wrote. A silver failure means gold never runs.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"medallion/pkg/audit"
	"medallion/pkg/bronze"
	"medallion/pkg/config"
	"medallion/pkg/gold"
	"medallion/pkg/parser"
	"medallion/pkg/report"
	"medallion/pkg/schema"
	"medallion/pkg/silver"
)

// Stage names used in errors and the audit store.
const (
	StageBronze = "bronze"
	StageSilver = "silver"
	StageGold   = "gold"
)

// Stats artifact file names, written next to each stage's output.
const (
	FileCleaningStats    = "cleaning_stats.json"
	FileAggregationStats = "aggregation_stats.json"
)

// Pipeline runs the medallion stages against a fixed configuration. The
// audit store is optional; a nil store disables persistence but never the
// logged audit trail.
type Pipeline struct {
	cfg    config.Config
	store  *audit.Store
	logger *slog.Logger
}

// New builds a pipeline. store may be nil.
func New(cfg config.Config, store *audit.Store) *Pipeline {
	return &Pipeline{cfg: cfg, store: store, logger: slog.Default()}
}

// BronzeOutcome reports one raw store scan.
type BronzeOutcome struct {
	Scan     *bronze.ScanResult `json:"scan"`
	Duration time.Duration      `json:"duration"`
}

// SilverOutcome reports one cleaning run.
type SilverOutcome struct {
	RunID      string                `json:"runId"`
	Result     *silver.Result        `json:"result"`
	Warnings   []parser.ParseWarning `json:"warnings,omitempty"`
	OutputPath string                `json:"outputPath"`
	Duration   time.Duration         `json:"duration"`
}

// GoldOutcome reports one aggregation run.
type GoldOutcome struct {
	RunID     string        `json:"runId"`
	Result    *gold.Result  `json:"result"`
	OutputDir string        `json:"outputDir"`
	Duration  time.Duration `json:"duration"`
}

// RunOutcome reports one full bronze-to-gold run.
type RunOutcome struct {
	Silver *SilverOutcome `json:"silver"`
	Gold   *GoldOutcome   `json:"gold"`
}

// Bronze scans the raw store and logs what it found.
func (p *Pipeline) Bronze(ctx context.Context) (*BronzeOutcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	scan, err := bronze.Scan(p.cfg.BronzeDir)
	if err != nil {
		return nil, schema.StageFailure(StageBronze, err)
	}

	for _, file := range scan.Files {
		p.logger.Info("bronze file",
			"name", file.Name,
			"rows", file.Rows,
			"columns", len(file.Columns),
			"size_bytes", file.SizeBytes,
			"warnings", file.Warnings,
		)
	}
	for _, name := range scan.Failed {
		p.logger.Warn("bronze file unreadable", "name", name)
	}
	p.logger.Info("bronze scan complete",
		"dir", p.cfg.BronzeDir,
		"files", len(scan.Files),
		"failed", len(scan.Failed),
	)

	return &BronzeOutcome{Scan: scan, Duration: time.Since(start)}, nil
}

// Silver cleans the raw input table and writes the cleaned CSV plus a
// statistics artifact. Fatal errors abort before any output file exists.
func (p *Pipeline) Silver(ctx context.Context) (*SilverOutcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	runID := audit.NewRunID()
	start := time.Now()

	outcome, err := p.runSilver(ctx, runID)
	finished := time.Now()

	if p.store != nil {
		var stats any
		succeeded := err == nil
		if succeeded {
			stats = outcome.Result.Stats
		} else {
			stats = map[string]string{"error": err.Error()}
		}
		if auditErr := p.store.RecordRun(ctx, runID, StageSilver, start, finished, succeeded, stats); auditErr != nil {
			p.logger.Warn("audit record failed", "stage", StageSilver, "error", auditErr)
		}
		if succeeded {
			if auditErr := p.store.RecordCleaning(ctx, runID, outcome.Result); auditErr != nil {
				p.logger.Warn("cleaning audit failed", "run_id", runID, "error", auditErr)
			}
		}
	}

	if err != nil {
		return nil, err
	}
	outcome.Duration = finished.Sub(start)
	return outcome, nil
}

func (p *Pipeline) runSilver(ctx context.Context, runID string) (*SilverOutcome, error) {
	inputPath := p.cfg.BronzePath()
	p.logger.Info("silver stage started", "run_id", runID, "input", inputPath)

	parsed, err := parser.ReadFile(inputPath)
	if err != nil {
		return nil, schema.StageFailure(StageSilver, err)
	}
	for _, warning := range parsed.Warnings {
		p.logger.Warn("parse warning", "row", warning.Row, "message", warning.Message)
	}

	result, err := silver.Clean(parsed.Table)
	if err != nil {
		return nil, schema.StageFailure(StageSilver, err)
	}

	for old, renamed := range result.HeaderRenames {
		p.logger.Info("column renamed", "from", old, "to", renamed)
	}
	for column, fills := range result.Stats.MissingValuesFilled {
		p.logger.Info("missing values filled", "column", column, "count", fills)
	}
	for _, drop := range result.CoercionDrops {
		p.logger.Warn("record dropped: type coercion failure",
			"row", drop.Row, "column", drop.Column, "raw_value", drop.RawValue)
	}
	for _, rejection := range result.Rejections {
		for _, violation := range rejection.Violations {
			p.logger.Warn("record rejected",
				"row", rejection.Row,
				"employee_id", rejection.EmployeeID,
				"name", rejection.Name,
				"rule", string(violation.Rule),
				"value", violation.Value,
			)
		}
	}

	outputPath := p.cfg.SilverPath()
	if err := parser.WriteFile(outputPath, result.Table); err != nil {
		return nil, schema.StageFailure(StageSilver, err)
	}
	if err := report.WriteStatsJSON(filepath.Join(p.cfg.SilverDir, FileCleaningStats), result); err != nil {
		return nil, schema.StageFailure(StageSilver, err)
	}

	p.logger.Info("silver stage complete",
		"run_id", runID,
		"original", result.Stats.OriginalCount,
		"duplicates_removed", result.Stats.DuplicatesRemoved,
		"invalid_removed", result.Stats.InvalidRemoved,
		"coercion_dropped", result.Stats.CoercionDropped,
		"missing_filled", result.Stats.TotalFilled(),
		"final", result.Stats.FinalCount,
		"retention_rate", fmt.Sprintf("%.2f%%", result.Stats.RetentionRate*100),
	)

	return &SilverOutcome{
		RunID:      runID,
		Result:     result,
		Warnings:   parsed.Warnings,
		OutputPath: outputPath,
	}, nil
}

// Gold reads the cleaned table, computes every derived view, and writes the
// Gold artifacts. Fatal errors abort before any output file exists.
func (p *Pipeline) Gold(ctx context.Context) (*GoldOutcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	runID := audit.NewRunID()
	start := time.Now()

	outcome, err := p.runGold(ctx, runID)
	finished := time.Now()

	if p.store != nil {
		var stats any
		succeeded := err == nil
		if succeeded {
			stats = outcome.Result.Stats
		} else {
			stats = map[string]string{"error": err.Error()}
		}
		if auditErr := p.store.RecordRun(ctx, runID, StageGold, start, finished, succeeded, stats); auditErr != nil {
			p.logger.Warn("audit record failed", "stage", StageGold, "error", auditErr)
		}
	}

	if err != nil {
		return nil, err
	}
	outcome.Duration = finished.Sub(start)
	return outcome, nil
}

func (p *Pipeline) runGold(ctx context.Context, runID string) (*GoldOutcome, error) {
	inputPath := p.cfg.SilverPath()
	p.logger.Info("gold stage started", "run_id", runID, "input", inputPath)

	employees, err := p.loadCleaned(inputPath)
	if err != nil {
		return nil, schema.StageFailure(StageGold, err)
	}

	result := gold.Aggregate(employees, gold.Options{TopN: p.cfg.TopEarners})

	written, err := report.WriteGold(p.cfg.GoldDir, result, p.cfg.TopEarners)
	if err != nil {
		return nil, schema.StageFailure(StageGold, err)
	}
	result.Stats.DatasetsGenerated = written

	statsArtifact := struct {
		Stats   gold.Stats            `json:"stats"`
		Summary gold.ExecutiveSummary `json:"summary"`
	}{Stats: result.Stats, Summary: result.Summary}
	if err := report.WriteStatsJSON(filepath.Join(p.cfg.GoldDir, FileAggregationStats), statsArtifact); err != nil {
		return nil, schema.StageFailure(StageGold, err)
	}

	p.logger.Info("gold stage complete",
		"run_id", runID,
		"employees", result.Stats.TotalEmployees,
		"departments", result.Stats.TotalDepartments,
		"roles", result.Stats.TotalRoles,
		"datasets", result.Stats.DatasetsGenerated,
	)

	return &GoldOutcome{
		RunID:     runID,
		Result:    result,
		OutputDir: p.cfg.GoldDir,
	}, nil
}

// loadCleaned reads a cleaned table back into typed records. Cleaned input
// is a contract: a missing column or non-integer numeric means the file is
// not a silver artifact, which is fatal rather than a per-record drop.
func (p *Pipeline) loadCleaned(path string) ([]schema.Employee, error) {
	parsed, err := parser.ReadFile(path)
	if err != nil {
		return nil, err
	}

	normalized, _ := schema.NormalizeHeaders(parsed.Table)
	projected, err := normalized.Project(schema.ColumnNames())
	if err != nil {
		return nil, err
	}

	employees, drops := silver.Coerce(projected)
	if len(drops) > 0 {
		first := drops[0]
		return nil, fmt.Errorf("%w: %s: row %d column %q is not numeric (%q)",
			schema.ErrSourceUnreadable, path, first.Row, first.Column, first.RawValue)
	}
	return employees, nil
}

// Run executes silver then gold. The gold stage is never invoked when
// silver fails.
func (p *Pipeline) Run(ctx context.Context) (*RunOutcome, error) {
	silverOutcome, err := p.Silver(ctx)
	if err != nil {
		return nil, err
	}
	goldOutcome, err := p.Gold(ctx)
	if err != nil {
		return &RunOutcome{Silver: silverOutcome}, err
	}
	return &RunOutcome{Silver: silverOutcome, Gold: goldOutcome}, nil
}
