// Package pipeline provides the high-level orchestration for report generation.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/report-engine/internal/charts"
	"github.com/jonathan/report-engine/internal/deck"
	"github.com/jonathan/report-engine/internal/llm"
	"github.com/jonathan/report-engine/internal/narrative"
	"github.com/jonathan/report-engine/internal/observability"
	"github.com/jonathan/report-engine/internal/scoring"
	"github.com/jonathan/report-engine/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Step and category names for progress events.
const (
	CategoryScoring   = "scoring"
	CategoryNarrative = "narrative"
	CategoryCharts    = "charts"
	CategoryDocument  = "document"

	StepValidate   = "validate_request"
	StepComposites = "aggregate_composites"
	StepNarrative  = "expand_narrative"
	StepCharts     = "render_charts"
	StepPopulate   = "populate_deck"
)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	Request      *types.ReportRequest
	TemplatePath string
	OutputDir    string
	APIKey       string
	Verbose      bool

	// Expander overrides the Gemini-backed narrative expander; used by the
	// server and by tests. When nil, one is built from APIKey.
	Expander narrative.Expander

	Logger     *zap.Logger
	OnProgress ProgressCallback
}

// Result holds the outputs of a completed pipeline run.
type Result struct {
	OutputPath      string
	CompositeScores map[string]float64
	Narrative       *types.NarrativeRecord
}

// scoringBranchResult holds the outputs of the scoring and chart branch.
type scoringBranchResult struct {
	composites map[string]float64
	personal   scoring.RadarGroup
	capability scoring.RadarGroup
	chart1     string
	chart2     string
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, category, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			Content:  content,
		})
	}
}

// Run orchestrates one full report build: validation, then narrative
// expansion in parallel with scoring and chart rendering, then template
// population. The request is processed entirely in memory and never
// persisted.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	printer := observability.NewPrinter(os.Stdout)

	req := opts.Request
	if req == nil {
		return nil, fmt.Errorf("report request is missing")
	}

	fmt.Printf("Step 1/4: Validating report request...\n")
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("request validation failed: %w", err)
	}
	if opts.Verbose {
		printer.PrintSummaryRatings(req.SummaryRatings)
	}
	emitProgress(&opts, StepValidate, CategoryScoring,
		fmt.Sprintf("Validated request for %s", req.CandidateName), nil)

	expander := opts.Expander
	if expander == nil {
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), opts.APIKey)
		if err != nil {
			return nil, fmt.Errorf("creating llm client failed: %w", err)
		}
		defer func() { _ = client.Close() }()
		expander = narrative.NewExpander(client)
	}

	// Chart PNGs are written to a run-scoped scratch directory so concurrent
	// builds never collide.
	chartDir, err := os.MkdirTemp("", "report-charts-"+uuid.NewString()[:8]+"-")
	if err != nil {
		return nil, fmt.Errorf("creating chart directory failed: %w", err)
	}
	defer func() { _ = os.RemoveAll(chartDir) }()

	fmt.Printf("Step 2/4: Expanding narrative and scoring traits in parallel...\n")

	g, gCtx := errgroup.WithContext(ctx)

	var record *types.NarrativeRecord
	var scores scoringBranchResult

	g.Go(func() error {
		r, err := expander.Expand(gCtx, req.RawNotes)
		if err != nil {
			return fmt.Errorf("narrative expansion failed: %w", err)
		}
		record = r
		emitProgress(&opts, StepNarrative, CategoryNarrative, "Expanded consultant notes into narrative", nil)
		return nil
	})

	g.Go(func() error {
		composites, err := scoring.AggregateComposites(req.TraitRatings)
		if err != nil {
			return fmt.Errorf("aggregating composites failed: %w", err)
		}
		emitProgress(&opts, StepComposites, CategoryScoring,
			fmt.Sprintf("Aggregated %d composite scores", len(composites)), composites)

		personal, capability, err := scoring.SplitDisplayGroups(req.TraitRatings)
		if err != nil {
			return fmt.Errorf("building radar groups failed: %w", err)
		}

		chart1, chart2, err := charts.RenderBoth(personal, capability, chartDir)
		if err != nil {
			return fmt.Errorf("rendering radar charts failed: %w", err)
		}
		emitProgress(&opts, StepCharts, CategoryCharts, "Rendered radar charts", nil)

		scores = scoringBranchResult{
			composites: composites,
			personal:   personal,
			capability: capability,
			chart1:     chart1,
			chart2:     chart2,
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.Verbose {
		printer.PrintCompositeScores(scores.composites)
		printer.PrintRadarGroups(scores.personal, scores.capability)
		printer.PrintNarrative(record)
	}

	fmt.Printf("Step 3/4: Populating report template...\n")
	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory failed: %w", err)
		}
	}
	outputPath := filepath.Join(opts.OutputDir, req.OutputFileName())

	content := deck.Content{
		CandidateName:  req.CandidateName,
		RoleAndCompany: req.RoleAndCompany,
		Narrative:      record,
		SummaryRatings: &req.SummaryRatings,
		BarScores:      scores.composites,
		RadarChart1:    scores.chart1,
		RadarChart2:    scores.chart2,
		Reasoning:      req.ReasoningScores,
	}
	if err := deck.BuildReport(opts.TemplatePath, outputPath, content, logger); err != nil {
		return nil, fmt.Errorf("populating template failed: %w", err)
	}
	emitProgress(&opts, StepPopulate, CategoryDocument, "Populated report template", nil)

	fmt.Printf("Step 4/4: Done! Report written to %s\n", outputPath)
	return &Result{
		OutputPath:      outputPath,
		CompositeScores: scores.composites,
		Narrative:       record,
	}, nil
}
