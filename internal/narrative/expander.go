// Package narrative turns the consultant's raw notes into the structured
// narrative record used by the document populator. The expansion service is
// an LLM behind a narrow interface so orchestration can be tested with a
// fake implementation.
package narrative

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jonathan/report-engine/internal/llm"
	"github.com/jonathan/report-engine/internal/prompts"
	"github.com/jonathan/report-engine/internal/schemas"
	"github.com/jonathan/report-engine/internal/types"
	rootschemas "github.com/jonathan/report-engine/schemas"
)

// Expander produces a narrative record from raw assessment notes.
type Expander interface {
	Expand(ctx context.Context, notes string) (*types.NarrativeRecord, error)
}

const (
	// maxTransportAttempts bounds retries of transport-level failures per call.
	maxTransportAttempts = 3
	// defaultBackoffBase is the initial delay between transport retries.
	defaultBackoffBase = 500 * time.Millisecond
)

// LLMExpander implements Expander on top of an llm.Client. A malformed
// reply gets exactly one corrective round-trip; transport errors get a
// bounded number of retries with exponential backoff.
type LLMExpander struct {
	client      llm.Client
	tier        llm.ModelTier
	backoffBase time.Duration
	system      string
}

// Option configures an LLMExpander.
type Option func(*LLMExpander)

// WithTier overrides the model tier used for expansion.
func WithTier(tier llm.ModelTier) Option {
	return func(e *LLMExpander) { e.tier = tier }
}

// WithBackoffBase overrides the initial transport retry delay (tests use 0).
func WithBackoffBase(d time.Duration) Option {
	return func(e *LLMExpander) { e.backoffBase = d }
}

// NewExpander creates an LLM-backed expander.
func NewExpander(client llm.Client, opts ...Option) *LLMExpander {
	e := &LLMExpander{
		client:      client,
		tier:        llm.TierAdvanced,
		backoffBase: defaultBackoffBase,
		system:      prompts.MustGet("narrative.json", "narrative-system"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand sends the notes to the expansion service and returns the validated
// narrative record. Blank notes are rejected before any call is made.
func (e *LLMExpander) Expand(ctx context.Context, notes string) (*types.NarrativeRecord, error) {
	if !hasContent(notes) {
		return nil, &ExpansionError{Message: "notes are empty"}
	}

	raw, err := e.callWithRetry(ctx, func() (string, error) {
		return e.client.GenerateJSON(ctx, e.system, notes, e.tier)
	})
	if err != nil {
		return nil, &ExpansionError{Message: "expansion service unreachable", Cause: err}
	}

	record, decodeErr := decodeRecord(raw)
	if decodeErr == nil {
		return record, nil
	}

	// One corrective round-trip: show the model its own reply and the
	// contract problem, then re-validate. A second bad reply is final.
	fix := prompts.Format(prompts.MustGet("narrative.json", "fix-invalid-json"),
		map[string]string{"Problem": decodeErr.Error()})
	turns := []llm.Turn{
		{Role: llm.RoleUser, Text: notes},
		{Role: llm.RoleModel, Text: raw},
		{Role: llm.RoleUser, Text: fix},
	}

	raw, err = e.callWithRetry(ctx, func() (string, error) {
		return e.client.ContinueJSON(ctx, e.system, turns, e.tier)
	})
	if err != nil {
		return nil, &ExpansionError{Message: "expansion service unreachable during correction", Cause: err}
	}

	record, decodeErr = decodeRecord(raw)
	if decodeErr != nil {
		return nil, &ExpansionError{Message: "response still malformed after correction", Cause: decodeErr}
	}
	return record, nil
}

// callWithRetry runs fn up to maxTransportAttempts times with exponential
// backoff, honouring context cancellation between attempts.
func (e *LLMExpander) callWithRetry(ctx context.Context, fn func() (string, error)) (string, error) {
	var lastErr error
	delay := e.backoffBase
	for attempt := 0; attempt < maxTransportAttempts; attempt++ {
		if attempt > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
		out, err := fn()
		if err == nil {
			return out, nil
		}
		lastErr = err
	}
	return "", lastErr
}

// decodeRecord parses and validates a raw reply against the narrative
// contract: valid JSON, conforming to the embedded schema, and passing the
// typed arity checks.
func decodeRecord(raw string) (*types.NarrativeRecord, error) {
	cleaned := llm.CleanJSONBlock(raw)

	var record types.NarrativeRecord
	if err := json.Unmarshal([]byte(cleaned), &record); err != nil {
		return nil, err
	}
	if err := schemas.ValidateJSONString(rootschemas.NarrativeRecord, cleaned); err != nil {
		return nil, err
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return &record, nil
}

func hasContent(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}
