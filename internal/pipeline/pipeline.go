// Package pipeline orchestrates the query flow: interpret free text, fetch
// claim records, evaluate filters, aggregate, and assemble the report.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hotelrisk/riskadvisor/internal/aggregate"
	"github.com/hotelrisk/riskadvisor/internal/filter"
	"github.com/hotelrisk/riskadvisor/internal/llm"
	"github.com/hotelrisk/riskadvisor/internal/model"
	"github.com/hotelrisk/riskadvisor/internal/query"
	"github.com/hotelrisk/riskadvisor/internal/report"
	"go.uber.org/zap"
)

// RecordStore fetches claim records for a client.
type RecordStore interface {
	FetchClaims(ctx context.Context, clientMatcher string) ([]model.ClaimRecord, error)
}

// Pipeline wires the query interpreter, the record store, and the report
// assembler together.
type Pipeline struct {
	store       RecordStore
	vocab       *query.Vocabulary
	commentator *llm.Commentator
	logger      *zap.Logger
	now         func() time.Time
}

// NewPipeline creates a pipeline. The commentator may be disabled; the
// logger may be nil.
func NewPipeline(store RecordStore, vocab *query.Vocabulary, commentator *llm.Commentator, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		store:       store,
		vocab:       vocab,
		commentator: commentator,
		logger:      logger,
		now:         time.Now,
	}
}

// QueryResult is the outcome of one interpreted query.
type QueryResult struct {
	RequestID string
	Spec      *model.FilterSpecification
	Matches   []model.ClaimRecord
	Aggregate model.Aggregate
}

// RunQuery interprets raw text, fetches the candidate records, and applies
// every filter in-process. The store-side narrowing is an optimization only.
func (p *Pipeline) RunQuery(ctx context.Context, raw string) (*QueryResult, error) {
	requestID := uuid.NewString()
	log := p.logger.With(zap.String("request_id", requestID))

	spec, err := query.Parse(raw, p.vocab)
	if err != nil {
		return nil, fmt.Errorf("interpret query: %w", err)
	}
	log.Info("interpreted query",
		zap.String("client", spec.ClientMatcher),
		zap.String("filters", spec.Describe()))

	records, err := p.store.FetchClaims(ctx, spec.ClientMatcher)
	if err != nil {
		return nil, fmt.Errorf("fetch claims: %w", err)
	}

	matches := filter.Evaluate(spec, records, p.now().Year())
	agg := aggregate.Compute(matches)
	log.Info("evaluated claims",
		zap.Int("fetched", len(records)),
		zap.Int("matched", len(matches)))

	return &QueryResult{
		RequestID: requestID,
		Spec:      spec,
		Matches:   matches,
		Aggregate: agg,
	}, nil
}

// BuildReport runs a query and assembles the executive report document.
// Commentary failures degrade to a report without commentary.
func (p *Pipeline) BuildReport(ctx context.Context, raw string) (*model.ReportDocument, error) {
	result, err := p.RunQuery(ctx, raw)
	if err != nil {
		return nil, err
	}

	doc := report.Assemble(result.Spec.ClientMatcher, result.Spec, result.Aggregate,
		result.Matches, result.RequestID, p.now().UTC())

	if p.commentator.Enabled() {
		commentary, err := p.commentator.Comment(ctx, result.Spec.ClientMatcher,
			result.Spec.Describe(), result.Aggregate)
		if err != nil {
			p.logger.Warn("commentary generation failed", zap.Error(err))
		} else if commentary != "" {
			report.AttachCommentary(doc, commentary)
		}
	}

	return doc, nil
}
