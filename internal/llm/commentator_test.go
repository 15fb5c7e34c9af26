package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hotelrisk/riskadvisor/internal/model"
	"github.com/shopspring/decimal"
)

type fakeProvider struct {
	lastReq CommentRequest
	resp    *CommentResponse
	err     error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Comment(ctx context.Context, req CommentRequest) (*CommentResponse, error) {
	f.lastReq = req
	return f.resp, f.err
}

func testAggregate() model.Aggregate {
	agg := model.NewAggregate()
	agg.TotalCount = 3
	agg.TotalAmount = decimal.NewFromInt(75000)
	agg.AttorneyCount = 1
	agg.ByStatus[model.StatusOpen] = 2
	agg.ByStatus[model.StatusClosed] = 1
	return agg
}

func TestCommentator_Disabled(t *testing.T) {
	c := NewCommentator(nil)

	if c.Enabled() {
		t.Error("Expected commentator without provider to be disabled")
	}

	text, err := c.Comment(context.Background(), "Jasmin", "open claims", testAggregate())
	if err != nil {
		t.Fatalf("Expected no error when disabled, got %v", err)
	}
	if text != "" {
		t.Errorf("Expected empty commentary when disabled, got %q", text)
	}
}

func TestCommentator_PassesAggregates(t *testing.T) {
	fake := &fakeProvider{resp: &CommentResponse{Text: "Exposure is concentrated in open claims."}}
	c := NewCommentator(fake)

	text, err := c.Comment(context.Background(), "Jasmin", "open claims", testAggregate())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if text != "Exposure is concentrated in open claims." {
		t.Errorf("Unexpected commentary: %q", text)
	}
	if fake.lastReq.ClientLabel != "Jasmin" || fake.lastReq.Filters != "open claims" {
		t.Errorf("Request missing context: %+v", fake.lastReq)
	}
	if fake.lastReq.Aggregate.TotalCount != 3 {
		t.Errorf("Expected aggregate carried through, got %+v", fake.lastReq.Aggregate)
	}
}

func TestCommentator_SurfacesProviderError(t *testing.T) {
	fake := &fakeProvider{err: errors.New("api down")}
	c := NewCommentator(fake)

	if _, err := c.Comment(context.Background(), "Jasmin", "", testAggregate()); err == nil {
		t.Fatal("Expected provider error to surface")
	}
}

func TestBuildPrompt_FiguresOnly(t *testing.T) {
	prompt := BuildPrompt(CommentRequest{
		ClientLabel: "Jasmin",
		Filters:     "open claims, over $25,000",
		Aggregate:   testAggregate(),
	})

	for _, want := range []string{"Jasmin", "open claims, over $25,000", "Total claims: 3", "$75,000", "Open claims: 2", "Closed claims: 1"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q\n%s", want, prompt)
		}
	}
}

func TestNewProvider(t *testing.T) {
	if p, err := NewProvider(model.LLMConfig{}); err != nil || p != nil {
		t.Errorf("Expected nil provider for empty config, got %v, %v", p, err)
	}

	if _, err := NewProvider(model.LLMConfig{Provider: "openai"}); err == nil {
		t.Error("Expected error for openai provider without API key")
	}

	if _, err := NewProvider(model.LLMConfig{Provider: "mystery"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}
