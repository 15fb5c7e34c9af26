package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hotelrisk/riskadvisor/internal/model"
)

// Commentator wraps a Provider and degrades gracefully: when no provider is
// configured or the call fails, commentary is simply absent from the report.
type Commentator struct {
	provider Provider
}

// NewCommentator creates a commentator over the given provider. A nil
// provider produces a disabled commentator.
func NewCommentator(provider Provider) *Commentator {
	return &Commentator{provider: provider}
}

// Enabled reports whether commentary generation is configured.
func (c *Commentator) Enabled() bool {
	return c != nil && c.provider != nil
}

// Comment generates executive commentary for the aggregate figures. Returns
// an empty string when disabled.
func (c *Commentator) Comment(ctx context.Context, clientLabel, filters string, agg model.Aggregate) (string, error) {
	if !c.Enabled() {
		return "", nil
	}

	resp, err := c.provider.Comment(ctx, CommentRequest{
		ClientLabel: clientLabel,
		Filters:     filters,
		Aggregate:   agg,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// BuildPrompt renders the commentary prompt. Only aggregate figures and the
// filter description are included.
func BuildPrompt(req CommentRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a 2-3 sentence executive commentary on the claims position for %s.\n\n", req.ClientLabel)
	if req.Filters != "" {
		fmt.Fprintf(&b, "Active filters: %s\n", req.Filters)
	}
	fmt.Fprintf(&b, "Total claims: %d\n", req.Aggregate.TotalCount)
	fmt.Fprintf(&b, "Total incurred: %s\n", model.FormatMoney(req.Aggregate.TotalAmount))
	fmt.Fprintf(&b, "Total paid: %s\n", model.FormatMoney(req.Aggregate.TotalPaid))
	fmt.Fprintf(&b, "Total reserved: %s\n", model.FormatMoney(req.Aggregate.TotalReserved))
	fmt.Fprintf(&b, "Claims with attorney representation: %d\n", req.Aggregate.AttorneyCount)

	if len(req.Aggregate.ByStatus) > 0 {
		statuses := make([]string, 0, len(req.Aggregate.ByStatus))
		for status := range req.Aggregate.ByStatus {
			statuses = append(statuses, string(status))
		}
		sort.Strings(statuses)
		for _, status := range statuses {
			fmt.Fprintf(&b, "%s claims: %d\n", status, req.Aggregate.ByStatus[model.ClaimStatus(status)])
		}
	}

	return b.String()
}
