package store

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/hotelrisk/riskadvisor/internal/cache"
	"github.com/hotelrisk/riskadvisor/internal/model"
)

// SearchSales finds sales opportunities matching a name fragment. Results
// are cached for a short TTL keyed on the lowercased search term.
func (c *Client) SearchSales(ctx context.Context, term string) ([]model.Opportunity, error) {
	key := cache.Key("sales", strings.ToLower(strings.TrimSpace(term)))
	if c.cache != nil {
		if data, found := c.cache.Get(key); found {
			var cached []model.Opportunity
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	records, err := c.listRecords(ctx, c.cfg.SalesBaseID, c.cfg.OpportunitiesTableID, listOptions{
		FilterFormula: salesSearchFormula(term),
	})
	if err != nil {
		return nil, err
	}

	opportunities := make([]model.Opportunity, 0, len(records))
	for _, rec := range records {
		opportunities = append(opportunities, decodeOpportunity(rec))
	}

	if c.cache != nil {
		if data, err := json.Marshal(opportunities); err == nil {
			_ = c.cache.Set(key, data, c.cacheTTL)
		}
	}
	return opportunities, nil
}

func decodeOpportunity(rec record) model.Opportunity {
	f := rec.Fields
	return model.Opportunity{
		ID:              rec.ID,
		Name:            fieldString(f, "Opportunity Name"),
		CorporateName:   fieldString(f, "Opportunity Corporate Name"),
		DBA:             fieldString(f, "DBA"),
		Status:          fieldString(f, "Status"),
		MarketStatus:    fieldString(f, "Market Status"),
		EffectiveDate:   fieldString(f, "Effective Date"),
		NewRenewal:      fieldString(f, "N/R"),
		Revenue:         fieldDecimal(f, "Revenue"),
		ExpiringRevenue: fieldDecimal(f, "Expiring Revenue"),
	}
}
