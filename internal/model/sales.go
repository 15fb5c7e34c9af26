package model

import "github.com/shopspring/decimal"

// Opportunity is a Sales system record matched by a /sales search.
type Opportunity struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	CorporateName   string          `json:"corporate_name,omitempty"`
	DBA             string          `json:"dba,omitempty"`
	Status          string          `json:"status,omitempty"`
	MarketStatus    string          `json:"market_status,omitempty"`
	EffectiveDate   string          `json:"effective_date,omitempty"`
	NewRenewal      string          `json:"new_renewal,omitempty"`
	Revenue         decimal.Decimal `json:"revenue"`
	ExpiringRevenue decimal.Decimal `json:"expiring_revenue"`
}

// Label returns the display name for the opportunity, preferring the
// opportunity name over the corporate name.
func (o *Opportunity) Label() string {
	if o.Name != "" {
		return o.Name
	}
	return o.CorporateName
}
