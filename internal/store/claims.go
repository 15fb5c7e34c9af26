package store

import (
	"context"

	"github.com/hotelrisk/riskadvisor/internal/model"
)

// FetchClaims retrieves the claim records for a client from the Consulting
// system. The store-side formula narrows by client name only; every other
// predicate is applied by the in-process evaluator. Results are sorted by
// incident date, newest first, so repeated queries see a stable order.
func (c *Client) FetchClaims(ctx context.Context, clientMatcher string) ([]model.ClaimRecord, error) {
	records, err := c.listRecords(ctx, c.cfg.ConsultingBaseID, c.cfg.IncidentsTableID, listOptions{
		FilterFormula: clientNameFormula(clientMatcher),
		SortField:     "Incident Date",
		SortDirection: "desc",
	})
	if err != nil {
		return nil, err
	}

	claims := make([]model.ClaimRecord, 0, len(records))
	for _, rec := range records {
		claims = append(claims, decodeClaim(rec))
	}
	return claims, nil
}

// decodeClaim maps a raw record onto the claim snapshot. Lookup fields that
// can appear under more than one column fall through in preference order.
func decodeClaim(rec record) model.ClaimRecord {
	f := rec.Fields

	claim := model.ClaimRecord{
		ID:           rec.ID,
		ClaimNumber:  fieldString(f, "Claim #"),
		ClientName:   fieldString(f, "Client Name", "Corporate Name", "DBA (from Location)", "Companies"),
		Status:       model.ClaimStatus(fieldString(f, "Status")),
		Category:     fieldString(f, "Claim Type"),
		Amount:       fieldDecimal(f, "Incurred"),
		Paid:         fieldDecimal(f, "Paid - Rollup"),
		Reserved:     fieldDecimalLast(f, "Reserved Helper"),
		PolicyYear:   fieldInt(f, "Policy Year"),
		IncidentDate: fieldString(f, "Incident Date", "DOL"),
		ClosedDate:   fieldString(f, "Closed Date"),

		Property:     fieldString(f, "DBA (from Location)"),
		Corporate:    fieldString(f, "Corporate Name"),
		Claimant:     fieldString(f, "Involved Party (From Involved Party)", "Involved Party copy"),
		Cause:        fieldString(f, "Cause of Loss Rollup Output", "Cause of Loss (from Cause of Loss)"),
		Hazard:       fieldString(f, "Risk/Hazard (From Risk/Hazard)"),
		Location:     fieldString(f, "Location of Incident"),
		Description:  fieldString(f, "Brief Description"),
		Carrier:      fieldString(f, "Carrier", "Carrier (from Policies)"),
		PolicyNumber: fieldString(f, "Policy # (from Policies)"),
		AttorneyRep:  fieldBool(f, "Attorney Representation"),
	}

	claim.Developments = ParseDevelopments(fieldString(f, "Activity Rollup Raw Data"))
	return claim
}
