// Package report computes GST and profitability aggregates from billing
// records. Every function is pure: it takes already-fetched rows, holds no
// state, performs no I/O, and substitutes zero for missing numeric fields
// instead of failing. Callers may invoke them concurrently.
package report

import (
	"strings"

	"github.com/saralbooks/billing-api/internal/domain"
)

// normalizeDate reduces a date value to its YYYY-MM-DD part so that plain
// dates and RFC3339 timestamps coming off PostgREST compare uniformly.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// inPeriod reports whether date falls inside the inclusive period.
// An empty bound is open-ended; a document without a date only qualifies
// when both bounds are open.
func inPeriod(p domain.Period, date string) bool {
	d := normalizeDate(date)
	if from := normalizeDate(p.From); from != "" && d < from {
		return false
	}
	if to := normalizeDate(p.To); to != "" && d > to {
		return false
	}
	return true
}

// countsForRevenue excludes draft and void invoices from all aggregates.
func countsForRevenue(status string) bool {
	return status != domain.InvoiceStatusDraft && status != domain.InvoiceStatusVoid
}

// QualifyingInvoices returns the sales documents that contribute to
// revenue, tax and profit aggregates for the period: dated inside it and
// neither draft nor void. Input order is preserved.
func QualifyingInvoices(sales []domain.Invoice, period domain.Period) []domain.Invoice {
	out := make([]domain.Invoice, 0, len(sales))
	for _, inv := range sales {
		if !countsForRevenue(inv.Status) {
			continue
		}
		if !inPeriod(period, inv.IssueDate) {
			continue
		}
		out = append(out, inv)
	}
	return out
}

// taxableOf returns the tax-exclusive value of a document, deriving it
// from total and tax when the subtotal column is absent.
func taxableOf(subtotal, taxTotal, total float64) float64 {
	if subtotal != 0 {
		return subtotal
	}
	if total != 0 {
		return total - taxTotal
	}
	return 0
}

// grossOf mirrors taxableOf for the tax-inclusive amount.
func grossOf(subtotal, taxTotal, total float64) float64 {
	if total != 0 {
		return total
	}
	return subtotal + taxTotal
}

// interState reports whether a supply crosses out of the home state.
// Comparison is case-insensitive; when either side is missing the supply
// is not comparable and defaults to intra-state.
func interState(supplyPlace, homeState string) bool {
	place := strings.TrimSpace(supplyPlace)
	home := strings.TrimSpace(homeState)
	if place == "" || home == "" {
		return false
	}
	return !strings.EqualFold(place, home)
}

// margin returns profit as a percentage of taxable value, and 0 when the
// taxable value is 0 regardless of profit sign.
func margin(profit, taxable float64) float64 {
	if taxable == 0 {
		return 0
	}
	return profit / taxable * 100
}
