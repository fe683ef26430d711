package report

import (
	"github.com/saralbooks/billing-api/internal/domain"
)

// ComputeInvoiceProfitability derives per-invoice and aggregate gross
// profit for a period. Cost of goods is each line's quantity times the
// product's recorded purchase price; an unresolved product contributes
// zero cost, which understates COGS rather than failing the report.
// Sales returns in the period reduce the aggregate at their tax-exclusive
// value (a margin-neutral reversal).
func ComputeInvoiceProfitability(
	sales []domain.Invoice,
	products []domain.Product,
	salesReturns []domain.ReturnDoc,
	period domain.Period,
) domain.ProfitAndLoss {
	costBasis := make(map[string]float64, len(products))
	for _, p := range products {
		costBasis[p.ID] = p.PurchasePrice
	}

	result := domain.ProfitAndLoss{
		Period:     period,
		PerInvoice: []domain.InvoiceProfit{},
	}

	var rawProfit float64
	for _, inv := range QualifyingInvoices(sales, period) {
		var cost float64
		for _, item := range inv.Items {
			cost += item.Quantity * costBasis[item.ProductID]
		}

		taxable := taxableOf(inv.Subtotal, inv.TaxTotal, inv.TotalAmount)
		profit := taxable - cost

		result.PerInvoice = append(result.PerInvoice, domain.InvoiceProfit{
			InvoiceID:     inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			IssueDate:     normalizeDate(inv.IssueDate),
			PartyName:     inv.PartyName,
			TaxableValue:  taxable,
			CostTotal:     cost,
			Profit:        profit,
			MarginPct:     margin(profit, taxable),
		})

		result.TotalSales += taxable
		result.TotalCOGS += cost
		rawProfit += profit
	}

	for _, r := range salesReturns {
		if r.Type == domain.ReturnTypePurchase {
			continue
		}
		if !inPeriod(period, r.ReturnDate) {
			continue
		}
		result.SalesReturnsTaxable += taxableOf(r.Subtotal, r.TaxTotal, r.TotalAmount)
	}

	result.GrossProfit = rawProfit - result.SalesReturnsTaxable
	result.MarginPct = margin(result.GrossProfit, result.TotalSales-result.SalesReturnsTaxable)
	return result
}
