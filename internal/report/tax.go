package report

import (
	"github.com/saralbooks/billing-api/internal/domain"
)

// AggregateTax computes the GSTR-3B shape for a period: outward liability
// from sales, inward input-tax-credit from purchases, and the net payable
// after offsetting. Returns of the matching type are aggregated the same
// way and subtracted from the raw totals.
func AggregateTax(
	sales []domain.Invoice,
	purchases []domain.Purchase,
	returns []domain.ReturnDoc,
	homeState string,
	period domain.Period,
) domain.TaxSummary {
	var outward, inward domain.TaxBucket

	for _, inv := range QualifyingInvoices(sales, period) {
		accumulate(&outward,
			taxableOf(inv.Subtotal, inv.TaxTotal, inv.TotalAmount),
			inv.TaxTotal,
			grossOf(inv.Subtotal, inv.TaxTotal, inv.TotalAmount),
			interState(inv.SupplyPlace, homeState),
		)
	}

	for _, p := range purchases {
		if !inPeriod(period, p.PurchaseDate) {
			continue
		}
		accumulate(&inward,
			taxableOf(p.Subtotal, p.TaxTotal, p.TotalAmount),
			p.TaxTotal,
			grossOf(p.Subtotal, p.TaxTotal, p.TotalAmount),
			interState(p.SupplyPlace, homeState),
		)
	}

	var salesReturns, purchaseReturns domain.TaxBucket
	for _, r := range returns {
		if !inPeriod(period, r.ReturnDate) {
			continue
		}
		bucket := &salesReturns
		if r.Type == domain.ReturnTypePurchase {
			bucket = &purchaseReturns
		}
		accumulate(bucket,
			taxableOf(r.Subtotal, r.TaxTotal, r.TotalAmount),
			r.TaxTotal,
			grossOf(r.Subtotal, r.TaxTotal, r.TotalAmount),
			interState(returnPlace(r), homeState),
		)
	}

	subtract(&outward, salesReturns)
	subtract(&inward, purchaseReturns)

	return domain.TaxSummary{
		Outward:       outward,
		Inward:        inward,
		NetTaxPayable: outward.TotalTax - inward.TotalTax,
	}
}

// returnPlace resolves a return's jurisdiction: its own supply place,
// then the related party's state, then empty (intra-state by default).
func returnPlace(r domain.ReturnDoc) string {
	if r.SupplyPlace != "" {
		return r.SupplyPlace
	}
	return r.PartyState
}

// accumulate adds one document to a bucket. Intra-state tax is split into
// equal central and state halves; inter-state tax accrues as integrated.
func accumulate(b *domain.TaxBucket, taxable, tax, gross float64, inter bool) {
	b.TaxableValue += taxable
	b.TotalGross += gross
	b.TotalTax += tax
	if inter {
		b.IntegratedTax += tax
	} else {
		b.CentralTax += tax / 2
		b.StateTax += tax / 2
	}
}

func subtract(b *domain.TaxBucket, r domain.TaxBucket) {
	b.TaxableValue -= r.TaxableValue
	b.TotalGross -= r.TotalGross
	b.TotalTax -= r.TotalTax
	b.IntegratedTax -= r.IntegratedTax
	b.CentralTax -= r.CentralTax
	b.StateTax -= r.StateTax
}
