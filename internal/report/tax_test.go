package report_test

import (
	"math"
	"testing"

	"github.com/saralbooks/billing-api/internal/domain"
	"github.com/saralbooks/billing-api/internal/report"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func invoice(date, place string, subtotal, tax float64) domain.Invoice {
	return domain.Invoice{
		IssueDate:   date,
		SupplyPlace: place,
		Subtotal:    subtotal,
		TaxTotal:    tax,
		TotalAmount: subtotal + tax,
		Status:      domain.InvoiceStatusFinalized,
	}
}

func april() domain.Period {
	return domain.Period{From: "2025-04-01", To: "2025-04-30"}
}

func TestAggregateTax_IntraStateSplitsEvenly(t *testing.T) {
	sales := []domain.Invoice{invoice("2025-04-10", "MH", 1000, 180)}

	summary := report.AggregateTax(sales, nil, nil, "MH", april())

	out := summary.Outward
	if !almostEqual(out.TaxableValue, 1000) {
		t.Errorf("taxable value: expected 1000, got %f", out.TaxableValue)
	}
	if !almostEqual(out.IntegratedTax, 0) {
		t.Errorf("integrated tax: expected 0, got %f", out.IntegratedTax)
	}
	if !almostEqual(out.CentralTax, 90) || !almostEqual(out.StateTax, 90) {
		t.Errorf("expected 90/90 central/state split, got %f/%f", out.CentralTax, out.StateTax)
	}
	if !almostEqual(out.TotalTax, 180) {
		t.Errorf("total tax: expected 180, got %f", out.TotalTax)
	}
	if !almostEqual(out.TotalGross, 1180) {
		t.Errorf("total gross: expected 1180, got %f", out.TotalGross)
	}
}

func TestAggregateTax_InterStateAccruesIntegrated(t *testing.T) {
	sales := []domain.Invoice{invoice("2025-04-10", "DL", 1000, 180)}

	out := report.AggregateTax(sales, nil, nil, "MH", april()).Outward

	if !almostEqual(out.IntegratedTax, 180) {
		t.Errorf("integrated tax: expected 180, got %f", out.IntegratedTax)
	}
	if !almostEqual(out.CentralTax, 0) || !almostEqual(out.StateTax, 0) {
		t.Errorf("expected no central/state tax, got %f/%f", out.CentralTax, out.StateTax)
	}
}

func TestAggregateTax_JurisdictionMatchIsCaseInsensitive(t *testing.T) {
	sales := []domain.Invoice{invoice("2025-04-10", "mh", 1000, 180)}

	out := report.AggregateTax(sales, nil, nil, "MH", april()).Outward

	if !almostEqual(out.IntegratedTax, 0) {
		t.Errorf("lowercase state should still be intra-state, got integrated=%f", out.IntegratedTax)
	}
}

func TestAggregateTax_MissingSupplyPlaceDefaultsIntraState(t *testing.T) {
	sales := []domain.Invoice{invoice("2025-04-10", "", 1000, 180)}

	out := report.AggregateTax(sales, nil, nil, "MH", april()).Outward

	if !almostEqual(out.CentralTax, 90) || !almostEqual(out.StateTax, 90) {
		t.Errorf("missing supply place should split evenly, got %f/%f", out.CentralTax, out.StateTax)
	}
}

func TestAggregateTax_BucketComponentsAddUp(t *testing.T) {
	sales := []domain.Invoice{
		invoice("2025-04-02", "MH", 1000, 180),
		invoice("2025-04-05", "DL", 500, 90),
		invoice("2025-04-09", "ka", 2500, 300),
		invoice("2025-04-12", "", 750, 37.5),
	}

	out := report.AggregateTax(sales, nil, nil, "MH", april()).Outward

	sum := out.IntegratedTax + out.CentralTax + out.StateTax
	if !almostEqual(out.TotalTax, sum) {
		t.Errorf("total tax %f != component sum %f", out.TotalTax, sum)
	}
}

func TestAggregateTax_DraftAndVoidExcluded(t *testing.T) {
	draft := invoice("2025-04-10", "MH", 1000, 180)
	draft.Status = domain.InvoiceStatusDraft
	void := invoice("2025-04-11", "MH", 2000, 360)
	void.Status = domain.InvoiceStatusVoid
	kept := invoice("2025-04-12", "MH", 300, 54)

	out := report.AggregateTax([]domain.Invoice{draft, void, kept}, nil, nil, "MH", april()).Outward

	if !almostEqual(out.TaxableValue, 300) {
		t.Errorf("draft/void should be excluded, got taxable %f", out.TaxableValue)
	}
}

func TestAggregateTax_DateRangeIsInclusive(t *testing.T) {
	sales := []domain.Invoice{
		invoice("2025-03-31", "MH", 100, 18),
		invoice("2025-04-01", "MH", 200, 36),
		invoice("2025-04-30", "MH", 300, 54),
		invoice("2025-05-01", "MH", 400, 72),
	}

	out := report.AggregateTax(sales, nil, nil, "MH", april()).Outward

	if !almostEqual(out.TaxableValue, 500) {
		t.Errorf("expected only the boundary-inclusive April documents (500), got %f", out.TaxableValue)
	}
}

func TestAggregateTax_TimestampDatesCompareAsDates(t *testing.T) {
	sales := []domain.Invoice{invoice("2025-04-30T18:30:00Z", "MH", 100, 18)}

	out := report.AggregateTax(sales, nil, nil, "MH", april()).Outward

	if !almostEqual(out.TaxableValue, 100) {
		t.Errorf("RFC3339 issue date inside the period should qualify, got %f", out.TaxableValue)
	}
}

func TestAggregateTax_SalesReturnOffsetsOutward(t *testing.T) {
	sales := []domain.Invoice{invoice("2025-04-10", "MH", 1000, 180)}
	returns := []domain.ReturnDoc{{
		Type:        domain.ReturnTypeSales,
		ReturnDate:  "2025-04-20",
		SupplyPlace: "MH",
		Subtotal:    200,
		TaxTotal:    36,
		TotalAmount: 236,
	}}

	out := report.AggregateTax(sales, nil, returns, "MH", april()).Outward

	if !almostEqual(out.TaxableValue, 800) {
		t.Errorf("net taxable: expected 800, got %f", out.TaxableValue)
	}
	if !almostEqual(out.TotalTax, 144) {
		t.Errorf("net tax: expected 144, got %f", out.TotalTax)
	}
}

func TestAggregateTax_PurchaseReturnOffsetsInward(t *testing.T) {
	purchases := []domain.Purchase{{
		PurchaseDate: "2025-04-05",
		SupplyPlace:  "MH",
		Subtotal:     500,
		TaxTotal:     90,
		TotalAmount:  590,
	}}
	returns := []domain.ReturnDoc{{
		Type:        domain.ReturnTypePurchase,
		ReturnDate:  "2025-04-06",
		SupplyPlace: "MH",
		Subtotal:    100,
		TaxTotal:    18,
		TotalAmount: 118,
	}}

	summary := report.AggregateTax(nil, purchases, returns, "MH", april())

	if !almostEqual(summary.Inward.TaxableValue, 400) {
		t.Errorf("net inward taxable: expected 400, got %f", summary.Inward.TaxableValue)
	}
	if !almostEqual(summary.NetTaxPayable, -72) {
		t.Errorf("net payable: expected -72 (credit), got %f", summary.NetTaxPayable)
	}
}

func TestAggregateTax_ReturnFallsBackToPartyState(t *testing.T) {
	returns := []domain.ReturnDoc{{
		Type:        domain.ReturnTypeSales,
		ReturnDate:  "2025-04-20",
		PartyState:  "DL",
		Subtotal:    100,
		TaxTotal:    18,
		TotalAmount: 118,
	}}

	out := report.AggregateTax(nil, nil, returns, "MH", april()).Outward

	if !almostEqual(out.IntegratedTax, -18) {
		t.Errorf("party-state fallback should classify return as inter-state, got integrated=%f", out.IntegratedTax)
	}
}

func TestAggregateTax_DerivesSubtotalFromTotal(t *testing.T) {
	sales := []domain.Invoice{{
		IssueDate:   "2025-04-10",
		SupplyPlace: "MH",
		TaxTotal:    180,
		TotalAmount: 1180,
		Status:      domain.InvoiceStatusFinalized,
	}}

	out := report.AggregateTax(sales, nil, nil, "MH", april()).Outward

	if !almostEqual(out.TaxableValue, 1000) {
		t.Errorf("missing subtotal should derive to 1000, got %f", out.TaxableValue)
	}
}

func TestAggregateTax_NetTaxPayable(t *testing.T) {
	sales := []domain.Invoice{invoice("2025-04-10", "MH", 1000, 180)}
	purchases := []domain.Purchase{{
		PurchaseDate: "2025-04-12",
		SupplyPlace:  "DL",
		Subtotal:     600,
		TaxTotal:     108,
		TotalAmount:  708,
	}}

	summary := report.AggregateTax(sales, purchases, nil, "MH", april())

	if !almostEqual(summary.NetTaxPayable, 72) {
		t.Errorf("net payable: expected 72, got %f", summary.NetTaxPayable)
	}
}

func TestAggregateTax_EmptyInputsYieldZeroes(t *testing.T) {
	summary := report.AggregateTax(nil, nil, nil, "MH", april())

	if summary.Outward != (domain.TaxBucket{}) || summary.Inward != (domain.TaxBucket{}) {
		t.Errorf("expected zeroed buckets, got %+v", summary)
	}
	if summary.NetTaxPayable != 0 {
		t.Errorf("expected zero net payable, got %f", summary.NetTaxPayable)
	}
}

func TestAggregateTax_OrderIndependent(t *testing.T) {
	sales := []domain.Invoice{
		invoice("2025-04-02", "MH", 1000, 180),
		invoice("2025-04-05", "DL", 500, 90),
		invoice("2025-04-09", "KA", 2500, 300),
	}
	reversed := []domain.Invoice{sales[2], sales[1], sales[0]}

	a := report.AggregateTax(sales, nil, nil, "MH", april())
	b := report.AggregateTax(reversed, nil, nil, "MH", april())

	if !almostEqual(a.Outward.TotalTax, b.Outward.TotalTax) ||
		!almostEqual(a.Outward.TaxableValue, b.Outward.TaxableValue) ||
		!almostEqual(a.Outward.IntegratedTax, b.Outward.IntegratedTax) {
		t.Errorf("aggregation depends on input order: %+v vs %+v", a.Outward, b.Outward)
	}
}
