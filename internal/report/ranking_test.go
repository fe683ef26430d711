package report_test

import (
	"testing"

	"github.com/saralbooks/billing-api/internal/domain"
	"github.com/saralbooks/billing-api/internal/report"
)

func rankingFixture() ([]domain.Invoice, []domain.Product) {
	products := []domain.Product{
		{ID: "p1", Name: "Widget", Category: "hardware", PurchasePrice: 300},
		{ID: "p2", Name: "Gadget", Category: "hardware", PurchasePrice: 50},
		{ID: "p3", Name: "Service Plan", Category: "services", PurchasePrice: 0},
	}
	sales := []domain.Invoice{
		{
			ID: "inv-1", IssueDate: "2025-04-05", Status: domain.InvoiceStatusFinalized,
			Subtotal: 1150, TaxTotal: 207, TotalAmount: 1357,
			Items: []domain.LineItem{
				{ProductID: "p1", ProductName: "Widget", HSNCode: "8471", Quantity: 2, UnitPrice: 500, TaxAmount: 180, Total: 1180},
				{ProductID: "p2", ProductName: "Gadget", HSNCode: "8473", Quantity: 1, UnitPrice: 150, TaxAmount: 27, Total: 177},
			},
		},
		{
			ID: "inv-2", IssueDate: "2025-04-20", Status: domain.InvoiceStatusFinalized,
			Subtotal: 800, TaxTotal: 144, TotalAmount: 944,
			Items: []domain.LineItem{
				{ProductID: "p3", ProductName: "Service Plan", Quantity: 1, UnitPrice: 500, TaxAmount: 90, Total: 590},
				{ProductID: "p1", ProductName: "Widget", HSNCode: "8471", Quantity: 1, UnitPrice: 300, TaxAmount: 54, Total: 354},
			},
		},
	}
	return sales, products
}

func TestRankProductProfitability_ByProduct(t *testing.T) {
	sales, products := rankingFixture()

	groups := report.RankProductProfitability(sales, products, april(), report.GroupByProduct)

	if len(groups) != 3 {
		t.Fatalf("expected one group per distinct product, got %d", len(groups))
	}

	// p1: revenue 1300 cost 900 profit 400; p3: revenue 500 cost 0 profit 500;
	// p2: revenue 150 cost 50 profit 100. Sorted by profit descending.
	if groups[0].Key != "p3" || groups[1].Key != "p1" || groups[2].Key != "p2" {
		t.Errorf("unexpected ranking order: %s, %s, %s", groups[0].Key, groups[1].Key, groups[2].Key)
	}
	if !almostEqual(groups[1].Revenue, 1300) || !almostEqual(groups[1].Cost, 900) {
		t.Errorf("p1: expected revenue 1300 cost 900, got %f/%f", groups[1].Revenue, groups[1].Cost)
	}
	if !almostEqual(groups[1].Quantity, 3) {
		t.Errorf("p1 quantity: expected 3, got %f", groups[1].Quantity)
	}
}

func TestRankProductProfitability_RevenueConservation(t *testing.T) {
	sales, products := rankingFixture()

	groups := report.RankProductProfitability(sales, products, april(), report.GroupByProduct)

	var rankedRevenue float64
	for _, g := range groups {
		rankedRevenue += g.Revenue
	}

	var lineRevenue float64
	for _, inv := range sales {
		for _, item := range inv.Items {
			lineRevenue += item.UnitPrice * item.Quantity
		}
	}

	if !almostEqual(rankedRevenue, lineRevenue) {
		t.Errorf("ranked revenue %f != line item revenue %f", rankedRevenue, lineRevenue)
	}
}

func TestRankProductProfitability_ByCategory(t *testing.T) {
	sales, products := rankingFixture()

	groups := report.RankProductProfitability(sales, products, april(), report.GroupByCategory)

	if len(groups) != 2 {
		t.Fatalf("expected hardware and services groups, got %d", len(groups))
	}
	// hardware: profit 400+100=500; services: profit 500. Tie broken by
	// first-seen order, and hardware appears first in the documents.
	if groups[0].Key != "hardware" || groups[1].Key != "services" {
		t.Errorf("tie should keep insertion order: got %s, %s", groups[0].Key, groups[1].Key)
	}
}

func TestRankProductProfitability_UncategorizedFallback(t *testing.T) {
	sales := []domain.Invoice{{
		ID: "inv-1", IssueDate: "2025-04-05", Status: domain.InvoiceStatusFinalized,
		Items: []domain.LineItem{
			{ProductID: "unknown", ProductName: "Mystery", Quantity: 1, UnitPrice: 100},
		},
	}}

	groups := report.RankProductProfitability(sales, nil, april(), report.GroupByCategory)

	if len(groups) != 1 || groups[0].Key != "uncategorized" {
		t.Fatalf("expected single uncategorized group, got %+v", groups)
	}
}

func TestRankProductProfitability_EmptyInputs(t *testing.T) {
	groups := report.RankProductProfitability(nil, nil, april(), report.GroupByProduct)

	if len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
}

func TestSummarizeHSN(t *testing.T) {
	sales, _ := rankingFixture()

	rows := report.SummarizeHSN(sales, april())

	// p3 has no HSN code and is skipped; 8471 appears on both invoices.
	if len(rows) != 2 {
		t.Fatalf("expected 2 HSN rows, got %d", len(rows))
	}
	if rows[0].HSNCode != "8471" {
		t.Errorf("expected first-seen code 8471 first, got %s", rows[0].HSNCode)
	}
	if !almostEqual(rows[0].Quantity, 3) {
		t.Errorf("8471 quantity: expected 3, got %f", rows[0].Quantity)
	}
	if !almostEqual(rows[0].TaxableValue, 1300) {
		t.Errorf("8471 taxable: expected (1180-180)+(354-54)=1300, got %f", rows[0].TaxableValue)
	}
	if !almostEqual(rows[0].TaxAmount, 234) {
		t.Errorf("8471 tax: expected 234, got %f", rows[0].TaxAmount)
	}
}
