package report

import (
	"sort"

	"github.com/saralbooks/billing-api/internal/domain"
)

// Grouping modes for RankProductProfitability.
const (
	GroupByProduct  = "product"
	GroupByCategory = "category"
)

// RankProductProfitability groups the line items of qualifying sales
// documents by product (or category), accumulates quantity, revenue and
// cost, and returns the groups sorted by profit descending. The sort is
// stable, so ties keep first-seen order.
func RankProductProfitability(
	sales []domain.Invoice,
	products []domain.Product,
	period domain.Period,
	groupBy string,
) []domain.ProductPerformance {
	type productInfo struct {
		category string
		cost     float64
	}
	catalog := make(map[string]productInfo, len(products))
	for _, p := range products {
		catalog[p.ID] = productInfo{category: p.Category, cost: p.PurchasePrice}
	}

	groups := []domain.ProductPerformance{}
	index := make(map[string]int)

	for _, inv := range QualifyingInvoices(sales, period) {
		for _, item := range inv.Items {
			key, name := groupKey(item, catalog[item.ProductID].category, groupBy)

			i, ok := index[key]
			if !ok {
				i = len(groups)
				index[key] = i
				groups = append(groups, domain.ProductPerformance{Key: key, Name: name})
			}

			groups[i].Quantity += item.Quantity
			groups[i].Revenue += item.UnitPrice * item.Quantity
			groups[i].Cost += catalog[item.ProductID].cost * item.Quantity
		}
	}

	for i := range groups {
		groups[i].Profit = groups[i].Revenue - groups[i].Cost
		groups[i].MarginPct = margin(groups[i].Profit, groups[i].Revenue)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Profit > groups[j].Profit
	})
	return groups
}

func groupKey(item domain.LineItem, category, groupBy string) (key, name string) {
	if groupBy == GroupByCategory {
		if category == "" {
			category = "uncategorized"
		}
		return category, category
	}
	key = item.ProductID
	if key == "" {
		key = item.ProductName
	}
	name = item.ProductName
	if name == "" {
		name = key
	}
	return key, name
}

// SummarizeHSN rolls up the line items of qualifying sales documents per
// HSN/SAC code for the GSTR-1 rate-wise table. Items without a code are
// skipped; rows keep first-seen order.
func SummarizeHSN(sales []domain.Invoice, period domain.Period) []domain.HSNSummaryRow {
	rows := []domain.HSNSummaryRow{}
	index := make(map[string]int)

	for _, inv := range QualifyingInvoices(sales, period) {
		for _, item := range inv.Items {
			if item.HSNCode == "" {
				continue
			}

			i, ok := index[item.HSNCode]
			if !ok {
				i = len(rows)
				index[item.HSNCode] = i
				rows = append(rows, domain.HSNSummaryRow{
					HSNCode:     item.HSNCode,
					Description: item.ProductName,
				})
			}

			taxable := item.Total - item.TaxAmount
			if item.Total == 0 {
				taxable = item.UnitPrice * item.Quantity
			}
			rows[i].Quantity += item.Quantity
			rows[i].TaxableValue += taxable
			rows[i].TaxAmount += item.TaxAmount
		}
	}
	return rows
}
