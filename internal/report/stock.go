package report

import (
	"github.com/saralbooks/billing-api/internal/domain"
)

// ValueClosingStock sums current stock quantity times cost basis over all
// products. The figure reflects stock as it is now, not as of any report
// end date.
func ValueClosingStock(products []domain.Product) float64 {
	var total float64
	for _, p := range products {
		total += p.StockQuantity * p.PurchasePrice
	}
	return total
}

// BuildStockSummary expands the valuation into per-product rows.
func BuildStockSummary(businessID string, products []domain.Product) domain.StockSummaryReport {
	summary := domain.StockSummaryReport{
		BusinessID:   businessID,
		ProductCount: len(products),
		Rows:         make([]domain.StockRow, 0, len(products)),
	}

	for _, p := range products {
		value := p.StockQuantity * p.PurchasePrice
		summary.TotalQuantity += p.StockQuantity
		summary.StockValue += value
		summary.Rows = append(summary.Rows, domain.StockRow{
			ProductID:     p.ID,
			Name:          p.Name,
			StockQuantity: p.StockQuantity,
			PurchasePrice: p.PurchasePrice,
			StockValue:    value,
		})
	}
	return summary
}
