package domain

import "time"

// Product is a catalog entry. PurchasePrice is the cost basis used for
// COGS and stock valuation; StockQuantity is the current on-hand count.
type Product struct {
	ID            string    `json:"id"`
	BusinessID    string    `json:"business_id"`
	Name          string    `json:"name"`
	Category      string    `json:"category,omitempty"`
	HSNCode       string    `json:"hsn_code,omitempty"`
	Unit          string    `json:"unit,omitempty"` // pcs, kg, ltr, ...
	SalePrice     float64   `json:"sale_price"`
	PurchasePrice float64   `json:"purchase_price"`
	TaxRate       float64   `json:"tax_rate"`
	StockQuantity float64   `json:"stock_quantity"`
	LowStockAlert float64   `json:"low_stock_alert,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

// Party is a customer or a vendor. State is used as the jurisdiction
// fallback when a return document carries no supply place of its own.
type Party struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"business_id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"` // customer, vendor
	GSTIN      string    `json:"gstin,omitempty"`
	State      string    `json:"state,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	Address    string    `json:"address,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// BusinessProfile identifies the tenant. State is the home jurisdiction
// that decides the intra- vs inter-state tax split.
type BusinessProfile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	GSTIN   string `json:"gstin,omitempty"`
	State   string `json:"state"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}
