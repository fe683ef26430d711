package domain

import "time"

// ============================================================
// Documents: invoices, purchases, returns
// ============================================================

// Invoice statuses. Draft and void invoices never count toward
// revenue or tax aggregates.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusFinalized = "finalized"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusVoid      = "void"
)

// Return document types.
const (
	ReturnTypeSales    = "sales_return"
	ReturnTypePurchase = "purchase_return"
)

// Invoice is an outward (sales) document.
// total_amount = subtotal + tax_total; when subtotal is missing in the
// source row the reporting layer derives it from the other two fields.
type Invoice struct {
	ID            string     `json:"id"`
	BusinessID    string     `json:"business_id"`
	InvoiceNumber string     `json:"invoice_number"`
	PartyID       string     `json:"party_id,omitempty"`
	PartyName     string     `json:"party_name,omitempty"`
	IssueDate     string     `json:"issue_date"` // YYYY-MM-DD
	DueDate       string     `json:"due_date,omitempty"`
	SupplyPlace   string     `json:"supply_place,omitempty"` // state of supply
	Subtotal      float64    `json:"subtotal"`
	TaxTotal      float64    `json:"tax_total"`
	TotalAmount   float64    `json:"total_amount"`
	Status        string     `json:"status"`
	Notes         string     `json:"notes,omitempty"`
	Items         []LineItem `json:"invoice_items,omitempty"`
	CreatedAt     time.Time  `json:"created_at,omitempty"`
}

// Purchase is an inward document. It mirrors Invoice; its tax feeds the
// input-tax-credit side of GSTR-3B.
type Purchase struct {
	ID           string     `json:"id"`
	BusinessID   string     `json:"business_id"`
	BillNumber   string     `json:"bill_number"`
	PartyID      string     `json:"party_id,omitempty"`
	PartyName    string     `json:"party_name,omitempty"`
	PurchaseDate string     `json:"purchase_date"` // YYYY-MM-DD
	SupplyPlace  string     `json:"supply_place,omitempty"`
	Subtotal     float64    `json:"subtotal"`
	TaxTotal     float64    `json:"tax_total"`
	TotalAmount  float64    `json:"total_amount"`
	Status       string     `json:"status,omitempty"`
	Items        []LineItem `json:"purchase_items,omitempty"`
	CreatedAt    time.Time  `json:"created_at,omitempty"`
}

// ReturnDoc reverses an invoice or a purchase. Its supply_place may be
// empty; the reporting layer then falls back to the party's state.
type ReturnDoc struct {
	ID          string     `json:"id"`
	BusinessID  string     `json:"business_id"`
	Type        string     `json:"type"` // sales_return, purchase_return
	DocumentID  string     `json:"document_id,omitempty"`
	PartyID     string     `json:"party_id,omitempty"`
	PartyState  string     `json:"party_state,omitempty"`
	ReturnDate  string     `json:"return_date"` // YYYY-MM-DD
	SupplyPlace string     `json:"supply_place,omitempty"`
	Subtotal    float64    `json:"subtotal"`
	TaxTotal    float64    `json:"tax_total"`
	TotalAmount float64    `json:"total_amount"`
	Reason      string     `json:"reason,omitempty"`
	Items       []LineItem `json:"return_items,omitempty"`
	CreatedAt   time.Time  `json:"created_at,omitempty"`
}

// LineItem belongs to an invoice, purchase or return.
type LineItem struct {
	ID          string  `json:"id,omitempty"`
	ProductID   string  `json:"product_id,omitempty"`
	ProductName string  `json:"product_name,omitempty"`
	HSNCode     string  `json:"hsn_code,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TaxRate     float64 `json:"tax_rate"`
	TaxAmount   float64 `json:"tax_amount"`
	Total       float64 `json:"total"`
}
