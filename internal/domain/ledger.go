package domain

import "time"

// Payment records money received against an invoice (or on account).
type Payment struct {
	ID          string    `json:"id"`
	BusinessID  string    `json:"business_id"`
	PartyID     string    `json:"party_id,omitempty"`
	InvoiceID   string    `json:"invoice_id,omitempty"`
	PaymentDate string    `json:"payment_date"` // YYYY-MM-DD
	Amount      float64   `json:"amount"`
	Mode        string    `json:"mode"` // cash, upi, bank_transfer, cheque, card
	Reference   string    `json:"reference,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// Expense is a non-purchase business outflow (rent, salaries, ...).
// Expenses reduce net profit but carry no input tax credit here.
type Expense struct {
	ID          string    `json:"id"`
	BusinessID  string    `json:"business_id"`
	ExpenseDate string    `json:"expense_date"` // YYYY-MM-DD
	Category    string    `json:"category,omitempty"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}
