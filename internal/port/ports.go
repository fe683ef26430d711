// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain and
// service layers from concrete implementations.
package port

import (
	"context"

	"github.com/saralbooks/billing-api/internal/domain"
)

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}

// DocumentLister covers the row sets the report builders consume.
// Implemented by the Supabase adapter; date filters are inclusive and
// expressed as YYYY-MM-DD.
type DocumentLister interface {
	ListInvoices(ctx context.Context, businessID string, period domain.Period) ([]domain.Invoice, error)
	ListPurchases(ctx context.Context, businessID string, period domain.Period) ([]domain.Purchase, error)
	ListReturns(ctx context.Context, businessID string, period domain.Period) ([]domain.ReturnDoc, error)
	ListProducts(ctx context.Context, businessID string) ([]domain.Product, error)
	GetBusinessProfile(ctx context.Context, businessID string) (*domain.BusinessProfile, error)
}

// BillingStore defines all data operations for the billing entities.
// Implemented by the Supabase adapter (or any other persistence layer).
type BillingStore interface {
	DocumentLister

	// Invoices
	GetInvoice(ctx context.Context, businessID, invoiceID string) (*domain.Invoice, error)
	CreateInvoice(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, invoiceID, status string) error

	// Purchases
	GetPurchase(ctx context.Context, businessID, purchaseID string) (*domain.Purchase, error)
	CreatePurchase(ctx context.Context, p *domain.Purchase) (*domain.Purchase, error)

	// Returns
	GetReturn(ctx context.Context, businessID, returnID string) (*domain.ReturnDoc, error)
	CreateReturn(ctx context.Context, r *domain.ReturnDoc) (*domain.ReturnDoc, error)

	// Products
	GetProduct(ctx context.Context, businessID, productID string) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	UpdateProductStock(ctx context.Context, productID string, stockQuantity float64) error

	// Parties
	ListParties(ctx context.Context, businessID, partyType string) ([]domain.Party, error)
	GetParty(ctx context.Context, businessID, partyID string) (*domain.Party, error)
	CreateParty(ctx context.Context, p *domain.Party) (*domain.Party, error)

	// Payments
	ListPayments(ctx context.Context, businessID string, period domain.Period) ([]domain.Payment, error)
	CreatePayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error)

	// Expenses
	ListExpenses(ctx context.Context, businessID string, period domain.Period) ([]domain.Expense, error)
	CreateExpense(ctx context.Context, e *domain.Expense) (*domain.Expense, error)
}
