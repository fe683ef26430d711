package service_test

import (
	"context"

	"github.com/saralbooks/billing-api/internal/domain"
)

// mockStore is a canned-data BillingStore for service tests.
type mockStore struct {
	invoices  []domain.Invoice
	purchases []domain.Purchase
	returns   []domain.ReturnDoc
	products  []domain.Product
	parties   []domain.Party
	payments  []domain.Payment
	expenses  []domain.Expense
	profile   *domain.BusinessProfile

	err error

	profileCalls  int
	stockUpdates  map[string]float64
	statusUpdates map[string]string
}

func (m *mockStore) ListInvoices(_ context.Context, _ string, _ domain.Period) ([]domain.Invoice, error) {
	return m.invoices, m.err
}

func (m *mockStore) ListPurchases(_ context.Context, _ string, _ domain.Period) ([]domain.Purchase, error) {
	return m.purchases, m.err
}

func (m *mockStore) ListReturns(_ context.Context, _ string, _ domain.Period) ([]domain.ReturnDoc, error) {
	return m.returns, m.err
}

func (m *mockStore) ListProducts(_ context.Context, _ string) ([]domain.Product, error) {
	return m.products, m.err
}

func (m *mockStore) GetBusinessProfile(_ context.Context, businessID string) (*domain.BusinessProfile, error) {
	m.profileCalls++
	if m.err != nil {
		return nil, m.err
	}
	if m.profile == nil {
		return nil, &domain.ErrNotFound{Resource: "business_profile", ID: businessID}
	}
	return m.profile, nil
}

func (m *mockStore) GetInvoice(_ context.Context, _, invoiceID string) (*domain.Invoice, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.invoices {
		if m.invoices[i].ID == invoiceID {
			inv := m.invoices[i]
			return &inv, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "invoice", ID: invoiceID}
}

func (m *mockStore) CreateInvoice(_ context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	if m.err != nil {
		return nil, m.err
	}
	created := *inv
	if created.ID == "" {
		created.ID = "inv-created"
	}
	m.invoices = append(m.invoices, created)
	return &created, nil
}

func (m *mockStore) UpdateInvoiceStatus(_ context.Context, invoiceID, status string) error {
	if m.statusUpdates == nil {
		m.statusUpdates = make(map[string]string)
	}
	m.statusUpdates[invoiceID] = status
	return m.err
}

func (m *mockStore) GetPurchase(_ context.Context, _, purchaseID string) (*domain.Purchase, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.purchases {
		if m.purchases[i].ID == purchaseID {
			p := m.purchases[i]
			return &p, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "purchase", ID: purchaseID}
}

func (m *mockStore) CreatePurchase(_ context.Context, p *domain.Purchase) (*domain.Purchase, error) {
	if m.err != nil {
		return nil, m.err
	}
	created := *p
	if created.ID == "" {
		created.ID = "pur-created"
	}
	m.purchases = append(m.purchases, created)
	return &created, nil
}

func (m *mockStore) GetReturn(_ context.Context, _, returnID string) (*domain.ReturnDoc, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.returns {
		if m.returns[i].ID == returnID {
			r := m.returns[i]
			return &r, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "return", ID: returnID}
}

func (m *mockStore) CreateReturn(_ context.Context, r *domain.ReturnDoc) (*domain.ReturnDoc, error) {
	if m.err != nil {
		return nil, m.err
	}
	created := *r
	if created.ID == "" {
		created.ID = "ret-created"
	}
	m.returns = append(m.returns, created)
	return &created, nil
}

func (m *mockStore) GetProduct(_ context.Context, _, productID string) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.products {
		if m.products[i].ID == productID {
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "product", ID: productID}
}

func (m *mockStore) CreateProduct(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	created := *p
	if created.ID == "" {
		created.ID = "prod-created"
	}
	m.products = append(m.products, created)
	return &created, nil
}

func (m *mockStore) UpdateProductStock(_ context.Context, productID string, stockQuantity float64) error {
	if m.stockUpdates == nil {
		m.stockUpdates = make(map[string]float64)
	}
	m.stockUpdates[productID] = stockQuantity
	return m.err
}

func (m *mockStore) ListParties(_ context.Context, _, _ string) ([]domain.Party, error) {
	return m.parties, m.err
}

func (m *mockStore) GetParty(_ context.Context, _, partyID string) (*domain.Party, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.parties {
		if m.parties[i].ID == partyID {
			p := m.parties[i]
			return &p, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "party", ID: partyID}
}

func (m *mockStore) CreateParty(_ context.Context, p *domain.Party) (*domain.Party, error) {
	if m.err != nil {
		return nil, m.err
	}
	created := *p
	if created.ID == "" {
		created.ID = "party-created"
	}
	m.parties = append(m.parties, created)
	return &created, nil
}

func (m *mockStore) ListPayments(_ context.Context, _ string, _ domain.Period) ([]domain.Payment, error) {
	return m.payments, m.err
}

func (m *mockStore) CreatePayment(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	if m.err != nil {
		return nil, m.err
	}
	created := *p
	if created.ID == "" {
		created.ID = "pay-created"
	}
	m.payments = append(m.payments, created)
	return &created, nil
}

func (m *mockStore) ListExpenses(_ context.Context, _ string, _ domain.Period) ([]domain.Expense, error) {
	return m.expenses, m.err
}

func (m *mockStore) CreateExpense(_ context.Context, e *domain.Expense) (*domain.Expense, error) {
	if m.err != nil {
		return nil, m.err
	}
	created := *e
	if created.ID == "" {
		created.ID = "exp-created"
	}
	m.expenses = append(m.expenses, created)
	return &created, nil
}
