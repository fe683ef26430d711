package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/saralbooks/billing-api/internal/domain"

	"github.com/google/uuid"
)

// ============================================================
// Payments & Expenses
// ============================================================

func (c *Client) ListPayments(ctx context.Context, businessID string, period domain.Period) ([]domain.Payment, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListPayments")
	defer span.End()

	path := fmt.Sprintf("payments?business_id=eq.%s&order=payment_date.desc", url.QueryEscape(businessID))
	path += periodFilter("payment_date", period)

	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return []domain.Payment{}, nil
	}

	var payments []domain.Payment
	if err := json.Unmarshal(body, &payments); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return payments, nil
}

func (c *Client) CreatePayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreatePayment")
	defer span.End()

	row := map[string]any{
		"id":           uuid.New().String(),
		"business_id":  p.BusinessID,
		"party_id":     p.PartyID,
		"invoice_id":   p.InvoiceID,
		"payment_date": p.PaymentDate,
		"amount":       p.Amount,
		"mode":         p.Mode,
		"reference":    p.Reference,
		"notes":        p.Notes,
		"created_at":   time.Now().Format(time.RFC3339),
	}

	body, err := c.doPost(ctx, "payments", row)
	if err != nil {
		return nil, err
	}

	var created []domain.Payment
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode payment: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("no result from payments insert")
	}
	return &created[0], nil
}

func (c *Client) ListExpenses(ctx context.Context, businessID string, period domain.Period) ([]domain.Expense, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListExpenses")
	defer span.End()

	path := fmt.Sprintf("expenses?business_id=eq.%s&order=expense_date.desc", url.QueryEscape(businessID))
	path += periodFilter("expense_date", period)

	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return []domain.Expense{}, nil
	}

	var expenses []domain.Expense
	if err := json.Unmarshal(body, &expenses); err != nil {
		return nil, fmt.Errorf("decode expenses: %w", err)
	}
	return expenses, nil
}

func (c *Client) CreateExpense(ctx context.Context, e *domain.Expense) (*domain.Expense, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateExpense")
	defer span.End()

	row := map[string]any{
		"id":           uuid.New().String(),
		"business_id":  e.BusinessID,
		"expense_date": e.ExpenseDate,
		"category":     e.Category,
		"amount":       e.Amount,
		"description":  e.Description,
		"created_at":   time.Now().Format(time.RFC3339),
	}

	body, err := c.doPost(ctx, "expenses", row)
	if err != nil {
		return nil, err
	}

	var created []domain.Expense
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode expense: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("no result from expenses insert")
	}
	return &created[0], nil
}
