package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/saralbooks/billing-api/internal/domain"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// Invoice rows travel with their line items embedded via PostgREST resource embedding.
// ============================================================

// ListInvoices returns a business's invoices with their line items,
// optionally bounded by an inclusive issue-date range. Draft and void
// rows are included; report builders filter them out themselves.
func (c *Client) ListInvoices(ctx context.Context, businessID string, period domain.Period) ([]domain.Invoice, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListInvoices")
	defer span.End()
	span.SetAttributes(attribute.String("business.id", businessID))

	path := fmt.Sprintf("invoices?business_id=eq.%s&select=*,invoice_items(*)&order=issue_date.asc",
		url.QueryEscape(businessID))
	path += periodFilter("issue_date", period)

	var invoices []domain.Invoice
	err := c.execute(ctx, func() error {
		body, err := c.doGet(ctx, path)
		if err != nil {
			return err
		}
		if body == nil {
			invoices = []domain.Invoice{}
			return nil
		}
		if err := json.Unmarshal(body, &invoices); err != nil {
			return fmt.Errorf("decode invoices: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/invoices", Err: err}
	}
	return invoices, nil
}

func (c *Client) GetInvoice(ctx context.Context, businessID, invoiceID string) (*domain.Invoice, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetInvoice")
	defer span.End()

	path := fmt.Sprintf("invoices?business_id=eq.%s&id=eq.%s&select=*,invoice_items(*)&limit=1",
		url.QueryEscape(businessID), url.QueryEscape(invoiceID))
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, err
	}

	var rows []domain.Invoice
	if body != nil {
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("decode invoice: %w", err)
		}
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "invoice", ID: invoiceID}
	}
	return &rows[0], nil
}

// CreateInvoice inserts the invoice row, then bulk-inserts its line
// items referencing the new ID.
func (c *Client) CreateInvoice(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateInvoice")
	defer span.End()

	row := map[string]any{
		"id":             uuid.New().String(),
		"business_id":    inv.BusinessID,
		"invoice_number": inv.InvoiceNumber,
		"party_id":       inv.PartyID,
		"party_name":     inv.PartyName,
		"issue_date":     inv.IssueDate,
		"due_date":       inv.DueDate,
		"supply_place":   inv.SupplyPlace,
		"subtotal":       inv.Subtotal,
		"tax_total":      inv.TaxTotal,
		"total_amount":   inv.TotalAmount,
		"status":         inv.Status,
		"notes":          inv.Notes,
		"created_at":     time.Now().Format(time.RFC3339),
	}

	body, err := c.doPost(ctx, "invoices", row)
	if err != nil {
		return nil, err
	}

	var created []domain.Invoice
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode invoice: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("no result from invoices insert")
	}

	if len(inv.Items) > 0 {
		items := make([]map[string]any, 0, len(inv.Items))
		for _, it := range inv.Items {
			items = append(items, map[string]any{
				"invoice_id":   created[0].ID,
				"product_id":   it.ProductID,
				"product_name": it.ProductName,
				"hsn_code":     it.HSNCode,
				"quantity":     it.Quantity,
				"unit_price":   it.UnitPrice,
				"tax_rate":     it.TaxRate,
				"tax_amount":   it.TaxAmount,
				"total":        it.Total,
			})
		}
		itemsBody, err := c.doPost(ctx, "invoice_items", items)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(itemsBody, &created[0].Items); err != nil {
			return nil, fmt.Errorf("decode invoice items: %w", err)
		}
	}

	return &created[0], nil
}

func (c *Client) UpdateInvoiceStatus(ctx context.Context, invoiceID, status string) error {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateInvoiceStatus")
	defer span.End()

	return c.doPatch(ctx, fmt.Sprintf("invoices?id=eq.%s", url.QueryEscape(invoiceID)), map[string]any{
		"status":     status,
		"updated_at": time.Now().Format(time.RFC3339),
	})
}

// periodFilter renders inclusive PostgREST date bounds for a column.
// Empty bounds are omitted.
func periodFilter(column string, p domain.Period) string {
	filter := ""
	if p.From != "" {
		filter += fmt.Sprintf("&%s=gte.%s", column, url.QueryEscape(p.From))
	}
	if p.To != "" {
		filter += fmt.Sprintf("&%s=lte.%s", column, url.QueryEscape(p.To))
	}
	return filter
}
