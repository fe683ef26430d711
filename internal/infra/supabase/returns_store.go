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
// Returns (credit/debit notes)
// ============================================================

// ListReturns fetches both sales and purchase returns for the period.
// The related party's state is embedded so the reporting layer can use
// it as a jurisdiction fallback.
func (c *Client) ListReturns(ctx context.Context, businessID string, period domain.Period) ([]domain.ReturnDoc, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListReturns")
	defer span.End()
	span.SetAttributes(attribute.String("business.id", businessID))

	path := fmt.Sprintf("returns?business_id=eq.%s&select=*,return_items(*),parties(state)&order=return_date.asc",
		url.QueryEscape(businessID))
	path += periodFilter("return_date", period)

	var returns []domain.ReturnDoc
	err := c.execute(ctx, func() error {
		body, err := c.doGet(ctx, path)
		if err != nil {
			return err
		}
		if body == nil {
			returns = []domain.ReturnDoc{}
			return nil
		}

		var rows []returnRow
		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("decode returns: %w", err)
		}
		returns = make([]domain.ReturnDoc, 0, len(rows))
		for _, r := range rows {
			doc := r.ReturnDoc
			if r.Party != nil {
				doc.PartyState = r.Party.State
			}
			returns = append(returns, doc)
		}
		return nil
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/returns", Err: err}
	}
	return returns, nil
}

// returnRow carries the embedded party row PostgREST nests under the
// foreign-key relation name.
type returnRow struct {
	domain.ReturnDoc
	Party *struct {
		State string `json:"state"`
	} `json:"parties,omitempty"`
}

func (c *Client) GetReturn(ctx context.Context, businessID, returnID string) (*domain.ReturnDoc, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetReturn")
	defer span.End()

	path := fmt.Sprintf("returns?business_id=eq.%s&id=eq.%s&select=*,return_items(*)&limit=1",
		url.QueryEscape(businessID), url.QueryEscape(returnID))
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, err
	}

	var rows []domain.ReturnDoc
	if body != nil {
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("decode return: %w", err)
		}
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "return", ID: returnID}
	}
	return &rows[0], nil
}

func (c *Client) CreateReturn(ctx context.Context, r *domain.ReturnDoc) (*domain.ReturnDoc, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateReturn")
	defer span.End()

	row := map[string]any{
		"id":           uuid.New().String(),
		"business_id":  r.BusinessID,
		"type":         r.Type,
		"document_id":  r.DocumentID,
		"party_id":     r.PartyID,
		"return_date":  r.ReturnDate,
		"supply_place": r.SupplyPlace,
		"subtotal":     r.Subtotal,
		"tax_total":    r.TaxTotal,
		"total_amount": r.TotalAmount,
		"reason":       r.Reason,
		"created_at":   time.Now().Format(time.RFC3339),
	}

	body, err := c.doPost(ctx, "returns", row)
	if err != nil {
		return nil, err
	}

	var created []domain.ReturnDoc
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode return: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("no result from returns insert")
	}

	if len(r.Items) > 0 {
		items := make([]map[string]any, 0, len(r.Items))
		for _, it := range r.Items {
			items = append(items, map[string]any{
				"return_id":    created[0].ID,
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
		itemsBody, err := c.doPost(ctx, "return_items", items)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(itemsBody, &created[0].Items); err != nil {
			return nil, fmt.Errorf("decode return items: %w", err)
		}
	}

	return &created[0], nil
}
