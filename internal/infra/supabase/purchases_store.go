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
// Purchases
// ============================================================

func (c *Client) ListPurchases(ctx context.Context, businessID string, period domain.Period) ([]domain.Purchase, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListPurchases")
	defer span.End()
	span.SetAttributes(attribute.String("business.id", businessID))

	path := fmt.Sprintf("purchases?business_id=eq.%s&select=*,purchase_items(*)&order=purchase_date.asc",
		url.QueryEscape(businessID))
	path += periodFilter("purchase_date", period)

	var purchases []domain.Purchase
	err := c.execute(ctx, func() error {
		body, err := c.doGet(ctx, path)
		if err != nil {
			return err
		}
		if body == nil {
			purchases = []domain.Purchase{}
			return nil
		}
		if err := json.Unmarshal(body, &purchases); err != nil {
			return fmt.Errorf("decode purchases: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/purchases", Err: err}
	}
	return purchases, nil
}

func (c *Client) GetPurchase(ctx context.Context, businessID, purchaseID string) (*domain.Purchase, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetPurchase")
	defer span.End()

	path := fmt.Sprintf("purchases?business_id=eq.%s&id=eq.%s&select=*,purchase_items(*)&limit=1",
		url.QueryEscape(businessID), url.QueryEscape(purchaseID))
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, err
	}

	var rows []domain.Purchase
	if body != nil {
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("decode purchase: %w", err)
		}
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "purchase", ID: purchaseID}
	}
	return &rows[0], nil
}

func (c *Client) CreatePurchase(ctx context.Context, p *domain.Purchase) (*domain.Purchase, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreatePurchase")
	defer span.End()

	row := map[string]any{
		"id":            uuid.New().String(),
		"business_id":   p.BusinessID,
		"bill_number":   p.BillNumber,
		"party_id":      p.PartyID,
		"party_name":    p.PartyName,
		"purchase_date": p.PurchaseDate,
		"supply_place":  p.SupplyPlace,
		"subtotal":      p.Subtotal,
		"tax_total":     p.TaxTotal,
		"total_amount":  p.TotalAmount,
		"status":        p.Status,
		"created_at":    time.Now().Format(time.RFC3339),
	}

	body, err := c.doPost(ctx, "purchases", row)
	if err != nil {
		return nil, err
	}

	var created []domain.Purchase
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode purchase: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("no result from purchases insert")
	}

	if len(p.Items) > 0 {
		items := make([]map[string]any, 0, len(p.Items))
		for _, it := range p.Items {
			items = append(items, map[string]any{
				"purchase_id":  created[0].ID,
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
		itemsBody, err := c.doPost(ctx, "purchase_items", items)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(itemsBody, &created[0].Items); err != nil {
			return nil, fmt.Errorf("decode purchase items: %w", err)
		}
	}

	return &created[0], nil
}
