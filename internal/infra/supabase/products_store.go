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
// Products
// ============================================================

func (c *Client) ListProducts(ctx context.Context, businessID string) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListProducts")
	defer span.End()
	span.SetAttributes(attribute.String("business.id", businessID))

	path := fmt.Sprintf("products?business_id=eq.%s&order=name.asc", url.QueryEscape(businessID))

	var products []domain.Product
	err := c.execute(ctx, func() error {
		body, err := c.doGet(ctx, path)
		if err != nil {
			return err
		}
		if body == nil {
			products = []domain.Product{}
			return nil
		}
		if err := json.Unmarshal(body, &products); err != nil {
			return fmt.Errorf("decode products: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/products", Err: err}
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, businessID, productID string) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetProduct")
	defer span.End()

	path := fmt.Sprintf("products?business_id=eq.%s&id=eq.%s&limit=1",
		url.QueryEscape(businessID), url.QueryEscape(productID))
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, err
	}

	var rows []domain.Product
	if body != nil {
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "product", ID: productID}
	}
	return &rows[0], nil
}

func (c *Client) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateProduct")
	defer span.End()

	row := map[string]any{
		"id":              uuid.New().String(),
		"business_id":     p.BusinessID,
		"name":            p.Name,
		"category":        p.Category,
		"hsn_code":        p.HSNCode,
		"unit":            p.Unit,
		"sale_price":      p.SalePrice,
		"purchase_price":  p.PurchasePrice,
		"tax_rate":        p.TaxRate,
		"stock_quantity":  p.StockQuantity,
		"low_stock_alert": p.LowStockAlert,
		"created_at":      time.Now().Format(time.RFC3339),
	}

	body, err := c.doPost(ctx, "products", row)
	if err != nil {
		return nil, err
	}

	var created []domain.Product
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("no result from products insert")
	}
	return &created[0], nil
}

func (c *Client) UpdateProductStock(ctx context.Context, productID string, stockQuantity float64) error {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateProductStock")
	defer span.End()

	return c.doPatch(ctx, fmt.Sprintf("products?id=eq.%s", url.QueryEscape(productID)), map[string]any{
		"stock_quantity": stockQuantity,
		"updated_at":     time.Now().Format(time.RFC3339),
	})
}
