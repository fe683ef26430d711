package service

import (
	"context"
	"fmt"
	"time"

	"github.com/saralbooks/billing-api/internal/domain"

	"go.uber.org/zap"
)

// ============================================================
// Dev Tools
// ============================================================

// DevSeedResult reports what the sample-data seeder created.
type DevSeedResult struct {
	Products  int    `json:"products"`
	Parties   int    `json:"parties"`
	Invoices  int    `json:"invoices"`
	Purchases int    `json:"purchases"`
	Message   string `json:"message"`
}

// DevSeedSampleData populates a business with a small, deterministic
// data set so the report endpoints have something to chew on. Dev only;
// the router does not mount it in production.
func (s *BillingService) DevSeedSampleData(ctx context.Context, businessID string) (*DevSeedResult, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.DevSeedSampleData")
	defer span.End()

	if businessID == "" {
		return nil, &domain.ErrValidation{Field: "businessId", Message: "required"}
	}

	today := time.Now().Format("2006-01-02")
	result := &DevSeedResult{}

	products := []*domain.Product{
		{BusinessID: businessID, Name: "Ledger Notebook", Category: "stationery", HSNCode: "4820", Unit: "pcs", SalePrice: 250, PurchasePrice: 150, TaxRate: 12, StockQuantity: 40},
		{BusinessID: businessID, Name: "Desk Calculator", Category: "electronics", HSNCode: "8470", Unit: "pcs", SalePrice: 900, PurchasePrice: 600, TaxRate: 18, StockQuantity: 15},
		{BusinessID: businessID, Name: "Thermal Paper Roll", Category: "stationery", HSNCode: "4811", Unit: "pcs", SalePrice: 60, PurchasePrice: 35, TaxRate: 12, StockQuantity: 200},
	}
	seeded := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		created, err := s.CreateProduct(ctx, p)
		if err != nil {
			s.logger.Error("DEV: failed to seed product", zap.String("name", p.Name), zap.Error(err))
			continue
		}
		seeded = append(seeded, created)
		result.Products++
	}

	parties := []*domain.Party{
		{BusinessID: businessID, Name: "Sharma Traders", Type: "customer", State: "Maharashtra"},
		{BusinessID: businessID, Name: "Gupta Distributors", Type: "vendor", State: "Delhi"},
	}
	var customer *domain.Party
	for _, p := range parties {
		created, err := s.CreateParty(ctx, p)
		if err != nil {
			s.logger.Error("DEV: failed to seed party", zap.String("name", p.Name), zap.Error(err))
			continue
		}
		if created.Type == "customer" {
			customer = created
		}
		result.Parties++
	}

	if len(seeded) >= 2 && customer != nil {
		invoices := []*domain.Invoice{
			{
				BusinessID:    businessID,
				InvoiceNumber: fmt.Sprintf("SEED-%s-001", today),
				PartyID:       customer.ID,
				PartyName:     customer.Name,
				IssueDate:     today,
				SupplyPlace:   "Maharashtra",
				Status:        domain.InvoiceStatusFinalized,
				Items: []domain.LineItem{
					{ProductID: seeded[0].ID, ProductName: seeded[0].Name, HSNCode: seeded[0].HSNCode, Quantity: 4, UnitPrice: 250, TaxRate: 12, TaxAmount: 120, Total: 1120},
				},
			},
			{
				BusinessID:    businessID,
				InvoiceNumber: fmt.Sprintf("SEED-%s-002", today),
				PartyID:       customer.ID,
				PartyName:     customer.Name,
				IssueDate:     today,
				SupplyPlace:   "Delhi",
				Status:        domain.InvoiceStatusFinalized,
				Items: []domain.LineItem{
					{ProductID: seeded[1].ID, ProductName: seeded[1].Name, HSNCode: seeded[1].HSNCode, Quantity: 1, UnitPrice: 900, TaxRate: 18, TaxAmount: 162, Total: 1062},
				},
			},
		}
		for _, inv := range invoices {
			if _, err := s.CreateInvoice(ctx, inv); err != nil {
				s.logger.Error("DEV: failed to seed invoice", zap.String("number", inv.InvoiceNumber), zap.Error(err))
				continue
			}
			result.Invoices++
		}

		purchase := &domain.Purchase{
			BusinessID:   businessID,
			BillNumber:   fmt.Sprintf("SEED-PB-%s-001", today),
			PartyName:    "Gupta Distributors",
			PurchaseDate: today,
			SupplyPlace:  "Delhi",
			Items: []domain.LineItem{
				{ProductID: seeded[0].ID, ProductName: seeded[0].Name, Quantity: 20, UnitPrice: 150, TaxRate: 12, TaxAmount: 360, Total: 3360},
			},
		}
		if _, err := s.CreatePurchase(ctx, purchase); err != nil {
			s.logger.Error("DEV: failed to seed purchase", zap.Error(err))
		} else {
			result.Purchases++
		}
	}

	s.logger.Info("DEV: sample data seeded",
		zap.String("business_id", businessID),
		zap.Int("products", result.Products),
		zap.Int("invoices", result.Invoices),
	)

	result.Message = fmt.Sprintf("seeded %d products, %d parties, %d invoices, %d purchases",
		result.Products, result.Parties, result.Invoices, result.Purchases)
	return result, nil
}
