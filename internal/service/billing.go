package service

import (
	"context"
	"time"

	"github.com/saralbooks/billing-api/internal/domain"
	"github.com/saralbooks/billing-api/internal/infra/observability"
	"github.com/saralbooks/billing-api/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var billingTracer = otel.Tracer("service/billing")

// invoiceTransitions lists the legal status changes. Paid and void are
// terminal.
var invoiceTransitions = map[string][]string{
	domain.InvoiceStatusDraft:     {domain.InvoiceStatusFinalized, domain.InvoiceStatusVoid},
	domain.InvoiceStatusFinalized: {domain.InvoiceStatusPaid, domain.InvoiceStatusVoid},
}

// BillingService handles the document and catalog operations: invoices,
// purchases, returns, products, parties, payments and expenses.
type BillingService struct {
	store   port.BillingStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewBillingService creates a billing service.
func NewBillingService(store port.BillingStore, metrics *observability.Metrics, logger *zap.Logger) *BillingService {
	return &BillingService{store: store, metrics: metrics, logger: logger}
}

// ============================================================
// Invoices
// ============================================================

func (s *BillingService) ListInvoices(ctx context.Context, businessID string, period domain.Period) ([]domain.Invoice, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.ListInvoices")
	defer span.End()
	span.SetAttributes(attribute.String("business.id", businessID))

	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	return s.store.ListInvoices(ctx, businessID, period)
}

func (s *BillingService) GetInvoice(ctx context.Context, businessID, invoiceID string) (*domain.Invoice, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.GetInvoice")
	defer span.End()

	return s.store.GetInvoice(ctx, businessID, invoiceID)
}

// CreateInvoice validates and stores a new invoice. Missing totals are
// derived from the line items; a new invoice starts as a draft unless
// explicitly created as finalized.
func (s *BillingService) CreateInvoice(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.CreateInvoice")
	defer span.End()

	if inv.BusinessID == "" {
		return nil, &domain.ErrValidation{Field: "business_id", Message: "required"}
	}
	if inv.InvoiceNumber == "" {
		return nil, &domain.ErrValidation{Field: "invoice_number", Message: "required"}
	}
	if err := validateDate("issue_date", inv.IssueDate); err != nil {
		return nil, err
	}
	if inv.Status == "" {
		inv.Status = domain.InvoiceStatusDraft
	}
	if inv.Status != domain.InvoiceStatusDraft && inv.Status != domain.InvoiceStatusFinalized {
		return nil, &domain.ErrValidation{Field: "status", Message: "new invoices must be draft or finalized"}
	}
	fillDocumentTotals(&inv.Subtotal, &inv.TaxTotal, &inv.TotalAmount, inv.Items)

	created, err := s.store.CreateInvoice(ctx, inv)
	if err != nil {
		s.logger.Error("failed to create invoice",
			zap.String("business_id", inv.BusinessID),
			zap.String("invoice_number", inv.InvoiceNumber),
			zap.Error(err),
		)
		return nil, err
	}

	if created.Status == domain.InvoiceStatusFinalized {
		s.deductStock(ctx, created.BusinessID, created.Items)
	}

	s.logger.Info("invoice created",
		zap.String("business_id", created.BusinessID),
		zap.String("invoice_id", created.ID),
		zap.String("status", created.Status),
		zap.Float64("total", created.TotalAmount),
	)
	return created, nil
}

// UpdateInvoiceStatus moves an invoice through its lifecycle. Finalizing
// a draft deducts the sold quantities from stock.
func (s *BillingService) UpdateInvoiceStatus(ctx context.Context, businessID, invoiceID, status string) (*domain.Invoice, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.UpdateInvoiceStatus")
	defer span.End()
	span.SetAttributes(attribute.String("invoice.id", invoiceID), attribute.String("status", status))

	inv, err := s.store.GetInvoice(ctx, businessID, invoiceID)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(inv.Status, status) {
		return nil, &domain.ErrInvalidTransition{From: inv.Status, To: status}
	}

	if err := s.store.UpdateInvoiceStatus(ctx, invoiceID, status); err != nil {
		return nil, err
	}

	if inv.Status == domain.InvoiceStatusDraft && status == domain.InvoiceStatusFinalized {
		s.deductStock(ctx, businessID, inv.Items)
	}
	// Voiding a finalized invoice puts the goods back on the shelf.
	if inv.Status != domain.InvoiceStatusDraft && status == domain.InvoiceStatusVoid {
		s.restoreStock(ctx, businessID, inv.Items)
	}

	inv.Status = status
	s.logger.Info("invoice status updated",
		zap.String("invoice_id", invoiceID),
		zap.String("status", status),
	)
	return inv, nil
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range invoiceTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ============================================================
// Purchases
// ============================================================

func (s *BillingService) ListPurchases(ctx context.Context, businessID string, period domain.Period) ([]domain.Purchase, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.ListPurchases")
	defer span.End()

	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	return s.store.ListPurchases(ctx, businessID, period)
}

func (s *BillingService) GetPurchase(ctx context.Context, businessID, purchaseID string) (*domain.Purchase, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.GetPurchase")
	defer span.End()

	return s.store.GetPurchase(ctx, businessID, purchaseID)
}

// CreatePurchase validates and stores an inward bill, then adds the
// received quantities to stock.
func (s *BillingService) CreatePurchase(ctx context.Context, p *domain.Purchase) (*domain.Purchase, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.CreatePurchase")
	defer span.End()

	if p.BusinessID == "" {
		return nil, &domain.ErrValidation{Field: "business_id", Message: "required"}
	}
	if p.BillNumber == "" {
		return nil, &domain.ErrValidation{Field: "bill_number", Message: "required"}
	}
	if err := validateDate("purchase_date", p.PurchaseDate); err != nil {
		return nil, err
	}
	fillDocumentTotals(&p.Subtotal, &p.TaxTotal, &p.TotalAmount, p.Items)

	created, err := s.store.CreatePurchase(ctx, p)
	if err != nil {
		s.logger.Error("failed to create purchase",
			zap.String("business_id", p.BusinessID),
			zap.Error(err),
		)
		return nil, err
	}

	s.restoreStock(ctx, created.BusinessID, created.Items)

	s.logger.Info("purchase created",
		zap.String("business_id", created.BusinessID),
		zap.String("purchase_id", created.ID),
		zap.Float64("total", created.TotalAmount),
	)
	return created, nil
}

// ============================================================
// Returns
// ============================================================

func (s *BillingService) ListReturns(ctx context.Context, businessID string, period domain.Period) ([]domain.ReturnDoc, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.ListReturns")
	defer span.End()

	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	return s.store.ListReturns(ctx, businessID, period)
}

func (s *BillingService) GetReturn(ctx context.Context, businessID, returnID string) (*domain.ReturnDoc, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.GetReturn")
	defer span.End()

	return s.store.GetReturn(ctx, businessID, returnID)
}

// CreateReturn validates and stores a return document. A sales return
// brings goods back into stock; a purchase return sends them out.
func (s *BillingService) CreateReturn(ctx context.Context, r *domain.ReturnDoc) (*domain.ReturnDoc, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.CreateReturn")
	defer span.End()

	if r.BusinessID == "" {
		return nil, &domain.ErrValidation{Field: "business_id", Message: "required"}
	}
	if r.Type != domain.ReturnTypeSales && r.Type != domain.ReturnTypePurchase {
		return nil, &domain.ErrValidation{Field: "type", Message: "must be 'sales_return' or 'purchase_return'"}
	}
	if err := validateDate("return_date", r.ReturnDate); err != nil {
		return nil, err
	}
	fillDocumentTotals(&r.Subtotal, &r.TaxTotal, &r.TotalAmount, r.Items)

	created, err := s.store.CreateReturn(ctx, r)
	if err != nil {
		s.logger.Error("failed to create return",
			zap.String("business_id", r.BusinessID),
			zap.String("type", r.Type),
			zap.Error(err),
		)
		return nil, err
	}

	if created.Type == domain.ReturnTypeSales {
		s.restoreStock(ctx, created.BusinessID, created.Items)
	} else {
		s.deductStock(ctx, created.BusinessID, created.Items)
	}

	s.logger.Info("return created",
		zap.String("business_id", created.BusinessID),
		zap.String("return_id", created.ID),
		zap.String("type", created.Type),
	)
	return created, nil
}

// ============================================================
// Products
// ============================================================

func (s *BillingService) ListProducts(ctx context.Context, businessID string) ([]domain.Product, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.ListProducts")
	defer span.End()

	return s.store.ListProducts(ctx, businessID)
}

func (s *BillingService) GetProduct(ctx context.Context, businessID, productID string) (*domain.Product, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.GetProduct")
	defer span.End()

	return s.store.GetProduct(ctx, businessID, productID)
}

func (s *BillingService) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.CreateProduct")
	defer span.End()

	if p.BusinessID == "" {
		return nil, &domain.ErrValidation{Field: "business_id", Message: "required"}
	}
	if p.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "required"}
	}
	if p.SalePrice < 0 || p.PurchasePrice < 0 {
		return nil, &domain.ErrValidation{Field: "price", Message: "must not be negative"}
	}
	if p.StockQuantity < 0 {
		return nil, &domain.ErrValidation{Field: "stock_quantity", Message: "must not be negative"}
	}
	if p.Unit == "" {
		p.Unit = "pcs"
	}

	return s.store.CreateProduct(ctx, p)
}

// AdjustProductStock applies a signed delta to a product's on-hand count.
func (s *BillingService) AdjustProductStock(ctx context.Context, businessID, productID string, delta float64) (*domain.Product, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.AdjustProductStock")
	defer span.End()

	product, err := s.store.GetProduct(ctx, businessID, productID)
	if err != nil {
		return nil, err
	}

	newQty := product.StockQuantity + delta
	if err := s.store.UpdateProductStock(ctx, productID, newQty); err != nil {
		return nil, err
	}
	product.StockQuantity = newQty

	s.logger.Info("product stock adjusted",
		zap.String("product_id", productID),
		zap.Float64("delta", delta),
		zap.Float64("stock_quantity", newQty),
	)
	return product, nil
}

// deductStock lowers on-hand counts for the given line items. Stock is
// advisory; a failed update is logged, never fails the document write.
func (s *BillingService) deductStock(ctx context.Context, businessID string, items []domain.LineItem) {
	s.applyStockDelta(ctx, businessID, items, -1)
}

func (s *BillingService) restoreStock(ctx context.Context, businessID string, items []domain.LineItem) {
	s.applyStockDelta(ctx, businessID, items, 1)
}

func (s *BillingService) applyStockDelta(ctx context.Context, businessID string, items []domain.LineItem, sign float64) {
	for _, item := range items {
		if item.ProductID == "" || item.Quantity == 0 {
			continue
		}
		product, err := s.store.GetProduct(ctx, businessID, item.ProductID)
		if err != nil {
			s.logger.Warn("stock update skipped, product not resolved",
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			continue
		}
		newQty := product.StockQuantity + sign*item.Quantity
		if err := s.store.UpdateProductStock(ctx, item.ProductID, newQty); err != nil {
			s.logger.Error("failed to update product stock",
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
		}
	}
}

// ============================================================
// Parties
// ============================================================

func (s *BillingService) ListParties(ctx context.Context, businessID, partyType string) ([]domain.Party, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.ListParties")
	defer span.End()

	if partyType != "" && partyType != "customer" && partyType != "vendor" {
		return nil, &domain.ErrValidation{Field: "type", Message: "must be 'customer' or 'vendor'"}
	}
	return s.store.ListParties(ctx, businessID, partyType)
}

func (s *BillingService) GetParty(ctx context.Context, businessID, partyID string) (*domain.Party, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.GetParty")
	defer span.End()

	return s.store.GetParty(ctx, businessID, partyID)
}

func (s *BillingService) CreateParty(ctx context.Context, p *domain.Party) (*domain.Party, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.CreateParty")
	defer span.End()

	if p.BusinessID == "" {
		return nil, &domain.ErrValidation{Field: "business_id", Message: "required"}
	}
	if p.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "required"}
	}
	if p.Type != "customer" && p.Type != "vendor" {
		return nil, &domain.ErrValidation{Field: "type", Message: "must be 'customer' or 'vendor'"}
	}

	return s.store.CreateParty(ctx, p)
}

// ============================================================
// Payments
// ============================================================

func (s *BillingService) ListPayments(ctx context.Context, businessID string, period domain.Period) ([]domain.Payment, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.ListPayments")
	defer span.End()

	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	return s.store.ListPayments(ctx, businessID, period)
}

// RecordPayment stores a payment. A payment that settles a finalized
// invoice in full also marks that invoice paid.
func (s *BillingService) RecordPayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.RecordPayment")
	defer span.End()
	span.SetAttributes(attribute.Float64("amount", p.Amount))

	if p.BusinessID == "" {
		return nil, &domain.ErrValidation{Field: "business_id", Message: "required"}
	}
	if p.Amount <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "must be positive"}
	}
	if err := validateDate("payment_date", p.PaymentDate); err != nil {
		return nil, err
	}
	if p.Mode == "" {
		p.Mode = "cash"
	}

	created, err := s.store.CreatePayment(ctx, p)
	if err != nil {
		s.logger.Error("failed to record payment",
			zap.String("business_id", p.BusinessID),
			zap.Error(err),
		)
		return nil, err
	}

	if created.InvoiceID != "" {
		inv, invErr := s.store.GetInvoice(ctx, created.BusinessID, created.InvoiceID)
		if invErr == nil && inv.Status == domain.InvoiceStatusFinalized && created.Amount >= inv.TotalAmount {
			if stErr := s.store.UpdateInvoiceStatus(ctx, inv.ID, domain.InvoiceStatusPaid); stErr != nil {
				s.logger.Error("failed to mark invoice paid after payment",
					zap.String("invoice_id", inv.ID),
					zap.Error(stErr),
				)
			}
		}
	}

	s.logger.Info("payment recorded",
		zap.String("business_id", created.BusinessID),
		zap.String("payment_id", created.ID),
		zap.Float64("amount", created.Amount),
		zap.String("mode", created.Mode),
	)
	return created, nil
}

// ============================================================
// Expenses
// ============================================================

func (s *BillingService) ListExpenses(ctx context.Context, businessID string, period domain.Period) ([]domain.Expense, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.ListExpenses")
	defer span.End()

	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	return s.store.ListExpenses(ctx, businessID, period)
}

func (s *BillingService) RecordExpense(ctx context.Context, e *domain.Expense) (*domain.Expense, error) {
	ctx, span := billingTracer.Start(ctx, "BillingService.RecordExpense")
	defer span.End()

	if e.BusinessID == "" {
		return nil, &domain.ErrValidation{Field: "business_id", Message: "required"}
	}
	if e.Amount <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "must be positive"}
	}
	if err := validateDate("expense_date", e.ExpenseDate); err != nil {
		return nil, err
	}
	if e.Category == "" {
		e.Category = "general"
	}

	return s.store.CreateExpense(ctx, e)
}

// ============================================================
// Helpers
// ============================================================

func validateDate(field, value string) error {
	if value == "" {
		return &domain.ErrValidation{Field: field, Message: "required"}
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return &domain.ErrValidation{Field: field, Message: "invalid date, use YYYY-MM-DD"}
	}
	return nil
}

// fillDocumentTotals derives missing header totals from the line items.
// Explicit non-zero header values win over the derived ones.
func fillDocumentTotals(subtotal, taxTotal, totalAmount *float64, items []domain.LineItem) {
	if len(items) == 0 {
		if *totalAmount == 0 {
			*totalAmount = *subtotal + *taxTotal
		}
		return
	}

	var itemTax, itemGross float64
	for _, item := range items {
		itemTax += item.TaxAmount
		gross := item.Total
		if gross == 0 {
			gross = item.UnitPrice*item.Quantity + item.TaxAmount
		}
		itemGross += gross
	}

	if *taxTotal == 0 {
		*taxTotal = itemTax
	}
	if *totalAmount == 0 {
		*totalAmount = itemGross
	}
	if *subtotal == 0 {
		*subtotal = *totalAmount - *taxTotal
	}
}
