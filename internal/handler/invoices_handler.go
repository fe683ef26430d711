package handler

import (
	"encoding/json"
	"net/http"

	"github.com/saralbooks/billing-api/internal/domain"
	"github.com/saralbooks/billing-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Invoices
// ============================================================

func listInvoicesHandler(svc *service.BillingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /invoices")
		defer span.End()

		invoices, err := svc.ListInvoices(ctx, chi.URLParam(r, "businessId"), periodFromQuery(r))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, invoices)
	}
}

func getInvoiceHandler(svc *service.BillingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /invoices/{invoiceId}")
		defer span.End()

		inv, err := svc.GetInvoice(ctx, chi.URLParam(r, "businessId"), chi.URLParam(r, "invoiceId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, inv)
	}
}

func createInvoiceHandler(svc *service.BillingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /invoices")
		defer span.End()

		var inv domain.Invoice
		if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		inv.BusinessID = chi.URLParam(r, "businessId")

		created, err := svc.CreateInvoice(ctx, &inv)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateInvoiceStatusHandler(svc *service.BillingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /invoices/{invoiceId}/status")
		defer span.End()

		var req struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Status == "" {
			writeError(w, http.StatusBadRequest, "status is required")
			return
		}

		inv, err := svc.UpdateInvoiceStatus(ctx, chi.URLParam(r, "businessId"), chi.URLParam(r, "invoiceId"), req.Status)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, inv)
	}
}
