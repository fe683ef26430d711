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
// Payments
// ============================================================

func listPaymentsHandler(svc *service.BillingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /payments")
		defer span.End()

		payments, err := svc.ListPayments(ctx, chi.URLParam(r, "businessId"), periodFromQuery(r))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, payments)
	}
}

func recordPaymentHandler(svc *service.BillingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /payments")
		defer span.End()

		var p domain.Payment
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		p.BusinessID = chi.URLParam(r, "businessId")

		created, err := svc.RecordPayment(ctx, &p)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

// ============================================================
// Expenses
// ============================================================

func listExpensesHandler(svc *service.BillingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /expenses")
		defer span.End()

		expenses, err := svc.ListExpenses(ctx, chi.URLParam(r, "businessId"), periodFromQuery(r))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, expenses)
	}
}

func recordExpenseHandler(svc *service.BillingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /expenses")
		defer span.End()

		var e domain.Expense
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		e.BusinessID = chi.URLParam(r, "businessId")

		created, err := svc.RecordExpense(ctx, &e)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}
