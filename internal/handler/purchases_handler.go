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
// Purchases
// ============================================================

func listPurchasesHandler(svc *service.BillingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /purchases")
		defer span.End()

		purchases, err := svc.ListPurchases(ctx, chi.URLParam(r, "businessId"), periodFromQuery(r))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, purchases)
	}
}

func getPurchaseHandler(svc *service.BillingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /purchases/{purchaseId}")
		defer span.End()

		p, err := svc.GetPurchase(ctx, chi.URLParam(r, "businessId"), chi.URLParam(r, "purchaseId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func createPurchaseHandler(svc *service.BillingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /purchases")
		defer span.End()

		var p domain.Purchase
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		p.BusinessID = chi.URLParam(r, "businessId")

		created, err := svc.CreatePurchase(ctx, &p)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

// ============================================================
// Returns
// ============================================================

func listReturnsHandler(svc *service.BillingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /returns")
		defer span.End()

		returns, err := svc.ListReturns(ctx, chi.URLParam(r, "businessId"), periodFromQuery(r))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, returns)
	}
}

func getReturnHandler(svc *service.BillingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /returns/{returnId}")
		defer span.End()

		ret, err := svc.GetReturn(ctx, chi.URLParam(r, "businessId"), chi.URLParam(r, "returnId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, ret)
	}
}

func createReturnHandler(svc *service.BillingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /returns")
		defer span.End()

		var ret domain.ReturnDoc
		if err := json.NewDecoder(r.Body).Decode(&ret); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		ret.BusinessID = chi.URLParam(r, "businessId")

		created, err := svc.CreateReturn(ctx, &ret)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}
