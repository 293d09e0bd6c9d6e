package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/fastprodman/ticketcalc/internal/services/pricing"
	"github.com/fastprodman/ticketcalc/internal/services/quote"
)

// Quoter is the part of quote.QuoteService the handlers need.
type Quoter interface {
	Prices() []quote.CategoryPrice
	Quote(ctx context.Context, q quote.Query) (quote.Quote, error)
}

// HandlerProvider wraps a Quoter and exposes HTTP handlers.
type HandlerProvider struct {
	svc Quoter
}

// NewHandler returns a new Handler provider.
func NewHandler(svc Quoter) *HandlerProvider {
	return &HandlerProvider{svc: svc}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type quoteRequest struct {
	Category        *pricing.Category `json:"category"`
	Quantity        int               `json:"quantity"`
	RedeemPoints    bool              `json:"redeemPoints"`
	AvailablePoints int64             `json:"availablePoints"`
}

type quoteResponse struct {
	QuoteID         string           `json:"quoteId"`
	Category        pricing.Category `json:"category"`
	Quantity        int              `json:"quantity"`
	UnitPrice       string           `json:"unitPrice"`
	Subtotal        string           `json:"subtotal"`
	GroupDiscount   string           `json:"groupDiscount"`
	LoyaltyDiscount string           `json:"loyaltyDiscount"`
	Tax             string           `json:"tax"`
	FinalPrice      string           `json:"finalPrice"`
	PointsSpent     int64            `json:"pointsSpent"`
	PointsEarned    int64            `json:"pointsEarned"`
	NewBalance      int64            `json:"newBalance"`
}

type categoryResponse struct {
	Category  pricing.Category `json:"category"`
	UnitPrice string           `json:"unitPrice"`
}

// --- Handlers ---

// CategoriesHandler handles GET /categories
func (h *HandlerProvider) CategoriesHandler(w http.ResponseWriter, r *http.Request) {
	prices := h.svc.Prices()

	resp := make([]categoryResponse, 0, len(prices))
	for _, p := range prices {
		resp = append(resp, categoryResponse{
			Category:  p.Category,
			UnitPrice: p.UnitPrice.StringFixed(2),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// QuoteHandler handles POST /quotes
func (h *HandlerProvider) QuoteHandler(w http.ResponseWriter, r *http.Request) {
	// Limit body size; disallow unknown fields
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB cap
	defer r.Body.Close()

	var req quoteRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(&req)
	if err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "empty body")
			return
		}

		if errors.Is(err, pricing.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "invalid category")
			return
		}

		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Category == nil {
		writeError(w, http.StatusBadRequest, "category required")
		return
	}

	q, err := h.svc.Quote(r.Context(), quote.Query{
		Category:        *req.Category,
		Quantity:        req.Quantity,
		RedeemPoints:    req.RedeemPoints,
		AvailablePoints: req.AvailablePoints,
	})
	if err != nil {
		switch {
		case errors.Is(err, quote.ErrCategoryNotPriced):
			writeError(w, http.StatusNotFound, "category not priced")
			return
		case errors.Is(err, pricing.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		default:
			slog.ErrorContext(r.Context(), "quote failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	res := q.Result
	writeJSON(w, http.StatusOK, quoteResponse{
		QuoteID:         q.ID.String(),
		Category:        q.Category,
		Quantity:        q.Quantity,
		UnitPrice:       q.UnitPrice.StringFixed(2),
		Subtotal:        res.GrossSubtotal.StringFixed(2),
		GroupDiscount:   res.GroupDiscount.StringFixed(2),
		LoyaltyDiscount: res.LoyaltyDiscount.StringFixed(2),
		Tax:             res.Tax.StringFixed(2),
		FinalPrice:      res.FinalPrice.StringFixed(2),
		PointsSpent:     res.PointsSpent,
		PointsEarned:    res.PointsEarned,
		NewBalance:      res.NewBalance,
	})
}
