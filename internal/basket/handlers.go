package basket

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/architechlabs/basket-api/internal/catalog"
	"github.com/architechlabs/basket-api/internal/common"
	"github.com/architechlabs/basket-api/internal/money"
	"github.com/architechlabs/basket-api/internal/obs"
)

// Handler exposes basket and quote endpoints.
type Handler struct {
	Store    *Store
	Factory  Factory
	Validate *validator.Validate
	Logger   zerolog.Logger
}

type addItemRequest struct {
	Code string `json:"code" validate:"required"`
}

type quoteRequest struct {
	Codes []string `json:"codes" validate:"omitempty,dive,required"`
}

type moneyView struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}

type itemView struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitPrice moneyView `json:"unit_price"`
	Subtotal  moneyView `json:"subtotal"`
}

type totalsView struct {
	Subtotal moneyView `json:"subtotal"`
	Discount moneyView `json:"discount"`
	Delivery moneyView `json:"delivery"`
	Total    moneyView `json:"total"`
}

type basketView struct {
	ID     string     `json:"id,omitempty"`
	Items  []itemView `json:"items"`
	Totals totalsView `json:"totals"`
}

// Create handles POST /api/v1/baskets.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "basket store not configured", nil)
		return
	}
	id, err := h.Store.Create()
	if err != nil {
		h.writeError(w, err)
		return
	}
	if obs.BasketsLive != nil {
		obs.BasketsLive.Set(float64(h.Store.Len()))
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": map[string]string{"id": id.String()}})
}

// AddItem handles POST /api/v1/baskets/{basketID}/items.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "basket store not configured", nil)
		return
	}
	id, ok := h.basketID(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if !h.decode(w, r, &req) {
		return
	}

	snap, err := h.Store.AddItem(id, req.Code)
	if err != nil {
		h.countQuote("basket", "error")
		h.writeError(w, err)
		return
	}
	h.recordQuote("basket", snap.Totals)
	common.JSON(w, http.StatusOK, map[string]any{"data": h.view(snap)})
}

// Get handles GET /api/v1/baskets/{basketID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "basket store not configured", nil)
		return
	}
	id, ok := h.basketID(w, r)
	if !ok {
		return
	}

	snap, err := h.Store.Get(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.view(snap)})
}

// Quote handles POST /api/v1/quote: a stateless one-shot pricing of a code list.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if h.Factory == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "basket factory not configured", nil)
		return
	}

	var req quoteRequest
	if !h.decode(w, r, &req) {
		return
	}

	b, err := h.Factory()
	if err != nil {
		h.writeError(w, err)
		return
	}
	for _, code := range req.Codes {
		if err := b.Add(code); err != nil {
			h.countQuote("quote", "error")
			h.writeError(w, err)
			return
		}
	}

	totals, err := b.Totals()
	if err != nil {
		h.countQuote("quote", "error")
		h.writeError(w, err)
		return
	}
	h.recordQuote("quote", totals)

	snap := Snapshot{Items: b.Items(), Totals: totals}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.view(snap)})
}

func (h *Handler) basketID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "basketID")
	id, err := uuid.Parse(raw)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "INVALID_INPUT", "basket id must be a uuid", nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		common.JSONError(w, http.StatusBadRequest, "INVALID_INPUT", "request body must be valid JSON", nil)
		return false
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(dst); err != nil {
			common.JSONError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error(), nil)
			return false
		}
	}
	return true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var unknown *catalog.UnknownProductCodeError
	switch {
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "BASKET_NOT_FOUND", "basket not found or expired", nil)
	case errors.As(err, &unknown):
		common.JSONError(w, http.StatusUnprocessableEntity, "UNKNOWN_PRODUCT_CODE", unknown.Error(),
			map[string]string{"code": unknown.Code})
	case errors.Is(err, common.ErrInvalidArgument):
		common.JSONError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error(), nil)
	case errors.Is(err, money.ErrCurrencyMismatch):
		h.Logger.Error().Err(err).Msg("pricing configuration mixes currencies")
		common.JSONError(w, http.StatusInternalServerError, "PRICING_CONFIG", "pricing configuration error", nil)
	default:
		h.Logger.Error().Err(err).Msg("basket request failed")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	}
}

func (h *Handler) countQuote(source, result string) {
	if obs.QuoteTotal != nil {
		obs.QuoteTotal.WithLabelValues(source, result).Inc()
	}
}

func (h *Handler) recordQuote(source string, totals Totals) {
	h.countQuote(source, "ok")
	if obs.DiscountAppliedTotal != nil && totals.Discount.IsPositive() {
		obs.DiscountAppliedTotal.Inc()
	}
	if obs.DeliveryFeeSelected != nil {
		obs.DeliveryFeeSelected.WithLabelValues(strconv.FormatInt(totals.Delivery.Amount(), 10)).Inc()
	}
}

func (h *Handler) view(snap Snapshot) basketView {
	items := make([]itemView, 0, len(snap.Items))
	for _, item := range snap.Items {
		items = append(items, itemView{
			Code:      item.Product().Code(),
			Name:      item.Product().Name(),
			Quantity:  item.Quantity(),
			UnitPrice: toMoneyView(item.UnitPrice()),
			Subtotal:  toMoneyView(item.Subtotal()),
		})
	}

	view := basketView{
		Items: items,
		Totals: totalsView{
			Subtotal: toMoneyView(snap.Totals.Subtotal),
			Discount: toMoneyView(snap.Totals.Discount),
			Delivery: toMoneyView(snap.Totals.Delivery),
			Total:    toMoneyView(snap.Totals.Total),
		},
	}
	if snap.ID != uuid.Nil {
		view.ID = snap.ID.String()
	}
	return view
}

func toMoneyView(m money.Money) moneyView {
	return moneyView{Amount: m.Amount(), Currency: m.Currency(), Formatted: m.Format()}
}
