package catalog

import (
	"errors"
	"net/http"

	"github.com/architechlabs/basket-api/internal/common"
)

// Handler exposes public catalog endpoints.
type Handler struct {
	catalog *Catalog
}

// NewHandler constructs a Handler.
func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// productView is the wire representation of a product.
type productView struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}

// Products handles GET /api/v1/products.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog not configured", nil)
		return
	}
	products := h.catalog.All()
	views := make([]productView, 0, len(products))
	for _, product := range products {
		views = append(views, productView{
			Code:      product.Code(),
			Name:      product.Name(),
			Price:     product.Price().Amount(),
			Currency:  product.Price().Currency(),
			Formatted: product.Price().Format(),
		})
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": views})
}

// Product handles GET /api/v1/products/{code}.
func (h *Handler) Product(w http.ResponseWriter, r *http.Request, code string) {
	if h.catalog == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog not configured", nil)
		return
	}
	product, err := h.catalog.Get(code)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownProduct):
			common.JSONError(w, http.StatusNotFound, "PRODUCT_NOT_FOUND", err.Error(), nil)
		case errors.Is(err, common.ErrInvalidArgument):
			common.JSONError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error(), nil)
		default:
			common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "lookup failed", nil)
		}
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": productView{
		Code:      product.Code(),
		Name:      product.Name(),
		Price:     product.Price().Amount(),
		Currency:  product.Price().Currency(),
		Formatted: product.Price().Format(),
	}})
}
