package httpapi

import (
	"net/http"
	"strconv"

	"agrocampo-be/internal/product"
	"agrocampo-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type createProductRequest struct {
	FarmID      int64   `json:"farm_id" validate:"required"`
	CategoryID  int64   `json:"category_id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	WeightKg    float64 `json:"weight_kg,omitempty"`
	ImageURL    *string `json:"imageurl,omitempty"`
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req createProductRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		badRequest(w, err.Error())
		return
	}

	p, err := h.products.Create(r.Context(), product.CreateParams{
		ProducerID:  userID,
		FarmID:      req.FarmID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		WeightKg:    req.WeightKg,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, p)
}

type updateStockRequest struct {
	Stock int `json:"stock" validate:"gte=0"`
}

func (h *Handler) UpdateProductStock(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid product id")
		return
	}

	var req updateStockRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		badRequest(w, err.Error())
		return
	}

	p, err := h.products.UpdateStock(r.Context(), userID, id, req.Stock)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, p)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid product id")
		return
	}

	p, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, p)
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	opts := product.ListOptions{OnlyActive: true}

	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badRequest(w, "invalid category_id")
			return
		}
		opts.CategoryID = &id
	}
	if raw := r.URL.Query().Get("farm_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badRequest(w, "invalid farm_id")
			return
		}
		opts.FarmID = &id
	}

	products, err := h.products.List(r.Context(), opts)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if products == nil {
		products = []*product.Product{}
	}

	respondJSON(w, http.StatusOK, products)
}
