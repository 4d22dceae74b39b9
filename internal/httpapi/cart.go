package httpapi

import (
	"net/http"

	"agrocampo-be/internal/cart"
	"agrocampo-be/internal/utils"
)

type cartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required"`
}

type checkoutRequest struct {
	PaymentMethod   string `json:"payment_method" validate:"required"`
	DeliveryAddress string `json:"delivery_address,omitempty"`
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	rows, err := h.carts.GetCart(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if rows == nil {
		rows = []cart.Row{}
	}

	respondJSON(w, http.StatusOK, rows)
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req cartItemRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		badRequest(w, err.Error())
		return
	}

	item, err := h.carts.AddToCart(r.Context(), cart.AddParams{
		ClientID:  userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

func (h *Handler) UpdateCartQuantity(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req cartItemRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.ProductID == 0 {
		badRequest(w, "product_id is required")
		return
	}

	err := h.carts.UpdateQuantity(r.Context(), cart.UpdateParams{
		ClientID:  userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	productID, ok := pathID(r, "productID")
	if !ok {
		badRequest(w, "invalid product id")
		return
	}

	if err := h.carts.RemoveFromCart(r.Context(), userID, productID); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req checkoutRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		badRequest(w, err.Error())
		return
	}

	p, err := h.carts.Checkout(r.Context(), cart.CheckoutParams{
		ClientID:        userID,
		PaymentMethod:   req.PaymentMethod,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, p)
}
