package httpapi

import (
	"net/http"

	"agrocampo-be/internal/purchase"
	"agrocampo-be/internal/user"
	"agrocampo-be/internal/utils"
)

type createPurchaseRequest struct {
	PaymentMethod   string `json:"payment_method" validate:"required"`
	DeliveryAddress string `json:"delivery_address,omitempty"`
}

type addLineRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,gte=1"`
}

// canAccessPurchase restricts clients to their own purchases. Admins and
// advisors see everything.
func canAccessPurchase(r *http.Request, p *purchase.Purchase) bool {
	role := utils.GetUserRoleFromContext(r.Context())
	if role == string(user.RoleAdmin) || role == string(user.RoleAdvisor) {
		return true
	}
	userID, _ := utils.GetUserIDFromContext(r.Context())
	return p.ClientID == userID
}

func (h *Handler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req createPurchaseRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		badRequest(w, err.Error())
		return
	}

	p, err := h.purchases.CreatePurchase(r.Context(), purchase.CreatePurchaseParams{
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

func (h *Handler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	purchases, err := h.purchases.ListByClient(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if purchases == nil {
		purchases = []*purchase.Purchase{}
	}

	respondJSON(w, http.StatusOK, purchases)
}

func (h *Handler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid purchase id")
		return
	}

	p, err := h.purchases.GetPurchase(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !canAccessPurchase(r, p) {
		utils.WriteJSONError(w, "insufficient permissions", http.StatusForbidden)
		return
	}

	respondJSON(w, http.StatusOK, p)
}

func (h *Handler) AddPurchaseLine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid purchase id")
		return
	}

	var req addLineRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		badRequest(w, err.Error())
		return
	}

	p, err := h.purchases.GetPurchase(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !canAccessPurchase(r, p) {
		utils.WriteJSONError(w, "insufficient permissions", http.StatusForbidden)
		return
	}

	line, err := h.purchases.AddLine(r.Context(), id, req.ProductID, req.Quantity)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, line)
}

func (h *Handler) CancelPurchase(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid purchase id")
		return
	}

	p, err := h.purchases.GetPurchase(r.Context(), id)
	if err == nil && !canAccessPurchase(r, p) {
		utils.WriteJSONError(w, "insufficient permissions", http.StatusForbidden)
		return
	}

	// Cancelling a purchase that no longer exists is a no-op.
	if err := h.purchases.CancelPurchase(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// PayPurchase closes the purchase and derives its shipment.
func (h *Handler) PayPurchase(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid purchase id")
		return
	}

	p, err := h.purchases.GetPurchase(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !canAccessPurchase(r, p) {
		utils.WriteJSONError(w, "insufficient permissions", http.StatusForbidden)
		return
	}

	sh, err := h.shipments.CreateForPurchase(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, sh)
}
