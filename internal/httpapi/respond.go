package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"agrocampo-be/internal/cart"
	"agrocampo-be/internal/geo"
	"agrocampo-be/internal/logger"
	"agrocampo-be/internal/product"
	"agrocampo-be/internal/purchase"
	"agrocampo-be/internal/shipment"
	"agrocampo-be/internal/user"
	"agrocampo-be/internal/utils"

	"go.uber.org/zap"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps domain errors to HTTP status codes. Unknown errors are
// logged and hidden behind a 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, purchase.ErrPurchaseNotFound),
		errors.Is(err, purchase.ErrProductNotFound),
		errors.Is(err, purchase.ErrClientNotFound),
		errors.Is(err, shipment.ErrShipmentNotFound),
		errors.Is(err, shipment.ErrPurchaseNotFound),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, cart.ErrItemNotFound):
		status = http.StatusNotFound

	case errors.Is(err, user.ErrEmailExists),
		errors.Is(err, purchase.ErrInsufficientStock),
		errors.Is(err, purchase.ErrPurchaseClosed),
		errors.Is(err, shipment.ErrAlreadyShipped),
		errors.Is(err, shipment.ErrInvalidTransition),
		errors.Is(err, cart.ErrInsufficientStock):
		status = http.StatusConflict

	case errors.Is(err, user.ErrInvalidRole),
		errors.Is(err, purchase.ErrInvalidQuantity),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrInvalidStock),
		errors.Is(err, shipment.ErrEmptyPurchase),
		errors.Is(err, cart.ErrEmptyCart),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, geo.ErrInvalidCoordinate):
		status = http.StatusUnprocessableEntity

	case errors.Is(err, user.ErrInvalidCredentials):
		status = http.StatusUnauthorized

	case errors.Is(err, product.ErrForbidden):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("unhandled request error", zap.Error(err))
		utils.WriteJSONError(w, "internal server error", status)
		return
	}

	utils.WriteJSONError(w, err.Error(), status)
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

func badRequest(w http.ResponseWriter, message string) {
	utils.WriteJSONError(w, message, http.StatusBadRequest)
}
