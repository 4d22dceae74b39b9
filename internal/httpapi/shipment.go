package httpapi

import (
	"net/http"

	"agrocampo-be/internal/shipment"
)

type assignRequest struct {
	CarrierID int64 `json:"carrier_id" validate:"required"`
	VehicleID int64 `json:"vehicle_id" validate:"required"`
}

func (h *Handler) GetShipment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid shipment id")
		return
	}

	sh, err := h.shipments.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, sh)
}

func (h *Handler) ListShipments(w http.ResponseWriter, r *http.Request) {
	status := shipment.Status(r.URL.Query().Get("status"))
	if status == "" {
		status = shipment.StatusSeekingCarrier
	}

	shipments, err := h.shipments.ListByStatus(r.Context(), status)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if shipments == nil {
		shipments = []*shipment.Shipment{}
	}

	respondJSON(w, http.StatusOK, shipments)
}

func (h *Handler) RecomputeShipment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid shipment id")
		return
	}

	sh, err := h.shipments.Recompute(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, sh)
}

func (h *Handler) AssignShipment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid shipment id")
		return
	}

	var req assignRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		badRequest(w, err.Error())
		return
	}

	sh, err := h.shipments.Assign(r.Context(), id, req.CarrierID, req.VehicleID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, sh)
}

func (h *Handler) FinalizeShipment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, "invalid shipment id")
		return
	}

	sh, err := h.shipments.Finalize(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, sh)
}
