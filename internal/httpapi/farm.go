package httpapi

import (
	"net/http"

	"agrocampo-be/internal/farm"
	"agrocampo-be/internal/utils"
)

type createFarmRequest struct {
	Name    string  `json:"name" validate:"required"`
	Address string  `json:"address" validate:"required"`
	Lat     float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon     float64 `json:"lon" validate:"gte=-180,lte=180"`
}

func (h *Handler) CreateFarm(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req createFarmRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		badRequest(w, err.Error())
		return
	}

	f := &farm.Farm{
		ProducerID: userID,
		Name:       req.Name,
		Address:    req.Address,
		Lat:        req.Lat,
		Lon:        req.Lon,
	}
	if err := h.farms.Create(r.Context(), f); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, f)
}

func (h *Handler) ListFarms(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	farms, err := h.farms.ListByProducer(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if farms == nil {
		farms = []*farm.Farm{}
	}

	respondJSON(w, http.StatusOK, farms)
}
