package handlers

import (
	"net/http"
	"strconv"

	"cargo-dispatch-service/internal/domain"
)

// DispatchHandler serves HTTP endpoints for delivery resources.
type DispatchHandler struct{ uc dispatchUsecase }

// NewDispatchHandler wires a dispatchUsecase into HTTP handlers.
func NewDispatchHandler(uc dispatchUsecase) *DispatchHandler { return &DispatchHandler{uc: uc} }

// Create handles POST /deliveries.
func (h *DispatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	requester := requesterID(r)
	if requester == "" {
		writeError(w, r, http.StatusBadRequest, "missing "+headerUserID)
		return
	}

	var req createDeliveryRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}
	in, err := toCreateInput(requester, req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid coordinates")
		return
	}

	d, err := h.uc.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", "/deliveries/"+d.ID)
	writeJSON(w, r, http.StatusCreated, toDeliveryResponse(*d))
}

// Estimate handles POST /deliveries/estimate.
func (h *DispatchHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req estimateFareRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}
	pickup, err := toLocationInput(req.Pickup)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid coordinates")
		return
	}
	dropoff, err := toLocationInput(req.Dropoff)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid coordinates")
		return
	}

	est, err := h.uc.EstimateFare(r.Context(), pickup, dropoff, domain.VehicleClass(req.VehicleClass), toCargo(req.Cargo))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, estimateFareResponse{
		Fare:            est.Fare,
		DistanceMeters:  est.DistanceMeters,
		DurationSeconds: est.DurationSeconds,
	})
}

// Get handles GET /deliveries/{id}.
func (h *DispatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid id")
		return
	}
	viewer := viewerID(r)
	if viewer == "" {
		writeError(w, r, http.StatusBadRequest, "missing viewer identity")
		return
	}

	v, err := h.uc.Get(r.Context(), id, viewer)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toViewResponse(v))
}

// ListMine handles GET /deliveries for the requester.
func (h *DispatchHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	requester := requesterID(r)
	if requester == "" {
		writeError(w, r, http.StatusBadRequest, "missing "+headerUserID)
		return
	}

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			writeError(w, r, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = v
	}

	list, err := h.uc.ListForRequester(r.Context(), requester, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toDeliveryList(list))
}

// ListNearby handles GET /deliveries/nearby for a driver.
func (h *DispatchHandler) ListNearby(w http.ResponseWriter, r *http.Request) {
	driver := driverID(r)
	if driver == "" {
		writeError(w, r, http.StatusBadRequest, "missing "+headerDriverID)
		return
	}

	radius := 0.0
	if s := r.URL.Query().Get("radius_km"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid radius_km")
			return
		}
		radius = v
	}

	list, err := h.uc.ListNearby(r.Context(), driver, radius)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toDeliveryList(list))
}

// ListAssigned handles GET /deliveries/assigned for a driver.
func (h *DispatchHandler) ListAssigned(w http.ResponseWriter, r *http.Request) {
	driver := driverID(r)
	if driver == "" {
		writeError(w, r, http.StatusBadRequest, "missing "+headerDriverID)
		return
	}

	list, err := h.uc.ListAssigned(r.Context(), driver)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toDeliveryList(list))
}

// Accept handles POST /deliveries/{id}/accept.
func (h *DispatchHandler) Accept(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid id")
		return
	}
	driver := driverID(r)
	if driver == "" {
		writeError(w, r, http.StatusBadRequest, "missing "+headerDriverID)
		return
	}

	d, err := h.uc.Accept(r.Context(), id, driver)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toDeliveryResponse(*d))
}

// VerifyPickup handles POST /deliveries/{id}/verify-pickup.
func (h *DispatchHandler) VerifyPickup(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid id")
		return
	}
	driver := driverID(r)
	if driver == "" {
		writeError(w, r, http.StatusBadRequest, "missing "+headerDriverID)
		return
	}
	var req verifyPickupRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	d, err := h.uc.VerifyPickup(r.Context(), id, driver, req.OTP)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toDeliveryResponse(*d))
}

// Advance handles POST /deliveries/{id}/status.
func (h *DispatchHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid id")
		return
	}
	driver := driverID(r)
	if driver == "" {
		writeError(w, r, http.StatusBadRequest, "missing "+headerDriverID)
		return
	}
	var req advanceStatusRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	d, err := h.uc.Advance(r.Context(), id, driver, domain.DeliveryStatus(req.Status))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toDeliveryResponse(*d))
}

// Cancel handles POST /deliveries/{id}/cancel.
func (h *DispatchHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid id")
		return
	}
	requester := requesterID(r)
	if requester == "" {
		writeError(w, r, http.StatusBadRequest, "missing "+headerUserID)
		return
	}

	d, err := h.uc.Cancel(r.Context(), id, requester)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toDeliveryResponse(*d))
}
