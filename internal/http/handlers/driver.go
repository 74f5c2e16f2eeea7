package handlers

import (
	"net/http"

	"cargo-dispatch-service/internal/domain"
)

// DriverHandler serves HTTP endpoints for driver resources.
type DriverHandler struct{ uc driverUsecase }

// NewDriverHandler wires a driverUsecase into HTTP handlers.
func NewDriverHandler(uc driverUsecase) *DriverHandler { return &DriverHandler{uc: uc} }

// Register handles POST /drivers.
func (h *DriverHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerDriverRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}
	d, err := toDomainDriver(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid coordinates")
		return
	}

	id, err := h.uc.Register(r.Context(), d)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", "/drivers/"+id)
	writeJSON(w, r, http.StatusCreated, map[string]string{"id": id})
}

// GetByID handles GET /drivers/{id}.
func (h *DriverHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid id")
		return
	}

	d, err := h.uc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	resp := toDriverResponse(d)
	// registration is the driver's own data, visible only to them
	if viewerID(r) != d.ID {
		resp.Vehicle.Registration = ""
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// UpdateLocation handles PUT /drivers/{id}/location.
func (h *DriverHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req updateLocationRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}
	c, err := domain.ParseCoordinate(req.Location)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid coordinates")
		return
	}

	if err := h.uc.UpdateLocation(r.Context(), id, c); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// UpdateStatus handles PUT /drivers/{id}/status.
func (h *DriverHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req updateDriverStatusRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	if err := h.uc.UpdateStatus(r.Context(), id, domain.DriverStatus(req.Status)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Update handles PUT /drivers with partial updates from the request body.
func (h *DriverHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateDriverRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	ok, err := h.uc.UpdatePartial(r.Context(), toPartialDriverUpdate(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !ok {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
