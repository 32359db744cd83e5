package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/greenways/greenways/internal/api/models"
	"github.com/greenways/greenways/internal/api/response"
	"github.com/greenways/greenways/internal/route"
)

// RoutePlanner computes multi-mode route options. Satisfied by
// *planner.Service.
type RoutePlanner interface {
	PlanRoutes(ctx context.Context, origin, destination string) *models.RouteOptionsResponse
}

// RouteHandler handles route planning and saved-route endpoints.
type RouteHandler struct {
	planner      RoutePlanner
	routeService *route.Service
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(planner RoutePlanner, routeService *route.Service) *RouteHandler {
	return &RouteHandler{
		planner:      planner,
		routeService: routeService,
	}
}

// RouteOptions handles POST /v1/routes/options - compute route options
// for all travel modes.
func (h *RouteHandler) RouteOptions(w http.ResponseWriter, r *http.Request) {
	var input models.RouteOptionsRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if input.Origin == "" || input.Destination == "" {
		response.BadRequest(w, r, "origin and destination are required", []models.FieldError{
			{Field: "origin", Message: "required"},
			{Field: "destination", Message: "required"},
		})
		return
	}

	resp := h.planner.PlanRoutes(r.Context(), input.Origin, input.Destination)

	w.Header().Set("Cache-Control", "private, max-age=60")
	response.JSON(w, r, http.StatusOK, resp)
}

// SaveRoute handles POST /v1/routes/save - persist a chosen route.
func (h *RouteHandler) SaveRoute(w http.ResponseWriter, r *http.Request) {
	var input models.SaveRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if input.UserID == "" || input.RouteData == nil {
		response.BadRequest(w, r, "userId and routeData are required", []models.FieldError{
			{Field: "userId", Message: "required"},
			{Field: "routeData", Message: "required"},
		})
		return
	}

	saved, err := h.routeService.Save(r.Context(), input.UserID, input.RouteData)
	if err != nil {
		if errors.Is(err, route.ErrStoreUnavailable) {
			response.ServiceUnavailable(w, r, "route store unavailable, please try again later")
			return
		}
		response.InternalError(w, r, "failed to save route")
		return
	}

	response.Created(w, r, "/v1/routes/"+saved.ID, models.SaveRouteResponse{
		Message: "Route saved successfully",
		Route:   *saved,
	})
}

// UserRoutes handles GET /v1/routes/user/{userId} - list a user's saved
// routes, most recent first.
func (h *RouteHandler) UserRoutes(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		response.BadRequest(w, r, "user ID is required", nil)
		return
	}

	routes, err := h.routeService.ListByUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, route.ErrStoreUnavailable) {
			response.ServiceUnavailable(w, r, "route store unavailable, please try again later")
			return
		}
		response.InternalError(w, r, "failed to load saved routes")
		return
	}

	response.JSON(w, r, http.StatusOK, routes)
}

// DeleteRoute handles DELETE /v1/routes/{routeId} - remove a saved route.
func (h *RouteHandler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	routeID := chi.URLParam(r, "routeId")
	if routeID == "" {
		response.BadRequest(w, r, "route ID is required", nil)
		return
	}

	deleted, err := h.routeService.Delete(r.Context(), routeID)
	if err != nil {
		switch {
		case errors.Is(err, route.ErrRouteNotFound):
			response.NotFound(w, r, "route not found")
		case errors.Is(err, route.ErrStoreUnavailable):
			response.ServiceUnavailable(w, r, "route store unavailable, please try again later")
		default:
			response.InternalError(w, r, "failed to delete route")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, models.DeleteRouteResponse{
		Success:      true,
		Message:      "Route deleted successfully",
		DeletedRoute: *deleted,
	})
}
