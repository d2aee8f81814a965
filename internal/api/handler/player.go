package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/highwayhustle/backend/internal/api/apierr"
	"github.com/highwayhustle/backend/internal/api/request"
	"github.com/highwayhustle/backend/internal/api/response"
	"github.com/highwayhustle/backend/internal/model"
	"github.com/highwayhustle/backend/internal/services/player"
)

// PlayerHandler handles profile endpoints
type PlayerHandler struct {
	controller *player.Controller
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(controller *player.Controller) *PlayerHandler {
	return &PlayerHandler{
		controller: controller,
	}
}

// userParam extracts the required user query parameter
func userParam(r *http.Request) (string, error) {
	user := r.URL.Query().Get("user")
	if user == "" {
		return "", apierr.NewInvalidRequestError("Missing 'user' parameter")
	}
	return user, nil
}

// Login handles POST /api/player/login
func (h *PlayerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	_, err := h.controller.Login(r.Context(), req.Identifier, req.PrivyMetaData,
		req.HomeWalletAddress, req.WalletAddress)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OKResponse{Success: true})
}

// GetAll handles GET /api/player/all. Creates the record with
// starting state when the identifier is unknown, so the game client's
// first load always succeeds.
func (h *PlayerHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	user, err := userParam(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	p, err := h.controller.Load(r.Context(), user)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	// The client polls this endpoint; stale caches break the game
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")

	response.JSON(w, http.StatusOK, response.DataResponse{
		Success: true,
		Data:    response.PlayerFromModel(p),
	})
}

// GetIdentity handles GET /api/player/privy
func (h *PlayerHandler) GetIdentity(w http.ResponseWriter, r *http.Request) {
	user, err := userParam(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	p, err := h.controller.Get(r.Context(), user)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DataResponse{
		Success: true,
		Data:    response.PrivyDataFromModel(p.Identity),
	})
}

// GetEconomy handles GET /api/player/game
func (h *PlayerHandler) GetEconomy(w http.ResponseWriter, r *http.Request) {
	user, err := userParam(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	p, err := h.controller.Get(r.Context(), user)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DataResponse{
		Success: true,
		Data:    response.UserGameDataFromModel(p.Economy),
	})
}

// GetScores handles GET /api/player/gamemode
func (h *PlayerHandler) GetScores(w http.ResponseWriter, r *http.Request) {
	user, err := userParam(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	p, err := h.controller.Get(r.Context(), user)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DataResponse{
		Success: true,
		Data:    response.PlayerGameModeDataFromModel(p.BestScores),
	})
}

// GetVehicles handles GET /api/player/vehicle
func (h *PlayerHandler) GetVehicles(w http.ResponseWriter, r *http.Request) {
	user, err := userParam(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	p, err := h.controller.Get(r.Context(), user)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DataResponse{
		Success: true,
		Data:    response.PlayerVehicleDataFromModel(p.Vehicles),
	})
}

// UpdateAll handles POST /api/player/all
func (h *PlayerHandler) UpdateAll(w http.ResponseWriter, r *http.Request) {
	user, err := userParam(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.FullUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	p, err := h.controller.UpdateAll(r.Context(), user, req)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			err = apierr.NewNotFoundError("Player not found. Use GET to create player first.")
		}
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DataResponse{
		Success: true,
		Data:    response.PlayerFromModel(p),
	})
}

// UpdateIdentity handles POST /api/player/privy
func (h *PlayerHandler) UpdateIdentity(w http.ResponseWriter, r *http.Request) {
	user, err := userParam(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.IdentityUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	p, err := h.controller.UpdateIdentity(r.Context(), user, req)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DataResponse{
		Success: true,
		Data:    response.PrivyDataFromModel(p.Identity),
	})
}

// UpdateEconomy handles POST /api/player/game
func (h *PlayerHandler) UpdateEconomy(w http.ResponseWriter, r *http.Request) {
	user, err := userParam(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.EconomyUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	p, err := h.controller.UpdateEconomy(r.Context(), user, req)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DataResponse{
		Success: true,
		Data:    response.UserGameDataFromModel(p.Economy),
	})
}

// UpdateScores handles POST /api/player/gamemode
func (h *PlayerHandler) UpdateScores(w http.ResponseWriter, r *http.Request) {
	user, err := userParam(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.ScoreUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	p, err := h.controller.UpdateScores(r.Context(), user, req)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DataResponse{
		Success: true,
		Data:    response.PlayerGameModeDataFromModel(p.BestScores),
	})
}

// UpdateVehicles handles POST /api/player/vehicle
func (h *PlayerHandler) UpdateVehicles(w http.ResponseWriter, r *http.Request) {
	user, err := userParam(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.VehicleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	p, err := h.controller.UpdateVehicles(r.Context(), user, req)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DataResponse{
		Success: true,
		Data:    response.PlayerVehicleDataFromModel(p.Vehicles),
	})
}
