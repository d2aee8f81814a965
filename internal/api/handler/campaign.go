package handler

import (
	"net/http"

	"github.com/highwayhustle/backend/internal/api/apierr"
	"github.com/highwayhustle/backend/internal/api/response"
	"github.com/highwayhustle/backend/internal/services/player"
)

const achievementFlag = "Achieved1000M"

// CampaignHandler handles the achievement check and the public
// listing endpoints consumed by external integrations.
type CampaignHandler struct {
	controller *player.Controller
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(controller *player.Controller) *CampaignHandler {
	return &CampaignHandler{
		controller: controller,
	}
}

// CheckAchievement handles GET /api/check-user-achievement. The
// integration that calls it treats any non-200 status as an outage,
// so every outcome is reported through the body.
func (h *CampaignHandler) CheckAchievement(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")
	if user == "" {
		response.JSON(w, http.StatusOK, response.AchievementResponse{
			Message: "failed, missing user parameter",
			Code:    http.StatusOK,
		})
		return
	}

	if !h.controller.CheckAchievement(r.Context(), user, achievementFlag) {
		response.JSON(w, http.StatusOK, response.AchievementResponse{
			Message: "failed, user doesn't qualified",
			Code:    http.StatusOK,
		})
		return
	}

	response.JSON(w, http.StatusOK, response.AchievementResponse{
		Message: "successful",
		Code:    http.StatusOK,
		Data:    response.AchievementData{Achieved1000M: true},
	})
}

// Leaderboard handles GET /api/leaderboard
func (h *CampaignHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	players, err := h.controller.Leaderboard(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	entries := make([]response.LeaderboardEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, response.LeaderboardEntryFromModel(p))
	}

	response.JSON(w, http.StatusOK, response.LeaderboardResponse{
		Success:     true,
		Leaderboard: entries,
	})
}

// Users handles GET /api/users
func (h *CampaignHandler) Users(w http.ResponseWriter, r *http.Request) {
	players, err := h.controller.ListPlayers(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	entries := make([]response.LeaderboardEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, response.LeaderboardEntryFromModel(p))
	}

	response.JSON(w, http.StatusOK, response.UsersResponse{
		Success: true,
		Users:   entries,
	})
}
