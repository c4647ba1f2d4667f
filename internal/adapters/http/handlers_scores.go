package web

import (
	"net/http"

	"aiclub/internal/application/orchestrators"
	"aiclub/internal/application/projections"
)

// assignScoreRequest takes {teamId, eventId, score, note}; snake_case ids are also accepted.
type assignScoreRequest struct {
	TeamID       looseID  `json:"teamId"`
	EventID      looseID  `json:"eventId"`
	TeamIDSnake  looseID  `json:"team_id"`
	EventIDSnake looseID  `json:"event_id"`
	Score        *float64 `json:"score"`
	Note         string   `json:"note"`
}

func (s *Server) handleAssignScore(w http.ResponseWriter, r *http.Request) {
	var req assignScoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	_, err := orchestrators.ExecuteAssignScore(r.Context(), orchestrators.AssignScoreInput{
		TeamID:     firstID(req.TeamID, req.TeamIDSnake),
		EventID:    firstID(req.EventID, req.EventIDSnake),
		Score:      req.Score,
		Note:       req.Note,
		AssignedBy: claims(r).ID,
	}, orchestrators.AssignScoreDeps{
		TeamStore:  s.stores.TeamStore,
		ScoreStore: s.stores.ScoreStore,
		GenerateID: s.newID,
		Now:        s.now,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) leaderboardDeps() projections.LeaderboardDeps {
	return projections.LeaderboardDeps{LeaderboardStore: s.stores.LeaderboardStore}
}

func (s *Server) handleEventLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := projections.QueryEventLeaderboard(r.Context(), r.PathValue("eventId"), s.leaderboardDeps())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleOverallLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := projections.QueryOverallLeaderboard(r.Context(), s.leaderboardDeps())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleTeamHistory(w http.ResponseWriter, r *http.Request) {
	rows, err := projections.QueryTeamHistory(r.Context(), r.PathValue("teamId"), s.leaderboardDeps())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
