package web

import (
	"net/http"

	"aiclub/internal/application/mdutil"
	"aiclub/internal/application/orchestrators"
	"aiclub/internal/application/projections"
	"aiclub/internal/domain/event"
)

type createEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Venue       string `json:"venue"`
	Status      string `json:"status"`
}

// updateEventRequest uses pointers so omitted fields keep their value.
type updateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Venue       *string `json:"venue"`
	Status      *string `json:"status"`
}

// createTeamRequest takes {name, memberNames}; member_names is also accepted.
type createTeamRequest struct {
	Name             string   `json:"name"`
	MemberNames      []string `json:"memberNames"`
	MemberNamesSnake []string `json:"member_names"`
}

func (r createTeamRequest) members() []string {
	if r.MemberNames != nil {
		return r.MemberNames
	}
	return r.MemberNamesSnake
}

type teamCreatedResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	EventID string `json:"event_id"`
}

// eventView renders a freshly written event; it has no teams yet.
func eventView(e event.Event, creatorName string) projections.EventView {
	return projections.EventView{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		DescriptionHTML: mdutil.Render(e.Description),
		Date:            e.Date,
		Venue:           e.Venue,
		Status:          e.Status,
		CreatedBy:       e.CreatedBy,
		CreatorName:     creatorName,
		CreatedAt:       e.CreatedAt,
	}
}

func (s *Server) eventsDeps() projections.EventsDeps {
	return projections.EventsDeps{EventStore: s.stores.EventStore, TeamStore: s.stores.TeamStore}
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := projections.QueryListEvents(r.Context(), s.eventsDeps())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	caller := claims(r)
	e, err := orchestrators.ExecuteCreateEvent(r.Context(), orchestrators.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Venue:       req.Venue,
		Status:      req.Status,
		CreatedBy:   caller.ID,
	}, orchestrators.CreateEventDeps{
		EventStore: s.stores.EventStore,
		GenerateID: s.newID,
		Now:        s.now,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, eventView(e, caller.Name))
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req updateEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	_, err := orchestrators.ExecuteUpdateEvent(r.Context(), orchestrators.UpdateEventInput{
		ID:          r.PathValue("id"),
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Venue:       req.Venue,
		Status:      req.Status,
		UpdatedBy:   claims(r).ID,
	}, orchestrators.UpdateEventDeps{EventStore: s.stores.EventStore})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteEvent(r.Context(), orchestrators.DeleteEventInput{
		ID:        r.PathValue("id"),
		DeletedBy: claims(r).ID,
	}, orchestrators.DeleteEventDeps{EventStore: s.stores.EventStore})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := projections.QueryListTeams(r.Context(), r.PathValue("eventId"), s.eventsDeps())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	caller := claims(r)
	t, err := orchestrators.ExecuteCreateTeam(r.Context(), orchestrators.CreateTeamInput{
		EventID:     r.PathValue("eventId"),
		Name:        req.Name,
		MemberNames: req.members(),
		UserID:      caller.ID,
		UserName:    caller.Name,
		UserRole:    caller.Role,
	}, orchestrators.CreateTeamDeps{
		EventStore: s.stores.EventStore,
		TeamStore:  s.stores.TeamStore,
		GenerateID: s.newID,
		Now:        s.now,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, teamCreatedResponse{ID: t.ID, Name: t.Name, EventID: t.EventID})
}

func (s *Server) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	caller := claims(r)
	err := orchestrators.ExecuteDeleteTeam(r.Context(), orchestrators.DeleteTeamInput{
		ID:       r.PathValue("id"),
		UserID:   caller.ID,
		UserRole: caller.Role,
	}, orchestrators.DeleteTeamDeps{TeamStore: s.stores.TeamStore})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
