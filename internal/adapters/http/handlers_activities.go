package web

import (
	"net/http"

	"aiclub/internal/application/mdutil"
	"aiclub/internal/application/orchestrators"
	"aiclub/internal/application/projections"
	"aiclub/internal/domain/activity"
)

// createActivityRequest accepts total_seats as a number or a numeric string.
type createActivityRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Venue       string    `json:"venue"`
	TotalSeats  seatCount `json:"total_seats"`
	Status      string    `json:"status"`
}

type updateActivityRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Date        *string    `json:"date"`
	Venue       *string    `json:"venue"`
	TotalSeats  *seatCount `json:"total_seats"`
	Status      *string    `json:"status"`
}

// activityView renders an activity that has no bookings yet.
func activityView(a activity.Activity) projections.ActivityView {
	return projections.ActivityView{
		ID:              a.ID,
		Title:           a.Title,
		Description:     a.Description,
		DescriptionHTML: mdutil.Render(a.Description),
		Date:            a.Date,
		Venue:           a.Venue,
		TotalSeats:      a.TotalSeats,
		Status:          a.Status,
		CreatedBy:       a.CreatedBy,
		CreatedAt:       a.CreatedAt,
		SeatsLeft:       a.SeatsLeft(0),
	}
}

func (s *Server) activitiesDeps() projections.ActivitiesDeps {
	return projections.ActivitiesDeps{ActivityStore: s.stores.ActivityStore}
}

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	views, err := projections.QueryListActivities(r.Context(), claims(r).ID, s.activitiesDeps())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	var req createActivityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	a, err := orchestrators.ExecuteCreateActivity(r.Context(), orchestrators.CreateActivityInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Venue:       req.Venue,
		TotalSeats:  int(req.TotalSeats),
		Status:      req.Status,
		CreatedBy:   claims(r).ID,
	}, orchestrators.CreateActivityDeps{
		ActivityStore: s.stores.ActivityStore,
		GenerateID:    s.newID,
		Now:           s.now,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, activityView(a))
}

func (s *Server) handleUpdateActivity(w http.ResponseWriter, r *http.Request) {
	var req updateActivityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	_, err := orchestrators.ExecuteUpdateActivity(r.Context(), orchestrators.UpdateActivityInput{
		ID:          r.PathValue("id"),
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Venue:       req.Venue,
		TotalSeats:  (*int)(req.TotalSeats),
		Status:      req.Status,
	}, orchestrators.UpdateActivityDeps{ActivityStore: s.stores.ActivityStore})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteActivity(r.Context(), r.PathValue("id"),
		orchestrators.DeleteActivityDeps{ActivityStore: s.stores.ActivityStore})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleBookSeat(w http.ResponseWriter, r *http.Request) {
	caller := claims(r)
	deps := orchestrators.BookSeatDeps{
		ActivityStore: s.stores.ActivityStore,
		GenerateID:    s.newID,
		Now:           s.now,
	}
	if s.stores.OutboxStore != nil {
		deps.Outbox = s.stores.OutboxStore
	}
	err := orchestrators.ExecuteBookSeat(r.Context(), orchestrators.BookSeatInput{
		ActivityID: r.PathValue("id"),
		UserID:     caller.ID,
		UserName:   caller.Name,
		UserEmail:  caller.Email,
	}, deps)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Message: "Seat booked"})
}

func (s *Server) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteCancelBooking(r.Context(), r.PathValue("id"), claims(r).ID,
		orchestrators.CancelBookingDeps{ActivityStore: s.stores.ActivityStore})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Message: "Booking cancelled"})
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	views, err := projections.QueryListBookings(r.Context(), r.PathValue("id"), s.activitiesDeps())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}
