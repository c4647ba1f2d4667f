package projections

import (
	"context"
	"time"

	"aiclub/internal/application/mdutil"
)

// ActivityView is one activity with live seat usage for the viewer.
type ActivityView struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DescriptionHTML string    `json:"description_html"`
	Date            string    `json:"date"`
	Venue           string    `json:"venue"`
	TotalSeats      int       `json:"total_seats"`
	Status          string    `json:"status"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	BookedCount     int       `json:"booked_count"`
	SeatsLeft       int       `json:"seats_left"`
	UserBooked      bool      `json:"user_booked"`
}

// BookingView is one booking on an activity's roster.
type BookingView struct {
	ID         string    `json:"id"`
	ActivityID string    `json:"activity_id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	UserEmail  string    `json:"user_email"`
	BookedAt   time.Time `json:"booked_at"`
}

// ActivitiesDeps holds dependencies for the activity queries.
type ActivitiesDeps struct {
	ActivityStore ActivityStore
}

// QueryListActivities returns every activity by date, flagged for userID.
func QueryListActivities(ctx context.Context, userID string, deps ActivitiesDeps) ([]ActivityView, error) {
	activities, err := deps.ActivityStore.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]ActivityView, 0, len(activities))
	for _, a := range activities {
		out = append(out, ActivityView{
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
			BookedCount:     a.BookedCount,
			SeatsLeft:       a.SeatsLeft(a.BookedCount),
			UserBooked:      a.UserBooked,
		})
	}
	return out, nil
}

// QueryListBookings returns an activity's bookings in the order they were taken.
// POST: activity.ErrNotFound for an unknown activity
func QueryListBookings(ctx context.Context, activityID string, deps ActivitiesDeps) ([]BookingView, error) {
	if _, err := deps.ActivityStore.GetByID(ctx, activityID); err != nil {
		return nil, err
	}
	bookings, err := deps.ActivityStore.ListBookings(ctx, activityID)
	if err != nil {
		return nil, err
	}
	out := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingView(b))
	}
	return out, nil
}
