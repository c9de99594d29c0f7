package library

import (
	"time"

	libraryrepo "github.com/Hecate946/cs130-project/repository/library"
)

type libraryView struct {
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

type bookingView struct {
	ID          int64     `json:"id"`
	RoomID      int64     `json:"room_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	LastUpdated time.Time `json:"last_updated"`
}

type roomView struct {
	ID                    int64         `json:"id"`
	Name                  string        `json:"name"`
	Capacity              int           `json:"capacity"`
	AccessibilityFeatures string        `json:"accessibility_features"`
	Bookings              []bookingView `json:"bookings"`
}

// RangeQuery is the date-range filter for the bookings/range endpoint.
type RangeQuery struct {
	Start string `query:"start" validate:"required"`
	End   string `query:"end" validate:"required"`
}

func toLibraryView(l libraryrepo.Library) libraryView {
	return libraryView{Name: l.Name, Slug: l.Slug, Location: l.Location, CreatedAt: l.CreatedAt}
}

func toBookingView(b libraryrepo.Booking) bookingView {
	return bookingView{
		ID:          b.ID,
		RoomID:      b.RoomID,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      b.Status,
		LastUpdated: b.LastUpdated,
	}
}

func toBookingViews(bs []libraryrepo.Booking) []bookingView {
	out := make([]bookingView, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBookingView(b))
	}
	return out
}

func toRoomView(r libraryrepo.RoomWithBookings) roomView {
	return roomView{
		ID:                    r.ID,
		Name:                  r.Name,
		Capacity:              r.Capacity,
		AccessibilityFeatures: r.AccessibilityFeatures,
		Bookings:              toBookingViews(r.Bookings),
	}
}
