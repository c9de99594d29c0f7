package gym

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Hecate946/cs130-project/app/echoServer/respond"
	gymsvc "github.com/Hecate946/cs130-project/service/gym"
)

type Controller struct {
	Svc gymsvc.Service
	Log *slog.Logger
}

type zoneView struct {
	Capacity    int       `json:"capacity"`
	Percentage  int       `json:"percentage"`
	LastUpdated time.Time `json:"last_updated"`
}

type snapshotView struct {
	Slug         string              `json:"slug"`
	RegularHours map[string]string   `json:"regular_hours"`
	SpecialHours map[string]string   `json:"special_hours"`
	Zones        map[string]zoneView `json:"zones"`
	LastUpdated  time.Time           `json:"last_updated"`
}

// GET /v1/gym/:slug
func (h *Controller) Get(c echo.Context) error {
	slug := c.Param("slug")

	snap, err := h.Svc.Latest(c.Request().Context(), slug)
	if err != nil {
		h.Log.Error("gym latest error", "slug", slug, "err", err)
		return respond.Error(c, http.StatusInternalServerError, "internal error")
	}
	if snap == nil {
		return respond.Error(c, http.StatusNotFound, "Gym not found")
	}

	zones := make(map[string]zoneView, len(snap.Zones))
	for _, z := range snap.Zones {
		zones[z.ZoneName] = zoneView{
			Capacity:    z.Capacity,
			Percentage:  z.Percentage,
			LastUpdated: z.LastUpdated,
		}
	}
	return respond.Data(c, http.StatusOK, snapshotView{
		Slug:         snap.Slug,
		RegularHours: snap.RegularHours,
		SpecialHours: snap.SpecialHours,
		Zones:        zones,
		LastUpdated:  snap.LastUpdated,
	})
}
