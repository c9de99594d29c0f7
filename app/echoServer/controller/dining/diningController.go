package dining

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Hecate946/cs130-project/app/echoServer/respond"
	"github.com/Hecate946/cs130-project/config"
	diningsvc "github.com/Hecate946/cs130-project/service/dining"
)

type Controller struct {
	Svc diningsvc.Service
	Log *slog.Logger
}

type snapshotView struct {
	Slug        string              `json:"slug"`
	Menu        map[string][]string `json:"menu"`
	HoursToday  map[string]string   `json:"hours_today"`
	Occupants   *int                `json:"occupants"`
	Capacity    *int                `json:"capacity"`
	LastUpdated time.Time           `json:"last_updated"`
}

func toView(s diningsvc.Snapshot) snapshotView {
	return snapshotView{
		Slug:        s.Slug,
		Menu:        s.Menu,
		HoursToday:  s.HoursToday,
		Occupants:   s.Occupants,
		Capacity:    s.Capacity,
		LastUpdated: s.LastUpdated,
	}
}

// GET /v1/dining
func (h *Controller) List(c echo.Context) error {
	snaps, err := h.Svc.All(c.Request().Context())
	if err != nil {
		h.Log.Error("dining list error", "err", err)
		return respond.Error(c, http.StatusInternalServerError, "internal error")
	}

	out := make(map[string]snapshotView, len(snaps))
	for slug, snap := range snaps {
		out[slug] = toView(snap)
	}
	return respond.Data(c, http.StatusOK, out)
}

// GET /v1/dining/:slug
func (h *Controller) Get(c echo.Context) error {
	slug := c.Param("slug")
	if _, ok := config.OccuspaceIDs[slug]; !ok {
		return respond.Error(c, http.StatusNotFound, "Invalid dining hall slug")
	}

	snap, err := h.Svc.Latest(c.Request().Context(), slug)
	if err != nil {
		h.Log.Error("dining latest error", "slug", slug, "err", err)
		return respond.Error(c, http.StatusInternalServerError, "internal error")
	}
	if snap == nil {
		return respond.Error(c, http.StatusNotFound, "Dining hall not found")
	}
	return respond.Data(c, http.StatusOK, toView(*snap))
}
