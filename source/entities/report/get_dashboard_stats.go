package report

import (
	"context"
	"net/http"

	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/database"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/schemas"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/utils"
)

func (h *Handler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	stats, err := h.dashboardStats(ctx)
	if err != nil {
		h.log.Error("cannot compute dashboard stats", "error", err)
		utils.SendInternalError(w, err)
		return
	}

	utils.SendJSON(w, http.StatusOK, stats)
}

// dashboardStats prefers the cache. Cache faults are logged and otherwise
// ignored.
func (h *Handler) dashboardStats(ctx context.Context) (schemas.DashboardStats, error) {
	if h.cache != nil {
		stats, ok, err := h.cache.Get(ctx)
		if err != nil {
			h.log.Warn("dashboard stats cache read failed", "error", err)
		}
		if ok {
			return stats, nil
		}
	}

	stats, err := ComputeDashboardStats(ctx, h.store)
	if err != nil {
		return schemas.DashboardStats{}, err
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, stats); err != nil {
			h.log.Warn("dashboard stats cache write failed", "error", err)
		}
	}

	return stats, nil
}
