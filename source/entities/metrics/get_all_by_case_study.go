package metrics

import (
	"context"
	"net/http"

	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/database"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/logger"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/schemas"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/utils"
)

type Store interface {
	FindMetricsByCaseStudy(ctx context.Context, caseStudyID string) ([]schemas.Metric, error)
}

type Handler struct {
	store Store
	log   *logger.Logger
}

func NewHandler(store Store, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{store: store, log: log.With("entity", "metrics")}
}

// GetAllByCaseStudy never answers 404: an unknown case study simply has no
// metrics.
func (h *Handler) GetAllByCaseStudy(w http.ResponseWriter, r *http.Request) {
	caseStudyID := r.PathValue("id")

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	metrics, err := h.store.FindMetricsByCaseStudy(ctx, caseStudyID)
	if err != nil {
		h.log.Error("cannot list metrics", "case_study_id", caseStudyID, "error", err)
		utils.SendInternalError(w, err)
		return
	}

	if metrics == nil {
		metrics = []schemas.Metric{}
	}

	utils.SendJSON(w, http.StatusOK, schemas.MetricsResponse{Metrics: metrics})
}
