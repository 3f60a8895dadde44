package frameworks

import (
	"context"
	"net/http"

	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/database"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/logger"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/schemas"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/utils"
)

type Store interface {
	FindFrameworks(ctx context.Context) ([]schemas.GTMFramework, error)
}

type Handler struct {
	store Store
	log   *logger.Logger
}

func NewHandler(store Store, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{store: store, log: log.With("entity", "frameworks")}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	frameworks, err := h.store.FindFrameworks(ctx)
	if err != nil {
		h.log.Error("cannot list frameworks", "error", err)
		utils.SendInternalError(w, err)
		return
	}

	if frameworks == nil {
		frameworks = []schemas.GTMFramework{}
	}

	utils.SendJSON(w, http.StatusOK, schemas.FrameworksResponse{Frameworks: frameworks})
}
