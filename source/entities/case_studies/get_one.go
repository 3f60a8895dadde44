package casestudies

import (
	"context"
	"errors"
	"net/http"

	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/database"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/utils"
)

// GetOne looks the id up as-is. Malformed ids are just not found.
func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	caseStudy, err := h.store.FindCaseStudy(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			utils.SendError(w, http.StatusNotFound, utils.CASE_STUDY_NOT_FOUND)
			return
		}
		h.log.Error("cannot find case study", "id", id, "error", err)
		utils.SendInternalError(w, err)
		return
	}

	utils.SendJSON(w, http.StatusOK, caseStudy)
}
