package casestudies

import (
	"context"
	"net/http"

	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/database"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/schemas"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/utils"
)

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	caseStudies, err := h.store.FindCaseStudies(ctx)
	if err != nil {
		h.log.Error("cannot list case studies", "error", err)
		utils.SendInternalError(w, err)
		return
	}

	if caseStudies == nil {
		caseStudies = []schemas.CaseStudy{}
	}

	utils.SendJSON(w, http.StatusOK, schemas.CaseStudiesResponse{CaseStudies: caseStudies})
}
