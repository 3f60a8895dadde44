package casestudies

import (
	"context"

	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/logger"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/schemas"
)

type Store interface {
	FindCaseStudies(ctx context.Context) ([]schemas.CaseStudy, error)
	FindCaseStudy(ctx context.Context, id string) (schemas.CaseStudy, error)
}

type Handler struct {
	store Store
	log   *logger.Logger
}

func NewHandler(store Store, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{store: store, log: log.With("entity", "case_studies")}
}
