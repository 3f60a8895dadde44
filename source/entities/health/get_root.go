package health

import (
	"net/http"

	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/schemas"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/utils"
)

const (
	READY_MESSAGE    = "GTM Strategy Portfolio API is running!"
	FALLBACK_PATTERN = "/"
)

func GetRoot(w http.ResponseWriter, r *http.Request) {
	utils.SendJSON(w, http.StatusOK, schemas.MessageResponse{Message: READY_MESSAGE})
}

// Fallback answers every unrouted request with a JSON body. It is registered
// on routes under FALLBACK_PATTERN. A path that some GET route serves is 405
// for other methods; anything else is 404.
func Fallback(routes *http.ServeMux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead && servesGet(routes, r) {
			w.Header().Set("Allow", "GET, HEAD, OPTIONS")
			utils.SendError(w, http.StatusMethodNotAllowed, utils.METHOD_NOT_ALLOWED)
			return
		}
		utils.SendError(w, http.StatusNotFound, utils.ROUTE_NOT_FOUND)
	}
}

func servesGet(routes *http.ServeMux, r *http.Request) bool {
	asGet := r.Clone(r.Context())
	asGet.Method = http.MethodGet
	_, pattern := routes.Handler(asGet)
	return pattern != "" && pattern != FALLBACK_PATTERN
}
