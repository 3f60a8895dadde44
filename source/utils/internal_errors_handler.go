package utils

import "net/http"

const (
	CASE_STUDY_NOT_FOUND = "Case study not found"
	ROUTE_NOT_FOUND      = "Not Found"
	METHOD_NOT_ALLOWED   = "Method Not Allowed"
)

// SendInternalError reports a store or encoding fault. The fault's own text
// is the detail.
func SendInternalError(w http.ResponseWriter, err error) {
	detail := "internal error"
	if err != nil {
		detail = err.Error()
	}
	SendError(w, http.StatusInternalServerError, detail)
}
