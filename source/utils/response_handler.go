package utils

import (
	"encoding/json"
	"net/http"

	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/schemas"
)

func SendJSON(w http.ResponseWriter, statusCode int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		statusCode = http.StatusInternalServerError
		body, _ = json.Marshal(schemas.ErrorResponse{Detail: err.Error()})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(body)
}

func SendError(w http.ResponseWriter, statusCode int, detail string) {
	SendJSON(w, statusCode, schemas.ErrorResponse{Detail: detail})
}
