package handlers

import (
	"encoding/json"
	"net/http"

	"url2tldr-backend/internal/models"
	"url2tldr-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch err.(type) {
	case *services.UnsupportedSourceError:
		writeJSON(w, http.StatusUnprocessableEntity, errorResp("UNSUPPORTED_SOURCE", "Only Reddit or YouTube URLs are supported for now", r))
	case *services.FetchError:
		writeJSON(w, http.StatusBadGateway, errorResp("FETCH_ERROR", err.Error(), r))
	case *services.ExtractionError:
		writeJSON(w, http.StatusBadGateway, errorResp("EXTRACTION_ERROR", err.Error(), r))
	case *services.ChatDispatchError:
		writeJSON(w, http.StatusBadGateway, errorResp("CHAT_ERROR", err.Error(), r))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Something went wrong", r))
	}
}
