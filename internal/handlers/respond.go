package handlers

import (
	"encoding/json"
	"net/http"
)

// Response is the uniform envelope every endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"message":"Error marshaling JSON response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondSuccess(w http.ResponseWriter, code int, message string, data interface{}) {
	respondWithJSON(w, code, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, Response{
		Success: false,
		Message: message,
	})
}

// respondFailure carries the underlying error detail for diagnostics, on
// top of the user-facing message.
func respondFailure(w http.ResponseWriter, code int, message string, err error) {
	respondWithJSON(w, code, Response{
		Success: false,
		Message: message,
		Error:   err.Error(),
	})
}
