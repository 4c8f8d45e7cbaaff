package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"supportchat/internal/common"
)

type meta struct {
	Count int `json:"count"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": data})
}

func writeList(w http.ResponseWriter, data interface{}, count int) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": data,
		"meta": meta{Count: count},
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps the shared error taxonomy onto HTTP statuses.
// Store failures get a generic body; internals never leak to clients.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case common.IsAuth(err):
		writeError(w, http.StatusUnauthorized, err.Error())
	case common.IsForbidden(err):
		writeError(w, http.StatusForbidden, err.Error())
	case common.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeBody accepts both the wrapped {"data": {...}} body shape the
// legacy clients send and a bare JSON object.
func decodeBody(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && len(wrapper.Data) > 0 {
		return json.Unmarshal(wrapper.Data, dst)
	}
	return json.Unmarshal(body, dst)
}
