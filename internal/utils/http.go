package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// JSON writes a JSON response with status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// JSONError writes {"error": "..."} with a given status.
func JSONError(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// JSONErrors writes {"errors": [...]} with a given status.
func JSONErrors(w http.ResponseWriter, status int, errs interface{}) {
	JSON(w, status, map[string]interface{}{"errors": errs})
}

// DecodeJSON parses the JSON body into v. A missing or empty body leaves v
// untouched so field validation can report what is absent. Malformed JSON is
// answered with 400 and returned as an error.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		JSONError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return err
	}

	return nil
}
