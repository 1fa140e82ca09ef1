package question

import (
	"encoding/json"
	"net/http"
)

// CountsHandler serves GET /v1/banks with the size of every bank, for the
// homepage menu.
func CountsHandler(banks *Banks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(banks.Counts())
	}
}
