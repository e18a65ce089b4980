package common

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateAndDecode decodes the request body into payload and runs the
// struct validation tags. On failure it writes the VALIDATION_ERROR
// envelope itself and returns false.
func ValidateAndDecode(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		WriteResponse(w, http.StatusBadRequest, NewResponse(nil, "Invalid request body", CodeValidationError))
		return false
	}

	if err := validate.Struct(payload); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		WriteResponse(w, http.StatusBadRequest, NewResponse(nil, validationErrors.Error(), CodeValidationError))
		return false
	}

	return true
}

// WriteResponse writes an envelope with the given HTTP status.
func WriteResponse(w http.ResponseWriter, status int, res *Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(res)
}
