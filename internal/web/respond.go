package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"dog-show-club/internal/apperr"
)

// errorBody es el envelope uniforme de error de la API.
type errorBody struct {
	Error     errorDetail `json:"error"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id,omitempty"`
}

type errorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Antes cada módulo duplicaba su writeJSON (ver nota en el repo original);
// con ocho módulos ya conviene el helper común.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteUnauthorized cubre el caso sin claims; no está en la taxonomía de
// dominio porque la identidad es colaborador externo.
func WriteUnauthorized(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusUnauthorized, errorBody{
		Error: errorDetail{
			Code:    "UNAUTHORIZED",
			Message: "authentication required",
		},
		Timestamp: time.Now().UTC(),
		RequestID: chimw.GetReqID(r.Context()),
	})
}

// WriteError clasifica el error por su Kind y emite el envelope.
// Errores no tipados salen como INTERNAL_ERROR con mensaje genérico
// (el detalle real va al log, no al cliente).
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)

	msg := "internal error"
	var details map[string]string

	var ae *apperr.Error
	if errors.As(err, &ae) && kind != apperr.KindInternal {
		msg = ae.Message
		details = ae.Details
	}

	WriteJSON(w, kind.HTTPStatus(), errorBody{
		Error: errorDetail{
			Code:    string(kind),
			Message: msg,
			Details: details,
		},
		Timestamp: time.Now().UTC(),
		RequestID: chimw.GetReqID(r.Context()),
	})
}
