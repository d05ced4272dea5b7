// Package api is the HTTP transport layer: thin handlers over the services.
package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/hogar-app/hogar/internal/api/respond"
	"github.com/hogar-app/hogar/internal/model"
)

// writeServiceError maps service errors onto the HTTP error taxonomy:
// validation -> 400, not found -> 404, anything else (store failures) -> 500
// with server-side logging.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		respond.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, err.Error())
	default:
		log.Error().Stack().Err(err).Msg("request failed")
		respond.WriteInternalError(w, "internal error")
	}
}
