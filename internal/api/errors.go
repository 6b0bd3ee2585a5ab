package api

import (
	"errors"
	"net/http"

	"github.com/Msdoshack/2do/internal/api/shared"
	"github.com/Msdoshack/2do/internal/service"
)

// StatusForKind maps a service error kind to its HTTP status code.
func StatusForKind(kind service.Kind) int {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindUnauthenticated:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// HandleServiceError writes the error envelope for a failed service call.
// Only the service's public message reaches the client; the wrapped cause is
// logged in redacted form.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusForKind(service.KindOf(err))

	var opts []shared.ResponseOption
	if status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, service.MessageOf(err), err, opts...)
}

// handleRequestError writes a 400 for a body that failed decoding or validation.
func handleRequestError(w http.ResponseWriter, r *http.Request, err error) {
	message := shared.ErrInvalidBody.Error()
	var ve *shared.ValidationError
	if errors.As(err, &ve) {
		message = ve.Message
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, message, err)
}
