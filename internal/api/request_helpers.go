package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Msdoshack/2do/internal/api/shared"
	"github.com/Msdoshack/2do/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const msgInvalidQuery = "invalid query parameter"

// decodeAndValidate decodes the JSON body into v and runs its validation tags.
// It writes a 400 response and returns false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		handleRequestError(w, r, err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		handleRequestError(w, r, err)
		return false
	}
	return true
}

// principalOrAbort returns the principal attached by the auth middleware.
// A request that reaches a protected handler without one gets a 401.
func principalOrAbort(w http.ResponseWriter, r *http.Request) (service.Principal, bool) {
	p, ok := shared.PrincipalFrom(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, service.MsgUnauthorized)
		return service.Principal{}, false
	}
	return p, true
}

// todoIDOrAbort parses the {todoId} path parameter, writing a 400 when it is
// missing or not a UUID.
func todoIDOrAbort(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := service.ParseTodoID(chi.URLParam(r, "todoId"))
	if err != nil {
		HandleServiceError(w, r, err)
		return uuid.Nil, false
	}
	return id, true
}

// parseListQuery reads isDeleted, isDone, active and offset from the query
// string. active=true requests open todos and wins over isDone.
func parseListQuery(r *http.Request) (service.ListQuery, error) {
	q := r.URL.Query()
	var out service.ListQuery

	if raw := strings.TrimSpace(q.Get("isDeleted")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return out, err
		}
		out.Deleted = v
	}

	if raw := strings.TrimSpace(q.Get("isDone")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return out, err
		}
		out.Done = &v
	}

	if raw := strings.TrimSpace(q.Get("active")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return out, err
		}
		if v {
			open := false
			out.Done = &open
		}
	}

	if raw := strings.TrimSpace(q.Get("offset")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return out, strconv.ErrSyntax
		}
		out.Offset = v
	}

	return out, nil
}
