package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"medimeet-api/internal/delivery/dto"
	"medimeet-api/internal/delivery/http/middleware"
	"medimeet-api/internal/domain/entity"
	"medimeet-api/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}
	return true
}

func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	return id, err == nil
}

// requireActor writes 401 when the request carries no authenticated caller.
func requireActor(w http.ResponseWriter, r *http.Request) (entity.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User not found in context")
	}
	return actor, ok
}

func pageQuery(r *http.Request, defaultLimit, max int) dto.PageQuery {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return dto.PageQuery{Page: page, Limit: limit}.Normalize(defaultLimit, max)
}

// optionalBool parses "true"/"false"; anything else means unset.
func optionalBool(value string) *bool {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &b
}
