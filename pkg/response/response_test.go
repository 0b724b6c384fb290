package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeta(t *testing.T) {
	assert.Equal(t, &Meta{Page: 1, Limit: 4, Total: 9, TotalPages: 3}, NewMeta(1, 4, 9))
	assert.Equal(t, 0, NewMeta(1, 4, 0).TotalPages)
	assert.Equal(t, 2, NewMeta(2, 5, 10).TotalPages)
	assert.Equal(t, 0, NewMeta(1, 0, 10).TotalPages)
}

func TestErrorWithCode(t *testing.T) {
	rec := httptest.NewRecorder()

	ErrorWithCode(rec, http.StatusBadRequest, "SLOT_ALREADY_BOOKED", "slot already booked")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":false,"message":"slot already booked","error":{"code":"SLOT_ALREADY_BOOKED"}}`, rec.Body.String())
}

func TestSuccessWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()

	SuccessWithMeta(rec, http.StatusOK, "ok", []int{1, 2}, NewMeta(1, 2, 3))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []interface{}{1.0, 2.0}, body["data"])
	assert.Equal(t, map[string]interface{}{"page": 1.0, "limit": 2.0, "total": 3.0, "totalPages": 2.0}, body["meta"])
}

func TestDefaultMessages(t *testing.T) {
	cases := []struct {
		write  func(http.ResponseWriter, string)
		status int
		msg    string
	}{
		{BadRequest, http.StatusBadRequest, "Bad request"},
		{Unauthorized, http.StatusUnauthorized, "Unauthorized"},
		{Forbidden, http.StatusForbidden, "Forbidden"},
		{NotFound, http.StatusNotFound, "Resource not found"},
		{Conflict, http.StatusConflict, "Conflict"},
		{TooManyRequests, http.StatusTooManyRequests, "Too many requests"},
		{InternalServerError, http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		tc.write(rec, "")

		var body Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tc.status, rec.Code)
		assert.Equal(t, tc.msg, body.Message)
		assert.False(t, body.Success)
	}
}
