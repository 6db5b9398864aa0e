package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/bookmarks-be/internal/models/dto"
)

func TestJSONWritesPayloadAsIs(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"access_token": "tok"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"access_token":"tok"}`, rec.Body.String())
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusForbidden, "email already in use")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"code":403,"message":"email already in use"}`, rec.Body.String())
}

func TestValidation(t *testing.T) {
	rec := httptest.NewRecorder()
	Validation(rec, &dto.ValidationError{Fields: map[string]string{"email": "must not be empty"}})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, http.StatusBadRequest, body.Code)
	assert.Equal(t, "must not be empty", body.Fields["email"])
}
