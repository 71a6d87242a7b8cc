package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenchly/wrenchly/pkg/response"
)

func TestJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	response.JSON(rec, http.StatusCreated, map[string]string{"id": "v-1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Nil(t, env.Error)
	assert.Equal(t, map[string]any{"id": "v-1"}, env.Data)
}

func TestError(t *testing.T) {
	t.Parallel()

	decode := func(t *testing.T, rec *httptest.ResponseRecorder) response.Envelope {
		t.Helper()
		var env response.Envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		require.NotNil(t, env.Error)
		return env
	}

	t.Run("http error keeps status and code", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		response.Error(rec, response.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "not_found", decode(t, rec).Error.Code)
	})

	t.Run("wrapped http error is unwrapped", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		response.Error(rec, errors.Join(response.ErrConflict, errors.New("duplicate invoice number")))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "conflict", decode(t, rec).Error.Code)
	})

	t.Run("validation error carries fields", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		response.Error(rec, response.NewValidationError("year", "must be 1900 or later"))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		env := decode(t, rec)
		assert.Equal(t, "validation_failed", env.Error.Code)
		assert.Equal(t, []string{"must be 1900 or later"}, env.Error.Details["year"])
	})

	t.Run("unknown error becomes opaque 500", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		response.Error(rec, errors.New("pgx: connection reset"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		env := decode(t, rec)
		assert.Equal(t, "internal_error", env.Error.Code)
		assert.NotContains(t, rec.Body.String(), "pgx")
	})
}
