package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	t.Run("writes JSON with correct content type", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteJSON(rec, http.StatusOK, map[string]string{"status": "ok"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("handles nil data", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteJSON(rec, http.StatusAccepted, nil)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestWriteError(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()

	WriteError(rec, http.StatusBadRequest, "validation_error", "name is required")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var result map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "validation_error", result["error"])
	assert.Equal(t, "name is required", result["message"])
}

func TestStatusHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		write    func(http.ResponseWriter)
		wantCode int
		wantBody bool
	}{
		{"ok", func(w http.ResponseWriter) { WriteOK(w, []int{1}) }, http.StatusOK, true},
		{"created", func(w http.ResponseWriter) { WriteCreated(w, map[string]int{"id": 1}) }, http.StatusCreated, true},
		{"no content", WriteNoContent, http.StatusNoContent, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			tt.write(rec)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.Len() > 0)
		})
	}
}

func TestReadBody(t *testing.T) {
	t.Parallel()

	t.Run("reads within limit", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"name":"x"}`))
		body, err := ReadBody(httptest.NewRecorder(), req, 0)
		require.NoError(t, err)
		assert.Equal(t, `{"name":"x"}`, string(body))
	})

	t.Run("rejects oversized body", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(strings.Repeat("a", 32)))
		_, err := ReadBody(httptest.NewRecorder(), req, 16)
		assert.ErrorIs(t, err, ErrBodyTooLarge)
	})
}
