package item

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		want      string
		wantErr   bool
		wantField string
	}{
		{name: "valid", body: `{"name":"Item 1"}`, want: "Item 1"},
		{name: "empty name is allowed", body: `{"name":""}`, want: ""},
		{name: "unknown fields ignored", body: `{"name":"x","color":"red"}`, want: "x"},
		{name: "unicode", body: `{"name":"žluťoučký kůň"}`, want: "žluťoučký kůň"},
		{name: "missing name", body: `{}`, wantErr: true, wantField: "name"},
		{name: "other field only", body: `{"title":"x"}`, wantErr: true, wantField: "name"},
		{name: "name is number", body: `{"name":12}`, wantErr: true, wantField: "name"},
		{name: "name is null", body: `{"name":null}`, wantErr: true, wantField: "name"},
		{name: "name is object", body: `{"name":{"first":"a"}}`, wantErr: true, wantField: "name"},
		{name: "array body", body: `[{"name":"x"}]`, wantErr: true},
		{name: "null body", body: `null`, wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
		{name: "malformed json", body: `{"name":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := ParsePayload([]byte(tt.body))
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.want, p.Name)
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
			assert.Equal(t, 400, verr.StatusCode())
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, verr.Field)
			}
		})
	}
}

func TestToErrorResponse(t *testing.T) {
	t.Parallel()

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		resp := ToErrorResponse(&NotFoundError{ID: 7})
		assert.Equal(t, 404, resp.StatusCode)
		assert.Equal(t, "not_found", resp.Error)
		assert.Contains(t, resp.Message, "7")
		assert.NotEmpty(t, resp.Hint)
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()
		resp := ToErrorResponse(&ValidationError{Field: "name", Message: "required"})
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, "validation_error", resp.Error)
		assert.Equal(t, "name", resp.Field)
	})

	t.Run("wrapped errors are unwrapped", func(t *testing.T) {
		t.Parallel()
		err := errors.Join(errors.New("context"), &NotFoundError{ID: 3})
		assert.Equal(t, 404, ToErrorResponse(err).StatusCode)
	})

	t.Run("unknown errors hide details", func(t *testing.T) {
		t.Parallel()
		resp := ToErrorResponse(errors.New("disk on fire"))
		assert.Equal(t, 500, resp.StatusCode)
		assert.Equal(t, "internal_error", resp.Error)
		assert.NotContains(t, resp.Message, "disk")
	})
}

func TestFilter(t *testing.T) {
	t.Parallel()

	items := []Item{{1, "Item 1"}, {2, "Item 2"}, {3, "Other"}}

	tests := []struct {
		pattern string
		want    []int64
	}{
		{"", []int64{1, 2, 3}},
		{"Item*", []int64{1, 2}},
		{"Item ?", []int64{1, 2}},
		{"Item [2-9]", []int64{2}},
		{"{Other,Item 1}", []int64{1, 3}},
		{"nothing", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			t.Parallel()
			f, err := NewFilter(tt.pattern)
			require.NoError(t, err)

			got := make([]int64, 0)
			for _, it := range f.Apply(items) {
				got = append(got, it.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("invalid pattern", func(t *testing.T) {
		t.Parallel()
		_, err := NewFilter("Item[")
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "name", verr.Field)
	})
}

func TestNewFilter_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewFilter("[")
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
	assert.True(t, verr.Query)

	resp := ToErrorResponse(err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, resp.Message, "query parameter")
	assert.Contains(t, resp.Hint, "query parameter")
	assert.NotContains(t, resp.Hint, "request body")
}
