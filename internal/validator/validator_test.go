package validator

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	Name  string `json:"name" binding:"required,min=3,max=50"`
	Month string `json:"month" binding:"omitempty,month_short"`
	Year  int    `json:"year" binding:"omitempty,gte=2024,lt=2050"`
	Email string `json:"email" binding:"omitempty,email"`
}

func init() {
	Register()
}

func TestFieldErrors(t *testing.T) {
	tests := []struct {
		name string
		form sampleForm
		want map[string]string
	}{
		{
			name: "missing name",
			form: sampleForm{},
			want: map[string]string{"name": "Required"},
		},
		{
			name: "short name",
			form: sampleForm{Name: "ab"},
			want: map[string]string{"name": "String must contain at least 3 character(s)"},
		},
		{
			name: "bad month and year",
			form: sampleForm{Name: "Food", Month: "January", Year: 2050},
			want: map[string]string{"month": "Invalid month", "year": "Number must be less than 2050"},
		},
		{
			name: "bad email",
			form: sampleForm{Name: "Food", Email: "nope"},
			want: map[string]string{"email": "Invalid email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.form)
			require.Error(t, err)

			fields, ok := FieldErrors(err)
			require.True(t, ok)
			assert.Equal(t, tt.want, fields)
		})
	}

	t.Run("valid form", func(t *testing.T) {
		form := sampleForm{Name: "Food", Month: "Feb", Year: 2024}
		assert.NoError(t, binding.Validator.ValidateStruct(&form))
	})

	t.Run("json type error", func(t *testing.T) {
		var form sampleForm
		err := json.Unmarshal([]byte(`{"year":"soon"}`), &form)
		require.Error(t, err)

		fields, ok := FieldErrors(err)
		require.True(t, ok)
		assert.Contains(t, fields, "year")
	})

	t.Run("plain error", func(t *testing.T) {
		_, ok := FieldErrors(assert.AnError)
		assert.False(t, ok)
	})
}

func TestAmount(t *testing.T) {
	var body struct {
		Amount Amount `json:"amount"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"amount":12.5}`), &body))
	f, err := body.Amount.Float64()
	require.NoError(t, err)
	assert.Equal(t, 12.5, f)

	require.NoError(t, json.Unmarshal([]byte(`{"amount":" 3.10 "}`), &body))
	f, err = body.Amount.Float64()
	require.NoError(t, err)
	assert.Equal(t, 3.1, f)

	for _, raw := range []string{`"abc"`, `"NaN"`, `"Inf"`, `null`} {
		require.NoError(t, json.Unmarshal([]byte(`{"amount":`+raw+`}`), &body))
		_, err = body.Amount.Float64()
		assert.Error(t, err, raw)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.True(t, d.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))

	d, err = ParseDate("2024-03-01T10:15:00+02:00")
	require.NoError(t, err)
	assert.True(t, d.Equal(time.Date(2024, 3, 1, 8, 15, 0, 0, time.UTC)))

	_, err = ParseDate("2023-02-29")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDate("yesterday")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
