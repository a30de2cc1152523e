package product

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-15")
	require.NoError(t, err)
	require.Equal(t, "2025-03-15", d.String())

	d, err = ParseDate("")
	require.NoError(t, err)
	require.True(t, d.IsZero())

	_, err = ParseDate("15/03/2025")
	require.Error(t, err)
}

func TestDateAddYears(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "Plain date",
			in:   "2025-03-15",
			want: "2026-03-15",
		},
		{
			name: "Leap day normalizes forward",
			in:   "2024-02-29",
			want: "2025-03-01",
		},
		{
			name: "Year boundary",
			in:   "2025-12-31",
			want: "2026-12-31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, d.AddYears(1).String())
		})
	}

	require.True(t, Date{}.AddYears(1).IsZero())
}

func TestToday(t *testing.T) {
	now := time.Date(2025, time.June, 10, 23, 59, 58, 0, time.Local)
	require.Equal(t, "2025-06-10", Today(now).String())
}

func TestDateJSON(t *testing.T) {
	var p FinancialProduct
	err := json.Unmarshal([]byte(`{"id":"abc","date_release":"2025-01-01","date_revision":"2026-01-01T00:00:00.000Z"}`), &p)
	require.NoError(t, err)
	require.Equal(t, "2025-01-01", p.DateRelease.String())
	require.Equal(t, "2026-01-01", p.DateRevision.String(), "timestamp form is truncated to the date")

	out, err := json.Marshal(p)
	require.NoError(t, err)
	require.Contains(t, string(out), `"date_release":"2025-01-01"`)

	var empty struct {
		D Date `json:"d"`
	}
	err = json.Unmarshal([]byte(`{"d":""}`), &empty)
	require.NoError(t, err)
	require.True(t, empty.D.IsZero())
}
