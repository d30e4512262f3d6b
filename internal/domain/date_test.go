package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.February, 29), d)
	assert.Equal(t, "2024-02-29", d.String())

	zero, err := ParseDate("")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	_, err = ParseDate("29/02/2024")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDateDaysUntil(t *testing.T) {
	t.Parallel()

	base := NewDate(2024, time.March, 1)
	tests := []struct {
		name  string
		other Date
		want  int
	}{
		{"same day", base, 0},
		{"tomorrow", base.AddDays(1), 1},
		{"yesterday", base.AddDays(-1), -1},
		{"across leap day", NewDate(2024, time.February, 28), -2},
		{"across DST change", NewDate(2024, time.March, 31), 30},
		{"beyond duration range", NewDate(2500, time.March, 1), 173855},
		{"far past", NewDate(1500, time.March, 1), -191388},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.DaysUntil(tc.other))
			assert.Equal(t, -tc.want, tc.other.DaysUntil(base))
		})
	}
}

func TestDateCompare(t *testing.T) {
	t.Parallel()

	a := NewDate(2024, time.January, 31)
	b := a.AddDays(1)
	assert.Equal(t, NewDate(2024, time.February, 1), b)
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(a))
}

func TestDateJSON(t *testing.T) {
	t.Parallel()

	type wrapper struct {
		Date Date `json:"date"`
	}
	data, err := json.Marshal(wrapper{Date: NewDate(2025, time.June, 7)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-06-07"}`, string(data))

	var decoded wrapper
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, NewDate(2025, time.June, 7), decoded.Date)

	assert.Error(t, json.Unmarshal([]byte(`{"date":"June 7"}`), &decoded))
}

func TestDateOfUsesLocation(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*60*60)
	instant := time.Date(2024, time.May, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, NewDate(2024, time.May, 1), DateOf(instant))
	assert.Equal(t, NewDate(2024, time.May, 2), DateOf(instant.In(tokyo)))
}
