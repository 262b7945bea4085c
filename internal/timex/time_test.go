package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"string form", `"5s"`, 5 * time.Second, false},
		{"integer nanoseconds", `3000000000`, 3 * time.Second, false},
		{"bad string", `"abc"`, 0, true},
		{"wrong type", `true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	d := Duration{Duration: 90 * time.Second}
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(b))
}

func TestMonthOf(t *testing.T) {
	y, m, err := MonthOf("2025-10-31")
	require.NoError(t, err)
	assert.Equal(t, 2025, y)
	assert.Equal(t, 10, m)

	_, _, err = MonthOf("31/10/2025")
	require.Error(t, err)
}

func TestParseISODate_RejectsGarbage(t *testing.T) {
	_, err := ParseISODate("not-a-date")
	require.Error(t, err)
}
