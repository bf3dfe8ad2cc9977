package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	testCases := map[string]struct {
		input    string
		expected string
	}{
		"plain date":   {input: `"2024-03-01"`, expected: "2024-03-01"},
		"rfc3339":      {input: `"2024-03-01T10:30:00Z"`, expected: "2024-03-01"},
		"null is zero": {input: `null`, expected: ""},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			var d Date
			require.NoError(t, json.Unmarshal([]byte(tc.input), &d))
			assert.Equal(t, tc.expected, d.String())
		})
	}

	out, err := json.Marshal(MustParseDate("2024-12-31"))
	require.NoError(t, err)
	assert.Equal(t, `"2024-12-31"`, string(out))
}

func TestDate_RejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"31/12/2024"`), &d))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2023, 5, 6, 14, 0, 0, 0, time.FixedZone("x", 3600))))
	assert.Equal(t, "2023-05-06", d.String())

	require.NoError(t, d.Scan([]byte("2022-01-02")))
	assert.Equal(t, "2022-01-02", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	v, err := MustParseDate("2021-07-08").Value()
	require.NoError(t, err)
	assert.Equal(t, "2021-07-08", v)
}

func TestStatusSets(t *testing.T) {
	assert.True(t, LeavePending.Valid())
	assert.True(t, LeaveRejected.Valid())
	assert.False(t, LeaveStatus("pending").Valid())
	assert.False(t, LeaveStatus("Cancelled").Valid())

	assert.True(t, AttendanceLate.Valid())
	assert.False(t, AttendanceStatus("Sick").Valid())
}
