// ABOUTME: Tests for Timestamp parsing of the backend's datetime formats

package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_ParsesNaiveDatetime(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2026-03-15T09:30:00.123456"`), &ts))
	assert.Equal(t, time.Date(2026, 3, 15, 9, 30, 0, 123456000, time.UTC), ts.Time)
}

func TestTimestamp_ParsesNoFraction(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2026-03-15T09:30:00"`), &ts))
	assert.Equal(t, time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC), ts.Time)
}

func TestTimestamp_ParsesRFC3339(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2026-03-15T09:30:00+02:00"`), &ts))
	assert.Equal(t, time.Date(2026, 3, 15, 7, 30, 0, 0, time.UTC), ts.UTC())
}

func TestTimestamp_NullIsZero(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())
}

func TestTimestamp_RejectsGarbage(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}

func TestTimestamp_MarshalRoundTrip(t *testing.T) {
	ts := Timestamp{Time: time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)}
	out, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-15T09:30:00Z"`, string(out))

	var zero Timestamp
	out, err = json.Marshal(zero)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
