package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUnmarshal_String(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"5m"`), &d))
	require.Equal(t, 5*time.Minute, d.Duration)
}

func TestUnmarshal_Nanoseconds(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`300000000000`), &d))
	require.Equal(t, 5*time.Minute, d.Duration)
}

func TestUnmarshal_InvalidString(t *testing.T) {
	var d Duration
	require.Error(t, json.Unmarshal([]byte(`"not-a-duration"`), &d))
}

func TestUnmarshal_InvalidType(t *testing.T) {
	var d Duration
	require.Error(t, json.Unmarshal([]byte(`true`), &d))
}

func TestMarshal_RoundTrip(t *testing.T) {
	out, err := json.Marshal(Duration{10 * time.Minute})
	require.NoError(t, err)
	require.JSONEq(t, `"10m0s"`, string(out))

	var d Duration
	require.NoError(t, json.Unmarshal(out, &d))
	require.Equal(t, 10*time.Minute, d.Duration)
}
