package flagx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	got := FilterArgs([]string{"-a", "http://localhost:9090", "-x", "junk"}, []string{"-a"})
	require.Equal(t, []string{"-a", "http://localhost:9090"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	got := FilterArgs([]string{"--config=conf.json", "--other=1"}, []string{"--config"})
	require.Equal(t, []string{"--config=conf.json"}, got)
}

func TestFilterArgs_FlagWithoutValue(t *testing.T) {
	got := FilterArgs([]string{"-v", "-a", "addr"}, []string{"-v"})
	require.Equal(t, []string{"-v"}, got)
}

func TestFilterArgs_NothingAllowed(t *testing.T) {
	got := FilterArgs([]string{"-a", "addr", "-b"}, nil)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestFilterArgs_ValueLookingLikeFlagNotConsumed(t *testing.T) {
	got := FilterArgs([]string{"-a", "-b", "val"}, []string{"-a"})
	require.Equal(t, []string{"-a"}, got)
}
