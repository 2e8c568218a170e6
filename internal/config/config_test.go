package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSettings_ApplyDefaults(t *testing.T) {
	var s Settings
	s.ApplyDefaults()
	require.Equal(t, DefaultEpsilon, s.Epsilon)
	require.Equal(t, DefaultWorkers, s.Workers)
	require.False(t, s.Parallel)
}

func TestSettings_ApplyDefaults_KeepsExplicitValues(t *testing.T) {
	s := Settings{Epsilon: 1e-3, Parallel: true, Workers: 8}
	s.ApplyDefaults()
	require.Equal(t, 1e-3, s.Epsilon)
	require.Equal(t, 8, s.Workers)
	require.True(t, s.Parallel)
}

func TestSettings_Validate(t *testing.T) {
	require.NoError(t, Settings{Epsilon: 1e-6}.Validate())
	require.NoError(t, Settings{}.Validate())
	require.Error(t, Settings{Epsilon: -1e-6}.Validate())
}
