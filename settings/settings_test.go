package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oomph-ac/xpbd/xpbd"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsValid(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())

	opts := s.SimulatorOptions()
	assert.InDelta(t, xpbd.DefaultDeltaTime, opts.DeltaTime, 1e-12)
	assert.Equal(t, xpbd.DefaultSubsteps, opts.Substeps)
	assert.Equal(t, xpbd.DefaultSafetyMargin, opts.SafetyMargin)

	_, _, ok := s.Gravity()
	assert.False(t, ok)

	lvl, err := s.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, lvl)
}

func TestSaveDefaultAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, SaveDefault(path))
	assert.Error(t, SaveDefault(path), "saving over an existing file must fail")

	s, err := Load(path)
	require.NoError(t, err)

	def := DefaultSettings()
	assert.InDelta(t, def.Simulation.TickRate, s.Simulation.TickRate, 1e-9)
	assert.Equal(t, def.Simulation.Substeps, s.Simulation.Substeps)
	assert.Equal(t, def.Simulation.MaxTicksPerFrame, s.Simulation.MaxTicksPerFrame)
	assert.Equal(t, def.Simulation.GravityY, s.Simulation.GravityY)
	assert.Equal(t, def.Log.Level, s.Log.Level)
	assert.Equal(t, def.Stats.Addr, s.Stats.Addr)
	assert.Equal(t, def.Run.Seed, s.Run.Seed)
	assert.Empty(t, s.Run.Scenes)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	data := "[Simulation]\nSubsteps = 4\n\n[Run]\nScenes = [\"tower\", \"pour\"]\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Simulation.Substeps)
	assert.Equal(t, []string{"tower", "pour"}, s.Run.Scenes)
	assert.Equal(t, "info", s.Log.Level)
	assert.InDelta(t, 1/xpbd.DefaultDeltaTime, s.Simulation.TickRate, 1e-9)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[Simulation\n"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.toml")
	require.NoError(t, os.WriteFile(invalid, []byte("[Simulation]\nTickRate = 0.0\n"), 0644))
	_, err = Load(invalid)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(s *Settings)
	}{
		{"substeps", func(s *Settings) { s.Simulation.Substeps = 0 }},
		{"margin", func(s *Settings) { s.Simulation.SafetyMargin = 0.5 }},
		{"ticks per frame", func(s *Settings) { s.Simulation.MaxTicksPerFrame = 0 }},
		{"duration", func(s *Settings) { s.Run.Duration = -1 }},
		{"log level", func(s *Settings) { s.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)
			assert.Error(t, s.Validate())
		})
	}
}
