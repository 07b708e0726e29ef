package pipeline

import (
	"image"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/posterize/posterize"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "assets/input/cat.jpg", cfg.ImagePath)
	assert.Equal(t, 5, cfg.Levels)
	assert.Equal(t, image.Pt(220, 300), cfg.Size())
	assert.Equal(t, 7, cfg.Kernel())
	assert.Equal(t, BackendOpenCV, cfg.Backend)
	assert.False(t, cfg.Debug)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty path", mutate: func(c *Config) { c.ImagePath = "" }},
		{name: "zero levels", mutate: func(c *Config) { c.Levels = 0 }},
		{name: "too many levels", mutate: func(c *Config) { c.Levels = 257 }},
		{name: "zero width", mutate: func(c *Config) { c.Width = 0 }},
		{name: "negative height", mutate: func(c *Config) { c.Height = -300 }},
		{name: "zero kernel", mutate: func(c *Config) { c.KernelSize = 0 }},
		{name: "unknown backend", mutate: func(c *Config) { c.Backend = "vips" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "%v", err)
		})
	}
}

func TestConfigInvalidLevelsKeepsCause(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Levels = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig), "%v", err)
	assert.True(t, errors.Is(err, posterize.ErrInvalidLevels), "%v", err)
	assert.Equal(t, posterize.ErrInvalidLevels, errors.Cause(err))
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestConfigBoundaryLevels(t *testing.T) {
	cfg := DefaultConfig()
	for _, n := range []int{1, 256} {
		cfg.Levels = n
		assert.NoError(t, cfg.Validate(), "levels=%d", n)
	}
}

func TestConfigKernel(t *testing.T) {
	cfg := DefaultConfig()
	for ksize, want := range map[int]int{1: 1, 2: 3, 5: 5, 6: 7, 7: 7} {
		cfg.KernelSize = ksize
		assert.Equal(t, want, cfg.Kernel(), "ksize=%d", ksize)
	}
}
