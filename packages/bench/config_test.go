package bench

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, WorkerMode, cfg.Mode)
	assert.Equal(t, 10*time.Second, cfg.Duration)
	assert.Equal(t, 4, cfg.Workers)
	assert.Zero(t, cfg.Iterations)
	assert.NoError(t, cfg.Validate())
}

func TestExecutionModeString(t *testing.T) {
	assert.Equal(t, "workers", WorkerMode.String())
	assert.Equal(t, "rate", RateMode.String())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid worker mode config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name: "valid rate mode config",
			config: &Config{
				Mode:     RateMode,
				Duration: 30 * time.Second,
				Rate:     1000,
				Workers:  8,
			},
			wantErr: false,
		},
		{
			name: "invalid duration",
			config: &Config{
				Mode:     WorkerMode,
				Duration: 0,
				Workers:  4,
			},
			wantErr: true,
		},
		{
			name: "invalid rate in rate mode",
			config: &Config{
				Mode:     RateMode,
				Duration: 30 * time.Second,
				Rate:     0,
				Workers:  4,
			},
			wantErr: true,
		},
		{
			name: "no workers",
			config: &Config{
				Mode:     WorkerMode,
				Duration: 30 * time.Second,
				Workers:  0,
			},
			wantErr: true,
		},
		{
			name: "negative iterations",
			config: &Config{
				Mode:       WorkerMode,
				Duration:   30 * time.Second,
				Workers:    1,
				Iterations: -1,
			},
			wantErr: true,
		},
		{
			name: "rampUp exceeds duration",
			config: &Config{
				Mode:     RateMode,
				Duration: 30 * time.Second,
				Rate:     10,
				Workers:  4,
				RampUp:   60 * time.Second,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
