package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		want    Config
		wantErr bool
	}{
		{
			name: "defaults",
			want: Config{
				DataFile:   "data/inventory.json",
				ReportFile: "data/inventory.xlsx",
				AutoSave:   true,
				LogLevel:   "warn",
			},
		},
		{
			name: "env",
			env: map[string]string{
				"INVENTORY_DATA_FILE": "/tmp/stock.json.gz",
				"INVENTORY_AUTO_SAVE": "false",
				"INVENTORY_LOG_LEVEL": "debug",
			},
			want: Config{
				DataFile:   "/tmp/stock.json.gz",
				ReportFile: "data/inventory.xlsx",
				AutoSave:   false,
				LogLevel:   "debug",
			},
		},
		{
			name: "flags",
			args: []string{"-data-file=shop.json", "-report-file=shop.xlsx"},
			want: Config{
				DataFile:   "shop.json",
				ReportFile: "shop.xlsx",
				AutoSave:   true,
				LogLevel:   "warn",
			},
		},
		{
			name:    "bad log level",
			env:     map[string]string{"INVENTORY_LOG_LEVEL": "loud"},
			wantErr: true,
		},
		{
			name:    "blank data file",
			args:    []string{"-data-file=  "},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfig(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *cfg)
		})
	}
}

func TestConfig_Level(t *testing.T) {
	cfg := &Config{LogLevel: "info"}
	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)

	cfg.LogLevel = "nope"
	_, err = cfg.Level()
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	lg, err := NewLogger(&Config{LogLevel: "error"})
	require.NoError(t, err)
	assert.False(t, lg.Core().Enabled(zapcore.WarnLevel))
	assert.True(t, lg.Core().Enabled(zapcore.ErrorLevel))
}
