package app

import (
	"strings"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"go.uber.org/zap/zapcore"
)

// Config holds the application configuration, loadable from environment
// variables (INVENTORY_ prefix), flags, or YAML config files.
type Config struct {
	DataFile   string `default:"data/inventory.json" usage:"Inventory file loaded at startup and saved on exit (.gz for gzip)" flag:"data-file"`
	ReportFile string `default:"data/inventory.xlsx" usage:"Default path of the XLSX stock report" flag:"report-file"`
	AutoSave   bool   `default:"true" usage:"Save the inventory to the data file on exit" flag:"auto-save"`
	LogLevel   string `default:"warn" usage:"Log level: debug, info, warn, error" flag:"log-level"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files and the given command-line arguments.
func LoadConfig(args []string) (*Config, error) {
	if args == nil {
		// aconfig falls back to os.Args when Args is nil.
		args = []string{}
	}
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "INVENTORY",
		Files:     []string{"inventory.yaml", "/etc/inventory/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
		Args: args,
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	cfg.DataFile = strings.TrimSpace(cfg.DataFile)
	if cfg.DataFile == "" {
		return nil, errors.New("data file path must not be empty")
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Level parses LogLevel.
func (c *Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return lvl, errors.Wrapf(err, "parse log level %q", c.LogLevel)
	}
	return lvl, nil
}
