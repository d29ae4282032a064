package config

import (
	"os"
	"path"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/daedaleanai/runsyn/log"
)

type QuartusConfig struct {
	BinDir  string `mapstructure:"bin_dir" yaml:"bin_dir"`
	WorkDir string `mapstructure:"work_dir" yaml:"work_dir"`
}

type VivadoConfig struct {
	Executable       string            `mapstructure:"executable" yaml:"executable"`
	WorkDir          string            `mapstructure:"work_dir" yaml:"work_dir"`
	ClockConstraints string            `mapstructure:"clock_constraints" yaml:"clock_constraints"`
	Targets          map[string]string `mapstructure:"targets" yaml:"targets"`
}

type Config struct {
	Flopoco string        `mapstructure:"flopoco" yaml:"flopoco"`
	Quartus QuartusConfig `mapstructure:"quartus" yaml:"quartus"`
	Vivado  VivadoConfig  `mapstructure:"vivado" yaml:"vivado"`
}

var config *Config

const (
	configName    = "config"
	configType    = "yaml"
	envPrefix     = "RUNSYN"
	configDirName = "runsyn"
)

var defaults = map[string]interface{}{
	"flopoco":                  "./flopoco",
	"quartus.bin_dir":          "",
	"quartus.work_dir":         ".",
	"vivado.executable":        "vivado",
	"vivado.work_dir":          "/tmp/vivado_runsyn_files",
	"vivado.clock_constraints": "/tmp/clock.xdc",
}

func getConfigDir() (string, error) {
	if configDir, ok := os.LookupEnv("RUNSYN_CONFIG_DIR"); ok {
		return configDir, nil
	}

	if xdgConfigHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		return path.Join(xdgConfigHome, configDirName), nil
	}

	homeDir, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "unable to locate the configuration directory")
	}
	return path.Join(homeDir, ".config", configDirName), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration from `configDir`. A missing configuration file yields the defaults.
func Load(configDir string) (Config, error) {
	v := newViper()
	if configDir != "" {
		v.AddConfigPath(configDir)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, errors.Wrapf(err, "error reading configuration file in '%s'", configDir)
		}
		log.Debug("No configuration file in '%s'. Using default configuration.\n", configDir)
	} else {
		log.Debug("Loaded configuration from '%s'.\n", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "invalid configuration")
	}

	for _, p := range []*string{&cfg.Flopoco, &cfg.Quartus.BinDir, &cfg.Quartus.WorkDir,
		&cfg.Vivado.Executable, &cfg.Vivado.WorkDir, &cfg.Vivado.ClockConstraints} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return Config{}, errors.Wrapf(err, "invalid path '%s'", *p)
		}
		*p = expanded
	}
	return cfg, nil
}

func loadConfiguration() Config {
	configDir, err := getConfigDir()
	if err != nil {
		log.Debug("Unable to find runsyn config directory: %s. Using default configuration.\n", err)
	}
	cfg, err := Load(configDir)
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	log.Debug("Running with configuration: %+v\n", cfg)
	return cfg
}

// GetConfig returns the configuration, loading it on first use.
func GetConfig() Config {
	if config == nil {
		loadedConfig := loadConfiguration()
		config = &loadedConfig
	}

	return *config
}

// Marshal renders the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode configuration")
	}
	return data, nil
}
