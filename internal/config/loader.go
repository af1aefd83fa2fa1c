package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment override. A double underscore
// separates sections: APERTURE_FILTER__ZSCORE sets filter.zscore.
const EnvPrefix = "APERTURE_"

// flagKeys maps command-line flag names onto config keys. Flags not listed
// here are not configuration.
var flagKeys = map[string]string{
	"verbose":       "verbose",
	"prefix":        "keypoints.prefix",
	"zscore":        "filter.zscore",
	"nan-policy":    "filter.nan_policy",
	"first":         "aperture.first",
	"second":        "aperture.second",
	"unit":          "aperture.unit",
	"labels":        "boxplot.labels",
	"messages":      "boxplot.message_counts",
	"with-outliers": "scatter.with_outliers",
	"output-dir":    "output.dir",
	"format":        "output.formats",
	"debug-csv":     "output.debug_csv",
	"open":          "output.open",
}

// findConfigFile picks the file to load: an explicit path, then
// aperture.yaml or aperture.yml in the working directory, then
// $XDG_CONFIG_HOME/aperture/config.yaml.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"aperture.yaml", "aperture.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	if path, err := xdg.SearchConfigFile("aperture/config.yaml"); err == nil {
		return path
	}
	return ""
}

// Load builds the configuration. Precedence, highest first: flags that were
// explicitly set, environment variables, the config file, defaults. flags
// may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: APERTURE_OUTPUT__DIR -> output.dir
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only those the user set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration without reading files,
// environment or flags.
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return &cfg
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
