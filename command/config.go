package command

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-jsonnet"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tminor/makels/implementation"
)

const envPrefix = "MAKELS"

// Settings is the resolved configuration: flags over MAKELS_* environment
// variables over the config file over defaults.
type Settings struct {
	implementation.Config

	LogFile   string
	Verbosity int
	Debug     bool
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return nil
}

// loadSettings reads path, or .makels.* from the working or home directory
// when path is empty, and resolves all settings.
func loadSettings(v *viper.Viper, path string) (*Settings, error) {
	if err := readConfig(v, path); err != nil {
		return nil, err
	}

	settings := &Settings{
		Config: implementation.Config{
			MakePath:      v.GetString("make"),
			MakeArgs:      v.GetStringSlice("make-arg"),
			Debounce:      v.GetDuration("debounce"),
			HoverWait:     v.GetDuration("hover-wait"),
			InvokeTimeout: v.GetDuration("invoke-timeout"),
			CacheSize:     v.GetInt("cache-size"),
		},
		LogFile:   v.GetString("log-file"),
		Verbosity: v.GetInt("verbose"),
		Debug:     v.GetBool("debug"),
	}

	if settings.Debounce < 0 || settings.HoverWait < 0 || settings.InvokeTimeout < 0 {
		return nil, errors.New("durations must not be negative")
	}
	if settings.MakePath == "" {
		settings.MakePath = "make"
	}
	return settings, nil
}

func readConfig(v *viper.Viper, path string) error {
	if path == "" {
		v.SetConfigName(".makels")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				return nil
			}
			return fmt.Errorf("reading config: %w", err)
		}
		return nil
	}

	if filepath.Ext(path) == ".jsonnet" {
		json, err := evaluateJsonnet(path)
		if err != nil {
			return err
		}
		v.SetConfigType("json")
		if err := v.ReadConfig(strings.NewReader(json)); err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

func evaluateJsonnet(path string) (string, error) {
	snippet, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	vm := jsonnet.MakeVM()
	vm.Importer(&jsonnet.FileImporter{JPaths: []string{filepath.Dir(path)}})
	json, err := vm.EvaluateAnonymousSnippet(path, string(snippet))
	if err != nil {
		return "", fmt.Errorf("evaluating %s: %w", path, err)
	}
	return json, nil
}
