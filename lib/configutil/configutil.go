package configutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// Load reads a json5 configuration file. Given "muscraper.json5" it will
// also look for "muscraper.local.json5" next to it and merge the local
// file over the checked-in one, so credentials and per-machine delays can
// stay out of version control.
func Load[T any](name string) (T, error) {
	var out T
	found := false

	ext := filepath.Ext(name)
	prefix := strings.TrimSuffix(name, ext)

	base, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(base) > 0 {
		if err := json5.Unmarshal(base, &out); err != nil {
			return out, fmt.Errorf("parse %s: %w", name, err)
		}
		found = true
	}

	localName := fmt.Sprintf("%s.local%s", prefix, ext)
	local, err := os.ReadFile(localName)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(local) > 0 {
		var override T
		if err := json5.Unmarshal(local, &override); err != nil {
			return out, fmt.Errorf("parse %s: %w", localName, err)
		}
		if err := mergo.Merge(&out, override, mergo.WithOverride); err != nil {
			return out, err
		}
		slog.Info("merged local config overrides", "local", localName)
		found = true
	}

	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}

// LoadRecursive walks from the working directory up to the filesystem
// root looking for a config file with the given name. Lets the CLIs run
// from any subdirectory of a checkout.
func LoadRecursive[T any](name string) (T, error) {
	var zero T

	current, err := os.Getwd()
	if err != nil {
		return zero, err
	}

	for {
		config, err := Load[T](filepath.Join(current, name))
		if err == nil {
			return config, nil
		}
		if !os.IsNotExist(err) {
			return zero, err
		}

		parent := filepath.Dir(current)
		if parent == current {
			return zero, os.ErrNotExist
		}
		current = parent
	}
}
