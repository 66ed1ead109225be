package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by the CLI. Flags override them and they
// override the profile.
const (
	EnvProfile   = "TEAM_RECONCILER_CONFIG"
	EnvThreshold = "TEAM_RECONCILER_THRESHOLD"
	EnvMode      = "TEAM_RECONCILER_MODE"
	EnvOutput    = "TEAM_RECONCILER_OUTPUT"
	EnvLogLevel  = "TEAM_RECONCILER_LOG_LEVEL"
	EnvUserAgent = "TEAM_RECONCILER_USER_AGENT"
)

// LoadEnv loads KEY=VALUE files into the process environment. Variables
// already set are kept and missing files are skipped. With no arguments
// it reads ".env" from the working directory.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	return nil
}

// ApplyEnv overrides profile fields from the environment. Blank
// variables are ignored.
func ApplyEnv(p *Profile) error {
	if v, ok := lookupEnv(EnvThreshold); ok {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvThreshold, v, err)
		}

		p.Threshold = &t
	}

	if v, ok := lookupEnv(EnvMode); ok {
		p.Mode = v
	}

	if v, ok := lookupEnv(EnvOutput); ok {
		p.Output = v
	}

	if v, ok := lookupEnv(EnvLogLevel); ok {
		p.Log.Level = v
	}

	if v, ok := lookupEnv(EnvUserAgent); ok {
		p.Fetch.UserAgent = v
	}

	return nil
}

// ProfilePath returns $TEAM_RECONCILER_CONFIG, or fallback when unset.
func ProfilePath(fallback string) string {
	if v, ok := lookupEnv(EnvProfile); ok {
		return v
	}

	return fallback
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)

	return v, ok && v != ""
}
