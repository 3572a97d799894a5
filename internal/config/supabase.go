package config

import (
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	urlEnvKey     = "SUPABASE_URL"
	anonKeyEnvKey = "SUPABASE_ANON_KEY"
)

type SupabaseConfig struct {
	ProjectURL string `yaml:"url"`
	AnonAPIKey string `yaml:"anon-key"`
}

func (c *SupabaseConfig) URL() string {
	return c.ProjectURL
}

func (c *SupabaseConfig) AnonKey() string {
	return c.AnonAPIKey
}

// SupabaseFromEnv reads the connection settings from a key=value env file,
// the same file the project's diagnostic tooling has always used.
func SupabaseFromEnv(path string) (*SupabaseConfig, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading env file")
	}

	cfg := &SupabaseConfig{
		ProjectURL: env[urlEnvKey],
		AnonAPIKey: env[anonKeyEnvKey],
	}
	if cfg.ProjectURL == "" {
		return nil, errors.Errorf("%s is missing in %s", urlEnvKey, path)
	}
	if cfg.AnonAPIKey == "" {
		return nil, errors.Errorf("%s is missing in %s", anonKeyEnvKey, path)
	}
	return cfg, nil
}
