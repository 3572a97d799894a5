package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
supabase:
  url: https://project.supabase.co
  anon-key: anon-123
app:
  currency: VND
  monthly-budget: 10000000
  week-start-day: monday
  timezone: Asia/Ho_Chi_Minh
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_OnValidYaml_ShouldExposeTypedSections(t *testing.T) {
	service, err := NewFromFile(writeFile(t, "config.yaml", sampleYAML))

	require.NoError(t, err)
	assert.Equal(t, "https://project.supabase.co", service.Supabase().URL())
	assert.Equal(t, "anon-123", service.Supabase().AnonKey())
	assert.Equal(t, "VND", service.App().Currency())
	assert.Equal(t, int64(10000000), service.App().MonthlyBudget().IntPart())
	assert.Equal(t, time.Monday, service.App().WeekStartDay())
}

func Test_OnMissingFile_ShouldFail(t *testing.T) {
	_, err := NewFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func Test_OnUnknownWeekday_ShouldFallBackToMonday(t *testing.T) {
	app := &AppConfig{WeekStartName: "someday"}
	assert.Equal(t, time.Monday, app.WeekStartDay())

	app = &AppConfig{WeekStartName: "Sunday"}
	assert.Equal(t, time.Sunday, app.WeekStartDay())
}

func Test_OnUnknownTimezone_ShouldFallBackToUTC(t *testing.T) {
	app := &AppConfig{TimezoneName: "Nowhere/Unknown"}
	assert.Equal(t, time.UTC, app.Location())
}

func Test_OnEnvFile_ShouldReadSupabaseSettings(t *testing.T) {
	path := writeFile(t, ".env.local", "SUPABASE_URL=https://project.supabase.co\nSUPABASE_ANON_KEY=anon-123\n")

	cfg, err := SupabaseFromEnv(path)

	require.NoError(t, err)
	assert.Equal(t, "https://project.supabase.co", cfg.URL())
	assert.Equal(t, "anon-123", cfg.AnonKey())
}

func Test_OnIncompleteEnvFile_ShouldFail(t *testing.T) {
	path := writeFile(t, ".env.local", "SUPABASE_URL=https://project.supabase.co\n")

	_, err := SupabaseFromEnv(path)
	assert.Error(t, err)
}
