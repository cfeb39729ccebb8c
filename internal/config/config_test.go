package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
)

func validConfig() *Config {
	cfg := Default()
	cfg.DataSource = SourcePostgres
	cfg.RegistrySource = SourcePostgres
	cfg.DatabaseURL = "postgres://localhost:5432/staffing"
	return cfg
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Blackouts = []Blackout{
		{RRule: "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=25", Start: "2025-01-01", Reason: "Christmas"},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingRequiredField(t *testing.T) {
	cfg := validConfig()
	cfg.DataSource = ""

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_UnknownSource(t *testing.T) {
	cfg := validConfig()
	cfg.RegistrySource = "ldap"

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_SourceSettings(t *testing.T) {
	t.Run("postgres needs a database url", func(t *testing.T) {
		cfg := validConfig()
		cfg.DatabaseURL = ""
		err := Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "databaseURL")
	})

	t.Run("file needs a data file", func(t *testing.T) {
		cfg := validConfig()
		cfg.DataSource = SourceFile
		err := Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dataFile")

		cfg.DataFile = "staffing.yaml"
		assert.NoError(t, Validate(cfg))
	})

	t.Run("sheets needs a spreadsheet", func(t *testing.T) {
		cfg := validConfig()
		cfg.RegistrySource = SourceSheets
		err := Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "spreadsheetID")

		cfg.Sheets.SpreadsheetID = "sheet123"
		assert.NoError(t, Validate(cfg))
	})
}

func TestValidate_InvalidRRule(t *testing.T) {
	cfg := validConfig()
	cfg.Blackouts = []Blackout{
		{RRule: "FREQ=WEEKLY;BYDAY=SU", Start: "2025-01-05"},
		{RRule: "INVALID_RRULE", Start: "2025-01-05"},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule in blackouts[1]")
}

func TestValidate_BlackoutWithoutStart(t *testing.T) {
	cfg := validConfig()
	cfg.Blackouts = []Blackout{{RRule: "FREQ=WEEKLY;BYDAY=SU"}}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_ScoringBounds(t *testing.T) {
	cfg := validConfig()
	cfg.Scoring.MaxConfidence = 1.5

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_NegativeMinimumStaffing(t *testing.T) {
	cfg := validConfig()
	cfg.Constraints.MinimumStaffing = map[string]int{"north": -1}

	err := Validate(cfg)
	assert.Error(t, err)
}

func TestValidate_PreferenceDefaultsMustBePositive(t *testing.T) {
	cfg := validConfig()
	cfg.PreferenceDefaults.MaxTravelTimeMinutes = 0
	assert.Error(t, Validate(cfg))

	cfg = validConfig()
	cfg.PreferenceDefaults.MaxTravelDistanceMiles = 0
	assert.Error(t, Validate(cfg))
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	validConfig := `
dataSource: file
registrySource: sheets
dataFile: staffing.yaml
maxParallelFetches: 4
sheets:
  spreadsheetID: "sheet123"
  credentialsFile: "/etc/staffing/sa.json"
constraints:
  maxTravelTimePerDay: 90
  minimumStaffing:
    north: 2
  allowOvertime: false
  maxOvertimeHours: 8
scoring:
  baseConfidence: 0.6
alerts:
  totalTravelCost: 500
blackouts:
  - rrule: "FREQ=YEARLY;BYMONTH=1;BYMONTHDAY=1"
    start: "2025-01-01"
    reason: "New Year"
`

	err := os.WriteFile(configPath, []byte(validConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, SourceFile, cfg.DataSource)
	assert.Equal(t, SourceSheets, cfg.RegistrySource)
	assert.Equal(t, 4, cfg.MaxParallelFetches)
	assert.Equal(t, "sheet123", cfg.Sheets.SpreadsheetID)
	assert.Equal(t, "/etc/staffing/sa.json", cfg.Sheets.CredentialsFile)

	// Omitted keys keep their defaults
	assert.Equal(t, "Locations", cfg.Sheets.LocationsTab)
	assert.Equal(t, "logs", cfg.LogDir)
	assert.Equal(t, 3, cfg.Constraints.MaxCrossLocationAssignments)
	assert.Equal(t, 0.2, cfg.Scoring.PreferredBonus)
	assert.Equal(t, 100.0, cfg.Alerts.StaffTravelCost)

	constraints := cfg.OptimizerConstraints()
	assert.Equal(t, 90, constraints.MaxTravelTimePerDay)
	assert.Equal(t, 2, constraints.MinimumStaffing["north"])
	assert.False(t, constraints.Policies.AllowOvertime)
	assert.True(t, constraints.Policies.CompensateTravel)
	assert.Equal(t, 8.0, constraints.MaxOvertimeHours)

	options := cfg.OptimizerOptions()
	assert.Equal(t, 0.6, options.Scoring.BaseConfidence)
	assert.Equal(t, 500.0, options.Alerts.TotalTravelCost)
	assert.Equal(t, 60, options.PreferenceDefaults.MaxTravelTimeMinutes)
	assert.Equal(t, 4, options.MaxParallelFetches)

	require.Len(t, cfg.Blackouts, 1)
	assert.Equal(t, "New Year", cfg.Blackouts[0].Reason)
}

func TestLoadFromPath_InvalidRRule(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_rrule.yaml")

	invalidConfig := `
dataSource: postgres
registrySource: postgres
databaseURL: postgres://localhost/staffing
blackouts:
  - rrule: "INVALID_RRULE_SYNTAX"
    start: "2025-01-01"
`

	err := os.WriteFile(configPath, []byte(invalidConfig), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestLoadFromPath_MinimalConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "minimal_config.yaml")

	minimalConfig := `
dataSource: postgres
registrySource: postgres
databaseURL: postgres://localhost/staffing
`

	err := os.WriteFile(configPath, []byte(minimalConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, Default().Constraints, cfg.Constraints)
	assert.Equal(t, 8, cfg.MaxParallelFetches)
	assert.Empty(t, cfg.Blackouts)
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_yaml.yaml")

	invalidYAML := `
dataSource: "postgres"
  invalid indentation
registrySource: "postgres"
`

	err := os.WriteFile(configPath, []byte(invalidYAML), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadWithEnv(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	content := `
dataSource: postgres
registrySource: postgres
databaseURL: postgres://localhost/staffing_test
`
	require.NoError(t, os.WriteFile("staffing_config.test.yaml", []byte(content), 0644))

	cfg, err := LoadWithEnv("test")
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/staffing_test", cfg.DatabaseURL)

	t.Setenv("HOME", tmpDir)
	_, err = LoadWithEnv("missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to find config file")
}

func TestBlackoutDates(t *testing.T) {
	cfg := validConfig()
	cfg.Blackouts = []Blackout{
		{RRule: "FREQ=WEEKLY;BYDAY=SA,SU", Start: "2025-01-04", Reason: "weekend"},
		{RRule: "FREQ=YEARLY;BYMONTH=3;BYMONTHDAY=8", Start: "2025-01-01", Reason: "training day"},
	}

	dates, err := cfg.BlackoutDates(model.DateRange{Start: "2025-03-03", End: "2025-03-10"})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"2025-03-08": "weekend",
		"2025-03-09": "weekend",
	}, dates)
}

func TestBlackoutDates_InvalidRange(t *testing.T) {
	cfg := validConfig()
	_, err := cfg.BlackoutDates(model.DateRange{Start: "soon", End: "2025-03-10"})
	assert.Error(t, err)
}
