package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/acganger/ganger-platform-sub011/pkg/core/model"
	"github.com/acganger/ganger-platform-sub011/pkg/core/optimizer"
)

// Data and registry sources
const (
	SourcePostgres = "postgres"
	SourceFile     = "file"
	SourceSheets   = "sheets"
)

// Blackout removes coverage requirements on the dates generated by an RRULE
type Blackout struct {
	RRule  string `yaml:"rrule" validate:"required"`
	Start  string `yaml:"start" validate:"required,datetime=2006-01-02"`
	Reason string `yaml:"reason,omitempty"`
}

// SheetsConfig locates the registry tabs in a Google spreadsheet
type SheetsConfig struct {
	SpreadsheetID   string `yaml:"spreadsheetID"`
	LocationsTab    string `yaml:"locationsTab" validate:"required"`
	RoutesTab       string `yaml:"routesTab" validate:"required"`
	PreferencesTab  string `yaml:"preferencesTab" validate:"required"`
	CredentialsFile string `yaml:"credentialsFile,omitempty"` // service account key; application default credentials when empty
}

// Constraints bound each optimization run
type Constraints struct {
	MaxTravelTimePerDay         int            `yaml:"maxTravelTimePerDay" validate:"min=0"`
	MaxCrossLocationAssignments int            `yaml:"maxCrossLocationAssignments" validate:"min=0"`
	MileageRate                 float64        `yaml:"mileageRate" validate:"min=0"`
	HourlyTravelRate            float64        `yaml:"hourlyTravelRate" validate:"min=0"`
	MinimumStaffing             map[string]int `yaml:"minimumStaffing,omitempty" validate:"dive,min=0"`
	MaxOvertimeHours            float64        `yaml:"maxOvertimeHours" validate:"min=0"`
	AllowOvertime               bool           `yaml:"allowOvertime"`
	CompensateTravel            bool           `yaml:"compensateTravel"`
}

// Scoring holds the cross-location scoring coefficients
type Scoring struct {
	BaseConfidence           float64 `yaml:"baseConfidence" validate:"min=0,max=1"`
	PreferredBonus           float64 `yaml:"preferredBonus" validate:"min=0,max=1"`
	MaxConfidence            float64 `yaml:"maxConfidence" validate:"min=0,max=1"`
	TravelTimeWindow         float64 `yaml:"travelTimeWindow" validate:"gt=0"`
	MinTravelFactor          float64 `yaml:"minTravelFactor" validate:"min=0,max=1"`
	BaseEfficiency           float64 `yaml:"baseEfficiency" validate:"min=0,max=1"`
	SpeedWeight              float64 `yaml:"speedWeight" validate:"min=0"`
	SpeedCapMPH              float64 `yaml:"speedCapMPH" validate:"gt=0"`
	CostWeight               float64 `yaml:"costWeight" validate:"min=0"`
	CostNormalization        float64 `yaml:"costNormalization" validate:"gt=0"`
	PreferredEfficiencyBonus float64 `yaml:"preferredEfficiencyBonus" validate:"min=0"`
}

// Alerts are the thresholds that trigger recommendations and warnings
type Alerts struct {
	TotalTravelCost     float64 `yaml:"totalTravelCost" validate:"min=0"`
	StaffTravelCost     float64 `yaml:"staffTravelCost" validate:"min=0"`
	MinCoveragePercent  float64 `yaml:"minCoveragePercent" validate:"min=0,max=100"`
	MinTravelEfficiency float64 `yaml:"minTravelEfficiency" validate:"min=0,max=1"`
}

// PreferenceDefaults apply to staff without explicit travel limits
type PreferenceDefaults struct {
	MaxTravelTimeMinutes   int     `yaml:"maxTravelTimeMinutes" validate:"gt=0"`
	MaxTravelDistanceMiles float64 `yaml:"maxTravelDistanceMiles" validate:"gt=0"`
}

// Config represents the application configuration
type Config struct {
	DataSource         string             `yaml:"dataSource" validate:"required,oneof=postgres file"`
	RegistrySource     string             `yaml:"registrySource" validate:"required,oneof=postgres sheets file"`
	DatabaseURL        string             `yaml:"databaseURL,omitempty"`
	DataFile           string             `yaml:"dataFile,omitempty"`
	Sheets             SheetsConfig       `yaml:"sheets,omitempty"`
	LogDir             string             `yaml:"logDir" validate:"required"`
	MaxParallelFetches int                `yaml:"maxParallelFetches" validate:"min=1"`
	Constraints        Constraints        `yaml:"constraints"`
	Scoring            Scoring            `yaml:"scoring"`
	Alerts             Alerts             `yaml:"alerts"`
	PreferenceDefaults PreferenceDefaults `yaml:"preferenceDefaults"`
	Blackouts          []Blackout         `yaml:"blackouts,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns a configuration with every optional field at its default.
// Files are decoded on top of it, so omitted keys keep these values.
func Default() *Config {
	constraints := optimizer.DefaultConstraints()
	options := optimizer.DefaultOptions()

	return &Config{
		LogDir:             "logs",
		MaxParallelFetches: options.MaxParallelFetches,
		Sheets: SheetsConfig{
			LocationsTab:   "Locations",
			RoutesTab:      "Routes",
			PreferencesTab: "Preferences",
		},
		Constraints: Constraints{
			MaxTravelTimePerDay:         constraints.MaxTravelTimePerDay,
			MaxCrossLocationAssignments: constraints.MaxCrossLocationAssignments,
			MileageRate:                 constraints.MileageRate,
			HourlyTravelRate:            constraints.HourlyTravelRate,
			MinimumStaffing:             map[string]int{},
			MaxOvertimeHours:            constraints.MaxOvertimeHours,
			AllowOvertime:               constraints.Policies.AllowOvertime,
			CompensateTravel:            constraints.Policies.CompensateTravel,
		},
		Scoring:            Scoring(options.Scoring),
		Alerts:             Alerts(options.Alerts),
		PreferenceDefaults: PreferenceDefaults(options.PreferenceDefaults),
	}
}

// LoadWithEnv loads and validates staffing_config.<env>.yaml.
// It looks for the config file in the current directory first, then in the user's home directory
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(fmt.Sprintf("staffing_config.%s.yaml", env))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct, source settings and blackout rules
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	usesPostgres := cfg.DataSource == SourcePostgres || cfg.RegistrySource == SourcePostgres
	if usesPostgres && cfg.DatabaseURL == "" {
		return fmt.Errorf("config validation failed: databaseURL is required for the postgres source")
	}
	usesFile := cfg.DataSource == SourceFile || cfg.RegistrySource == SourceFile
	if usesFile && cfg.DataFile == "" {
		return fmt.Errorf("config validation failed: dataFile is required for the file source")
	}
	if cfg.RegistrySource == SourceSheets && cfg.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("config validation failed: sheets.spreadsheetID is required for the sheets registry source")
	}

	for i, blackout := range cfg.Blackouts {
		if _, err := rrule.StrToRRule(blackout.RRule); err != nil {
			return fmt.Errorf("invalid rrule in blackouts[%d]: %w", i, err)
		}
	}

	return nil
}

// OptimizerConstraints converts the configured constraints for the optimizer
func (c *Config) OptimizerConstraints() optimizer.Constraints {
	minimum := make(map[string]int, len(c.Constraints.MinimumStaffing))
	for location, count := range c.Constraints.MinimumStaffing {
		minimum[location] = count
	}

	return optimizer.Constraints{
		MaxTravelTimePerDay:         c.Constraints.MaxTravelTimePerDay,
		MaxCrossLocationAssignments: c.Constraints.MaxCrossLocationAssignments,
		MileageRate:                 c.Constraints.MileageRate,
		HourlyTravelRate:            c.Constraints.HourlyTravelRate,
		MinimumStaffing:             minimum,
		MaxOvertimeHours:            c.Constraints.MaxOvertimeHours,
		Policies: optimizer.Policies{
			AllowOvertime:    c.Constraints.AllowOvertime,
			CompensateTravel: c.Constraints.CompensateTravel,
		},
	}
}

// OptimizerOptions converts the configured scoring, alerts and defaults for the optimizer
func (c *Config) OptimizerOptions() optimizer.Options {
	return optimizer.Options{
		Scoring:            optimizer.ScoringParams(c.Scoring),
		Alerts:             optimizer.AlertThresholds(c.Alerts),
		PreferenceDefaults: optimizer.PreferenceDefaults(c.PreferenceDefaults),
		MaxParallelFetches: c.MaxParallelFetches,
	}
}

// BlackoutDates expands every blackout rule within the inclusive range
func (c *Config) BlackoutDates(dateRange model.DateRange) (map[string]string, error) {
	from, err := time.Parse(model.DateLayout, dateRange.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid range start: %w", err)
	}
	to, err := time.Parse(model.DateLayout, dateRange.End)
	if err != nil {
		return nil, fmt.Errorf("invalid range end: %w", err)
	}

	dates := map[string]string{}
	for i, blackout := range c.Blackouts {
		options, err := rrule.StrToROption(blackout.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in blackouts[%d]: %w", i, err)
		}
		start, err := time.Parse(model.DateLayout, blackout.Start)
		if err != nil {
			return nil, fmt.Errorf("invalid start in blackouts[%d]: %w", i, err)
		}
		options.Dtstart = start
		rule, err := rrule.NewRRule(*options)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in blackouts[%d]: %w", i, err)
		}

		for _, t := range rule.Between(from, to, true) {
			date := t.Format(model.DateLayout)
			if _, exists := dates[date]; !exists {
				dates[date] = blackout.Reason
			}
		}
	}

	return dates, nil
}

// findConfigFile searches for the named config file in current directory and home directory
func findConfigFile(configFileName string) (string, error) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", configFileName)
}
