package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// PricingConfig holds the default contract parameters the UI and CLI start from
type PricingConfig struct {
	Spot          float64 `yaml:"spot"`
	Strike        float64 `yaml:"strike"`
	Rate          float64 `yaml:"rate"`
	Volatility    float64 `yaml:"volatility"`
	MaturityYears float64 `yaml:"maturity_years"`
	Premium       float64 `yaml:"premium"`
}

// GridConfig controls the price grids the payoff and pricing curves run over.
// The explorer page walks MinPrice..MaxPrice in Step increments; the basics
// page uses an evenly spaced grid of BasicsPoints between BasicsMin and BasicsMax.
type GridConfig struct {
	MinPrice     float64 `yaml:"min_price"`
	MaxPrice     float64 `yaml:"max_price"`
	Step         float64 `yaml:"step"`
	BasicsMin    float64 `yaml:"basics_min"`
	BasicsMax    float64 `yaml:"basics_max"`
	BasicsPoints int     `yaml:"basics_points"`
}

// CurvesConfig lists the factor values the sensitivity curve families sweep over
type CurvesConfig struct {
	Maturities   []float64 `yaml:"maturities"`
	Volatilities []float64 `yaml:"volatilities"`
	Rates        []float64 `yaml:"rates"`
	Strikes      []float64 `yaml:"strikes"`
}

// AssetsConfig locates the JSON data files shipped with the server
type AssetsConfig struct {
	GlossaryFile  string `yaml:"glossary_file"`
	ScenariosFile string `yaml:"scenarios_file"`
	RatesFile     string `yaml:"rates_file"`
}

// ChartConfig controls server-side PNG rendering
type ChartConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// CSVConfig represents CSV export configuration
type CSVConfig struct {
	FilenameFormat string `yaml:"filename_format"`
}

// AuditLogConfig represents numerical audit report configuration
type AuditLogConfig struct {
	FilenameFormat string `yaml:"filename_format"`
	ReportDir      string `yaml:"report_dir"`
	RunOnStartup   bool   `yaml:"run_on_startup"`
}

type Config struct {
	// Server settings
	Host string
	Port string

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`
	// Default pricing inputs
	Pricing PricingConfig `yaml:"pricing"`
	// Price grid settings
	Grid GridConfig `yaml:"grid"`
	// Factor curve sweeps
	Curves CurvesConfig `yaml:"curves"`
	// Data file locations
	Assets AssetsConfig `yaml:"assets"`
	// PNG chart settings
	Chart ChartConfig `yaml:"chart"`
	// CSV export settings
	CSV CSVConfig `yaml:"csv"`
}

type YAMLConfig struct {
	Server struct {
		Host string `yaml:"host"`
		Port string `yaml:"port"`
	} `yaml:"server"`

	Logging  LoggingConfig  `yaml:"logging"`
	Pricing  PricingConfig  `yaml:"pricing"`
	Grid     GridConfig     `yaml:"grid"`
	Curves   CurvesConfig   `yaml:"curves"`
	Assets   AssetsConfig   `yaml:"assets"`
	Chart    ChartConfig    `yaml:"chart"`
	CSV      CSVConfig      `yaml:"csv"`
	AuditLog AuditLogConfig `yaml:"audit_log"`
}

func Load() *Config {
	cfg := &Config{
		Host: getEnv("HOST", "0.0.0.0"),
		Port: getEnv("PORT", "8080"),

		Logging: LoggingConfig{
			LogLevel: getEnv("LOG_LEVEL", "info"),
			LogFile:  getEnv("LOG_FILE", "tetra.log"),
		},

		Pricing: PricingConfig{
			Spot:          getEnvFloat("DEFAULT_SPOT", 100),
			Strike:        getEnvFloat("DEFAULT_STRIKE", 100),
			Rate:          getEnvFloat("DEFAULT_RATE", 0.05),
			Volatility:    getEnvFloat("DEFAULT_VOLATILITY", 0.20),
			MaturityYears: getEnvFloat("DEFAULT_MATURITY_YEARS", 1.0),
			Premium:       getEnvFloat("DEFAULT_PREMIUM", 10),
		},

		Grid: GridConfig{
			MinPrice:     getEnvFloat("GRID_MIN_PRICE", 40),
			MaxPrice:     getEnvFloat("GRID_MAX_PRICE", 160),
			Step:         getEnvFloat("GRID_STEP", 1),
			BasicsMin:    getEnvFloat("GRID_BASICS_MIN", 50),
			BasicsMax:    getEnvFloat("GRID_BASICS_MAX", 150),
			BasicsPoints: getEnvInt("GRID_BASICS_POINTS", 100),
		},

		Curves: CurvesConfig{
			Maturities:   getEnvFloatSlice("CURVE_MATURITIES", []float64{2, 1, 0.5, 0.25, 0.1, 0.01}),
			Volatilities: getEnvFloatSlice("CURVE_VOLATILITIES", []float64{0.1, 0.2, 0.3, 0.4, 0.5}),
			Rates:        getEnvFloatSlice("CURVE_RATES", []float64{0.01, 0.04, 0.07, 0.10}),
			Strikes:      getEnvFloatSlice("CURVE_STRIKES", []float64{80, 90, 100, 110, 120}),
		},

		Assets: AssetsConfig{
			GlossaryFile:  getEnv("GLOSSARY_FILE", "assets/glossary/terms.json"),
			ScenariosFile: getEnv("SCENARIOS_FILE", "assets/scenarios/scenarios.json"),
			RatesFile:     getEnv("RATES_FILE", "assets/rates/rates.json"),
		},

		Chart: ChartConfig{
			Width:  getEnvInt("CHART_WIDTH", 900),
			Height: getEnvInt("CHART_HEIGHT", 480),
		},
	}

	// Try to load from YAML file and override
	if yamlCfg := loadYAMLConfig(); yamlCfg != nil {
		if yamlCfg.Server.Host != "" {
			cfg.Host = yamlCfg.Server.Host
		}
		if yamlCfg.Server.Port != "" {
			cfg.Port = yamlCfg.Server.Port
		}

		// Logging configuration from YAML
		if yamlCfg.Logging.LogLevel != "" {
			cfg.Logging.LogLevel = yamlCfg.Logging.LogLevel
		}
		if yamlCfg.Logging.LogFile != "" {
			cfg.Logging.LogFile = yamlCfg.Logging.LogFile
		}

		// Pricing defaults from YAML
		if yamlCfg.Pricing.Spot > 0 {
			cfg.Pricing.Spot = yamlCfg.Pricing.Spot
		}
		if yamlCfg.Pricing.Strike > 0 {
			cfg.Pricing.Strike = yamlCfg.Pricing.Strike
		}
		if yamlCfg.Pricing.Rate != 0 {
			cfg.Pricing.Rate = yamlCfg.Pricing.Rate
		}
		if yamlCfg.Pricing.Volatility > 0 {
			cfg.Pricing.Volatility = yamlCfg.Pricing.Volatility
		}
		if yamlCfg.Pricing.MaturityYears > 0 {
			cfg.Pricing.MaturityYears = yamlCfg.Pricing.MaturityYears
		}
		if yamlCfg.Pricing.Premium > 0 {
			cfg.Pricing.Premium = yamlCfg.Pricing.Premium
		}

		// Grid from YAML
		if yamlCfg.Grid.MaxPrice > yamlCfg.Grid.MinPrice && yamlCfg.Grid.Step > 0 {
			cfg.Grid.MinPrice = yamlCfg.Grid.MinPrice
			cfg.Grid.MaxPrice = yamlCfg.Grid.MaxPrice
			cfg.Grid.Step = yamlCfg.Grid.Step
		}
		if yamlCfg.Grid.BasicsPoints > 1 && yamlCfg.Grid.BasicsMax > yamlCfg.Grid.BasicsMin {
			cfg.Grid.BasicsMin = yamlCfg.Grid.BasicsMin
			cfg.Grid.BasicsMax = yamlCfg.Grid.BasicsMax
			cfg.Grid.BasicsPoints = yamlCfg.Grid.BasicsPoints
		}

		// Curve sweeps from YAML
		if len(yamlCfg.Curves.Maturities) > 0 {
			cfg.Curves.Maturities = yamlCfg.Curves.Maturities
		}
		if len(yamlCfg.Curves.Volatilities) > 0 {
			cfg.Curves.Volatilities = yamlCfg.Curves.Volatilities
		}
		if len(yamlCfg.Curves.Rates) > 0 {
			cfg.Curves.Rates = yamlCfg.Curves.Rates
		}
		if len(yamlCfg.Curves.Strikes) > 0 {
			cfg.Curves.Strikes = yamlCfg.Curves.Strikes
		}

		// Asset locations from YAML
		if yamlCfg.Assets.GlossaryFile != "" {
			cfg.Assets.GlossaryFile = yamlCfg.Assets.GlossaryFile
		}
		if yamlCfg.Assets.ScenariosFile != "" {
			cfg.Assets.ScenariosFile = yamlCfg.Assets.ScenariosFile
		}
		if yamlCfg.Assets.RatesFile != "" {
			cfg.Assets.RatesFile = yamlCfg.Assets.RatesFile
		}

		// Chart from YAML
		if yamlCfg.Chart.Width > 0 {
			cfg.Chart.Width = yamlCfg.Chart.Width
		}
		if yamlCfg.Chart.Height > 0 {
			cfg.Chart.Height = yamlCfg.Chart.Height
		}

		// CSV configuration from YAML
		cfg.CSV = yamlCfg.CSV
	}

	// Set default filename format if not specified
	if cfg.CSV.FilenameFormat == "" {
		cfg.CSV.FilenameFormat = "{kind}_{timestamp}.csv"
	}

	return cfg
}

func loadYAMLConfig() *YAMLConfig {
	data, err := os.ReadFile("config.yaml")
	if err != nil {
		// Could not read config.yaml - silently return nil
		return nil
	}

	var yamlCfg YAMLConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		// Could not parse config.yaml - silently return nil
		return nil
	}

	return &yamlCfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloatSlice(key string, defaultValue []float64) []float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	parsed := make([]float64, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return defaultValue
		}
		parsed = append(parsed, f)
	}
	return parsed
}

// CalculateDefaultExpirationDate calculates the next options expiration (3rd Friday) in YYYY-MM-DD format
func CalculateDefaultExpirationDate() string {
	today := time.Now()
	currentMonth := today.Month()
	currentYear := today.Year()

	// Find 3rd Friday of current month
	firstDay := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, time.UTC)
	firstFriday := firstDay.AddDate(0, 0, (5-int(firstDay.Weekday())+7)%7)
	thirdFriday := firstFriday.AddDate(0, 0, 14)

	// If current day is PAST the 3rd Friday, use next month's 3rd Friday
	// Otherwise use current month's 3rd Friday
	if today.After(thirdFriday) {
		nextMonth := currentMonth + 1
		nextYear := currentYear
		if nextMonth > 12 {
			nextMonth = 1
			nextYear++
		}

		nextFirstDay := time.Date(nextYear, nextMonth, 1, 0, 0, 0, 0, time.UTC)
		nextFirstFriday := nextFirstDay.AddDate(0, 0, (5-int(nextFirstDay.Weekday())+7)%7)
		nextThirdFriday := nextFirstFriday.AddDate(0, 0, 14)
		return nextThirdFriday.Format("2006-01-02")
	}

	return thirdFriday.Format("2006-01-02")
}

// FormatAuditFilename formats audit report filenames using the configured template
func FormatAuditFilename(format, run, timestamp string) string {
	result := format
	result = strings.ReplaceAll(result, "{run}", run)
	result = strings.ReplaceAll(result, "{timestamp}", timestamp)
	return result
}

// FormatCSVFilename formats export filenames using the configured template
func FormatCSVFilename(format, kind, timestamp string) string {
	result := format
	result = strings.ReplaceAll(result, "{kind}", kind)
	result = strings.ReplaceAll(result, "{timestamp}", timestamp)
	return result
}

// GetAuditConfig returns audit report configuration from loaded YAML
func GetAuditConfig() *AuditLogConfig {
	if yamlCfg := loadYAMLConfig(); yamlCfg != nil && yamlCfg.AuditLog.FilenameFormat != "" {
		auditCfg := yamlCfg.AuditLog
		if auditCfg.ReportDir == "" {
			auditCfg.ReportDir = "audits"
		}
		return &auditCfg
	}
	// Return defaults if no config loaded
	return &AuditLogConfig{
		FilenameFormat: "audit-{run}-{timestamp}",
		ReportDir:      "audits",
		RunOnStartup:   getEnvBool("AUDIT_ON_STARTUP", true),
	}
}
