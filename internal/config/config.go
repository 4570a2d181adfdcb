package config

import (
	"log"

	"github.com/spf13/viper"

	"github.com/bompreco/pdv-api/pkg/apperror"
)

type Config struct {
	App       AppConfig
	Supabase  SupabaseConfig
	Printer   PrinterConfig
	Store     StoreConfig
	Poller    PollerConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// SupabaseConfig holds the backing-store connection credentials.
type SupabaseConfig struct {
	URL string
	Key string
}

// PrinterConfig selects the receipt delivery transport for unattended
// printing. When Address is empty the spool directory is used instead.
type PrinterConfig struct {
	// Address is the network printer endpoint, e.g. "192.168.1.200:9100".
	Address string
	// SpoolDir receives cupom_<id>.bin files when no network printer is set.
	SpoolDir string
	// Simulate substitutes the loopback console printer for hardware.
	Simulate bool
}

// StoreConfig is the business identity printed on receipt headers.
type StoreConfig struct {
	Name     string
	Location string
}

type PollerConfig struct {
	// BatchSize is the maximum number of pending sales fetched per pass.
	BatchSize int
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "pdv-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_SPOOL_DIR", "./spool")
	viper.SetDefault("PRINTER_SIMULATE", false)
	viper.SetDefault("STORE_NAME", "HORTIFRUTI BOM PRECO")
	viper.SetDefault("STORE_LOCATION", "Salto de Pirapora, SP")
	viper.SetDefault("POLLER_BATCH_SIZE", 5)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Supabase: SupabaseConfig{
			URL: viper.GetString("SUPABASE_URL"),
			Key: viper.GetString("SUPABASE_KEY"),
		},
		Printer: PrinterConfig{
			Address:  viper.GetString("PRINTER_ADDRESS"),
			SpoolDir: viper.GetString("PRINTER_SPOOL_DIR"),
			Simulate: viper.GetBool("PRINTER_SIMULATE"),
		},
		Store: StoreConfig{
			Name:     viper.GetString("STORE_NAME"),
			Location: viper.GetString("STORE_LOCATION"),
		},
		Poller: PollerConfig{
			BatchSize: viper.GetInt("POLLER_BATCH_SIZE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
	}
}

// Validate checks the presence of required connection credentials. A
// missing credential is fatal at startup; the process must not proceed.
func (c *Config) Validate() error {
	if c.Supabase.URL == "" || c.Supabase.Key == "" {
		return apperror.NewConfigurationMissing(
			"Credenciais do Supabase nao encontradas. Defina SUPABASE_URL e SUPABASE_KEY no .env")
	}
	return nil
}
