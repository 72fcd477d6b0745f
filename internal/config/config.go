package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	JWT struct {
		Secret string `yaml:"secret"`
		// TTLHours is the session token lifetime. Defaults to 7 days.
		TTLHours int `yaml:"ttl_hours"`
	} `yaml:"jwt"`

	OAuth struct {
		GoogleClientID     string `yaml:"google_client_id"`
		GoogleClientSecret string `yaml:"google_client_secret"`
		GoogleCallbackURL  string `yaml:"google_callback_url"`
	} `yaml:"oauth"`

	// FrontendURL is the base for reset links embedded in emails.
	FrontendURL string `yaml:"frontend_url"`

	RateLimit struct {
		OTPPerWindow   int `yaml:"otp_per_window"`
		ResetPerWindow int `yaml:"reset_per_window"`
		WindowMinutes  int `yaml:"window_minutes"`
	} `yaml:"rate_limit"`
}

var AppConfig *Config

// LoadConfig reads config.yaml unless DATABASE_URL is set, in which case
// configuration comes from environment variables (test mode).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.RateLimit.OTPPerWindow, _ = strconv.Atoi(os.Getenv("RATE_LIMIT_OTP"))
	cfg.RateLimit.ResetPerWindow, _ = strconv.Atoi(os.Getenv("RATE_LIMIT_RESET"))

	// No SMTP host in test mode; the log email provider takes over.
	cfg.Email.FromEmail = "test@jobportal.local"
	cfg.FrontendURL = "http://localhost:5173"

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.JWT.TTLHours == 0 {
		cfg.JWT.TTLHours = 7 * 24
	}
	if cfg.RateLimit.OTPPerWindow == 0 {
		cfg.RateLimit.OTPPerWindow = 5
	}
	if cfg.RateLimit.ResetPerWindow == 0 {
		cfg.RateLimit.ResetPerWindow = 3
	}
	if cfg.RateLimit.WindowMinutes == 0 {
		cfg.RateLimit.WindowMinutes = 15
	}
	if cfg.FrontendURL == "" {
		cfg.FrontendURL = "http://localhost:5173"
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "JobPortal"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
