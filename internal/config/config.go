package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port                          string        `mapstructure:"PORT"`
	AppEnv                        string        `mapstructure:"APP_ENV"`
	DatabaseURL                   string        `mapstructure:"DATABASE_URL"`
	SMTPHost                      string        `mapstructure:"SMTP_HOST"`
	SMTPPort                      int           `mapstructure:"SMTP_PORT"`
	SMTPUser                      string        `mapstructure:"SMTP_USER"`
	SMTPPassword                  string        `mapstructure:"SMTP_PASSWORD"`
	MailFrom                      string        `mapstructure:"MAIL_FROM"`
	MailSenderName                string        `mapstructure:"MAIL_SENDER_NAME"`
	EnforcePhoneFormat            bool          `mapstructure:"ENFORCE_PHONE_FORMAT"`
	JWTSecret                     string        `mapstructure:"JWT_SECRET"`
	AdminPassword                 string        `mapstructure:"ADMIN_PASSWORD"`
	DiscordBotToken               string        `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string        `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
	RedisURL                      string        `mapstructure:"REDIS_URL"`
	CacheTTL                      time.Duration `mapstructure:"CACHE_TTL"`
	EnableCORS                    bool          `mapstructure:"ENABLE_CORS"`
	AllowedOrigins                []string      `mapstructure:"ALLOWED_ORIGINS"`
}

// IsProduction reports whether error details must be withheld from clients.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// SMTPEnabled reports whether an outbound mail channel is configured.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DATABASE_URL", "conference.db")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("MAIL_SENDER_NAME", "Carrefour Étudiant International")
	v.SetDefault("ENFORCE_PHONE_FORMAT", true)
	v.SetDefault("CACHE_TTL", 5*time.Minute)
	v.SetDefault("ALLOWED_ORIGINS", []string{"http://127.0.0.1:3000"})
}

var boundEnv = []string{
	"APP_ENV",
	"DATABASE_URL",
	"SMTP_HOST",
	"SMTP_PORT",
	"SMTP_USER",
	"SMTP_PASSWORD",
	"MAIL_FROM",
	"MAIL_SENDER_NAME",
	"ENFORCE_PHONE_FORMAT",
	"JWT_SECRET",
	"ADMIN_PASSWORD",
	"DISCORD_BOT_TOKEN",
	"DISCORD_NOTIFICATIONS_CHANNEL_ID",
	"REDIS_URL",
	"CACHE_TTL",
	"ENABLE_CORS",
	"ALLOWED_ORIGINS",
}

// Load reads configuration from the environment and, when configFile is not
// empty, from that file. Environment variables win over file values.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for _, key := range boundEnv {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.SMTPUser
	}
	if cfg.AdminPassword != "" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required when ADMIN_PASSWORD is set")
	}

	return &cfg, nil
}
