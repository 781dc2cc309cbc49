package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Operator OperatorConfig `mapstructure:"operator"`
	Reports  ReportsConfig  `mapstructure:"reports"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Twilio   TwilioConfig   `mapstructure:"twilio"`
	S3       S3Config       `mapstructure:"s3"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// JWTConfig defines JWT specific configuration.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// OperatorConfig identifies the single operator account allowed to call the
// API. PasswordHash is a bcrypt hash.
type OperatorConfig struct {
	Email        string `mapstructure:"email"`
	PasswordHash string `mapstructure:"password_hash"`
}

// ReportsConfig tunes report generation windows.
type ReportsConfig struct {
	WeeklyDays  int `mapstructure:"weekly_days"`
	MonthlyDays int `mapstructure:"monthly_days"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type TwilioConfig struct {
	AccountSID   string `mapstructure:"account_sid"`
	AuthToken    string `mapstructure:"auth_token"`
	WhatsAppFrom string `mapstructure:"whatsapp_from"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// ScheduleConfig controls the automatic weekly run.
type ScheduleConfig struct {
	Weekday string `mapstructure:"weekday"`
	Time    string `mapstructure:"time"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Environment variables override file values, e.g. database.uri -> DATABASE_URI
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "stairs_gym")
	viper.SetDefault("jwt.expiration", "1h")
	viper.SetDefault("reports.weekly_days", 7)
	viper.SetDefault("reports.monthly_days", 30)
	viper.SetDefault("gemini.model", "gemini-2.0-flash")
	viper.SetDefault("smtp.host", "smtp.gmail.com")
	viper.SetDefault("smtp.port", 465)
	viper.SetDefault("twilio.whatsapp_from", "whatsapp:+14155238886")
	viper.SetDefault("s3.use_ssl", true)
	viper.SetDefault("schedule.weekday", "Sunday")
	viper.SetDefault("schedule.time", "20:00")

	err = viper.ReadInConfig()
	// The config file is optional; env vars and defaults can carry the whole
	// configuration.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
