package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Env      string
	LogLevel string
	Server   Server
	Database Database
	Auth     Auth
	Gemini   Gemini
	Attempt  Attempt
}

type Server struct {
	Port string
}

type Database struct {
	Driver     string // "postgres" or "sqlite"
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SQLitePath string
}

type Auth struct {
	JWTSecret string
}

type Gemini struct {
	APIKey string
	Model  string
}

// Attempt holds the optional submission deadline policy. Durations recorded on an
// attempt are advisory unless EnforceDeadline is set.
type Attempt struct {
	EnforceDeadline bool
	GraceSeconds    int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_SQLITE_PATH", "hireboard.db")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("ATTEMPT_ENFORCE_DEADLINE", false)
	viper.SetDefault("ATTEMPT_GRACE_SECONDS", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Env = viper.GetString("APP_ENV")
	config.LogLevel = viper.GetString("LOG_LEVEL")
	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Driver = viper.GetString("DATABASE_DRIVER")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SQLitePath = viper.GetString("DATABASE_SQLITE_PATH")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")

	config.Gemini.APIKey = viper.GetString("GEMINI_API_KEY")
	config.Gemini.Model = viper.GetString("GEMINI_MODEL")

	config.Attempt.EnforceDeadline = viper.GetBool("ATTEMPT_ENFORCE_DEADLINE")
	config.Attempt.GraceSeconds = viper.GetInt("ATTEMPT_GRACE_SECONDS")

	if config.Auth.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set. Every authenticated request will be rejected.")
	}

	log.Info().
		Str("env", config.Env).
		Str("port", config.Server.Port).
		Str("db_driver", config.Database.Driver).
		Str("db_host", config.Database.Host).
		Bool("enforce_deadline", config.Attempt.EnforceDeadline).
		Msg("Config loaded")
	return &config, nil
}
