package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server Server
	Data   Data
	Auth   Auth
	Export Export
	Log    Log
}

type Server struct {
	Port string
}

// Data controls where the durable cache lives and where the seed
// collections are bootstrapped from on first run.
type Data struct {
	Dir              string
	BootstrapURL     string
	BootstrapTimeout time.Duration
}

type Auth struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// Export holds the optional MinIO target for bucket exports. Endpoint left
// empty disables the feature.
type Export struct {
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

type Log struct {
	File string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("BOOTSTRAP_TIMEOUT", "10s")
	viper.SetDefault("TOKEN_TTL", "12h")
	viper.SetDefault("MINIO_BUCKET", "evalia-exports")

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")

	config.Data.Dir = viper.GetString("DATA_DIR")
	config.Data.BootstrapURL = viper.GetString("BOOTSTRAP_URL")
	config.Data.BootstrapTimeout = viper.GetDuration("BOOTSTRAP_TIMEOUT")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")
	config.Auth.TokenTTL = viper.GetDuration("TOKEN_TTL")

	config.Export.MinioEndpoint = viper.GetString("MINIO_ENDPOINT")
	config.Export.MinioAccessKey = viper.GetString("MINIO_ACCESS_KEY")
	config.Export.MinioSecretKey = viper.GetString("MINIO_SECRET_KEY")
	config.Export.MinioBucket = viper.GetString("MINIO_BUCKET")
	config.Export.MinioUseSSL = viper.GetBool("MINIO_USE_SSL")

	config.Log.File = viper.GetString("LOG_FILE")

	log.Info().Str("port", config.Server.Port).Str("data_dir", config.Data.Dir).
		Str("bootstrap_url", config.Data.BootstrapURL).Msg("Config loaded")
	return &config, nil
}
