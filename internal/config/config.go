package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	App struct {
		Name        string `mapstructure:"name"`
		FrontendURL string `mapstructure:"frontend_url"`
	} `mapstructure:"app"`
	Identity struct {
		// BaseURL is the identity provider's auth endpoint root,
		// e.g. https://<project>.supabase.co/auth/v1
		BaseURL        string `mapstructure:"base_url"`
		PublishableKey string `mapstructure:"publishable_key"`
		// JWTSecret verifies the HS256 access tokens the provider issues.
		JWTSecret string `mapstructure:"jwt_secret"`
	} `mapstructure:"identity"`
	Media struct {
		Bucket   string `mapstructure:"bucket"`
		Region   string `mapstructure:"region"`
		Endpoint string `mapstructure:"endpoint"`
		// PublicBaseURL is prepended to object keys to build avatar URLs.
		PublicBaseURL string `mapstructure:"public_base_url"`
		// AuthType selects "static_credentials" or "iam_role".
		AuthType        string `mapstructure:"auth_type"`
		AccessKeyID     string `mapstructure:"access_key_id"`
		SecretAccessKey string `mapstructure:"secret_access_key"`
	} `mapstructure:"media"`
	Places struct {
		APIKey  string `mapstructure:"api_key"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"places"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("identity.base_url", "IDENTITY_BASE_URL")
	viper.BindEnv("identity.publishable_key", "IDENTITY_PUBLISHABLE_KEY")
	viper.BindEnv("identity.jwt_secret", "IDENTITY_JWT_SECRET")
	viper.BindEnv("places.api_key", "PLACES_API_KEY")
	viper.BindEnv("media.access_key_id", "MEDIA_ACCESS_KEY_ID")
	viper.BindEnv("media.secret_access_key", "MEDIA_SECRET_ACCESS_KEY")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: config file not found, relying on environment variables")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	if Cfg.Server.Port == "" {
		Cfg.Server.Port = DefaultServerPort
	}
	if Cfg.App.Name == "" {
		Cfg.App.Name = AppName
	}
	if Cfg.Places.BaseURL == "" {
		Cfg.Places.BaseURL = DefaultPlacesBaseURL
	}
	if Cfg.Media.AuthType == "" {
		Cfg.Media.AuthType = "iam_role"
	}
	if Cfg.Database.URL == "" {
		log.Println("Warning: database URL is not set")
	}

	return nil
}
