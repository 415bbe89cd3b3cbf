package config

import "github.com/spf13/viper"

// Config holds all runtime configuration. Values come from POSTAPI_-prefixed
// environment variables, with workable local-development defaults.
type Config struct {
	Port          int
	MongoURI      string
	MongoDatabase string
	LogLevel      string
}

func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix("POSTAPI")
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "postapi")
	v.SetDefault("LOG_LEVEL", "info")

	return &Config{
		Port:          v.GetInt("PORT"),
		MongoURI:      v.GetString("MONGO_URI"),
		MongoDatabase: v.GetString("MONGO_DATABASE"),
		LogLevel:      v.GetString("LOG_LEVEL"),
	}
}
