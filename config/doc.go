// Package config loads configuration for storefront binaries.
//
// It uses Viper to read a YAML file and environment variables, plus an
// optional .env file through godotenv. Environment variables override file
// values; API_BASE_URL, for example, sets api.base_url.
//
// # Usage
//
//	var cfg app.Config
//	err := config.LoadConfig("storefront", &cfg, config.WithConfigFile(path))
package config
