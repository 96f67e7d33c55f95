// Package config resolves CLI settings from .dresscode.yaml, an explicit
// config file and DRESSCODE_* environment variables using viper.
package config
