package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound = goerr.New("configuration file not found")
	ErrInvalidConfig  = goerr.New("invalid configuration")
	ErrDuplicateAdmin = goerr.New("duplicate admin entry")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
)
