// Package config loads tracker configuration from YAML.
//
// Values of the form ${VAR} are expanded from the environment before parsing.
// A .env file may be loaded into the environment first with LoadDotEnv.
// Game constants (RTP, bet limits, zone table) are resolved once at startup
// and passed explicitly to the components that need them.
package config
