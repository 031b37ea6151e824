package config

import "errors"

var (
	ErrInvalidVariant  = errors.New("invalid build variant")
	ErrInvalidPlatform = errors.New("invalid platform")
	ErrConfigFile      = errors.New("configuration file error")
	ErrInvalidConfig   = errors.New("invalid configuration")
)
