// Package config loads typed configuration from environment variables.
//
// It combines github.com/joho/godotenv for .env files with
// github.com/caarlos0/env/v11 for struct tag parsing. Every package that needs
// settings declares its own Config struct with env tags, and the entry point
// loads each one:
//
//	var (
//		dbCfg     pg.Config
//		tenantCfg tenant.Config
//	)
//	config.MustLoad(&dbCfg)
//	config.MustLoad(&tenantCfg)
//
// Each configuration type is parsed once per process and cached by type.
// Use Reload to parse one type again, or Reset to drop every cached value;
// both are mostly useful in tests.
//
// LoadEnv reads explicit .env files into the process environment. Files later
// in the list override earlier ones.
//
// Errors are sentinels that can be matched with errors.Is: ErrParsingConfig,
// ErrInvalidConfigType, ErrLoadingEnvFile and ErrNilPointer.
package config
