// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Sources

Each setting is taken from the first source that provides it:

 1. CLI flag
 2. Environment variable (a .env file in the working directory is loaded
    first and never overrides variables already set)
 3. YAML config file named by -c or POKEDEX_CONFIG
 4. Built-in default

# Settings

	flag              env              yaml key         default
	-d                MONGODB_URI      database_url     (required)
	                  DATABASE_URL
	-t                DATABASE_TYPE    database_type    mongo
	-n                DATABASE_NAME    database_name    pokedex
	-p                PORT             port             3000
	-limit            DEFAULT_LIMIT    default_limit    6
	-pokeapi          POKEAPI_URL      pokeapi_url      https://pokeapi.co/api/v2
	-seed-limit       SEED_LIMIT       seed_limit       60
	-seed-key         SEED_KEY         seed_key         (none)
	-catalog-timeout  CATALOG_TIMEOUT  catalog_timeout  30s
	-static           STATIC_DIR       static_dir       (none)
	-log-level        LOG_LEVEL        log_level        info
	-c                POKEDEX_CONFIG

DATABASE_TYPE selects the backend: mongo, postgres or sqlite. For sqlite
the database URL is a file path.

Unknown keys in the YAML file are rejected.

# Example

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("failed to parse config", "error", err)
		os.Exit(1)
	}
*/
package cliparse
