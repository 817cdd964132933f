// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles server configuration from flags, the environment
and a YAML settings file.

# Configuration

	if err := cliparse.LoadDotEnv(".env"); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

LoadDotEnv never overrides variables that are already set, and a missing
file is ignored.

# CLI Flags

	-p          Server port (default 3318)
	-d          Database URL (optional)
	-t          Database type: sqlite or postgres (default sqlite)
	-admin-key  Key required by POST /cache/reset
	-settings   YAML settings file
	-log-level  debug, info, warn or error

# Environment Variables

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	ADMIN_KEY      → -admin-key
	SETTINGS_FILE  → -settings
	LOG_LEVEL      → -log-level

CLI flags take precedence over environment variables. Without a database
URL the server uses the embedded population data. Without an admin key the
cache reset endpoint is disabled.

# Settings File

Keys match models.Settings; omitted keys keep their defaults and every value
is clamped:

	district_target: 5
	district_min: 3
	district_max: 7
	top_up_enabled: true
	top_up_share: 0.15
	ballots_per_seat: 2000
	seed: 2024
*/
package cliparse
