// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth guards privileged endpoints and tags deterministic results.

# Admin Key

Resetting the simulation cache requires the configured admin key in the
X-Admin-Key header:

	if err := auth.ValidateRequest(r, cfg.AdminKey); err != nil {
		// 401 for ErrInvalidAdminKey, 403 for ErrAdminDisabled
	}

An empty configured key disables admin operations entirely.

# Fingerprints

Fingerprint hashes a canonical cache key with SHA-256 and base62 encodes
the first 8 bytes. Equal inputs always yield equal fingerprints, which makes
them usable as ETags.
*/
package auth
