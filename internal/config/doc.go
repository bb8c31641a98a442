// Copyright 2016 Aleksandr Demakin. All rights reserved.

// Package config loads, normalizes and validates duplexchat configuration.
//
// Settings come from an optional TOML file; a missing file yields the
// defaults, which match the well-known queue keys both peers expect.
// Command line flags are applied on top of the loaded values by the caller.
package config
