// Package config loads mflash configuration.
//
// Values are layered, later sources overriding earlier ones:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. .mflash.toml or mflash.toml in the firmware directory
//  3. MFLASH_ environment variables, __ separating nested keys
//
// Command-line flags are applied on top by the CLI.
package config
