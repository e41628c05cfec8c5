// Package config loads and validates the relay configuration.
//
// Configuration is read from a YAML file, defaults are applied, and
// RELAY_* environment variables override individual fields. The loaded
// Config value is immutable: hot reload builds a brand-new Config and hands
// it to the registry, which swaps its adapter map atomically. There is no
// global configuration singleton.
//
// Provider credentials equal to a documented placeholder (the
// "your_..._here" convention from sample configs, or "changeme") are
// treated as absent, which excludes that provider from the candidate list.
package config
