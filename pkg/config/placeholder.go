package config

import "strings"

// IsPlaceholder reports whether a credential value is a documented
// placeholder rather than a real secret. Sample configuration ships with
// values like "your_openai_api_key_here"; treating them as absent keeps a
// half-filled config from producing a provider that can only fail with
// authentication errors.
func IsPlaceholder(credential string) bool {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return true
	}
	lower := strings.ToLower(credential)
	if strings.HasPrefix(lower, "your_") && strings.HasSuffix(lower, "_here") {
		return true
	}
	return lower == "changeme"
}

// ConfiguredProviders returns the names of providers whose credential is
// present and not a placeholder, in no particular order.
func (c *Config) ConfiguredProviders() []string {
	names := make([]string, 0, len(c.Providers))
	for name, provider := range c.Providers {
		if !IsPlaceholder(provider.APIKey) {
			names = append(names, name)
		}
	}
	return names
}
