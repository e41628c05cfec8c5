package providers

import "log/slog"

// OptionAllowList declares which extra-option names a provider accepts.
// Keys outside the list never reach that backend: a parameter valid for one
// provider must not leak into a request to another that would reject it.
type OptionAllowList map[string]struct{}

// NewOptionAllowList builds an allow-list from option names.
func NewOptionAllowList(names ...string) OptionAllowList {
	list := make(OptionAllowList, len(names))
	for _, name := range names {
		list[name] = struct{}{}
	}
	return list
}

// Allows reports whether the option name is in the allow-list.
func (l OptionAllowList) Allows(name string) bool {
	_, ok := l[name]
	return ok
}

// FilterOptions returns the subset of opts whose keys the provider allows.
// Dropped keys are logged at debug level and never forwarded.
func FilterOptions(provider string, allowed OptionAllowList, opts map[string]any) map[string]any {
	if len(opts) == 0 {
		return nil
	}

	filtered := make(map[string]any, len(opts))
	for key, value := range opts {
		if allowed.Allows(key) {
			filtered[key] = value
			continue
		}
		slog.Debug("dropping unsupported option",
			"provider", provider,
			"option", key,
		)
	}

	if len(filtered) == 0 {
		return nil
	}
	return filtered
}

// OptionFloat extracts a float option, accepting both float64 and int values
// since options arrive through JSON or YAML decoding.
func OptionFloat(opts map[string]any, key string) (float64, bool) {
	v, ok := opts[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// OptionInt extracts an integer option.
func OptionInt(opts map[string]any, key string) (int, bool) {
	v, ok := opts[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}

// OptionBool extracts a boolean option.
func OptionBool(opts map[string]any, key string) (bool, bool) {
	v, ok := opts[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// OptionStrings extracts a string-slice option, accepting a bare string,
// []string, or []any of strings.
func OptionStrings(opts map[string]any, key string) ([]string, bool) {
	v, ok := opts[key]
	if !ok {
		return nil, false
	}
	switch s := v.(type) {
	case string:
		return []string{s}, true
	case []string:
		return s, true
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	}
	return nil, false
}

// OptionString extracts a string option.
func OptionString(opts map[string]any, key string) (string, bool) {
	v, ok := opts[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
