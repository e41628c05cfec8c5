// Package registry builds and owns one provider adapter per configured
// backend.
//
// A provider is built only when its credential is present and not a
// placeholder; a provider that fails to build is logged once and excluded.
// Refresh constructs a brand-new adapter map from a new configuration and
// swaps it in atomically, so concurrent readers always observe either the
// fully-old or the fully-new map, never a partially built one.
package registry
