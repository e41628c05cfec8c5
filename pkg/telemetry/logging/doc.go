// Package logging configures the process-wide structured logger and provides
// credential redaction helpers. API keys must never appear in logs; anything
// that logs configuration goes through RedactKey.
package logging
