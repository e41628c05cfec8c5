// Relay is a resilient front door for text-generation providers.
//
// It accepts one generic generation request and drives it through a
// prioritized chain of providers (Anthropic, OpenRouter, Z.AI, OpenAI),
// probing availability, retrying transient failures with backoff, and
// falling back until one succeeds or all are exhausted.
//
// Usage:
//
//	# Start the server with the default configuration file
//	relay run
//
//	# Start with a custom configuration file
//	relay run --config /etc/relay/config.yaml
//
//	# Check a configuration file without starting
//	relay validate
//
//	# Probe configured providers once and print the verdicts
//	relay probe
//
//	# Show version information
//	relay version
package main

func main() {
	Execute()
}
