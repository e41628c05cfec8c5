// Package anthropic implements the provider adapter for the Anthropic
// Messages API.
//
// Anthropic carries system content in a dedicated top-level field rather than
// as a message role. Leading system-role messages are folded into that field;
// the order of the remaining messages is preserved exactly. The API also
// requires max_tokens, so the adapter supplies a default when the caller
// leaves it unset.
package anthropic
