// Package openai implements the provider adapter for the OpenAI Chat
// Completions API.
//
// The wire types are exported because OpenRouter and Z.AI speak the same
// chat-completions format; their adapters reuse the request shape and differ
// only in endpoints, headers, and option allow-lists.
//
// System prompts ride as a leading system-role message, which is the channel
// this API family supports.
package openai
