// Package openrouter implements the provider adapter for the OpenRouter
// aggregation API.
//
// OpenRouter speaks the OpenAI chat-completions format, so this adapter
// reuses the openai wire types and adds the attribution headers the service
// expects. Its option allow-list differs from OpenAI's.
package openrouter
