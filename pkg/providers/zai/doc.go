// Package zai implements the provider adapter for the Z.AI coding API
// serving GLM models.
//
// The API speaks the OpenAI chat-completions format on a dedicated coding
// endpoint. GLM reasoning models sometimes return an empty content field
// with the useful output in reasoning_content; the adapter falls back to it.
package zai
