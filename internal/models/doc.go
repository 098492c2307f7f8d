// Package models lists the OpenAI chat models available with an API key,
// so users can pick a translation model that their key can actually use.
package models
