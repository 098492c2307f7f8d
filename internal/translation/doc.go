// Package translation provides the backends that perform single
// text-to-text translation calls: an OpenAI chat-completion client (with
// circuit breaker), a Gemini client, a retry decorator and an optional
// sqlite-backed translation cache. The engine consumes all of them
// through the Port interface and never sees provider details.
package translation
