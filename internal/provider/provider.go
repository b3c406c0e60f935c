package provider

import (
	"maps"
	"slices"
)

// ID selects the language-model backend downstream code should use.
type ID string

const (
	Groq   ID = "groq"
	OpenAI ID = "openai"
	Gemini ID = "gemini"
)

// Keys carries the credentials that influence provider selection.
type Keys struct {
	Groq   string
	OpenAI string
	Gemini string
}

var (
	groqModels = map[string]string{
		"groq_llama3":  "llama3-8b-8192",
		"groq_mixtral": "mixtral-8x7b-32768",
		"groq_gemma":   "gemma-7b-it",
	}
	openAIModels = map[string]string{
		"openai_gpt35": "gpt-3.5-turbo",
		"openai_gpt4":  "gpt-4-turbo-preview",
	}
)

// Preferred applies the fixed precedence groq > openai > gemini.
//
// Gemini is returned whenever neither groq nor openai has a key, without
// checking that a gemini key exists. Callers that need a usable backend must
// check Keys.Gemini themselves.
func Preferred(keys Keys) ID {
	switch {
	case keys.Groq != "":
		return Groq
	case keys.OpenAI != "":
		return OpenAI
	default:
		return Gemini
	}
}

// Available maps friendly aliases to concrete model identifiers for every
// provider that has a key. The map is rebuilt on each call.
func Available(keys Keys) map[string]string {
	models := make(map[string]string, len(groqModels)+len(openAIModels))
	if keys.Groq != "" {
		maps.Copy(models, groqModels)
	}
	if keys.OpenAI != "" {
		maps.Copy(models, openAIModels)
	}
	return models
}

// Aliases returns the sorted aliases of Available(keys).
func Aliases(keys Keys) []string {
	return slices.Sorted(maps.Keys(Available(keys)))
}
