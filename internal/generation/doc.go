// Package generation defines the boundary to the AI planning assistant.
// The core only depends on the Assistant interface; internal/platform/gemini
// implements it on Google's Gemini API.
package generation
