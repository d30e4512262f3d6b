// Package gemini implements generation.Assistant on Google's Gemini API.
//
// Prompts are embedded text templates. Plan drafts are requested with a JSON
// response schema and validated as a whole before they are returned; any
// defect in the model output is reported as generation.ErrInvalidResponse.
// Requests are not retried.
package gemini
