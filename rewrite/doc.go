// Package rewrite turns (instruction, context text) into replacement text by
// calling a generative-language service.
//
// Rewriter is the seam the rest of quill depends on. Gemini is the concrete
// HTTP client; WithRetry wraps any Rewriter in the bounded retry policy.
// Every failure is classified into one Kind so hosts can show a distinct
// message per failure without inspecting transport details.
package rewrite
