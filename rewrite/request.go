package rewrite

import "fmt"

const instructionsDirective = "Please provide only the modified text without any additional explanations or comments."

// Generation and safety parameters are fixed for every call.
var (
	generationConfig = gmGenerationConfig{
		Temperature:     0.7,
		TopK:            40,
		TopP:            0.95,
		MaxOutputTokens: 1024,
	}

	safetySettings = []gmSafetySetting{
		{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
		{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
		{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
		{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	}
)

type gmPart struct {
	Text string `json:"text"`
}

type gmContent struct {
	Parts []gmPart `json:"parts"`
}

type gmGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type gmSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type gmReq struct {
	Contents         []gmContent        `json:"contents"`
	GenerationConfig gmGenerationConfig `json:"generationConfig"`
	SafetySettings   []gmSafetySetting  `json:"safetySettings"`
}

// Prompt renders the single text part sent to the service.
func Prompt(instruction, contextText string) string {
	return fmt.Sprintf("Context: \"%s\"\n\nTask: %s\n\nInstructions: %s", contextText, instruction, instructionsDirective)
}

func newRequest(instruction, contextText string) gmReq {
	return gmReq{
		Contents:         []gmContent{{Parts: []gmPart{{Text: Prompt(instruction, contextText)}}}},
		GenerationConfig: generationConfig,
		SafetySettings:   safetySettings,
	}
}
