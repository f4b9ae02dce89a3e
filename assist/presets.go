package assist

import "strings"

// Preset is a predefined quick action.
type Preset struct {
	ID string
	// Label is the long form used by the context menu.
	Label string
	// Short and Icon are used by the floating quick-action menu.
	Short       string
	Icon        string
	Instruction string
}

var presets = []Preset{
	{
		ID:          "professional",
		Label:       "Make it more professional",
		Short:       "Professional",
		Icon:        "✨",
		Instruction: "Rewrite this text to be more professional and formal, maintaining the same meaning but using more sophisticated language and business-appropriate tone.",
	},
	{
		ID:          "concise",
		Label:       "Make it more concise",
		Short:       "Concise",
		Icon:        "✂️",
		Instruction: "Rewrite this text to be more concise and direct while preserving all key information. Remove any redundancy or unnecessary words.",
	},
	{
		ID:          "grammar",
		Label:       "Fix grammar & spelling",
		Short:       "Grammar",
		Icon:        "📝",
		Instruction: "Correct any grammar, spelling, or punctuation errors in this text while maintaining its original meaning and tone.",
	},
	{
		ID:          "clarity",
		Label:       "Improve clarity",
		Short:       "Clear",
		Icon:        "💡",
		Instruction: "Rewrite this text to be clearer and easier to understand. Use simpler sentence structures if needed, but maintain all important information.",
	},
	{
		ID:          "engaging",
		Label:       "Make it more engaging",
		Short:       "Engaging",
		Icon:        "🎯",
		Instruction: "Rewrite this text to be more engaging and interesting, using more dynamic language while keeping the same core message.",
	},
}

// Presets returns the built-in quick actions in menu order.
func Presets() []Preset {
	return append([]Preset(nil), presets...)
}

// LookupPreset finds a preset by ID, label or short label, ignoring case.
func LookupPreset(name string) (Preset, bool) {
	name = strings.TrimSpace(name)
	for _, p := range presets {
		if strings.EqualFold(name, p.ID) || strings.EqualFold(name, p.Label) || strings.EqualFold(name, p.Short) {
			return p, true
		}
	}
	return Preset{}, false
}
