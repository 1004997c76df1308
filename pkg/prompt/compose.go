package prompt

import (
	"strings"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
)

// Compose builds the instruction text sent to the model. The same config
// always yields the same text.
func Compose(cfg model.PromptConfig) string {
	cfg = NormalizeConfig(cfg)
	instruction := usableInstruction(cfg)

	switch {
	case cfg.Preset == model.PromptPresetCustomInstructionOnly && instruction != "":
		return customInstructionPrompt(instruction)
	case cfg.Preset == model.PromptPresetCustomInstructionOnly:
		return join(
			persona,
			"No custom instruction was provided.",
			"Default to concise, high-signal markdown bullet points, most important points first.",
			rulesSection(),
		)
	case cfg.Behavior == model.PromptBehaviorCustomOnly && instruction != "":
		return customInstructionPrompt(instruction)
	case cfg.Behavior == model.PromptBehaviorAppendGuidance && instruction != "":
		return join(
			persona,
			"Default output mode:\n"+presetBlocks[cfg.Preset],
			"Additional user guidance (highest priority): "+instruction,
			rulesSection(),
		)
	default:
		return join(
			persona,
			"Default output mode:\n"+presetBlocks[cfg.Preset],
			rulesSection(),
		)
	}
}

// usableInstruction returns the trimmed instruction, or "" when the behavior
// ignores custom prompts.
func usableInstruction(cfg model.PromptConfig) string {
	if cfg.Behavior == model.PromptBehaviorNoCustomPrompt {
		return ""
	}
	return strings.TrimSpace(cfg.CustomInstruction)
}

func customInstructionPrompt(instruction string) string {
	return join(
		persona,
		"Primary objective from user: "+instruction,
		rulesSection(),
		"Respect the user's requested format and length while following the rules above.",
	)
}

func rulesSection() string {
	var b strings.Builder
	b.WriteString("Rules:")
	for _, rule := range qualityRules {
		b.WriteString("\n- ")
		b.WriteString(rule)
	}
	return b.String()
}

func join(sections ...string) string {
	return strings.Join(sections, "\n\n")
}
