package model

type PromptPreset string

const (
	PromptPresetBulletPoints          PromptPreset = "bullet_points"
	PromptPresetSummary               PromptPreset = "summary"
	PromptPresetQuizCreator           PromptPreset = "quiz_creator"
	PromptPresetStudyGuide            PromptPreset = "study_guide"
	PromptPresetDetailedNotes         PromptPreset = "detailed_notes"
	PromptPresetCustomInstructionOnly PromptPreset = "custom_instruction_only"

	DefaultPromptPreset = PromptPresetBulletPoints
)

// PromptBehavior controls how a user instruction combines with the preset.
type PromptBehavior string

const (
	PromptBehaviorCustomOnly     PromptBehavior = "custom_only"
	PromptBehaviorAppendGuidance PromptBehavior = "append_guidance"
	PromptBehaviorNoCustomPrompt PromptBehavior = "no_custom_prompt"

	DefaultPromptBehavior = PromptBehaviorCustomOnly
)

type PromptConfig struct {
	Preset            PromptPreset   `json:"preset" yaml:"preset"`
	Behavior          PromptBehavior `json:"behavior" yaml:"behavior"`
	CustomInstruction string         `json:"custom_instruction,omitempty" yaml:"custom_instruction,omitempty"`
}

// PromptOverride is one layer of the prompt settings chain. Nil fields defer
// to the next layer.
type PromptOverride struct {
	Preset            *string `json:"preset,omitempty" yaml:"preset,omitempty"`
	Behavior          *string `json:"behavior,omitempty" yaml:"behavior,omitempty"`
	CustomInstruction *string `json:"custom_instruction,omitempty" yaml:"custom_instruction,omitempty"`
}

func (o PromptOverride) IsZero() bool {
	return o.Preset == nil && o.Behavior == nil && o.CustomInstruction == nil
}
