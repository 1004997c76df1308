package prompt

import (
	"strings"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
)

const persona = "You are an expert teaching assistant."

// qualityRules are appended to every composed prompt, in this order.
var qualityRules = []string{
	"Use only transcript content; do not invent facts.",
	"Auto-generated captions may contain mistakes. Correct obvious speech-to-text errors only when confidence is high.",
	`Remove filler/noise ("um", repeated words, false starts) from the output.`,
	"Preserve important terminology, theories, names, definitions, and arguments.",
	"If part of the transcript is unclear, flag it as unclear instead of guessing.",
}

const bulletPointsBlock = `Summarize the lecture transcript as concise, high-signal bullet points.
- Output only markdown bullet points.
- No title, no headings, no numbering, no preamble, no closing note.
- Return 12-20 bullets, most important points first.`

const summaryBlock = `Write a short summary of the lecture.
- 2-3 short paragraphs of plain markdown prose.
- Open with the central topic, then the key ideas in the order they were taught.
- Stay under 250 words.`

const quizCreatorBlock = `Create a practice quiz from the lecture.
Use exactly these sections:

## Multiple Choice
- 6-8 questions, each with options A-D on separate lines.

## Short Answer
- 3-5 questions that require a one to three sentence answer.

## Answer Key
- The correct option or a model answer for every question, in order.`

const studyGuideBlock = `Write a study guide for the lecture.
Use exactly these sections:

## Key Concepts
- Each concept in bold followed by a one-sentence explanation.

## Definitions
- Term: definition, using the lecturer's wording where possible.

## Examples
- Worked examples or cases mentioned in the lecture.

## Review Questions
- 5 questions a student should be able to answer after studying.`

const detailedNotesBlock = `Write detailed lecture notes.
- Use ## headings for each major topic in the order it was covered.
- Under each heading, use nested bullet points for claims, evidence, and examples.
- Keep formulas, dates, and numeric values exactly as stated.
- End with a ## Takeaways section of 3-5 bullets.`

var presetBlocks = map[model.PromptPreset]string{
	model.PromptPresetBulletPoints:  bulletPointsBlock,
	model.PromptPresetSummary:       summaryBlock,
	model.PromptPresetQuizCreator:   quizCreatorBlock,
	model.PromptPresetStudyGuide:    studyGuideBlock,
	model.PromptPresetDetailedNotes: detailedNotesBlock,
}

var presetAliases = map[string]model.PromptPreset{
	"bullets":            model.PromptPresetBulletPoints,
	"bullet":             model.PromptPresetBulletPoints,
	"bullet_list":        model.PromptPresetBulletPoints,
	"default":            model.PromptPresetBulletPoints,
	"short_summary":      model.PromptPresetSummary,
	"concise":            model.PromptPresetSummary,
	"tldr":               model.PromptPresetSummary,
	"quiz":               model.PromptPresetQuizCreator,
	"practice_quiz":      model.PromptPresetQuizCreator,
	"study":              model.PromptPresetStudyGuide,
	"guide":              model.PromptPresetStudyGuide,
	"notes":              model.PromptPresetDetailedNotes,
	"detailed":           model.PromptPresetDetailedNotes,
	"custom":             model.PromptPresetCustomInstructionOnly,
	"custom_only":        model.PromptPresetCustomInstructionOnly,
	"custom_instruction": model.PromptPresetCustomInstructionOnly,
}

// Presets lists the canonical presets in display order.
func Presets() []model.PromptPreset {
	return []model.PromptPreset{
		model.PromptPresetBulletPoints,
		model.PromptPresetSummary,
		model.PromptPresetQuizCreator,
		model.PromptPresetStudyGuide,
		model.PromptPresetDetailedNotes,
		model.PromptPresetCustomInstructionOnly,
	}
}

func Behaviors() []model.PromptBehavior {
	return []model.PromptBehavior{
		model.PromptBehaviorCustomOnly,
		model.PromptBehaviorAppendGuidance,
		model.PromptBehaviorNoCustomPrompt,
	}
}

func canonicalKey(value string) string {
	key := strings.ToLower(strings.TrimSpace(value))
	key = strings.ReplaceAll(key, "-", "_")
	return strings.ReplaceAll(key, " ", "_")
}

// NormalizePreset maps a stored or legacy preset name onto a canonical preset.
// Unknown values fall back to the default preset.
func NormalizePreset(value string) model.PromptPreset {
	key := canonicalKey(value)
	for _, preset := range Presets() {
		if string(preset) == key {
			return preset
		}
	}
	if preset, ok := presetAliases[key]; ok {
		return preset
	}
	return model.DefaultPromptPreset
}

// NormalizeBehavior returns the canonical behavior, or the default for unknown values.
func NormalizeBehavior(value string) model.PromptBehavior {
	key := canonicalKey(value)
	for _, behavior := range Behaviors() {
		if string(behavior) == key {
			return behavior
		}
	}
	return model.DefaultPromptBehavior
}

func NormalizeConfig(cfg model.PromptConfig) model.PromptConfig {
	return model.PromptConfig{
		Preset:            NormalizePreset(string(cfg.Preset)),
		Behavior:          NormalizeBehavior(string(cfg.Behavior)),
		CustomInstruction: cfg.CustomInstruction,
	}
}
