package prompt

import (
	"strings"
	"testing"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
	"github.com/stretchr/testify/suite"
)

type ComposeSuite struct {
	suite.Suite
}

func TestComposeSuite(t *testing.T) {
	suite.Run(t, new(ComposeSuite))
}

func (s *ComposeSuite) assertHasAllRules(text string) {
	for _, rule := range qualityRules {
		s.Contains(text, "- "+rule)
	}
}

func (s *ComposeSuite) assertNoPresetBlock(text string) {
	for _, block := range presetBlocks {
		s.NotContains(text, block)
	}
	s.NotContains(text, "## Multiple Choice")
	s.NotContains(text, "Default output mode:")
}

func (s *ComposeSuite) TestCustomInstructionOnlyUsesInstruction() {
	text := Compose(model.PromptConfig{
		Preset:            model.PromptPresetCustomInstructionOnly,
		Behavior:          model.PromptBehaviorCustomOnly,
		CustomInstruction: "Focus on dates",
	})

	s.True(strings.HasPrefix(text, persona))
	s.Contains(text, "Primary objective from user: Focus on dates")
	s.Contains(text, "Respect the user's requested format and length")
	s.assertHasAllRules(text)
	s.assertNoPresetBlock(text)
}

func (s *ComposeSuite) TestCustomInstructionOnlyWithoutInstructionDefaultsToBullets() {
	text := Compose(model.PromptConfig{
		Preset:            model.PromptPresetCustomInstructionOnly,
		Behavior:          model.PromptBehaviorCustomOnly,
		CustomInstruction: "   ",
	})

	s.Contains(text, "No custom instruction was provided.")
	s.Contains(text, "bullet points")
	s.NotContains(text, "Primary objective from user")
	s.assertHasAllRules(text)
}

func (s *ComposeSuite) TestCustomInstructionOnlyIgnoresInstructionWhenBehaviorDisablesIt() {
	text := Compose(model.PromptConfig{
		Preset:            model.PromptPresetCustomInstructionOnly,
		Behavior:          model.PromptBehaviorNoCustomPrompt,
		CustomInstruction: "Focus on dates",
	})

	s.Contains(text, "No custom instruction was provided.")
	s.NotContains(text, "Focus on dates")
}

func (s *ComposeSuite) TestCustomOnlyBehaviorReplacesPresetBlock() {
	text := Compose(model.PromptConfig{
		Preset:            model.PromptPresetQuizCreator,
		Behavior:          model.PromptBehaviorCustomOnly,
		CustomInstruction: "List every formula",
	})

	s.Contains(text, "Primary objective from user: List every formula")
	s.assertNoPresetBlock(text)
	s.assertHasAllRules(text)
}

func (s *ComposeSuite) TestAppendGuidanceKeepsPresetAndAddsInstruction() {
	text := Compose(model.PromptConfig{
		Preset:            model.PromptPresetStudyGuide,
		Behavior:          model.PromptBehaviorAppendGuidance,
		CustomInstruction: "  Keep it short  ",
	})

	s.Contains(text, "Default output mode:\n"+studyGuideBlock)
	s.Contains(text, "Additional user guidance (highest priority): Keep it short")
	s.Less(strings.Index(text, "Default output mode:"), strings.Index(text, "Additional user guidance"))
	s.assertHasAllRules(text)
}

func (s *ComposeSuite) TestNoCustomPromptUsesPresetOnly() {
	text := Compose(model.PromptConfig{
		Preset:            model.PromptPresetQuizCreator,
		Behavior:          model.PromptBehaviorNoCustomPrompt,
		CustomInstruction: "ignored",
	})

	s.Contains(text, "## Multiple Choice")
	s.Contains(text, "## Short Answer")
	s.NotContains(text, "ignored")
	s.assertHasAllRules(text)
}

func (s *ComposeSuite) TestEmptyInstructionFallsBackToPreset() {
	text := Compose(model.PromptConfig{
		Preset:   model.PromptPresetDetailedNotes,
		Behavior: model.PromptBehaviorAppendGuidance,
	})

	s.Contains(text, "Default output mode:\n"+detailedNotesBlock)
	s.NotContains(text, "Additional user guidance")
}

func (s *ComposeSuite) TestUnknownPresetNormalizesToBulletPoints() {
	unknown := Compose(model.PromptConfig{Preset: "nonexistent", Behavior: model.PromptBehaviorNoCustomPrompt})
	bullets := Compose(model.PromptConfig{Preset: model.PromptPresetBulletPoints, Behavior: model.PromptBehaviorNoCustomPrompt})

	s.Equal(bullets, unknown)
	s.Contains(unknown, bulletPointsBlock)
}

func (s *ComposeSuite) TestUnknownBehaviorNormalizesToCustomOnly() {
	text := Compose(model.PromptConfig{
		Preset:            model.PromptPresetSummary,
		Behavior:          "shout",
		CustomInstruction: "Focus on dates",
	})
	s.Contains(text, "Primary objective from user: Focus on dates")
}

func (s *ComposeSuite) TestComposeIsDeterministic() {
	cfg := model.PromptConfig{Preset: model.PromptPresetSummary, Behavior: model.PromptBehaviorAppendGuidance, CustomInstruction: "x"}
	s.Equal(Compose(cfg), Compose(cfg))
}

func (s *ComposeSuite) TestRulesSectionHasFiveRules() {
	s.Equal(5, strings.Count(rulesSection(), "\n- "))
}

func (s *ComposeSuite) TestNormalizePresetAliases() {
	s.Equal(model.PromptPresetBulletPoints, NormalizePreset("Bullets"))
	s.Equal(model.PromptPresetQuizCreator, NormalizePreset("quiz"))
	s.Equal(model.PromptPresetStudyGuide, NormalizePreset("study-guide"))
	s.Equal(model.PromptPresetDetailedNotes, NormalizePreset("Detailed Notes"))
	s.Equal(model.PromptPresetCustomInstructionOnly, NormalizePreset("custom"))
	s.Equal(model.PromptPresetSummary, NormalizePreset("tldr"))
	s.Equal(model.PromptPresetBulletPoints, NormalizePreset(""))
}

func (s *ComposeSuite) TestNormalizeBehavior() {
	s.Equal(model.PromptBehaviorAppendGuidance, NormalizeBehavior("append-guidance"))
	s.Equal(model.PromptBehaviorNoCustomPrompt, NormalizeBehavior("NO_CUSTOM_PROMPT"))
	s.Equal(model.PromptBehaviorCustomOnly, NormalizeBehavior("nonexistent"))
}

func (s *ComposeSuite) TestEveryPresetHasBlockExceptCustom() {
	for _, preset := range Presets() {
		if preset == model.PromptPresetCustomInstructionOnly {
			continue
		}
		s.NotEmpty(presetBlocks[preset], "preset %s", preset)
	}
}
