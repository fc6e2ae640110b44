package generator

import (
	"fmt"
	"strings"

	"github.com/escuchalab/escucha/internal/lesson"
)

const planSystemPrompt = `You are a Spanish teacher writing short listening-comprehension lessons for adult learners. Each lesson is a natural everyday dialogue between two named speakers, followed by comprehension and vocabulary exercises about what was said.`

// levelGuidance tunes the dialogue's difficulty per proficiency band.
var levelGuidance = map[lesson.Level]string{
	lesson.LevelIntro:        "Use very short sentences, present tense only, and high-frequency vocabulary. Include at least one number said aloud.",
	lesson.LevelBeginner:     "Use short sentences and common vocabulary. Present and simple past tenses only.",
	lesson.LevelIntermediate: "Use natural conversational pace with subjunctive where it would occur naturally.",
	lesson.LevelAdvanced:     "Use idiomatic, fast, natural speech including colloquialisms and regional expressions.",
}

var modeGuidance = map[lesson.Mode]string{
	lesson.ModeStandard:        "Balance comprehension and vocabulary exercises.",
	lesson.ModeVocabulary:      "Weight the lesson toward vocabulary: pick a dialogue dense with topic-specific words and list at least eight vocabulary entries.",
	lesson.ModeAccentChallenge: "Write the dialogue with strong regional flavor (Rioplatense or Andalusian). Keep exercises few; the listening itself is the challenge.",
}

func buildPlanUserMessage(in Input) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Topic: %s\n", in.Topic))
	b.WriteString(fmt.Sprintf("Level: %s\n", in.Level))
	b.WriteString(fmt.Sprintf("Mode: %s\n", in.Mode))

	b.WriteString("\nGuidance:\n")
	b.WriteString("- " + levelGuidance[in.Level] + "\n")
	b.WriteString("- " + modeGuidance[in.Mode] + "\n")

	b.WriteString(`
Instructions:
1. Write a dialogue of 6-10 lines between exactly two named speakers on the topic. Every line needs a speaker name and may carry an emotion tag (neutral, happy, annoyed, surprised).
2. Pick an ambience tag for background sound: one of cafe, street, market, office, home, station.
3. Write comprehension exercises about what happens in the dialogue and vocabulary exercises about the words used. Refer to exercise options by their id in correctAnswer fields.
4. List the vocabulary a learner at this level would not know, with English translations.
5. Spanish only in the dialogue. Natural, spoken register; contractions and fillers welcome.`)

	return b.String()
}
