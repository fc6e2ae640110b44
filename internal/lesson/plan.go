package lesson

import (
	"fmt"
	"time"

	"github.com/escuchalab/escucha/internal/exercise"
	"github.com/escuchalab/escucha/internal/transcript"
)

// Level is the learner proficiency band a lesson targets.
type Level string

const (
	LevelIntro        Level = "intro"
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Mode selects the lesson flavor.
type Mode string

const (
	// ModeStandard is a balanced listening lesson.
	ModeStandard Mode = "standard"

	// ModeVocabulary weights the lesson toward word recall.
	ModeVocabulary Mode = "vocabulary"

	// ModeAccentChallenge uses a harder regional accent; the exercise
	// load is kept light so the listening itself is the work.
	ModeAccentChallenge Mode = "accent_challenge"
)

// ParseLevel validates a level name from user input.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelIntro, LevelBeginner, LevelIntermediate, LevelAdvanced:
		return Level(s), nil
	}
	return "", fmt.Errorf("unknown level %q (intro, beginner, intermediate, advanced)", s)
}

// ParseMode validates a mode name from user input.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeStandard, ModeVocabulary, ModeAccentChallenge:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (standard, vocabulary, accent_challenge)", s)
}

// VocabEntry is one glossary item attached to a lesson.
type VocabEntry struct {
	Term        string `json:"term"`
	Translation string `json:"translation"`
}

// Plan is one generated listening lesson: the dialogue transcript plus
// its exercise sets. A Plan is produced once per generation request,
// passed through the synthesis/normalization core exactly once, and is
// immutable afterwards.
type Plan struct {
	ID    string `json:"id"`
	Topic string `json:"topic"`
	Title string `json:"title"`
	Level Level  `json:"level"`
	Mode  Mode   `json:"mode"`

	// Ambience is the background-sound scene tag for playback, e.g.
	// "cafe" or "street".
	Ambience string `json:"ambience,omitempty"`

	Dialogue   []transcript.Line `json:"dialogue"`
	Exercises  exercise.Set      `json:"exercises"`
	Vocabulary []VocabEntry      `json:"vocabulary,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
