package synth

import (
	"github.com/escuchalab/escucha/internal/exercise"
	"github.com/escuchalab/escucha/internal/lesson"
	"github.com/escuchalab/escucha/internal/transcript"
)

// Context carries the generation parameters the count policy keys on.
type Context struct {
	Level lesson.Level
	Mode  lesson.Mode
}

type minimums struct {
	comprehension int
	vocabulary    int
}

func policyMinimums(ctx Context) minimums {
	switch ctx.Mode {
	case lesson.ModeAccentChallenge:
		return minimums{comprehension: 2, vocabulary: 1}
	case lesson.ModeVocabulary:
		return minimums{comprehension: 2, vocabulary: 4}
	}
	switch ctx.Level {
	case lesson.LevelIntermediate, lesson.LevelAdvanced:
		return minimums{comprehension: 5, vocabulary: 3}
	default:
		return minimums{comprehension: 4, vocabulary: 3}
	}
}

// policyCaps is the hard per-category ceiling, never below the minimum.
// Vocabulary mode trades one comprehension slot for a vocabulary slot.
func policyCaps(ctx Context, mins minimums) (comprehension, vocabulary int) {
	comprehension, vocabulary = 7, 6
	if ctx.Mode == lesson.ModeVocabulary {
		comprehension, vocabulary = 6, 7
	}
	return max(comprehension, mins.comprehension), max(vocabulary, mins.vocabulary)
}

// builderSpec pairs a builder with the kind it yields and how many of
// that kind the category should accumulate before the builder is
// skipped.
type builderSpec struct {
	kind  exercise.Kind
	need  int
	build func(*Synthesizer, []transcript.Line) (exercise.Exercise, bool)
}

// Builders run top to bottom, so earlier entries end up later in the
// list after prepending. Classification appears three times with rising
// need: who-said-it, then speech acts, then register.
var comprehensionBuilders = []builderSpec{
	{exercise.KindOrdering, 1, (*Synthesizer).BuildOrdering},
	{exercise.KindClassification, 1, (*Synthesizer).BuildWhoSaidIt},
	{exercise.KindTrueFalse, 1, (*Synthesizer).BuildMentionTrueFalse},
	{exercise.KindClassification, 2, (*Synthesizer).BuildSpeechActs},
	{exercise.KindClassification, 3, (*Synthesizer).BuildRegister},
	{exercise.KindCloze, 1, (*Synthesizer).BuildCloze},
}

var vocabularyBuilders = []builderSpec{
	{exercise.KindMultipleChoice, 1, (*Synthesizer).BuildSelectAllHeard},
	{exercise.KindCloze, 1, (*Synthesizer).BuildCloze},
	{exercise.KindCloze, 2, (*Synthesizer).BuildDoubleCloze},
}

// Augment brings plan.Exercises up to the count policy for ctx: backfill
// each category from its builder chain until the minimum is met, then
// cap each category by truncating the end. Backfilled exercises are
// prepended, so during capping they displace trailing entries rather
// than being dropped themselves. Never fails; thin transcripts simply
// yield fewer exercises.
func (s *Synthesizer) Augment(plan *lesson.Plan, ctx Context) {
	mins := policyMinimums(ctx)

	if ctx.Mode != lesson.ModeAccentChallenge {
		plan.Exercises.Comprehension = s.backfill(
			plan.Exercises.Comprehension, plan.Dialogue, comprehensionBuilders, mins.comprehension)
		plan.Exercises.Vocabulary = s.backfill(
			plan.Exercises.Vocabulary, plan.Dialogue, vocabularyBuilders, mins.vocabulary)

		if ctx.Level == lesson.LevelIntro {
			if ex, ok := s.BuildNumberRecall(plan.Dialogue); ok {
				plan.Exercises.Comprehension = prepend(plan.Exercises.Comprehension, ex)
			}
		}
	}

	capComp, capVocab := policyCaps(ctx, mins)
	plan.Exercises.Comprehension = truncate(plan.Exercises.Comprehension, capComp)
	plan.Exercises.Vocabulary = truncate(plan.Exercises.Vocabulary, capVocab)

	// Last resort when capping still leaves a category short: one more
	// builder attempt, accepted even if it overshoots the cap.
	if len(plan.Exercises.Comprehension) < mins.comprehension {
		if ex, ok := s.BuildCloze(plan.Dialogue); ok {
			plan.Exercises.Comprehension = prepend(plan.Exercises.Comprehension, ex)
		}
	}
	if len(plan.Exercises.Vocabulary) < mins.vocabulary {
		if ex, ok := s.BuildSelectAllHeard(plan.Dialogue); ok {
			plan.Exercises.Vocabulary = prepend(plan.Exercises.Vocabulary, ex)
		}
	}
}

// backfill walks the builder chain, invoking each builder whose kind is
// underrepresented, until the category reaches its minimum or the chain
// is exhausted.
func (s *Synthesizer) backfill(list []exercise.Exercise, dialogue []transcript.Line, builders []builderSpec, minCount int) []exercise.Exercise {
	for _, b := range builders {
		if len(list) >= minCount {
			break
		}
		if countKind(list, b.kind) >= b.need {
			continue
		}
		if ex, ok := b.build(s, dialogue); ok {
			list = prepend(list, ex)
		}
	}
	return list
}

func countKind(list []exercise.Exercise, kind exercise.Kind) int {
	n := 0
	for _, ex := range list {
		if ex.Kind() == kind {
			n++
		}
	}
	return n
}

func prepend(list []exercise.Exercise, ex exercise.Exercise) []exercise.Exercise {
	return append([]exercise.Exercise{ex}, list...)
}

func truncate(list []exercise.Exercise, limit int) []exercise.Exercise {
	if len(list) > limit {
		return list[:limit]
	}
	return list
}
