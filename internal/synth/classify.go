package synth

import (
	"strconv"

	"github.com/samber/lo"

	"github.com/escuchalab/escucha/internal/exercise"
	"github.com/escuchalab/escucha/internal/transcript"
)

const (
	// minSpeakerLineLen is the shortest line worth attributing.
	minSpeakerLineLen = 10

	// minRegisterLineLen is the shortest line worth register-judging.
	minRegisterLineLen = 10
)

// speechActColumns is the fixed six-way act taxonomy presented to the
// learner. Column ids double as the detector's act values.
var speechActColumns = []exercise.Option{
	{ID: string(transcript.ActRequest), Text: "petición"},
	{ID: string(transcript.ActOffer), Text: "ofrecimiento"},
	{ID: string(transcript.ActConfirm), Text: "confirmación"},
	{ID: string(transcript.ActRejection), Text: "rechazo"},
	{ID: string(transcript.ActApology), Text: "disculpa"},
	{ID: string(transcript.ActThanks), Text: "agradecimiento"},
}

var registerColumns = []exercise.Option{
	{ID: string(transcript.RegisterFormal), Text: "formal"},
	{ID: string(transcript.RegisterInformal), Text: "informal"},
	{ID: string(transcript.RegisterNeutral), Text: "neutro"},
}

// BuildWhoSaidIt manufactures a match-the-line-to-its-speaker
// classification. The first two distinct speakers become columns; lines
// from any later speaker are excluded by the row selection. Declines
// without two speakers and four attributable lines.
func (s *Synthesizer) BuildWhoSaidIt(lines []transcript.Line) (exercise.Exercise, bool) {
	qualifying := lo.Filter(lines, func(l transcript.Line, _ int) bool {
		return l.Speaker != "" && lineLen(l.Text) >= minSpeakerLineLen
	})
	if len(qualifying) < 4 {
		return nil, false
	}

	speakers := lo.Uniq(lo.Map(qualifying, func(l transcript.Line, _ int) string {
		return l.Speaker
	}))
	if len(speakers) < 2 {
		return nil, false
	}
	speakers = speakers[:2]

	columns := []exercise.Option{
		{ID: "speaker1", Text: speakers[0]},
		{ID: "speaker2", Text: speakers[1]},
	}
	columnOf := map[string]string{
		speakers[0]: "speaker1",
		speakers[1]: "speaker2",
	}

	var rows []exercise.Option
	answer := map[string]string{}
	for _, l := range qualifying {
		col, ok := columnOf[l.Speaker]
		if !ok {
			continue
		}
		id := "line" + strconv.Itoa(len(rows)+1)
		rows = append(rows, exercise.Option{ID: id, Text: l.Text})
		answer[id] = col
		if len(rows) == 4 {
			break
		}
	}
	if len(rows) < 2 {
		return nil, false
	}

	return &exercise.Classification{
		Prompt:  "¿Quién dijo cada frase?",
		Rows:    rows,
		Columns: columns,
		Answer:  answer,
	}, true
}

// BuildSpeechActs manufactures a classify-the-intention exercise from
// the first four lines with a detectable speech act. Declines when the
// lexical detector finds fewer than four.
func (s *Synthesizer) BuildSpeechActs(lines []transcript.Line) (exercise.Exercise, bool) {
	type acted struct {
		line transcript.Line
		act  transcript.SpeechAct
	}
	var qualifying []acted
	for _, l := range lines {
		if l.Speaker == "" || l.Text == "" {
			continue
		}
		if act := transcript.DetectSpeechAct(l.Text); act != transcript.ActNone {
			qualifying = append(qualifying, acted{line: l, act: act})
		}
	}
	if len(qualifying) < 4 {
		return nil, false
	}

	rows := make([]exercise.Option, 4)
	answer := map[string]string{}
	for i, q := range qualifying[:4] {
		id := "line" + strconv.Itoa(i+1)
		rows[i] = exercise.Option{ID: id, Text: q.line.Text}
		answer[id] = string(q.act)
	}

	return &exercise.Classification{
		Prompt:  "¿Qué expresa cada frase?",
		Rows:    rows,
		Columns: speechActColumns,
		Answer:  answer,
	}, true
}

// BuildRegister manufactures a formal/informal/neutral classification
// over the first six substantial lines.
func (s *Synthesizer) BuildRegister(lines []transcript.Line) (exercise.Exercise, bool) {
	qualifying := lo.Filter(lines, func(l transcript.Line, _ int) bool {
		return lineLen(l.Text) >= minRegisterLineLen
	})
	if len(qualifying) < 6 {
		return nil, false
	}

	rows := make([]exercise.Option, 6)
	answer := map[string]string{}
	for i, l := range qualifying[:6] {
		id := "line" + strconv.Itoa(i+1)
		rows[i] = exercise.Option{ID: id, Text: l.Text}
		answer[id] = string(transcript.DetectRegister(l.Text))
	}

	return &exercise.Classification{
		Prompt:  "Clasifica el registro de cada frase.",
		Rows:    rows,
		Columns: registerColumns,
		Answer:  answer,
	}, true
}
