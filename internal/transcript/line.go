package transcript

// Line is a single utterance in a generated dialogue. Order within the
// dialogue is chronological and is the ground truth for sequencing
// exercises.
type Line struct {
	// Speaker is the display name of the person talking, e.g. "Ana".
	Speaker string `json:"speaker"`

	// Text is the Spanish utterance as spoken.
	Text string `json:"text"`

	// Emotion is an optional delivery hint for TTS, e.g. "cheerful".
	Emotion string `json:"emotion,omitempty"`
}

// JoinedText concatenates all line texts with single spaces. Used for
// whole-transcript presence checks.
func JoinedText(lines []Line) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += " "
		}
		out += l.Text
	}
	return out
}
