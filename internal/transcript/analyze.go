package transcript

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Register is the formality level of an utterance.
type Register string

const (
	RegisterFormal   Register = "formal"
	RegisterInformal Register = "informal"
	RegisterNeutral  Register = "neutral"
)

// SpeechAct is the pragmatic intention of an utterance.
type SpeechAct string

const (
	ActRequest   SpeechAct = "request"
	ActOffer     SpeechAct = "offer"
	ActConfirm   SpeechAct = "confirm"
	ActApology   SpeechAct = "apology"
	ActThanks    SpeechAct = "thanks"
	ActRejection SpeechAct = "rejection"
	ActNone      SpeechAct = "none"
)

// minKeywordLen is the minimum folded-token length for a keyword candidate.
const minKeywordLen = 4

// numberPattern matches bounded-length numeric tokens with at most one
// decimal or thousands separator, e.g. "15", "3,50", "1.200".
var numberPattern = regexp.MustCompile(`\b\d{1,4}(?:[.,]\d{1,3})?\b`)

// KeywordCandidates extracts folded content-word tokens from the dialogue:
// length >= 4, not a stop word. Appearance order is preserved and
// duplicates are retained; callers dedupe as needed.
func KeywordCandidates(lines []Line) []string {
	var out []string
	for _, l := range lines {
		for _, tok := range foldTokens(l.Text) {
			if utf8.RuneCountInString(tok) < minKeywordLen {
				continue
			}
			if IsStopWord(tok) {
				continue
			}
			out = append(out, tok)
		}
	}
	return out
}

// CandidateTokens extracts the keyword candidates of a single line, in
// token order. Same filter as KeywordCandidates.
func CandidateTokens(text string) []string {
	var out []string
	for _, tok := range foldTokens(text) {
		if utf8.RuneCountInString(tok) < minKeywordLen {
			continue
		}
		if IsStopWord(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// DetectRegister classifies the formality of a line by lexical signals.
// Formal markers win over informal slang when both appear; lines with
// neither are neutral. Coarse on purpose: a neutral answer just means the
// register builder skips the line.
func DetectRegister(text string) Register {
	folded := Fold(text)
	if containsAny(folded, formalSignals) {
		return RegisterFormal
	}
	if containsAny(folded, informalSignals) {
		return RegisterInformal
	}
	return RegisterNeutral
}

// DetectSpeechAct classifies the pragmatic intent of a line. Checks run
// in fixed priority order — apology, thanks, rejection, confirm, request,
// offer — and the first matching set wins. Returns ActNone when no set
// matches; callers treat that as "no signal", not an error.
func DetectSpeechAct(text string) SpeechAct {
	folded := Fold(text)
	switch {
	case containsAny(folded, apologySignals):
		return ActApology
	case containsAny(folded, thanksSignals):
		return ActThanks
	case containsAny(folded, rejectionSignals):
		return ActRejection
	case containsAny(folded, confirmSignals):
		return ActConfirm
	case containsAny(folded, requestSignals):
		return ActRequest
	case containsAny(folded, offerSignals):
		return ActOffer
	default:
		return ActNone
	}
}

// NumberLiterals returns every numeric token mentioned in the dialogue,
// in order of appearance.
func NumberLiterals(lines []Line) []string {
	var out []string
	for _, l := range lines {
		out = append(out, numberPattern.FindAllString(l.Text, -1)...)
	}
	return out
}

// containsAny reports whether any signal phrase appears in the folded
// text as a whole-word sequence. Boundary padding keeps "tio" from
// matching inside "sitio".
func containsAny(folded string, signals []string) bool {
	padded := " " + folded + " "
	for _, s := range signals {
		if strings.Contains(padded, " "+s+" ") {
			return true
		}
	}
	return false
}
