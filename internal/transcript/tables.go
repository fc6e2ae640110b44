package transcript

// Signal tables for the lexical classifiers. All entries are pre-folded
// (lowercase, no diacritics) so they can be matched against Fold output
// directly. Kept as data rather than code so other locales can be added
// without touching the detection logic.

// stopWords are common Spanish function words excluded from keyword
// candidate extraction.
var stopWords = map[string]bool{
	"el": true, "la": true, "los": true, "las": true,
	"un": true, "una": true, "unos": true, "unas": true,
	"de": true, "del": true, "al": true, "a": true, "en": true,
	"y": true, "o": true, "u": true, "e": true,
	"que": true, "como": true, "con": true, "por": true, "para": true,
	"se": true, "su": true, "sus": true, "mi": true, "mis": true,
	"tu": true, "tus": true, "te": true, "me": true, "nos": true,
	"os": true, "le": true, "les": true, "lo": true,
	"no": true, "si": true, "ni": true,
	"es": true, "son": true, "soy": true, "eres": true,
	"esta": true, "estan": true, "estas": true, "estoy": true,
	"era": true, "fue": true, "ser": true, "estar": true, "hay": true,
	"este": true, "esto": true, "ese": true, "esa": true, "eso": true,
	"muy": true, "mas": true, "pero": true, "porque": true,
	"cuando": true, "donde": true, "aqui": true, "alli": true,
	"ya": true, "tambien": true, "todo": true, "toda": true,
	"todos": true, "todas": true, "algo": true, "nada": true,
	"bien": true, "entonces": true, "pues": true, "sobre": true,
	"entre": true, "hasta": true, "desde": true, "sin": true,
}

// formalSignals mark an utterance as formal register. Checked before the
// informal set; a line containing both counts as formal.
var formalSignals = []string{
	"usted",
	"disculpe",
	"buenos dias",
	"buenas tardes",
	"por favor",
	"gracias",
	"permiso",
}

// informalSignals are regional slang markers for informal register.
var informalSignals = []string{
	"tio",
	"tia",
	"vale",
	"guay",
	"chaval",
	"colega",
	"mola",
	"flipa",
	"che",
	"vos",
	"orale",
	"chido",
	"wey",
	"porfa",
}

// Speech-act phrase sets, matched in strict priority order (see
// DetectSpeechAct). Broad verbs like "quiero" sit late in the chain so
// apologies and confirmations are not misread as requests.
var (
	apologySignals = []string{
		"lo siento", "perdon", "perdona", "perdone",
		"disculpa", "disculpe", "mil disculpas",
	}

	thanksSignals = []string{
		"gracias", "te lo agradezco", "se lo agradezco", "muy amable",
	}

	rejectionSignals = []string{
		"no puedo", "no gracias", "imposible",
		"no quiero", "mejor no", "lo lamento",
	}

	confirmSignals = []string{
		"claro", "por supuesto", "de acuerdo", "vale", "perfecto",
		"asi es", "correcto", "exacto", "entendido", "muy bien",
	}

	requestSignals = []string{
		"podria", "podrias", "puedes", "puede usted",
		"me trae", "me traes", "quisiera", "necesito",
		"me gustaria", "me da", "me das", "quiero", "por favor",
	}

	offerSignals = []string{
		"te ofrezco", "le ofrezco", "quieres", "quiere", "desea",
		"te invito", "te traigo", "le traigo",
		"que tal si", "te apetece", "le apetece",
	}
)

// IsStopWord reports whether the folded token is a Spanish function word.
func IsStopWord(token string) bool {
	return stopWords[token]
}
