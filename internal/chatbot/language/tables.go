// internal/chatbot/language/tables.go
package language

import "regexp"

// WeightedTable is the default scoring: any cue of a language counts once
// with weight 3, accents weigh 2 for French, padded stopwords 1, and plain
// ASCII text with English content words 2 for English. Short cues match on
// word boundaries so "ou" does not fire inside "you" or "bonjour".
// The interrogatives quel/quels/quelle/quelles and "vous" are French cues
// so "Quels services proposez-vous?" is not outvoted by the ASCII rule.
var WeightedTable = ScoringTable{
	Name: "weighted",
	English: []Rule{
		{
			Terms:  []string{"hello", "what", "where", "when", "address", "company", "about", "overview"},
			Words:  []string{"hi", "hey", "who", "how", "why"},
			Weight: 3,
		},
		{Terms: []string{" the ", " and ", " of ", " in ", " to ", " for "}, Weight: 1},
		{Terms: []string{"what", "services", "provided", "by", "address", "company"}, Weight: 2, ASCIIOnly: true},
	},
	French: []Rule{
		{
			Terms: []string{"bonjour", "salut", "bonsoir", "quoi", "quand", "comment", "pourquoi",
				"adresse", "entreprise", "société", "societe", "à propos", "apropos"},
			Words:  []string{"où", "qui", "quel", "quels", "quelle", "quelles", "vous"},
			Weight: 3,
		},
		{Terms: []string{"é", "è", "ê", "à", "ù", "â", "î", "ï", "ô", "ç"}, Weight: 2, Raw: true},
		{Terms: []string{" le ", " la ", " les ", " des ", " du ", " et "}, Weight: 1},
	},
	TieBreaks: []TieBreak{
		{Rule: Rule{Terms: []string{"address"}, Words: []string{"where"}}, Lang: English},
		{Rule: Rule{Terms: []string{"adresse"}, Words: []string{"où"}}, Lang: French},
	},
	Default: French,
}

// KeywordCountTable counts every cue present. A non-zero tie goes to
// English; when nothing scores the first word decides.
var KeywordCountTable = ScoringTable{
	Name: "keyword-count",
	English: []Rule{{
		Terms: []string{"what", "where", "company", "address", "service", "project", "client", "award",
			"expertise", "hello", "about", "overview", "leader", "director", "customer", "customers",
			"achievement", "achievements"},
		Words:   []string{"who", "how", "hi"},
		Weight:  1,
		PerTerm: true,
	}},
	French: []Rule{{
		Terms: []string{"quoi", "comment", "entreprise", "adresse", "service", "projet", "client",
			"récompense", "expertise", "bonjour", "salut", "présentation", "présentez", "dirige",
			"direction", "réalisation", "réalisations", "apropos", "à propos", "apercu"},
		Words:   []string{"qui", "où"},
		Weight:  1,
		PerTerm: true,
	}},
	Openers: []Opener{
		{Pattern: regexp.MustCompile(`^(le|la|les|un|une|des|est|etre|vous|nous|bonjour|merci|salut)`), Lang: French},
		{Pattern: regexp.MustCompile(`^(what|who|where|how|hello|hi|about)`), Lang: English},
	},
	TieWinner: English,
	Default:   French,
}
