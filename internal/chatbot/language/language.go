// internal/chatbot/language/language.go

// Package language classifies chat messages as English or French.
//
// Detection is a keyword scoring heuristic with a deliberate French bias:
// ambiguous or empty text is French. Two scoring tables ship. Weighted is
// the default; KeywordCount reproduces the older per-keyword counting and
// can be selected with language.detector: keyword-count.
package language

import (
	"fmt"
	"regexp"
	"strings"

	"gear9-chatbot/internal/chatbot/textutil"
)

type Language string

const (
	English Language = "en"
	French  Language = "fr"
)

// Parse accepts "en" or "fr" in any case, surrounding blanks ignored.
func Parse(s string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en":
		return English, true
	case "fr":
		return French, true
	default:
		return "", false
	}
}

func (l Language) IsEnglish() bool { return l == English }

func (l Language) String() string { return string(l) }

// Detector maps text to a language. Implementations never fail.
type Detector interface {
	Detect(text string) Language
}

// Rule adds Weight to a language score. Terms match as substrings of the
// normalized text, Words only on letter boundaries. Raw rules look at the
// lowercased text before diacritics are stripped.
type Rule struct {
	Terms     []string
	Words     []string
	Weight    int
	PerTerm   bool // every hit adds Weight, otherwise Weight is added once
	ASCIIOnly bool
	Raw       bool
}

// Opener decides the language from the start of the text when no rule
// scored.
type Opener struct {
	Pattern *regexp.Regexp
	Lang    Language
}

// TieBreak is checked in order when both scores are equal.
type TieBreak struct {
	Rule Rule
	Lang Language
}

// ScoringTable parameterises the scoring detector.
type ScoringTable struct {
	Name      string
	English   []Rule
	French    []Rule
	Openers   []Opener
	TieWinner Language // wins a non-zero tie before TieBreaks run
	TieBreaks []TieBreak
	Default   Language
}

// ScoringDetector is a Detector driven by a ScoringTable. It is immutable
// and safe for concurrent use.
type ScoringDetector struct {
	table ScoringTable
}

// NewDetector normalizes the table's keyword lists the same way messages
// are normalized.
func NewDetector(table ScoringTable) *ScoringDetector {
	table.English = normalizeRules(table.English)
	table.French = normalizeRules(table.French)
	breaks := make([]TieBreak, len(table.TieBreaks))
	for i, tb := range table.TieBreaks {
		breaks[i] = TieBreak{Rule: normalizeRule(tb.Rule), Lang: tb.Lang}
	}
	table.TieBreaks = breaks
	if table.Default == "" {
		table.Default = French
	}
	return &ScoringDetector{table: table}
}

// ForName returns the detector configured by language.detector.
func ForName(name string) (*ScoringDetector, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", WeightedTable.Name:
		return NewDetector(WeightedTable), nil
	case KeywordCountTable.Name:
		return NewDetector(KeywordCountTable), nil
	default:
		return nil, fmt.Errorf("unknown language detector %q", name)
	}
}

func (d *ScoringDetector) Name() string { return d.table.Name }

func (d *ScoringDetector) Detect(text string) Language {
	raw := strings.ToLower(strings.TrimSpace(text))
	if raw == "" {
		return d.table.Default
	}
	norm := textutil.Normalize(raw)
	en, fr := d.scores(raw, norm)

	if en == 0 && fr == 0 && len(d.table.Openers) > 0 {
		for _, o := range d.table.Openers {
			if o.Pattern.MatchString(norm) {
				return o.Lang
			}
		}
		return d.table.Default
	}

	switch {
	case en > fr:
		return English
	case fr > en:
		return French
	}

	if d.table.TieWinner != "" && en > 0 {
		return d.table.TieWinner
	}
	for _, tb := range d.table.TieBreaks {
		if ruleHits(tb.Rule, raw, norm) > 0 {
			return tb.Lang
		}
	}
	return d.table.Default
}

// Scores exposes the raw English and French scores, mostly for debugging
// misdetections.
func (d *ScoringDetector) Scores(text string) (en, fr int) {
	raw := strings.ToLower(strings.TrimSpace(text))
	return d.scores(raw, textutil.Normalize(raw))
}

func (d *ScoringDetector) scores(raw, norm string) (en, fr int) {
	for _, r := range d.table.English {
		en += ruleScore(r, raw, norm)
	}
	for _, r := range d.table.French {
		fr += ruleScore(r, raw, norm)
	}
	return en, fr
}

func ruleScore(r Rule, raw, norm string) int {
	if r.ASCIIOnly && !textutil.IsASCII(raw) {
		return 0
	}
	hits := ruleHits(r, raw, norm)
	if hits == 0 {
		return 0
	}
	if r.PerTerm {
		return hits * r.Weight
	}
	return r.Weight
}

func ruleHits(r Rule, raw, norm string) int {
	text := norm
	if r.Raw {
		text = raw
	}
	hits := 0
	for _, t := range r.Terms {
		if strings.Contains(text, t) {
			hits++
		}
	}
	for _, w := range r.Words {
		if textutil.ContainsAnyWord(text, w) {
			hits++
		}
	}
	return hits
}

func normalizeRules(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = normalizeRule(r)
	}
	return out
}

// normalizeRule strips diacritics from terms and drops the duplicates that
// creates ("où" and "ou" collapse). Raw rules are left untouched. Padding
// spaces are significant and kept.
func normalizeRule(r Rule) Rule {
	if r.Raw {
		return r
	}
	r.Terms = dedupe(r.Terms, func(s string) string { return normalizeKeepPadding(s) })
	r.Words = dedupe(r.Words, textutil.Normalize)
	return r
}

func normalizeKeepPadding(s string) string {
	lead := len(s) - len(strings.TrimLeft(s, " "))
	trail := len(s) - len(strings.TrimRight(s, " "))
	return strings.Repeat(" ", lead) + textutil.Normalize(s) + strings.Repeat(" ", trail)
}

func dedupe(list []string, fn func(string) string) []string {
	if len(list) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		n := fn(s)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
