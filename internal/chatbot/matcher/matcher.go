// internal/chatbot/matcher/matcher.go

// Package matcher answers company questions deterministically from the
// knowledge base. Rules are tried in a fixed priority order and the first
// one that applies wins.
package matcher

import (
	"strings"

	"gear9-chatbot/internal/chatbot/knowledge"
	"gear9-chatbot/internal/chatbot/language"
	"gear9-chatbot/internal/chatbot/textutil"
)

// Topics reported in Result.Topic.
const (
	TopicBlank          = "blank"
	TopicSubject        = "subject"
	TopicIdentity       = "identity"
	TopicGreeting       = "greeting"
	TopicUnavailable    = "unavailable"
	TopicGreetBack      = "greet_back"
	TopicNudge          = "nudge"
	TopicOutOfDomain    = "out_of_domain"
	TopicAddress        = "address"
	TopicName           = "name"
	TopicAbout          = "about"
	TopicServices       = "services"
	TopicLeadership     = "leadership"
	TopicAwards         = "awards"
	TopicProjects       = "projects"
	TopicCoreExpertise  = "core_expertise"
	TopicExpertiseGroup = "expertise_group"
	TopicUnknown        = "unknown"
)

const greetingMaxRuneLen = 24

// Result is a matcher answer. Matched is false when Text is one of the
// "sorry" sentinels and a later stage may do better.
type Result struct {
	Text    string
	Topic   string
	Matched bool
}

func answered(topic, text string) Result {
	return Result{Text: text, Topic: topic, Matched: true}
}

func unmatched(topic, text string) Result {
	return Result{Text: text, Topic: topic}
}

// Matcher is read-only after construction and safe for concurrent use.
type Matcher struct {
	kb       *knowledge.KnowledgeBase
	detector language.Detector
	subjects []subject
}

// subject is a knowledge.Subject with its aliases normalized.
type subject struct {
	knowledge.Subject
	aliases []string
}

// New builds a matcher over kb. detector decides the language of
// subject-specific answers; nil means the weighted detector.
func New(kb *knowledge.KnowledgeBase, detector language.Detector) *Matcher {
	if kb == nil {
		kb = knowledge.Empty()
	}
	if detector == nil {
		detector = language.NewDetector(language.WeightedTable)
	}
	m := &Matcher{kb: kb, detector: detector}
	for _, s := range kb.Subjects {
		var aliases []string
		for _, a := range s.Aliases {
			if a = textutil.Normalize(a); a != "" {
				aliases = append(aliases, a)
			}
		}
		m.subjects = append(m.subjects, subject{Subject: s, aliases: aliases})
	}
	return m
}

// Answer returns the reply text for question. It always returns a
// non-empty string.
func (m *Matcher) Answer(question string, english bool) string {
	return m.Match(question, english).Text
}

// Match runs the rule chain on question.
func (m *Matcher) Match(question string, english bool) Result {
	if strings.TrimSpace(question) == "" {
		return unmatched(TopicBlank, msgBlank.in(english))
	}
	q := textutil.Normalize(question)

	if r, ok := m.matchAlias(q, english); ok {
		return r
	}

	if isIdentityQuery(q) {
		return answered(TopicIdentity, msgIdentity.in(english))
	}

	if isGreetingOnly(q) && textutil.ContainsAny(q, greetingRequests...) {
		return answered(TopicGreeting, msgGreeting.in(english))
	}

	if !m.kb.Available() {
		return unmatched(TopicUnavailable, msgBlank.in(english))
	}

	if !textutil.ContainsAny(q, companyTerms...) && !textutil.ContainsAnyWord(q, companyWords...) {
		return offTopic(q, english)
	}

	for _, h := range m.handlers() {
		if r, ok := h(q, english); ok {
			return r
		}
	}
	return unmatched(TopicUnknown, msgNoInfo.in(english))
}

// handler returns ok=false when its rule does not apply to q.
type handler func(q string, english bool) (Result, bool)

func (m *Matcher) handlers() []handler {
	return []handler{
		m.handleAddress,
		m.handleName,
		m.handleAbout,
		m.handleServices,
		m.handleLeadership,
		m.handleAwards,
		m.handleProjects,
		m.handleCoreExpertise,
		m.handleExpertiseGroup,
		m.handleNameFallback,
	}
}

// matchAlias scans the subjects table in document order. The first subject
// with an alias contained in q answers, unless its answer defers, in
// which case the scan goes on.
func (m *Matcher) matchAlias(q string, english bool) (Result, bool) {
	for _, s := range m.subjects {
		if !textutil.ContainsAny(q, s.aliases...) {
			continue
		}
		answerEnglish := english || m.detector.Detect(q).IsEnglish()
		if text := s.Answer(answerEnglish); text != "" {
			return answered(TopicSubject, text), true
		}
		if r, ok := m.dispatchSubject(s.Key, q, english); ok {
			return r, true
		}
	}
	return Result{}, false
}

// dispatchSubject maps a subject key to its topic handler.
func (m *Matcher) dispatchSubject(key, q string, english bool) (Result, bool) {
	switch key {
	case "address":
		return m.addressAnswer(english), true
	case "services":
		return m.servicesAnswer(english), true
	case "clients":
		return m.projectsAnswer(knowledge.DetectSector(q), english), true
	case "awards":
		return m.awardsAnswer(textutil.ExtractYear(q), english), true
	case "leadership":
		return m.leadershipAnswer(english), true
	case "expertise":
		if m.deferCoreExpertise(q) {
			return Result{}, false
		}
		return m.coreExpertiseAnswer(english), true
	case knowledge.GroupSalesforce, knowledge.GroupDigital:
		return m.expertiseGroupAnswer(key, english), true
	case "about":
		if mentionsSpecificTopic(q) {
			return Result{}, false
		}
		return m.aliasOverview(english), true
	default:
		return m.aliasOverview(english), true
	}
}

// aliasOverview answers generic subjects. French prefers the knowledge
// base's own overview text.
func (m *Matcher) aliasOverview(english bool) Result {
	if !english && m.kb.Overview != "" {
		return answered(TopicAbout, m.kb.Overview)
	}
	return answered(TopicAbout, companyOverview.in(english))
}

func isIdentityQuery(q string) bool {
	s := strings.TrimSpace(q)
	for _, f := range identityFillers {
		if strings.HasPrefix(s, f) {
			s = strings.TrimSpace(s[len(f):])
			break
		}
	}
	if textutil.ContainsAny(s, identityPhrases...) {
		return true
	}
	return strings.Contains(s, "who") && strings.Contains(s, "you") &&
		(strings.Contains(s, " are ") || strings.Contains(s, " r "))
}

func isGreetingOnly(q string) bool {
	if strings.Contains(q, "?") || textutil.RuneLen(q) > greetingMaxRuneLen {
		return false
	}
	return !textutil.ContainsAny(q, greetingIntentTerms...) && !textutil.ContainsAnyWord(q, greetingIntentWords...)
}

// offTopic answers questions unrelated to the company. Plain greetings get
// a menu rather than a greeting of their own.
func offTopic(q string, english bool) Result {
	if english && textutil.ContainsAnyWord(q, greetBackWords...) {
		return answered(TopicGreetBack, msgGreetBack.in(english))
	}
	if textutil.RuneLen(q) < nudgeMaxRuneLen ||
		textutil.ContainsAny(q, nudgeTerms...) || textutil.ContainsAnyWord(q, nudgeWords...) {
		return answered(TopicNudge, msgNudge.in(english))
	}
	return unmatched(TopicOutOfDomain, msgOutOfDomain.in(english))
}

// mentionsSpecificTopic is the single deferral test for the generic
// company overview.
func mentionsSpecificTopic(q string) bool {
	return textutil.ContainsAny(q, specificTopicTerms...)
}

func aboutAnswer(q string, english bool) (Result, bool) {
	if mentionsSpecificTopic(q) {
		return Result{}, false
	}
	return answered(TopicAbout, companyOverview.in(english)), true
}
