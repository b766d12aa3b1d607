// internal/chatbot/matcher/handlers.go
package matcher

import (
	"strconv"
	"strings"

	"gear9-chatbot/internal/chatbot/knowledge"
	"gear9-chatbot/internal/chatbot/textutil"
)

const (
	maxServices    = 4
	maxProjects    = 4
	maxGroupDetail = 5
)

func (m *Matcher) handleAddress(q string, english bool) (Result, bool) {
	if !textutil.ContainsAny(q, addressTerms...) && !textutil.ContainsAnyWord(q, addressWords...) {
		return Result{}, false
	}
	return m.addressAnswer(english), true
}

func (m *Matcher) addressAnswer(english bool) Result {
	if m.kb.Address == "" {
		return unmatched(TopicAddress, msgNoInfo.in(english))
	}
	return answered(TopicAddress, headerAddress.in(english)+m.kb.Address)
}

func (m *Matcher) handleName(q string, english bool) (Result, bool) {
	if !textutil.ContainsAny(q, nameTerms...) || m.kb.CompanyName == "" {
		return Result{}, false
	}
	return answered(TopicName, headerName.in(english)+m.kb.CompanyName), true
}

func (m *Matcher) handleAbout(q string, english bool) (Result, bool) {
	if !textutil.ContainsAny(q, aboutTerms...) {
		return Result{}, false
	}
	return aboutAnswer(q, english)
}

func (m *Matcher) handleServices(q string, english bool) (Result, bool) {
	if !textutil.ContainsAny(q, servicesTerms...) {
		return Result{}, false
	}
	return m.servicesAnswer(english), true
}

func (m *Matcher) servicesAnswer(english bool) Result {
	var names, snippets []string
	for _, s := range m.kb.Services {
		name := s.LocalName(english)
		if name == "" {
			continue
		}
		names = append(names, name)
		if desc := s.LocalDescription(english); desc != "" {
			snippets = append(snippets, nameWithDescription(name, desc))
		}
		if len(names) == maxServices {
			break
		}
	}
	if len(names) == 0 {
		return unmatched(TopicServices, msgNoInfo.in(english))
	}

	text := leadServices.in(english) + joinWithAnd(names, english) + "."
	if len(snippets) > 0 {
		text += leadExamples.in(english) + strings.Join(snippets, "; ") + "."
	}
	return answered(TopicServices, text)
}

func (m *Matcher) handleLeadership(q string, english bool) (Result, bool) {
	if !textutil.ContainsAny(q, leadershipTerms...) {
		return Result{}, false
	}
	return m.leadershipAnswer(english), true
}

func (m *Matcher) leadershipAnswer(english bool) Result {
	if len(m.kb.Leadership) > 0 {
		l := m.kb.Leadership[0]
		var parts []string
		for _, p := range []string{l.Role, l.Name} {
			if p = knowledge.Text(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) > 0 {
			return answered(TopicLeadership, leadLeadership.in(english)+strings.Join(parts, " ")+".")
		}
	}
	return unmatched(TopicLeadership, msgNoInfo.in(english))
}

func (m *Matcher) handleAwards(q string, english bool) (Result, bool) {
	if !textutil.ContainsAny(q, awardsTerms...) {
		return Result{}, false
	}
	return m.awardsAnswer(textutil.ExtractYear(q), english), true
}

// awardsAnswer keeps awards from fromYear on; awards without a year are
// always kept. fromYear 0 disables the filter.
func (m *Matcher) awardsAnswer(fromYear int, english bool) Result {
	var phrases []string
	for _, a := range m.kb.Awards {
		if fromYear > 0 && a.Year != nil && *a.Year < fromYear {
			continue
		}
		var parts []string
		if t := knowledge.Text(a.Title); t != "" {
			parts = append(parts, t)
		}
		if a.Year != nil {
			parts = append(parts, strconv.Itoa(*a.Year))
		}
		if l := knowledge.Text(a.Location); l != "" {
			parts = append(parts, l)
		}
		if len(parts) > 0 {
			phrases = append(phrases, strings.Join(parts, ", "))
		}
	}
	if len(phrases) == 0 {
		return unmatched(TopicAwards, msgNoInfo.in(english))
	}

	lead := leadAwards.in(english)
	if fromYear > 0 {
		y := strconv.Itoa(fromYear)
		if english {
			lead = "Awards and achievements since " + y + " include "
		} else {
			lead = "Depuis " + y + ", parmi les distinctions, citons "
		}
	}
	return answered(TopicAwards, lead+joinWithAnd(phrases, english)+".")
}

func (m *Matcher) handleProjects(q string, english bool) (Result, bool) {
	if !textutil.ContainsAny(q, projectsTerms...) {
		return Result{}, false
	}
	return m.projectsAnswer(knowledge.DetectSector(q), english), true
}

// projectsAnswer lists up to maxProjects projects of sector ("" for all).
func (m *Matcher) projectsAnswer(sector string, english bool) Result {
	sep := " — "
	if english {
		sep = " - "
	}
	var items []string
	for _, p := range m.kb.ProjectsInSector(sector, 0) {
		if parts := projectParts(p, english); len(parts) > 0 {
			items = append(items, strings.Join(parts, sep))
		}
		if len(items) == maxProjects {
			break
		}
	}
	if len(items) == 0 {
		return unmatched(TopicProjects, msgNoInfo.in(english))
	}
	return answered(TopicProjects, leadProjects.in(english)+joinWithAnd(items, english)+".")
}

// projectParts returns name, type and description of p. English answers
// patch missing fields from the override table, then fall back to the
// sector and URL so each entry carries at least two fields.
func projectParts(p knowledge.Project, english bool) []string {
	name := knowledge.Text(p.Name)
	typ := p.LocalType(english)
	desc := p.LocalDescription(english)
	sector := knowledge.Text(p.Sector)

	if english {
		if o, ok := englishProjectOverrides[p.ID]; ok {
			if typ == "" {
				typ = o.Type
			}
			if desc == "" {
				desc = o.Description
			}
		}
		if typ == "" && desc == "" {
			typ = sector
			desc = knowledge.Text(p.URL)
		}
	}

	var parts []string
	for _, v := range []string{name, typ, desc} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	if english && len(parts) == 1 {
		if sector != "" && sector != parts[0] {
			parts = append(parts, sector)
		} else {
			parts = append(parts, "Project")
		}
	}
	return parts
}

func (m *Matcher) handleCoreExpertise(q string, english bool) (Result, bool) {
	if !textutil.ContainsAny(q, coreExpertiseTerms...) || m.deferCoreExpertise(q) {
		return Result{}, false
	}
	return m.coreExpertiseAnswer(english), true
}

// deferCoreExpertise leaves questions naming a specific group, or asked
// without core data, to the expertise group handler.
func (m *Matcher) deferCoreExpertise(q string) bool {
	return mentionedGroup(q) != "" || len(m.kb.CoreExpertises) == 0
}

func (m *Matcher) coreExpertiseAnswer(english bool) Result {
	items := offeringPhrases(m.kb.CoreExpertises, english)
	if len(items) == 0 {
		return unmatched(TopicCoreExpertise, msgNoInfo.in(english))
	}
	return answered(TopicCoreExpertise, leadCore.in(english)+joinWithAnd(items, english)+".")
}

func offeringPhrases(list []knowledge.Offering, english bool) []string {
	var out []string
	for _, o := range list {
		if name := o.LocalName(english); name != "" {
			out = append(out, nameWithDescription(name, o.LocalDescription(english)))
		}
	}
	return out
}

// mentionedGroup returns the expertise group named in q, or "".
func mentionedGroup(q string) string {
	switch {
	case textutil.ContainsAny(q, salesforceTerms...):
		return knowledge.GroupSalesforce
	case textutil.ContainsAny(q, regieTerms...):
		return knowledge.GroupRegie
	case textutil.ContainsAny(q, digitalTerms...):
		return knowledge.GroupDigital
	}
	return ""
}

func (m *Matcher) handleExpertiseGroup(q string, english bool) (Result, bool) {
	if len(m.kb.ExpertiseGroups) == 0 {
		return Result{}, false
	}
	id := mentionedGroup(q)
	if id == "" {
		if !textutil.ContainsAny(q, genericExpertiseTerms...) {
			return Result{}, false
		}
		if r, ok := m.groupSummary(english); ok {
			return r, true
		}
	}
	return m.expertiseGroupAnswer(id, english), true
}

// groupSummary names up to maxGroupDetail details of every group.
func (m *Matcher) groupSummary(english bool) (Result, bool) {
	var summaries []string
	for _, g := range m.kb.ExpertiseGroups {
		var names []string
		for _, d := range g.Details {
			if n := knowledge.Text(d.Name); n != "" {
				names = append(names, n)
				if len(names) == maxGroupDetail {
					break
				}
			}
		}
		if len(names) == 0 {
			continue
		}
		label := groupLabel(g, english)
		if label == "" {
			label = "expertise"
		}
		if english {
			summaries = append(summaries, label+": "+joinWithAnd(names, true))
		} else {
			summaries = append(summaries, label+" : "+joinWithAnd(names, false))
		}
	}
	if len(summaries) == 0 {
		return Result{}, false
	}
	return answered(TopicExpertiseGroup, leadGroupSummary.in(english)+joinWithAnd(summaries, english)+"."), true
}

// expertiseGroupAnswer details group id, or the first group when id is
// empty or absent from the data.
func (m *Matcher) expertiseGroupAnswer(id string, english bool) Result {
	g, ok := m.kb.Group(id)
	if !ok {
		if len(m.kb.ExpertiseGroups) == 0 {
			return unmatched(TopicExpertiseGroup, msgNoInfo.in(english))
		}
		g = m.kb.ExpertiseGroups[0]
	}

	items := offeringPhrases(g.Details, english)
	if len(items) == 0 {
		return unmatched(TopicExpertiseGroup, msgNoInfo.in(english))
	}

	label := groupLabel(g, english)
	var lead string
	switch {
	case english && label != "":
		lead = "Details of our " + label + " expertise include "
	case english:
		lead = "Details of our expertise include "
	case label != "":
		lead = "Parmi les détails de notre expertise " + label + ", on retrouve "
	default:
		lead = "Parmi les détails de notre expertise, on retrouve "
	}
	return answered(TopicExpertiseGroup, lead+joinWithAnd(items, english)+".")
}

func groupLabel(g knowledge.ExpertiseGroup, english bool) string {
	id := strings.ToLower(strings.TrimSpace(g.ID))
	switch id {
	case knowledge.GroupSalesforce:
		return "Salesforce"
	case knowledge.GroupRegie, "staff-augmentation":
		if english {
			return "staff augmentation"
		}
		return "régie"
	case knowledge.GroupDigital:
		return "digital"
	}
	return knowledge.Text(g.Name)
}

func (m *Matcher) handleNameFallback(q string, english bool) (Result, bool) {
	if !textutil.ContainsAny(q, nameFallbackTerms...) || m.kb.CompanyName == "" {
		return Result{}, false
	}
	return answered(TopicName, headerName.in(english)+m.kb.CompanyName), true
}
