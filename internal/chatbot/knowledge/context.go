// internal/chatbot/knowledge/context.go
package knowledge

import (
	"strconv"
	"strings"

	"gear9-chatbot/internal/chatbot/textutil"
)

const contextListLimit = 6

var (
	contextServiceTerms   = textutil.NormalizeAll([]string{"service", "offre", "offers", "offerings"})
	contextDirectionTerms = textutil.NormalizeAll([]string{"pdg", "direction", "ceo", "leader", "director"})
	contextAwardTerms     = textutil.NormalizeAll([]string{"réalisation", "recompense", "récompense", "prix", "exploits", "award", "achievements", "rewards"})
	contextProjectTerms   = textutil.NormalizeAll([]string{"projet", "client", "project", "clients", "portfolio", "reference"})
)

// BuildContext renders the grounding excerpt handed to the generative
// fallback. Company basics are always included; services, leadership,
// awards and projects only when the question asks about them. It returns
// "" for a blank question or an unavailable knowledge base.
func (kb *KnowledgeBase) BuildContext(question string) string {
	if !kb.Available() || strings.TrimSpace(question) == "" {
		return ""
	}
	q := textutil.Normalize(question)

	var sb strings.Builder
	line := func(label string, parts ...string) {
		var kept []string
		for _, p := range parts {
			if p = Text(p); p != "" {
				kept = append(kept, p)
			}
		}
		if len(kept) == 0 {
			return
		}
		sb.WriteString(label)
		sb.WriteString(": ")
		sb.WriteString(strings.Join(kept, " — "))
		sb.WriteByte('\n')
	}

	line("Nom", kb.CompanyName)
	line("Adresse", kb.Address)
	line("À propos", kb.About)
	line("Aperçu", kb.Overview)

	if textutil.ContainsAny(q, contextServiceTerms...) {
		n := 0
		for _, s := range kb.Services {
			if Text(s.Name) == "" {
				continue
			}
			line("Service", s.Name, s.Description)
			if n++; n == contextListLimit {
				break
			}
		}
	}

	if textutil.ContainsAny(q, contextDirectionTerms...) && len(kb.Leadership) > 0 {
		l := kb.Leadership[0]
		switch {
		case Text(l.Role) != "" && Text(l.Name) != "":
			line("Direction", l.Role+": "+l.Name)
		default:
			line("Direction", l.Role, l.Name)
		}
	}

	if textutil.ContainsAny(q, contextAwardTerms...) {
		n := 0
		for _, a := range kb.Awards {
			year := ""
			if a.Year != nil {
				year = strconv.Itoa(*a.Year)
			}
			if Text(a.Title) == "" && year == "" && Text(a.Location) == "" {
				continue
			}
			line("Récompense", a.Title, year, a.Location)
			if n++; n == contextListLimit {
				break
			}
		}
	}

	if textutil.ContainsAny(q, contextProjectTerms...) {
		n := 0
		for _, p := range kb.ProjectsInSector(DetectSector(q), 0) {
			if Text(p.Name) == "" && Text(p.Type) == "" && Text(p.Description) == "" {
				continue
			}
			line("Projet", p.Name, p.Type, p.Description)
			if n++; n == contextListLimit {
				break
			}
		}
	}

	return strings.TrimSpace(sb.String())
}
