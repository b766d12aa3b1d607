// internal/chatbot/knowledge/sectors.go
package knowledge

import (
	"strings"

	"gear9-chatbot/internal/chatbot/textutil"
)

type sectorKeyword struct {
	term      string
	canonical string
}

// sectorKeywords maps question vocabulary to the sector values stored in
// data.json. Order matters: the first hit wins.
var sectorKeywords = normalizeSectors([]sectorKeyword{
	{"secteur public", "secteur public"},
	{"finance", "finance"},
	{"assurance", "assurance"},
	{"télécom", "télécom"},
	{"telecom", "télécom"},
	{"retail", "retail"},
	{"industrie", "industrie"},
	{"éducation", "education"},
	{"education", "education"},
	{"hôtellerie", "hôtellerie"},
	{"immobilier", "immobilier"},
	{"public sector", "secteur public"},
	{"insurance", "assurance"},
	{"telecommunications", "télécom"},
	{"telecommunication", "télécom"},
	{"industry", "industrie"},
	{"hospitality", "hôtellerie"},
	{"real estate", "immobilier"},
})

func normalizeSectors(in []sectorKeyword) []sectorKeyword {
	out := make([]sectorKeyword, len(in))
	for i, s := range in {
		out[i] = sectorKeyword{term: textutil.Normalize(s.term), canonical: s.canonical}
	}
	return out
}

// DetectSector returns the canonical sector named in question, or "".
// question may be raw or normalized.
func DetectSector(question string) string {
	q := textutil.Normalize(question)
	for _, s := range sectorKeywords {
		if strings.Contains(q, s.term) {
			return s.canonical
		}
	}
	return ""
}

// InSector reports whether p belongs to sector, ignoring case and accents.
func (p Project) InSector(sector string) bool {
	want := textutil.Normalize(sector)
	if want == "" {
		return true
	}
	got := textutil.Normalize(p.Sector)
	return got != "" && strings.Contains(got, want)
}

// ProjectsInSector returns the projects of sector, all of them when sector
// is empty, in document order and at most limit entries (no limit if <= 0).
func (kb *KnowledgeBase) ProjectsInSector(sector string, limit int) []Project {
	if kb == nil {
		return nil
	}
	var out []Project
	for _, p := range kb.Projects {
		if !p.InSector(sector) {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
