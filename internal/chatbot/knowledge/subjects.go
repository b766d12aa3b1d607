// internal/chatbot/knowledge/subjects.go
package knowledge

// Labels used in the subjects list for the address and about entries.
var subjectLabels = map[bool][2]string{
	true:  {"Address", "About"},
	false: {"Adresse", "À propos"},
}

// SubjectLabels lists the topic labels known to the knowledge base, deduplicated
// in first-seen order, for client-side autocomplete. Only the address and
// about labels depend on english; data values are listed as stored.
func (kb *KnowledgeBase) SubjectLabels(english bool) []string {
	if !kb.Available() {
		return []string{}
	}

	seen := make(map[string]struct{})
	out := []string{}
	add := func(values ...string) {
		for _, v := range values {
			v = Text(v)
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}

	labels := subjectLabels[english]
	add(kb.CompanyName)
	if kb.Address != "" {
		add(labels[0])
	}
	if kb.About != "" {
		add(labels[1])
	}

	for _, s := range kb.Services {
		add(s.Name, s.NameEN, s.Category)
	}
	for _, e := range kb.CoreExpertises {
		add(e.Name, e.Category)
	}
	for _, g := range kb.ExpertiseGroups {
		add(g.Name)
		for _, d := range g.Details {
			add(d.Name)
		}
	}
	for _, p := range kb.Projects {
		add(p.Sector, p.Name, p.Type, p.TypeEN)
	}
	for _, a := range kb.Awards {
		add(a.Title)
	}
	for _, l := range kb.Leadership {
		add(l.Role)
	}
	return out
}
