// internal/chatbot/knowledge/model.go

// Package knowledge holds the Gear9 company facts the chatbot answers from.
//
// A KnowledgeBase is built once at startup and never written afterwards,
// so it is shared by pointer between goroutines without locking.
package knowledge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Expertise group ids. "staff-augmentation" is accepted for GroupRegie.
const (
	GroupSalesforce = "salesforce"
	GroupRegie      = "regie"
	GroupDigital    = "digital"
)

type KnowledgeBase struct {
	CompanyName     string
	Address         string
	About           string
	Overview        string
	Services        []Offering
	Leadership      []Leader
	Awards          []Award
	Projects        []Project
	CoreExpertises  []Offering
	ExpertiseGroups []ExpertiseGroup
	Subjects        []Subject

	// Source names where the data came from; empty for an empty base.
	Source string
	loaded bool
}

// Offering is a service, a core expertise or an expertise detail.
type Offering struct {
	Name          string `json:"nom"`
	NameEN        string `json:"nom_en"`
	Description   string `json:"description"`
	DescriptionEN string `json:"description_en"`
	Category      string `json:"categorie"`
}

type Leader struct {
	Role string `json:"role"`
	Name string `json:"nom"`
}

type Award struct {
	Title    string `json:"titre"`
	Year     *int   `json:"annee"`
	Location string `json:"lieu"`
}

type Project struct {
	ID            string `json:"id"`
	Name          string `json:"nom"`
	Sector        string `json:"secteur"`
	Type          string `json:"type"`
	TypeEN        string `json:"type_en"`
	Description   string `json:"description"`
	DescriptionEN string `json:"description_en"`
	URL           string `json:"url"`
}

type ExpertiseGroup struct {
	ID      string     `json:"id"`
	Name    string     `json:"nom"`
	Details []Offering `json:"details"`
}

// Subject is an alias table entry. Answers are optional overrides.
type Subject struct {
	Key      string   `json:"-"`
	Aliases  []string `json:"aliases"`
	AnswerEN string   `json:"answer_en"`
	AnswerFR string   `json:"answer_fr"`
}

// Empty returns a knowledge base with no data.
func Empty() *KnowledgeBase {
	return &KnowledgeBase{}
}

// Loaded returns a copy of kb marked as available, for knowledge bases
// assembled in code rather than parsed.
func Loaded(kb *KnowledgeBase) *KnowledgeBase {
	cp := *kb
	cp.loaded = true
	return &cp
}

// Available reports whether data was loaded.
func (kb *KnowledgeBase) Available() bool {
	return kb != nil && kb.loaded
}

// Group returns the expertise group with id.
func (kb *KnowledgeBase) Group(id string) (ExpertiseGroup, bool) {
	if kb == nil {
		return ExpertiseGroup{}, false
	}
	id = canonicalGroupID(id)
	for _, g := range kb.ExpertiseGroups {
		if canonicalGroupID(g.ID) == id {
			return g, true
		}
	}
	return ExpertiseGroup{}, false
}

func canonicalGroupID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "staff-augmentation" {
		return GroupRegie
	}
	return id
}

// Text returns s, or "" when s is blank.
func Text(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

// Localized prefers en when english is set and en is not blank, then
// falls back to base. Never the reverse.
func Localized(base, en string, english bool) string {
	if english {
		if v := Text(en); v != "" {
			return v
		}
	}
	return Text(base)
}

func (o Offering) LocalName(english bool) string {
	return Localized(o.Name, o.NameEN, english)
}

func (o Offering) LocalDescription(english bool) string {
	return Localized(o.Description, o.DescriptionEN, english)
}

func (p Project) LocalType(english bool) string {
	return Localized(p.Type, p.TypeEN, english)
}

func (p Project) LocalDescription(english bool) string {
	return Localized(p.Description, p.DescriptionEN, english)
}

func (s Subject) Answer(english bool) string {
	if english {
		return Text(s.AnswerEN)
	}
	return Text(s.AnswerFR)
}

type document struct {
	Data *documentData `json:"data"`
}

type documentData struct {
	CompanyName     string           `json:"nom_entreprise"`
	Address         string           `json:"adresse"`
	About           string           `json:"apropos"`
	Overview        string           `json:"apercu"`
	Services        []Offering       `json:"services"`
	Leadership      []Leader         `json:"direction"`
	Awards          []Award          `json:"realisations_et_recompenses"`
	Projects        []Project        `json:"projets"`
	CoreExpertises  []Offering       `json:"expertise_principale"`
	ExpertiseGroups []ExpertiseGroup `json:"expertise"`
	Subjects        orderedSubjects  `json:"subjects"`
}

// orderedSubjects decodes the subjects object keeping document order,
// which decides alias precedence.
type orderedSubjects []Subject

func (o *orderedSubjects) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*o = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("subjects: expected object")
	}

	var out []Subject
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("subjects: expected key, got %v", keyTok)
		}
		var s Subject
		if err := dec.Decode(&s); err != nil {
			return fmt.Errorf("subjects.%s: %w", key, err)
		}
		s.Key = key
		out = append(out, s)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*o = out
	return nil
}

// Parse decodes a data.json document. The caller validates the schema.
func Parse(b []byte) (*KnowledgeBase, error) {
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode knowledge base: %w", err)
	}
	if doc.Data == nil {
		return nil, fmt.Errorf("decode knowledge base: missing data object")
	}
	d := doc.Data
	return &KnowledgeBase{
		CompanyName:     Text(d.CompanyName),
		Address:         Text(d.Address),
		About:           Text(d.About),
		Overview:        Text(d.Overview),
		Services:        d.Services,
		Leadership:      d.Leadership,
		Awards:          d.Awards,
		Projects:        d.Projects,
		CoreExpertises:  d.CoreExpertises,
		ExpertiseGroups: d.ExpertiseGroups,
		Subjects:        d.Subjects,
		loaded:          true,
	}, nil
}
