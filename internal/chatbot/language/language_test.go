package language

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   Language
		wantOK bool
	}{
		{"en", English, true},
		{" FR ", French, true},
		{"En", English, true},
		{"de", "", false},
		{"", "", false},
		{"english", "", false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}

func TestWeightedDetector(t *testing.T) {
	d := NewDetector(WeightedTable)

	tests := []struct {
		name string
		text string
		want Language
	}{
		{"empty defaults to french", "   ", French},
		{"bonjour", "bonjour", French},
		{"english question", "What is the address?", English},
		{"french address", "Quelle est l'adresse de l'entreprise ?", French},
		{"french services", "Quels services proposez-vous?", French},
		{"accents only", "réalisé à Casablanca", French},
		{"english services", "What services do you offer?", English},
		{"how are you is not french", "how are you", English},
		{"tie goes to default", "hello bonjour", French},
		{"nothing scores", "gear9", French},
		{"where is english", "where?", English},
		{"ou as a word", "gear9 c'est où", French},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Detect(tt.text))
		})
	}
}

func TestWeightedDetector_WordCues(t *testing.T) {
	d := NewDetector(WeightedTable)

	tests := []struct {
		text   string
		en, fr int
	}{
		{"this", 0, 0},
		{"hi there", 3, 0},
		{"anyway", 0, 0},
		{"why", 3, 0},
		{"you", 0, 0},
		{"ou", 0, 3},
		{"nouvelle", 0, 0},
		{"vous", 0, 3},
	}
	for _, tt := range tests {
		en, fr := d.Scores(tt.text)
		assert.Equal(t, tt.en, en, tt.text)
		assert.Equal(t, tt.fr, fr, tt.text)
	}

	assert.Equal(t, French, d.Detect("this is nice weather today, isn't it"))
}

func TestWeightedDetector_TieBreaks(t *testing.T) {
	table := ScoringTable{
		Name:    "tie-only",
		English: []Rule{{Terms: []string{"zzz"}, Weight: 1}},
		French:  []Rule{{Terms: []string{"yyy"}, Weight: 1}},
		TieBreaks: []TieBreak{
			{Rule: Rule{Terms: []string{"address"}, Words: []string{"where"}}, Lang: English},
			{Rule: Rule{Terms: []string{"adresse"}, Words: []string{"où"}}, Lang: French},
		},
	}
	d := NewDetector(table)

	assert.Equal(t, English, d.Detect("zzz yyy address"))
	assert.Equal(t, French, d.Detect("zzz yyy adresse"))
	assert.Equal(t, French, d.Detect("zzz yyy ou"))
	assert.Equal(t, French, d.Detect("zzz yyy"))
}

func TestKeywordCountDetector(t *testing.T) {
	d := NewDetector(KeywordCountTable)

	tests := []struct {
		name string
		text string
		want Language
	}{
		{"empty", "", French},
		{"bonjour", "bonjour", French},
		{"tie goes to english", "hello bonjour", English},
		{"english majority", "what services and projects", English},
		{"french majority", "quels projets et réalisations", French},
		{"french opener", "merci beaucoup", French},
		{"english opener", "hithere", English},
		{"nothing at all", "gear9 ?", French},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Detect(tt.text))
		})
	}
}

func TestScores(t *testing.T) {
	d := NewDetector(WeightedTable)
	en, fr := d.Scores("What is the address?")
	assert.Equal(t, 6, en)
	assert.Equal(t, 0, fr)

	en, fr = d.Scores("bonjour")
	assert.Equal(t, 0, en)
	assert.Equal(t, 3, fr)
}

func TestForName(t *testing.T) {
	d, err := ForName("")
	require.NoError(t, err)
	assert.Equal(t, "weighted", d.Name())

	d, err = ForName("Keyword-Count")
	require.NoError(t, err)
	assert.Equal(t, "keyword-count", d.Name())

	_, err = ForName("bayes")
	assert.Error(t, err)
}

func TestDetector_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d := NewDetector(WeightedTable)
			assert.Equal(t, English, d.Detect("where is the office"))
		}()
	}
	wg.Wait()
}
