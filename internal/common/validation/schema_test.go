package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRequestSchema(t *testing.T) {
	v := MustValidator(ChatRequestSchema)

	tests := []struct {
		name      string
		body      string
		wantValid bool
		wantField string
	}{
		{"minimal", `{"message":"Quels services proposez-vous?"}`, true, ""},
		{"full", `{"message":"hi","conversationId":"abc","language":"en"}`, true, ""},
		{"unknown language is accepted", `{"message":"hi","language":"de"}`, true, ""},
		{"null optionals", `{"message":"hi","conversationId":null,"language":null}`, true, ""},
		{"missing message", `{"language":"en"}`, false, "message"},
		{"blank message", `{"message":"   "}`, false, "message"},
		{"empty message", `{"message":""}`, false, "message"},
		{"wrong type", `{"message":42}`, false, "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := v.ValidateBytes([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, res.Valid, res.Summary())
			if tt.wantField != "" {
				require.NotEmpty(t, res.Errors)
				assert.Equal(t, tt.wantField, res.Errors[0].Field)
			}
		})
	}
}

func TestChatRequestSchema_MalformedJSON(t *testing.T) {
	v := MustValidator(ChatRequestSchema)
	_, err := v.ValidateBytes([]byte(`{"message":`))
	assert.Error(t, err)
}

func TestValidateInput_JobVariables(t *testing.T) {
	v := MustValidator(ChatRequestSchema)
	res, err := v.ValidateInput(map[string]interface{}{"message": "adresse ?", "conversationId": "bpmn-1"})
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestKnowledgeBaseSchema(t *testing.T) {
	v := MustValidator(KnowledgeBaseSchema)

	ok, err := v.ValidateBytes([]byte(`{"data":{"adresse":"Casablanca","realisations_et_recompenses":[{"titre":"Prix","annee":2023}],"subjects":{"address":{"aliases":["adresse"]}}}}`))
	require.NoError(t, err)
	assert.True(t, ok.Valid, ok.Summary())

	missingData, err := v.ValidateBytes([]byte(`{"nom_entreprise":"Gear9"}`))
	require.NoError(t, err)
	assert.False(t, missingData.Valid)

	badYear, err := v.ValidateBytes([]byte(`{"data":{"realisations_et_recompenses":[{"titre":"Prix","annee":"2023"}]}}`))
	require.NoError(t, err)
	assert.False(t, badYear.Valid)
	assert.Contains(t, badYear.Summary(), "annee")
}

func TestNewValidator_BadSchema(t *testing.T) {
	_, err := NewValidator(`{"type": 12}`)
	assert.Error(t, err)
	assert.Panics(t, func() { MustValidator(`not json`) })
}
