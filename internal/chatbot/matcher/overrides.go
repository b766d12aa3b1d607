// internal/chatbot/matcher/overrides.go
package matcher

// projectOverride patches English project fields missing from data.json.
// Only empty fields are filled; the data file always wins.
type projectOverride struct {
	Type        string
	Description string
}

var englishProjectOverrides = map[string]projectOverride{
	"groupe_ocp":          {Type: "Salesforce"},
	"sorec":               {Type: "Digital asset redesign strategy"},
	"bank_of_africa":      {Type: "Digital Customer Experience", Description: "Redefinition of the group's digital customer journey"},
	"bank_alyousr":        {Type: "Marketing Automation", Description: "Addressing this major challenge, Bank Al Yousr…"},
	"attijariwafa_bank":   {Type: "Digitalization of the FIAD platform"},
	"bmce_capital_bourse": {Type: "Stock market activity management platform"},
}
