// internal/chatbot/chat/basic.go
package chat

import (
	"gear9-chatbot/internal/chatbot/knowledge"
	"gear9-chatbot/internal/chatbot/matcher"
	"gear9-chatbot/internal/chatbot/textutil"
)

const defaultAddress = "219 Bd Zerktouni, angle Bd Brahim Roudani, Casablanca"

var (
	whatTerms    = []string{"quoi", "what"}
	addressTerms = []string{"adresse", "address", "where"}
	addressWords = []string{"ou"}
	companyTerms = textutil.NormalizeAll([]string{"entreprise", "company", "société"})
)

// basicAnswer is the canned layer tried when the matcher gives up and
// before any network call. It works without a knowledge base.
func basicAnswer(question string, english bool, kb *knowledge.KnowledgeBase) (string, bool) {
	q := textutil.Normalize(question)
	if q == "" {
		return "", false
	}

	if textutil.ContainsAny(q, "gear9") && textutil.ContainsAny(q, whatTerms...) {
		return matcher.CompanyOverview(english), true
	}

	if textutil.ContainsAny(q, addressTerms...) || textutil.ContainsAnyWord(q, addressWords...) {
		addr := defaultAddress
		if kb.Available() && kb.Address != "" {
			addr = kb.Address
		}
		if english {
			return "**Gear9**'s address: " + addr, true
		}
		return "Adresse de **Gear9** : " + addr, true
	}

	if textutil.ContainsAny(q, companyTerms...) {
		if english {
			return "**Gear9** is an agency specializing in Salesforce Digital Staff Augmentation. We help companies with digital transformation, Salesforce implementation, and creating engaging digital experiences.", true
		}
		return "**Gear9** est une agence spécialisée dans la Régie Salesforce Digital. Nous aidons les entreprises dans leur transformation digitale, l'implémentation Salesforce et la création d'expériences digitales engageantes.", true
	}

	return "", false
}

var apologies = map[bool]string{
	true:  "I'm sorry, I'm currently experiencing technical difficulties. Please try asking about Gear9's address, services, projects, clients, awards, or expertise.",
	false: "Je suis désolé, je rencontre actuellement des difficultés techniques. Veuillez essayer de demander l'adresse, les services, les projets, les clients, les distinctions ou l'expertise de Gear9.",
}

// Apology is the reply used when the generative fallback fails.
func Apology(english bool) string {
	return apologies[english]
}
