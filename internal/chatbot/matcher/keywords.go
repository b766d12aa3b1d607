// internal/chatbot/matcher/keywords.go
package matcher

import "gear9-chatbot/internal/chatbot/textutil"

// Keyword lists are written with their accents for readability and
// normalized once here, so they compare against normalized questions.
// Lists suffixed Words are matched on word boundaries.
var (
	identityFillers = []string{"hey ", "hi ", "hello ", "ay "}
	identityPhrases = textutil.NormalizeAll([]string{
		"who are you", "who r u", "who're you", "who are u",
		"qui es-tu", "qui es tu", "qui êtes-vous", "qui etes vous", "tu es qui", "t'es qui",
	})

	greetingIntentTerms = textutil.NormalizeAll([]string{
		"adresse", "address", "service", "services", "projet", "projects", "client", "clients",
		"réalisation", "recompense", "exploits", "award", "achievements", "rewards", "expertise",
		"qui", "quoi", "comment", "quelle", "quels", "quelles",
	})
	greetingIntentWords = []string{"ou"}
	greetingRequests    = textutil.NormalizeAll([]string{"dis bonjour", "say hello"})

	companyTerms = textutil.NormalizeAll([]string{
		"gear9", "entreprise", "société", "societe", "adresse", "service",
		"projet", "client", "réalisation", "recompense", "récompense",
		"pdg", "dirige", "direction", "expertise", "salesforce", "marketing cloud",
		"mulesoft", "tableau", "data cloud", "apropos", "à propos", "apercu", "présentation",
		"qui êtes-vous", "qui etes vous", "localisation",
		"company", "address", "services", "project", "projects", "clients",
		"customer", "customers", "award", "awards", "achievement", "achievements", "ceo", "leader",
		"director", "about", "overview", "where", "location",
	})
	companyWords = []string{"ou"}

	greetBackWords  = []string{"hello", "hi", "hey"}
	nudgeTerms      = textutil.NormalizeAll([]string{"salut", "bonjour", "hello"})
	nudgeWords      = []string{"hey", "hi"}
	nudgeMaxRuneLen = 16

	addressTerms = textutil.NormalizeAll([]string{
		"adresse", "localisation", "située", "situee", "siège", "siege", "siège social",
		"address", "location", "located", "headquarters", "hq", "office", "offices", "head office",
	})
	addressWords = textutil.NormalizeAll([]string{"où", "ou", "where"})

	nameTerms = textutil.NormalizeAll([]string{
		"nom de l'entreprise", "nom de l'entr", "comment s'appelle", "comment s'appelle l'entr",
		"qui êtes-vous", "qui etes vous", "présentez", "presentation",
		"company name", "what is the company name", "what's the company name",
	})
	nameFallbackTerms = textutil.NormalizeAll([]string{"nom", "appelle", "appelez", "name"})

	aboutTerms = textutil.NormalizeAll([]string{
		"c'est quoi gear9", "c est quoi gear9", "que fait gear9", "qui est gear9",
		"tell me about gear9",
	})

	// specificTopicTerms defer the generic company overview, on the alias
	// path and in the about handler alike.
	specificTopicTerms = textutil.NormalizeAll([]string{
		"salesforce", "sales cloud", "service cloud", "marketing cloud", "data cloud", "mulesoft", "tableau",
		"digital", "product thinking", "customer experience", "automation", "régie", "regie", "staff augmentation",
	})

	servicesTerms = textutil.NormalizeAll([]string{
		"service", "offre", "proposez", "proposés", "proposes",
		"services", "offer", "offers", "offering", "offerings", "what do you offer", "what services",
	})

	leadershipTerms = textutil.NormalizeAll([]string{"pdg", "direction", "dirige", "dirigeant", "ceo", "leader", "director"})

	awardsTerms = textutil.NormalizeAll([]string{
		"réalisation", "realisations", "récompense", "recompenses", "prix", "exploits",
		"award", "awards", "achievement", "achievements", "rewards",
	})

	projectsTerms = textutil.NormalizeAll([]string{
		"projet", "client", "référence", "references", "références",
		"project", "projects", "clients", "customer", "customers", "reference", "portfolio",
	})

	coreExpertiseTerms = textutil.NormalizeAll([]string{
		"expertise principale", "expertises principales", "compétence principale", "competence principale",
		"what is the expertise of gear9", "what is the expertise of", "what is your expertise",
		"expertise", "expertises", "core expertise", "main expertise", "primary expertise",
	})
	genericExpertiseTerms = textutil.NormalizeAll([]string{"expertise", "expertises"})

	salesforceTerms = textutil.NormalizeAll([]string{"salesforce", "sales cloud", "service cloud", "marketing cloud", "data cloud", "mulesoft", "tableau"})
	regieTerms      = textutil.NormalizeAll([]string{"régie", "regie", "staff augmentation"})
	digitalTerms    = textutil.NormalizeAll([]string{"digital"})
)
