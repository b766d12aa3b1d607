// internal/chatbot/matcher/messages.go
package matcher

type bilingual struct {
	en string
	fr string
}

func (b bilingual) in(english bool) string {
	if english {
		return b.en
	}
	return b.fr
}

var (
	msgBlank = bilingual{
		en: "I'm sorry, I don't have information on this topic.",
		fr: "Je suis désolé, je ne trouve pas d'information à ce sujet.",
	}
	msgNoInfo = bilingual{
		en: "I'm sorry, I don't have information on this.",
		fr: "Je suis désolé, je ne trouve pas d'information à ce sujet.",
	}
	msgIdentity = bilingual{
		en: "I am Gear9's assistant, here to help you with any information you need about Gear9.",
		fr: "Je suis l'assistant de Gear9, là pour vous aider avec toutes les informations dont vous avez besoin sur Gear9.",
	}
	msgGreeting = bilingual{en: "Hello!", fr: "Bonjour !"}

	msgGreetBack = bilingual{
		en: "Hello! Ask me anything about Gear9 (address, services, projects, awards, expertise, etc.).",
		fr: "Bonjour ! Posez-moi vos questions sur Gear9 (adresse, services, projets, distinctions, expertises, etc.).",
	}
	msgNudge = bilingual{
		en: "I can help with Gear9: address, services, expertises, projects, clients and awards. What would you like to know?",
		fr: "Je peux vous renseigner sur Gear9 : adresse, services, expertises, projets, clients et distinctions. Que souhaitez-vous savoir ?",
	}
	msgOutOfDomain = bilingual{
		en: "I'm sorry, I can only answer questions related to this company.",
		fr: "Je suis désolé, je ne peux répondre qu'aux questions en rapport avec l'entreprise.",
	}

	headerAddress = bilingual{en: "Address of **Gear9**:\n", fr: "Adresse de **Gear9**:\n"}
	headerName    = bilingual{en: "Company name of **Gear9**:\n", fr: "Nom de **Gear9**:\n"}

	leadServices     = bilingual{en: "Gear9 offers services such as ", fr: "Gear9 propose des services tels que "}
	leadExamples     = bilingual{en: " For example: ", fr: " Par exemple : "}
	leadLeadership   = bilingual{en: "Gear9 is led by ", fr: "Gear9 est dirigée par "}
	leadAwards       = bilingual{en: "Recent awards and achievements include ", fr: "Parmi les distinctions récentes, citons "}
	leadProjects     = bilingual{en: "Some client projects include ", fr: "Parmi nos projets clients, citons "}
	leadCore         = bilingual{en: "Our main expertises include ", fr: "Nos expertises principales incluent "}
	leadGroupSummary = bilingual{en: "Our expertises cover ", fr: "Nos expertises couvrent "}

	companyOverview = bilingual{
		en: "**Gear9** is a Moroccan digital transformation agency founded in 2019. We specialize in implementing digital culture, creating unique and engaging digital experiences, and using technology and data to drive business growth. We operate with an agile and innovative methodology, focusing on areas such as Digital Culture and Transformation, Product Thinking, Customer Experience and Automation, as well as Behavioral Analysis.",
		fr: "**Gear9** est une agence marocaine de transformation digitale fondée en 2019. Elle se spécialise dans la mise en œuvre de la culture digitale, la création d'expériences digitales uniques et engageantes, et l'utilisation de la technologie et des données pour stimuler la croissance des entreprises. L'agence opère avec une méthodologie agile et innovante, se concentrant sur des domaines tels que la Culture et la Transformation Digitale, le Product Thinking, l'Expérience Client et l'Automatisation, ainsi que l'Analyse Comportementale.",
	}
)

// CompanyOverview is the fixed company presentation paragraph.
func CompanyOverview(english bool) string {
	return companyOverview.in(english)
}

// NoInformation is the sentinel returned when nothing applies.
func NoInformation(english bool) string {
	return msgNoInfo.in(english)
}
