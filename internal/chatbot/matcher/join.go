// internal/chatbot/matcher/join.go
package matcher

import "strings"

// joinWithAnd renders items as prose: "A", "A and B", "A, B, and C".
func joinWithAnd(items []string, english bool) string {
	conj := "et "
	if english {
		conj = "and "
	}
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " " + conj + items[1]
	}
	var sb strings.Builder
	for i, it := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		if i == len(items)-1 {
			sb.WriteString(conj)
		}
		sb.WriteString(it)
	}
	return sb.String()
}

// nameWithDescription renders "name: description", or the name alone.
func nameWithDescription(name, description string) string {
	if description == "" {
		return name
	}
	return name + ": " + description
}
