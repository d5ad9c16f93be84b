package assistant

import "strings"

var questionStarters = []string{
	"who is", "what is", "where is", "when is", "why is", "how is",
	"who was", "what was", "where was", "when was", "why was", "how was",
	"who were", "what were", "where were", "when were", "why were", "how were",
	"define", "explain", "tell me about", "information on", "info on",
	"can you tell me", "do you know", "i want to know",
}

// IsGeneralQuestion reports whether text reads like a knowledge question:
// it opens with or contains a question phrase, or has a question mark.
func IsGeneralQuestion(text string) bool {
	lower := strings.ToLower(text)
	padded := " " + lower + " "
	for _, s := range questionStarters {
		if strings.HasPrefix(lower, s) || strings.Contains(padded, " "+s+" ") {
			return true
		}
	}
	return strings.Contains(text, "?")
}
