package triage

import "strings"

// Medium-severity symptom keywords. Any hit makes the message eligible for
// specialist recommendations.
var medicalKeywords = []string{
	"pain", "fever", "cough", "cold", "flu", "rash", "itch", "vomit", "nausea",
	"diarrhea", "breath", "wheezing", "headache", "dizzy", "dizziness", "sore throat",
	"infection", "swelling", "injury", "sprain", "fracture", "bleeding", "burn",
	"urination", "tooth", "gum", "acne", "eczema", "anxiety", "depression",
	"palpitations", "abdominal", "stomach", "chest", "back pain", "knee pain",
	"leg", "ankle", "bone", "fell", "fall",
}

// Greetings and chit-chat that should not trigger medical recommendations.
var greetingPhrases = []string{
	"hi", "hello", "hey", "good morning", "good evening", "good night", "thanks",
	"thank you", "ok", "okay", "how are you", "what can you do", "who are you",
}

// ShouldRecommend decides whether specialist and next-step suggestions
// belong in the reply. Urgent messages always get them. Short greetings
// never do. Everything else needs at least one medical keyword.
//
// The caller additionally includes recommendations when the remote
// classifier reports medium or severe; the two signals cover each other's
// misses.
func ShouldRecommend(message string, urgent bool) bool {
	if urgent {
		return true
	}
	text := strings.TrimSpace(strings.ToLower(message))
	for _, phrase := range greetingPhrases {
		if strings.Contains(text, phrase) && len(text) <= max(40, len(phrase)+10) {
			return false
		}
	}
	for _, keyword := range medicalKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
