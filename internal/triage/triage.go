// Package triage holds the keyword heuristics that run before and after the
// remote classifier: emergency phrase detection and the gate deciding
// whether specialist recommendations belong in a reply.
package triage

import "strings"

// WarningLine is prepended to replies whose input mentions an emergency
// symptom. The trailing blank line separates it from the generated reply.
const WarningLine = "⚠️ Potentially serious symptoms detected. If this is an emergency, seek urgent medical care immediately.\n\n"

var emergencyPhrases = []string{
	"chest pain",
	"shortness of breath",
	"severe headache",
	"difficulty breathing",
	"loss of consciousness",
	"stroke",
	"heart attack",
	"uncontrolled bleeding",
}

// IsEmergency reports whether the message contains any emergency phrase.
// Matching is case-insensitive substring search; the first hit wins.
func IsEmergency(message string) bool {
	lower := strings.ToLower(message)
	for _, phrase := range emergencyPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
