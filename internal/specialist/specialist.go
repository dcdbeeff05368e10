// Package specialist routes free-text symptom descriptions to one of twelve
// medical specialty labels using an ordered rule list.
package specialist

import "strings"

// Default is the label returned when nothing more specific matches.
const Default = "General Physician"

// Labels are the twelve specialty labels, in the order the remote
// classifier is asked to choose from.
var Labels = []string{
	"General Physician", "Cardiologist", "Pulmonologist", "Neurologist",
	"Gastroenterologist", "Dermatologist", "Orthopedist", "Urologist",
	"Psychiatrist", "Ophthalmologist", "Dentist", "ENT",
}

// rule pairs a keyword set with a specialty label. Rules are evaluated in
// order and the first keyword hit wins, so cardiac symptoms outrank
// respiratory ones even when both match.
type rule struct {
	label    string
	keywords []string
}

var rules = []rule{
	{"Cardiologist", []string{
		"chest pain", "heart attack", "palpitations", "chest tightness", "angina",
		"heart", "cardiac", "pressure in chest", "radiating to arm",
	}},
	{"Pulmonologist", []string{"shortness of breath", "wheezing", "asthma", "breathless", "breath difficulty"}},
	{"Neurologist", []string{"severe headache", "stroke", "seizure", "numbness", "weakness on one side"}},
	{"Gastroenterologist", []string{"abdominal pain", "stomach pain", "vomit", "diarrhea", "acid reflux", "nausea"}},
	{"General Physician", []string{"fever", "cough", "sore throat", "cold", "flu"}},
	{"Dermatologist", []string{"rash", "itching", "acne", "eczema"}},
	{"Orthopedist", []string{
		"joint pain", "arthritis", "back pain", "knee pain", "leg pain", "ankle pain",
		"bone pain", "fracture", "sprain", "fell", "fall", "injury", "swelling",
		"bruising", "tenderness", "limp", "hurt my leg", "hurt my arm",
	}},
	{"Urologist", []string{"burning urination", "urinary", "kidney stone"}},
	{"Psychiatrist", []string{"anxiety", "depression", "panic", "mental health"}},
	{"Ophthalmologist", []string{"eye pain", "vision loss", "blurry vision"}},
	{"Dentist", []string{"tooth", "gum", "dental", "cavity", "toothache"}},
	{"ENT", []string{"ear pain", "throat", "sinus", "nose bleed", "ear ringing"}},
}

// Suggest maps a message to exactly one specialty label. It is total: every
// input, including the empty string, yields a label.
func Suggest(message string) string {
	m := strings.ToLower(message)
	for _, r := range rules {
		for _, keyword := range r.keywords {
			if strings.Contains(m, keyword) {
				return r.label
			}
		}
	}
	return Default
}
