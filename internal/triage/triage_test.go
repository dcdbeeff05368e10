package triage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsEmergency(t *testing.T) {
	cases := []struct {
		message string
		want    bool
	}{
		{"I have chest pain", true},
		{"I HAVE CHEST PAIN", true},
		{"sudden loss of consciousness this morning", true},
		{"my father had a stroke", true},
		{"difficulty breathing since last night", true},
		{"mild cough and runny nose", false},
		{"", false},
		{"hello there", false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, IsEmergency(tc.message), "message: %q", tc.message)
	}
}

func TestShouldRecommend_Urgent(t *testing.T) {
	// Urgent overrides everything, including greeting detection.
	require.True(t, ShouldRecommend("hi", true))
	require.True(t, ShouldRecommend("hi, I have severe headache", true))
}

func TestShouldRecommend_Greetings(t *testing.T) {
	for _, msg := range []string{"hi", "hello", "Hey", "thanks!", "how are you", "ok"} {
		require.False(t, ShouldRecommend(msg, false), "greeting should be excluded: %q", msg)
	}
}

func TestShouldRecommend_MedicalKeywords(t *testing.T) {
	require.True(t, ShouldRecommend("my knee hurts with sharp pain", false))
	require.True(t, ShouldRecommend("I fell off my bike yesterday", false))
	require.True(t, ShouldRecommend("running a fever since Monday", false))

	// No medical keyword, no greeting: excluded.
	require.False(t, ShouldRecommend("tell me about your features", false))
}

func TestShouldRecommend_LongGreetingNotShortCircuited(t *testing.T) {
	// A message containing a greeting phrase but exceeding the length bound
	// falls through to the keyword check.
	long := "hello doctor, over the last week I have had persistent stomach cramps"
	require.True(t, ShouldRecommend(long, false))
}
