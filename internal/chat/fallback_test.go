package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		message string
		want    Category
	}{
		{"hello", CategoryGreeting},
		{"  Hi there!  ", CategoryGreeting},
		{"Good morning team", CategoryGreeting},
		{"this is it", CategoryDefault},
		{"Can you help me?", CategoryHelp},
		{"what can you do", CategoryHelp},
		{"generate an image of a cat", CategoryImage},
		{"send SMS to my friends", CategoryMessaging},
		{"any hackathons soon?", CategoryEvents},
		{"thank you so much", CategoryGratitude},
		{"ok bye", CategoryFarewell},
		{"what is the weather like", CategoryQuestion},
		{"what's happening", CategoryQuestion},
		{"How's it going?", CategoryQuestion},
		{"where're you based", CategoryQuestion},
		{"who made you", CategoryCreator},
		{"this is awesome", CategoryPositive},
		{"xyzzy", CategoryDefault},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.message))
		})
	}
}

func TestClassifyPrecedence(t *testing.T) {
	// greeting outranks events; help outranks image.
	assert.Equal(t, CategoryGreeting, Classify("hey, any events this week?"))
	assert.Equal(t, CategoryHelp, Classify("help me generate an image"))
}

func TestFallbackDeterministic(t *testing.T) {
	for _, msg := range []string{"hello", "tell me about hackathons", "xyzzy", "thanks!"} {
		first := Fallback(msg)
		assert.NotEmpty(t, first)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, Fallback(msg), "message %q", msg)
		}
	}
}

func TestFallbackIgnoresCaseAndPadding(t *testing.T) {
	assert.Equal(t, Fallback("hello"), Fallback("  HELLO "))
}

func TestFallbackUsesCategoryResponses(t *testing.T) {
	reply := Fallback("who created you")
	assert.Contains(t, reply, "EventPulse assistant")

	reply = Fallback("xyzzy")
	assert.Contains(t, defaultResponses, reply)
}

func TestPickEmptyCandidates(t *testing.T) {
	assert.Equal(t, defaultResponses[0], pick("anything", nil))
}
