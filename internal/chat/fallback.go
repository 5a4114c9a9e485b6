package chat

import (
	"hash/crc32"
	"strings"
	"unicode"
)

// Category names a keyword group in the fallback rule table.
type Category string

const (
	CategoryGreeting  Category = "greeting"
	CategoryHelp      Category = "help"
	CategoryImage     Category = "image"
	CategoryMessaging Category = "messaging"
	CategoryEvents    Category = "events"
	CategoryGratitude Category = "gratitude"
	CategoryFarewell  Category = "farewell"
	CategoryQuestion  Category = "question"
	CategoryCreator   Category = "creator"
	CategoryPositive  Category = "positive"
	CategoryDefault   Category = "default"
)

type rule struct {
	category  Category
	keywords  []string
	responses []string
}

// rules is evaluated top to bottom; the first match wins.
var rules = []rule{
	{
		category: CategoryGreeting,
		keywords: []string{"hello", "hi", "hey", "hiya", "greetings", "namaste", "good morning", "good afternoon", "good evening"},
		responses: []string{
			"Hello! I can help you find events, generate images, or send SMS messages. What would you like to do?",
			"Hi there! Ask me about upcoming events, or try the Image Generation tab to create something new.",
			"Hey! Good to see you. Want to browse hackathons, make an image, or message your group?",
		},
	},
	{
		category: CategoryHelp,
		keywords: []string{"help", "assist", "assistance", "support", "what can you do", "how does this work"},
		responses: []string{
			"I can answer general questions, list upcoming events and hackathons, generate images from a text prompt, and send SMS messages to one or many contacts.",
			"Here is what I can do: show events, create images with the Image Generation tab, and send SMS updates through the SMS tab.",
		},
	},
	{
		category: CategoryImage,
		keywords: []string{"image", "images", "picture", "photo", "draw", "drawing", "generate", "art", "illustration"},
		responses: []string{
			"To create an image, open the Image Generation tab, describe what you want, and pick a size. Detailed prompts give the best results.",
			"Image generation is one tab away. Try a prompt like \"a sunset over mountains, watercolor style\".",
		},
	},
	{
		category: CategoryMessaging,
		keywords: []string{"sms", "text message", "send message", "message my", "phone", "notify", "broadcast"},
		responses: []string{
			"You can send an SMS from the SMS tab. Enter numbers in international format, starting with + and the country code.",
			"To message several people at once, add their numbers in +countrycode format and I will report delivery for each one.",
		},
	},
	{
		category: CategoryEvents,
		keywords: []string{"event", "events", "hackathon", "hackathons", "conference", "summit", "meetup", "workshop"},
		responses: []string{
			"Check the Events tab for upcoming conferences and hackathons, including the AI Conference in Bangalore and the Tech Hackathon in Delhi.",
			"There are several events coming up, from the Web3 Summit in Hyderabad to Startup Weekend in Mumbai. The Events tab has dates and details.",
		},
	},
	{
		category: CategoryGratitude,
		keywords: []string{"thanks", "thank you", "thx", "appreciate", "grateful"},
		responses: []string{
			"You're welcome! Let me know if there is anything else I can do.",
			"Happy to help!",
		},
	},
	{
		category: CategoryFarewell,
		keywords: []string{"bye", "goodbye", "see you", "see ya", "later", "good night"},
		responses: []string{
			"Goodbye! Come back any time.",
			"See you soon, and good luck at your next hackathon!",
		},
	},
	{
		category: CategoryQuestion,
		keywords: []string{"what", "how", "why", "when", "where", "which", "can you", "could you"},
		responses: []string{
			"That's a good question. I'm a lightweight assistant, so for detailed answers try rephrasing or ask about events, images, or SMS.",
			"I may not know everything, but I can help with events, image generation, and sending messages. What would you like to try?",
		},
	},
	{
		category: CategoryCreator,
		keywords: []string{"who made you", "who created you", "who built you", "who developed you", "your creator", "who are you", "your name"},
		responses: []string{
			"I'm the EventPulse assistant, built by the EventPulse team to help you discover events and stay in touch with your group.",
		},
	},
	{
		category: CategoryPositive,
		keywords: []string{"great", "awesome", "cool", "nice", "amazing", "love", "excellent", "perfect"},
		responses: []string{
			"Glad you like it! Anything else you want to explore?",
			"Awesome! Let me know what you'd like to do next.",
		},
	},
}

var defaultResponses = []string{
	"I'm a simple AI assistant. You can ask me general questions or generate images using the Image Generation tab above.",
	"I'm not sure I follow. Try asking about events, image generation, or sending an SMS.",
}

// Classify returns the first category whose keywords match the message.
func Classify(message string) Category {
	text := normalize(message)
	tokens := tokenize(text)
	for _, r := range rules {
		if matches(text, tokens, r.keywords) {
			return r.category
		}
	}
	return CategoryDefault
}

// Fallback returns the local canned reply for message. Identical input always
// yields the identical reply.
func Fallback(message string) string {
	text := normalize(message)
	candidates := defaultResponses
	category := Classify(text)
	for _, r := range rules {
		if r.category == category {
			candidates = r.responses
			break
		}
	}
	return pick(text, candidates)
}

// pick selects a candidate by CRC-32 of the normalized text.
func pick(text string, candidates []string) string {
	if len(candidates) == 0 {
		return defaultResponses[0]
	}
	idx := crc32.ChecksumIEEE([]byte(text)) % uint32(len(candidates))
	return candidates[idx]
}

func normalize(message string) string {
	return strings.ToLower(strings.TrimSpace(message))
}

func tokenize(text string) map[string]struct{} {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	tokens := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		tokens[f] = struct{}{}
		// "what's" also counts as "what".
		if stem, _, ok := strings.Cut(f, "'"); ok && stem != "" {
			tokens[stem] = struct{}{}
		}
	}
	return tokens
}

// matches checks single words against whole tokens and phrases as substrings,
// so "hi" does not fire on "this".
func matches(text string, tokens map[string]struct{}, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(kw, " ") {
			if strings.Contains(text, kw) {
				return true
			}
			continue
		}
		if _, ok := tokens[kw]; ok {
			return true
		}
	}
	return false
}
