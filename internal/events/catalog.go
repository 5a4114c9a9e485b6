package events

// Event is a conference, hackathon or meetup listed by the API.
type Event struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// Catalog is the read-only event list loaded at process start.
type Catalog struct {
	events []Event
}

// NewCatalog returns the built-in event list.
func NewCatalog() *Catalog {
	return NewCatalogFrom(defaultEvents)
}

// NewCatalogFrom copies the given events into a new catalog.
func NewCatalogFrom(events []Event) *Catalog {
	return &Catalog{events: cloneEvents(events)}
}

// List returns a copy of every event, so callers cannot mutate the catalog.
func (c *Catalog) List() []Event {
	if c == nil {
		return []Event{}
	}
	return cloneEvents(c.events)
}

// Hackathons returns the events advertised on the hackathons endpoint.
// There is no separate hackathon feed yet, so this is the full list.
func (c *Catalog) Hackathons() []Event {
	return c.List()
}

func cloneEvents(in []Event) []Event {
	out := make([]Event, len(in))
	copy(out, in)
	return out
}

var defaultEvents = []Event{
	{
		ID:          1,
		Title:       "AI Conference",
		Location:    "Bangalore",
		Date:        "2025-09-15",
		Description: "Annual AI and Machine Learning conference featuring industry leaders and workshops.",
	},
	{
		ID:          2,
		Title:       "Tech Hackathon",
		Location:    "Delhi",
		Date:        "2025-10-20",
		Description: "48-hour coding competition for developers to build innovative solutions.",
	},
	{
		ID:          3,
		Title:       "Web3 Summit",
		Location:    "Hyderabad",
		Date:        "2025-11-05",
		Description: "Explore the future of decentralized technologies and blockchain.",
	},
	{
		ID:          4,
		Title:       "Startup Weekend",
		Location:    "Mumbai",
		Date:        "2025-12-10",
		Description: "A 54-hour event where participants build a complete business idea from scratch.",
	},
}
