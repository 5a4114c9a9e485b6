package imagegen

import "strings"

const (
	DefaultPrompt = "A beautiful landscape"
	DefaultWidth  = 1024
	DefaultHeight = 1024
	DefaultSeed   = 42
)

// Request describes one text-to-image generation. Seed is a pointer so an
// explicit zero survives decoding; only an absent seed takes the default.
type Request struct {
	Prompt string `json:"prompt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Seed   *int   `json:"seed,omitempty"`
}

// Normalize fills in defaults for a blank prompt, non-positive dimensions and
// a missing seed. Any provided seed, including zero or negative, is kept.
func (r Request) Normalize() Request {
	r.Prompt = strings.TrimSpace(r.Prompt)
	if r.Prompt == "" {
		r.Prompt = DefaultPrompt
	}
	if r.Width <= 0 {
		r.Width = DefaultWidth
	}
	if r.Height <= 0 {
		r.Height = DefaultHeight
	}
	seed := r.SeedValue()
	r.Seed = &seed
	return r
}

// SeedValue returns the seed, or DefaultSeed when none was given.
func (r Request) SeedValue() int {
	if r.Seed == nil {
		return DefaultSeed
	}
	return *r.Seed
}
