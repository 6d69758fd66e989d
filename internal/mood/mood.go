package mood

import (
	"errors"
	"fmt"
	"strings"
)

// Mood is one of the four fixed mood categories a quiz result is expressed in.
type Mood int

const (
	Energetic Mood = iota
	Calm
	Introspective
	Adventurous

	count
)

// All lists every mood in canonical order. Ties are broken by this order.
var All = [count]Mood{Energetic, Calm, Introspective, Adventurous}

var names = [count]string{
	Energetic:     "energetic",
	Calm:          "calm",
	Introspective: "introspective",
	Adventurous:   "adventurous",
}

var ErrUnknownMood = errors.New("unknown mood")

func (m Mood) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mood(%d)", int(m))
	}
	return names[m]
}

// Valid reports whether m is one of the four known moods.
func (m Mood) Valid() bool {
	return m >= 0 && m < count
}

// Parse resolves a mood name. Matching ignores case and surrounding space.
func Parse(name string) (Mood, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, m := range All {
		if names[m] == normalized {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMood, name)
}

func (m Mood) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMood, int(m))
	}
	return []byte(names[m]), nil
}

func (m *Mood) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
