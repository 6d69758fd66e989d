package mood

// Display is the presentation metadata the client shows next to a mood.
type Display struct {
	Label string `json:"label"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

var displays = [count]Display{
	Energetic:     {Label: "Energetic", Emoji: "⚡", Color: "#FF6B6B"},
	Calm:          {Label: "Calm", Emoji: "🌊", Color: "#4ECDC4"},
	Introspective: {Label: "Introspective", Emoji: "🌙", Color: "#A569BD"},
	Adventurous:   {Label: "Adventurous", Emoji: "🗺️", Color: "#F39C12"},
}

var fallbackDisplay = Display{Emoji: "🎵", Color: "#3BF664"}

// Display returns the metadata for m. Invalid values get the fallback display.
func (m Mood) Display() Display {
	if !m.Valid() {
		d := fallbackDisplay
		d.Label = m.String()
		return d
	}
	return displays[m]
}

// DisplayFor looks a mood up by name and falls back to a neutral display for
// names it does not recognise. Only presentation code should rely on the fallback.
func DisplayFor(name string) Display {
	m, err := Parse(name)
	if err != nil {
		d := fallbackDisplay
		d.Label = name
		return d
	}
	return m.Display()
}
