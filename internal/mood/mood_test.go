package mood

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Mood
	}{
		{"energetic", Energetic},
		{" Calm ", Calm},
		{"INTROSPECTIVE", Introspective},
		{"adventurous", Adventurous},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}

	_, err := Parse("sleepy")
	assert.ErrorIs(t, err, ErrUnknownMood)
}

func TestCanonicalOrder(t *testing.T) {
	got := make([]string, 0, len(All))
	for _, m := range All {
		got = append(got, m.String())
	}
	assert.Equal(t, []string{"energetic", "calm", "introspective", "adventurous"}, got)
}

func TestTextRoundTripInJSON(t *testing.T) {
	payload, err := json.Marshal(map[string]Mood{"dominantMood": Introspective})
	require.NoError(t, err)
	assert.JSONEq(t, `{"dominantMood":"introspective"}`, string(payload))

	var decoded struct {
		DominantMood Mood `json:"dominantMood"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"dominantMood":"calm"}`), &decoded))
	assert.Equal(t, Calm, decoded.DominantMood)

	assert.Error(t, json.Unmarshal([]byte(`{"dominantMood":"grumpy"}`), &decoded))

	_, err = Mood(9).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownMood)
}

func TestVectorValidate(t *testing.T) {
	assert.NoError(t, Vector{1, 0, 2, 0}.Validate())

	var weightErr *InvalidWeightError
	require.ErrorAs(t, Vector{0, -1, 0, 0}.Validate(), &weightErr)
	assert.Equal(t, Calm, weightErr.Mood)

	assert.Error(t, Vector{math.NaN(), 0, 0, 0}.Validate())
	assert.Error(t, Vector{0, 0, 0, math.Inf(1)}.Validate())
}

func TestVectorFromMap(t *testing.T) {
	v, err := FromMap(map[string]float64{"energetic": 2, "adventurous": 1})
	require.NoError(t, err)
	assert.Equal(t, Vector{2, 0, 0, 1}, v)
	assert.Equal(t, 3.0, v.Sum())
	assert.Equal(t, Vector{3, 0, 1, 1}, v.Add(Vector{1, 0, 1, 0}))

	_, err = FromMap(map[string]float64{"happy": 1})
	assert.ErrorIs(t, err, ErrUnknownMood)

	_, err = FromMap(map[string]float64{"calm": 1, "Calm": 3})
	assert.ErrorContains(t, err, "calm given more than once")
}

func TestDisplayFor(t *testing.T) {
	assert.Equal(t, "⚡", DisplayFor("energetic").Emoji)
	assert.Equal(t, "#4ECDC4", DisplayFor("Calm").Color)

	unknown := DisplayFor("melancholy")
	assert.Equal(t, "🎵", unknown.Emoji)
	assert.Equal(t, "#3BF664", unknown.Color)
	assert.Equal(t, "melancholy", unknown.Label)

	var invalid Mood = 9
	assert.NotPanics(t, func() { invalid.Display() })
	assert.Equal(t, "🎵", invalid.Display().Emoji)
	assert.Equal(t, "Mood(9)", invalid.Display().Label)
}
