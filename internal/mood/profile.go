package mood

// Profile holds display metadata for an emotion.
type Profile struct {
	Emotion     Emotion
	Color       string // CSS hex color
	Image       string // Path under /static
	Description string
}

var profiles = map[Emotion]Profile{
	Joy: {
		Emotion:     Joy,
		Color:       "#FDEB4C",
		Image:       "/static/img/joy.svg",
		Description: "Bright, upbeat tracks with plenty of energy",
	},
	Sadness: {
		Emotion:     Sadness,
		Color:       "#446EB6",
		Image:       "/static/img/sadness.svg",
		Description: "Quiet, low-energy songs for heavier moments",
	},
	Anger: {
		Emotion:     Anger,
		Color:       "#F2A953",
		Image:       "/static/img/anger.svg",
		Description: "Loud, driving songs to burn it off",
	},
	Fear: {
		Emotion:     Fear,
		Color:       "#9C6ADE",
		Image:       "/static/img/fear.svg",
		Description: "Tense, restless tracks with a dark edge",
	},
	Disgust: {
		Emotion:     Disgust,
		Color:       "#2ecc71",
		Image:       "/static/img/disgust.svg",
		Description: "Sour, off-kilter songs that refuse to dance",
	},
}

// ProfileFor returns display metadata for e. Unknown emotions get a neutral
// white profile.
func ProfileFor(e Emotion) Profile {
	if p, ok := profiles[e]; ok {
		return p
	}
	return Profile{Emotion: e, Color: "#FFFFFF"}
}

// Profiles returns the profiles for all emotions in display order.
func Profiles() []Profile {
	out := make([]Profile, 0, len(all))
	for _, e := range all {
		out = append(out, profiles[e])
	}
	return out
}
