package atlas

// GroupName labels an atlas group by where its centroid falls on the
// energy/valence plane. Energy above 0.6 counts as high and valence above
// 0.5 as positive:
//
//	high energy, positive    "Upbeat Party"
//	high energy, negative    "Intense & Dark"
//	low energy, positive     "Chill & Happy"
//	low energy, negative     "Reflective & Melancholy"
//
// Groups with mean acousticness above 0.6 get an " (Acoustic)" suffix.
func GroupName(centroid map[string]float64) string {
	name := quadrantNames[quadrantOf(centroid)]
	if centroid["acousticness"] > acousticThreshold {
		name += " (Acoustic)"
	}
	return name
}

// Describe returns a one-line description of a centroid's quadrant.
func Describe(centroid map[string]float64) string {
	return quadrantDescriptions[quadrantOf(centroid)]
}

const (
	highEnergyThreshold      = 0.6
	positiveValenceThreshold = 0.5
	acousticThreshold        = 0.6
)

// quadrant is (high energy, positive valence).
type quadrant [2]bool

func quadrantOf(centroid map[string]float64) quadrant {
	return quadrant{
		centroid["energy"] > highEnergyThreshold,
		centroid["valence"] > positiveValenceThreshold,
	}
}

var quadrantNames = map[quadrant]string{
	{true, true}:   "Upbeat Party",
	{true, false}:  "Intense & Dark",
	{false, true}:  "Chill & Happy",
	{false, false}: "Reflective & Melancholy",
}

var quadrantDescriptions = map[quadrant]string{
	{true, true}:   "High-energy, positive vibes - perfect for dancing and celebrations",
	{true, false}:  "Intense, driving energy with darker emotional tones",
	{false, true}:  "Relaxed and uplifting - great for unwinding",
	{false, false}: "Contemplative and introspective - ideal for quiet moments",
}
