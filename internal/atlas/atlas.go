// Package atlas maps a song catalog into mood groups using k-means
// clustering over audio features.
package atlas

import (
	"fmt"
	"slices"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/justestif/moodify/internal/catalog"
	"github.com/justestif/moodify/internal/mood"
)

// Config holds clustering parameters.
type Config struct {
	Clusters int // Number of clusters to create (default: 5)
	MinSize  int // Minimum songs per group (smaller groups become outliers)
}

// DefaultConfig returns the recommended default configuration.
func DefaultConfig() Config {
	return Config{
		Clusters: 5,
		MinSize:  3,
	}
}

// Group is a cluster of songs with a similar feel.
type Group struct {
	Name     string             // Descriptive name: "Upbeat Party", "Chill & Happy (Acoustic)"
	Songs    []catalog.Song     // Members in catalog order
	Centroid map[string]float64 // Average feature values for this group
	Dominant mood.Emotion       // Emotion matching the most members, empty if none match
	Matches  int                // Members matching the dominant emotion
}

// Atlas is the result of clustering a catalog.
type Atlas struct {
	Groups   []Group
	Outliers []catalog.Song
}

// Total returns the number of songs in the atlas.
func (a Atlas) Total() int {
	n := len(a.Outliers)
	for _, g := range a.Groups {
		n += len(g.Songs)
	}
	return n
}

// songObservation wraps a song to implement clusters.Observation.
type songObservation struct {
	index  int
	coords clusters.Coordinates
}

func (o songObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o songObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// featureNames defines the audio features used for clustering.
var featureNames = []string{"energy", "valence", "danceability", "acousticness"}

// Build groups songs by audio feature similarity.
// With fewer songs than clusters, every song is an outlier.
func Build(songs []catalog.Song, cfg Config) (Atlas, error) {
	if len(songs) == 0 {
		return Atlas{}, nil
	}
	if cfg.Clusters <= 0 {
		cfg.Clusters = DefaultConfig().Clusters
	}

	if len(songs) < cfg.Clusters {
		return Atlas{Outliers: slices.Clone(songs)}, nil
	}

	var obs clusters.Observations
	for i := range songs {
		obs = append(obs, songObservation{index: i, coords: extractFeatures(songs[i])})
	}

	km := kmeans.New()
	result, err := km.Partition(obs, cfg.Clusters)
	if err != nil {
		return Atlas{}, fmt.Errorf("k-means partition: %w", err)
	}

	var atlas Atlas
	for _, cluster := range result {
		indexes := make([]int, 0, len(cluster.Observations))
		for _, o := range cluster.Observations {
			if so, ok := o.(songObservation); ok {
				indexes = append(indexes, so.index)
			}
		}
		slices.Sort(indexes)

		members := make([]catalog.Song, len(indexes))
		for i, idx := range indexes {
			members[i] = songs[idx]
		}

		if len(members) == 0 {
			continue
		}
		if len(members) < cfg.MinSize {
			atlas.Outliers = append(atlas.Outliers, members...)
			continue
		}

		centroid := make(map[string]float64, len(featureNames))
		for i, name := range featureNames {
			centroid[name] = cluster.Center[i]
		}

		dominant, matches := dominantEmotion(members)
		atlas.Groups = append(atlas.Groups, Group{
			Name:     GroupName(centroid),
			Songs:    members,
			Centroid: centroid,
			Dominant: dominant,
			Matches:  matches,
		})
	}

	// Largest groups first
	slices.SortStableFunc(atlas.Groups, func(a, b Group) int {
		return len(b.Songs) - len(a.Songs)
	})

	return atlas, nil
}

// extractFeatures extracts the clustering features as a coordinate vector.
func extractFeatures(s catalog.Song) clusters.Coordinates {
	return clusters.Coordinates{
		s.Energy,
		s.Valence,
		s.Danceability,
		s.Acousticness,
	}
}

// dominantEmotion returns the emotion whose predicate matches the most
// songs, ties going to the earlier emotion in mood.All() order.
func dominantEmotion(songs []catalog.Song) (mood.Emotion, int) {
	var best mood.Emotion
	bestCount := 0
	for _, e := range mood.All() {
		n := 0
		for _, s := range songs {
			if mood.Matches(e, s) {
				n++
			}
		}
		if n > bestCount {
			best, bestCount = e, n
		}
	}
	return best, bestCount
}
