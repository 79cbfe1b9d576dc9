package config

const (
	defaultAddr              = ":8080"
	defaultCatalogPath       = "dataset.csv"
	defaultClassifierMode    = ModeLexicon
	defaultClassifierURL     = "http://127.0.0.1:5000"
	defaultClassifierTimeout = 10
	defaultSongsSource       = SourceLocal
	defaultSongsLimit        = 20
	defaultAtlasClusters     = 5
	defaultAtlasMinSize      = 3
	defaultLogLevel          = "info"
	defaultLogFormat         = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			Addr: defaultAddr,
		},
		Catalog: Catalog{
			Path: defaultCatalogPath,
		},
		Classifier: Classifier{
			Mode:           defaultClassifierMode,
			BaseURL:        defaultClassifierURL,
			TimeoutSeconds: defaultClassifierTimeout,
		},
		Songs: Songs{
			Source: defaultSongsSource,
			Limit:  defaultSongsLimit,
		},
		Atlas: Atlas{
			Clusters: defaultAtlasClusters,
			MinSize:  defaultAtlasMinSize,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
