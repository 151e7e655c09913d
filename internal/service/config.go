package service

import "time"

// Default pipeline limits.
const (
	DefaultMaxURLLength = 2048
	DefaultWorkers      = 4
)

// Config is the explicit configuration of a ResolutionService.
type Config struct {
	MaxURLLength   int           // MaxURLLength rejects longer inputs before any I/O.
	AllowedHosts   []string      // AllowedHosts are substrings one of which the input host must contain.
	ShortLinkHosts []string      // ShortLinkHosts get the deep pass over headers and fetched pages.
	DeepFetch      bool          // DeepFetch enables the short-link deep pass.
	Workers        int           // Workers bounds ResolveBatch concurrency.
	StageTimeout   time.Duration // StageTimeout bounds each network stage; zero means no extra bound.
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		MaxURLLength:   DefaultMaxURLLength,
		AllowedHosts:   []string{"google.", "goo.gl"},
		ShortLinkHosts: []string{"maps.app.goo.gl", "goo.gl", "g.co"},
		DeepFetch:      true,
		Workers:        DefaultWorkers,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MaxURLLength <= 0 {
		c.MaxURLLength = def.MaxURLLength
	}
	if len(c.AllowedHosts) == 0 {
		c.AllowedHosts = def.AllowedHosts
	}
	if c.ShortLinkHosts == nil {
		c.ShortLinkHosts = def.ShortLinkHosts
	}
	if c.Workers <= 0 {
		c.Workers = def.Workers
	}
	return c
}
