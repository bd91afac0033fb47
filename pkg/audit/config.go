package audit

import "github.com/axolutions/linkbio-dashboard/pkg/config"

const (
	SinkNone  = "none"
	SinkLog   = "log"
	SinkMongo = "mongo"
)

type Config struct {
	Sink       string `env:"AUDIT_SINK" envDefault:"log"`
	Collection string `env:"AUDIT_COLLECTION" envDefault:"audit_events"`
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	switch c.Sink {
	case SinkNone, SinkLog, SinkMongo:
		return nil
	}
	return config.Invalid("must be one of none, log, mongo", "AUDIT_SINK")
}
