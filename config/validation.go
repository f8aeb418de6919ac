package config

import (
	"fmt"

	"github.com/miralabs/mira/errors"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Backend.Mode {
	case "demo", "live":
	default:
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("backend.mode must be 'demo' or 'live', got '%s'", c.Backend.Mode)).
			WithDetail("mode", c.Backend.Mode)
	}

	if c.Backend.Mode == "live" && c.Backend.URL == "" {
		return errors.New(errors.ErrCodeConfigValidation,
			"backend.url is required when backend.mode is 'live'")
	}

	if c.Wizard.MaxIntents < c.Wizard.MinIntents {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("wizard.max_intents (%d) must be >= wizard.min_intents (%d)",
				c.Wizard.MaxIntents, c.Wizard.MinIntents)).
			WithDetail("min_intents", c.Wizard.MinIntents).
			WithDetail("max_intents", c.Wizard.MaxIntents)
	}

	if c.Wizard.MaxBio < c.Wizard.MinBio {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("wizard.max_bio (%d) must be >= wizard.min_bio (%d)",
				c.Wizard.MaxBio, c.Wizard.MinBio)).
			WithDetail("min_bio", c.Wizard.MinBio).
			WithDetail("max_bio", c.Wizard.MaxBio)
	}

	if c.Wizard.MinPhotos > c.Wizard.GridCapacity {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("wizard.min_photos (%d) cannot exceed wizard.grid_capacity (%d)",
				c.Wizard.MinPhotos, c.Wizard.GridCapacity))
	}

	return nil
}
