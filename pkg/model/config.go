package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Solver carries the settings handed to the external solver. All fields are
// optional; zero values are omitted from the written configuration.
type Solver struct {
	Algorithm string  `toml:"algorithm,omitempty" validate:"omitempty,alphanum"`
	Saveat    float64 `toml:"saveat,omitempty" validate:"omitempty,gte=0"`
	Dt        float64 `toml:"dt,omitempty" validate:"omitempty,gt=0"`
	Abstol    float64 `toml:"abstol,omitempty" validate:"omitempty,gt=0"`
	Reltol    float64 `toml:"reltol,omitempty" validate:"omitempty,gt=0"`
	Maxiters  int     `toml:"maxiters,omitempty" validate:"omitempty,gte=1"`
}

// Config is the plain-text configuration half of a persisted bundle: the
// simulation time range, the relative path of the table container, and the
// solver settings.
type Config struct {
	Starttime time.Time `toml:"starttime" validate:"required"`
	Endtime   time.Time `toml:"endtime" validate:"required"`
	Database  string    `toml:"database"`
	Solver    *Solver   `toml:"solver,omitempty"`
}

// Validate checks the configuration before it is written.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			e := verrs[0]
			return fmt.Errorf("config: field %s failed rule %q", e.Field(), e.Tag())
		}
		return fmt.Errorf("config: %w", err)
	}
	if !c.Endtime.After(c.Starttime) {
		return fmt.Errorf("config: endtime %s must be after starttime %s",
			c.Endtime.Format(time.RFC3339), c.Starttime.Format(time.RFC3339))
	}
	return nil
}
