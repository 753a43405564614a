package config

import (
	"fmt"
	"log/slog"

	"github.com/san-kum/trackdrive/internal/driver"
	"github.com/san-kum/trackdrive/internal/vehicle"
)

// Build validates the scenario and assembles its vehicle and driver. A nil
// registry uses driver.NewRegistry.
func (c *Config) Build(log *slog.Logger, drivers *driver.Registry) (*vehicle.Vehicle, driver.Driver, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	if drivers == nil {
		drivers = driver.NewRegistry()
	}
	d, err := drivers.Get(c.Driver.Name, c.Driver.Params)
	if err != nil {
		return nil, nil, fmt.Errorf("scenario %s: %w", c.Name, err)
	}
	v, err := vehicle.New(c.ToSpec(), c.BuildTerrain(), c.Dt, log)
	if err != nil {
		return nil, nil, fmt.Errorf("scenario %s: %w", c.Name, err)
	}
	return v, d, nil
}
