package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/trackdrive/internal/driver"
	"github.com/san-kum/trackdrive/internal/vehicle"
)

// Case builds one independent run of a sweep. A positive Duration overrides
// the sweep's.
type Case struct {
	Name     string
	Duration float64
	Build    func() (*vehicle.Vehicle, driver.Driver, error)
}

// Sweep runs cases concurrently, one goroutine and one vehicle each.
// Metrics are built per case so no state is shared between runs.
type Sweep struct {
	cases   []Case
	metrics func() []Metric
}

func NewSweep(cases []Case, metrics func() []Metric) *Sweep {
	return &Sweep{cases: cases, metrics: metrics}
}

func (sw *Sweep) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(sw.cases))
	errs := make([]error, len(sw.cases))

	var wg sync.WaitGroup
	for i := range sw.cases {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			c := sw.cases[idx]
			v, d, err := c.Build()
			if err != nil {
				errs[idx] = fmt.Errorf("case %s: %w", c.Name, err)
				return
			}
			sim := New(v, d, nil)
			if sw.metrics != nil {
				for _, m := range sw.metrics() {
					sim.AddMetric(m)
				}
			}
			runCfg := cfg
			if c.Duration > 0 {
				runCfg.Duration = c.Duration
			}
			results[idx], errs[idx] = sim.Run(ctx, runCfg)
			if errs[idx] != nil {
				errs[idx] = fmt.Errorf("case %s: %w", c.Name, errs[idx])
			}
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}

	return results, nil
}
