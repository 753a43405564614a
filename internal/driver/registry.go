package driver

import (
	"fmt"
	"sort"
)

type Registry struct {
	drivers map[string]func(map[string]float64) Driver
}

func NewRegistry() *Registry {
	r := &Registry{drivers: make(map[string]func(map[string]float64) Driver)}

	r.drivers["idle"] = func(map[string]float64) Driver { return NewConstant(0, 0) }
	r.drivers["constant"] = func(params map[string]float64) Driver {
		return NewConstant(params["throttle"], params["brake"])
	}
	r.drivers["pulse"] = func(params map[string]float64) Driver {
		until, ok := params["until"]
		if !ok {
			until = 2
		}
		brake, ok := params["brake"]
		if !ok {
			brake = 1
		}
		thr, ok := params["throttle"]
		if !ok {
			thr = 1
		}
		return NewPulse(thr, brake, until)
	}
	r.drivers["pid"] = func(params map[string]float64) Driver {
		return NewPID(params["kp"], params["ki"], params["kd"], params["target"])
	}
	return r
}

// Register adds or replaces a driver factory.
func (r *Registry) Register(name string, fn func(map[string]float64) Driver) {
	r.drivers[name] = fn
}

func (r *Registry) Get(name string, params map[string]float64) (Driver, error) {
	fn, ok := r.drivers[name]
	if !ok {
		return nil, fmt.Errorf("unknown driver: %s", name)
	}
	return fn(params), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.drivers))
	for name := range r.drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
