package driver

import (
	"testing"

	"github.com/san-kum/trackdrive/internal/vehicle"
)

func snapAt(t, rpm float64) vehicle.Snapshot {
	return vehicle.Snapshot{
		Time:   t,
		Groups: []vehicle.GroupSample{{Name: "left", ReferenceRPM: rpm}},
	}
}

func TestConstant(t *testing.T) {
	d := NewConstant(0.5, 0.2)
	in := d.Command(vehicle.Snapshot{})
	if in.Throttle != 0.5 || in.Brake != 0.2 {
		t.Errorf("unexpected input %+v", in)
	}
}

func TestPulse(t *testing.T) {
	d := NewPulse(1, 0.8, 2)
	tests := []struct {
		time float64
		want vehicle.Input
	}{
		{0, vehicle.Input{Throttle: 1}},
		{1.99, vehicle.Input{Throttle: 1}},
		{2, vehicle.Input{Brake: 0.8}},
		{5, vehicle.Input{Brake: 0.8}},
	}
	for _, tt := range tests {
		if got := d.Command(snapAt(tt.time, 0)); got != tt.want {
			t.Errorf("t=%g: got %+v, want %+v", tt.time, got, tt.want)
		}
	}
}

func TestManual(t *testing.T) {
	m := NewManual()
	if got := m.Command(vehicle.Snapshot{}); got != (vehicle.Input{}) {
		t.Errorf("expected zero input, got %+v", got)
	}
	m.Set(vehicle.Input{Throttle: -1})
	if got := m.Command(vehicle.Snapshot{}); got.Throttle != -1 {
		t.Errorf("expected throttle -1, got %+v", got)
	}
}

func TestPID(t *testing.T) {
	d := NewPID(0.01, 0.001, 0, 100)

	in := d.Command(snapAt(0, 0))
	if in.Throttle != 1 {
		t.Errorf("expected saturated throttle below target, got %f", in.Throttle)
	}

	in = d.Command(snapAt(0.1, 150))
	if in.Throttle >= 0 {
		t.Errorf("expected negative throttle above target, got %f", in.Throttle)
	}

	in = d.Command(vehicle.Snapshot{Time: 0.2})
	if in != (vehicle.Input{}) {
		t.Errorf("expected zero input without groups, got %+v", in)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	names := r.List()
	want := []string{"constant", "idle", "pid", "pulse"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}

	d, err := r.Get("pulse", nil)
	if err != nil {
		t.Fatal(err)
	}
	p := d.(*Pulse)
	if p.Throttle != 1 || p.Brake != 1 || p.Until != 2 {
		t.Errorf("unexpected pulse defaults %+v", p)
	}

	if _, err := r.Get("autopilot", nil); err == nil {
		t.Error("expected error for unknown driver")
	}
}
