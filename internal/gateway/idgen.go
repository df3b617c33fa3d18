package gateway

import "time"

// RequestIDSource produces the wall-clock stamp used to synthesize checkout
// identifiers and throwaway customer emails. It is an interface so tests can
// pin the clock.
type RequestIDSource interface {
	Stamp() string
}

type systemIDSource struct{}

func (systemIDSource) Stamp() string {
	return time.Now().Format("20060102150405")
}

func SystemIDSource() RequestIDSource {
	return systemIDSource{}
}
