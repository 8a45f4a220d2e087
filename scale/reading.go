package scale

import "time"

// Reading is one sample from the weight indicator. Stable turns true once
// the displayed value has settled; operators may only capture a stable
// reading into a weighment.
type Reading struct {
	Weight float64   `json:"weight"`
	Stable bool      `json:"stable"`
	At     time.Time `json:"at"`
}
