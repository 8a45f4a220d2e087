package scale

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

type phase int

const (
	phaseIdle phase = iota
	phaseApproach
	phaseSettled
	phaseDepart
)

// division is the indicator resolution in kg; displayed weights snap to it.
const division = 10.0

// Simulator feeds the hub a plausible weighing cycle: an empty deck, a
// vehicle rolling on with the value climbing, the indicator settling on a
// stable weight, then the vehicle rolling off. It stands in for a serial
// indicator during development and demos.
type Simulator struct {
	Interval time.Duration
	MinGross float64
	MaxGross float64

	rng *rand.Rand
	log *logrus.Logger
}

func NewSimulator(log *logrus.Logger) *Simulator {
	return &Simulator{
		Interval: 500 * time.Millisecond,
		MinGross: 4000,
		MaxGross: 40000,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		log:      log,
	}
}

// Run publishes one reading per interval until ctx is cancelled.
func (s *Simulator) Run(ctx context.Context, publish func(Reading)) {
	s.log.WithField("interval", s.Interval).Info("scale simulator running")

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	var (
		ph     = phaseIdle
		weight float64
		target float64
		hold   = s.ticks(4, 10)
	)

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			var stable bool

			switch ph {
			case phaseIdle:
				weight = 0
				stable = true
				if hold--; hold <= 0 {
					target = snap(s.MinGross + s.rng.Float64()*(s.MaxGross-s.MinGross))
					ph = phaseApproach
				}

			case phaseApproach:
				// Axles land one after another, so the value climbs in
				// uneven jumps.
				weight += (target - weight) * (0.3 + 0.3*s.rng.Float64())
				weight = snap(weight + (s.rng.Float64()*2-1)*3*division)
				if math.Abs(target-weight) <= 2*division {
					weight = target
					ph = phaseSettled
					hold = s.ticks(6, 14)
				}

			case phaseSettled:
				weight = target
				stable = true
				if hold--; hold <= 0 {
					ph = phaseDepart
				}

			case phaseDepart:
				weight = snap(weight * (0.4 + 0.2*s.rng.Float64()))
				if weight <= 5*division {
					weight = 0
					ph = phaseIdle
					hold = s.ticks(4, 10)
				}
			}

			publish(Reading{Weight: weight, Stable: stable, At: now})
		}
	}
}

func (s *Simulator) ticks(min, max int) int {
	return min + s.rng.Intn(max-min+1)
}

func snap(w float64) float64 {
	if w < 0 {
		return 0
	}
	return math.Round(w/division) * division
}
