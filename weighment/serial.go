package weighment

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"truckore/repository"
)

// SerialGenerator derives the next PREFIX-YYYY-NNN identifier from the last
// committed serial. Peek never consumes: the caller commits the value by
// persisting it together with the record that uses it, so an aborted
// operation leaves no gap.
type SerialGenerator struct {
	Prefix  string
	Padding int
	Start   int
	Repo    repository.SerialRepository
	Now     func() time.Time
	Log     *logrus.Logger
}

func NewSerialGenerator(prefix string, padding, start int, repo repository.SerialRepository, log *logrus.Logger) *SerialGenerator {
	return &SerialGenerator{
		Prefix:  prefix,
		Padding: padding,
		Start:   start,
		Repo:    repo,
		Now:     time.Now,
		Log:     log,
	}
}

// Peek returns the serial the next record will carry. Repeated calls without
// an intervening commit return the same value. The counter restarts at the
// configured start on the first issuance of a calendar year; unparseable
// persisted state restarts it too rather than failing the weighing.
func (g *SerialGenerator) Peek(ctx context.Context) (string, error) {
	last, err := g.Repo.LoadLast(ctx)
	if err != nil {
		return "", fmt.Errorf("load last serial: %w", err)
	}

	year := g.Now().Year()
	n := g.Start

	if last != "" {
		lastYear, lastN, ok := g.parse(last)
		switch {
		case !ok:
			g.Log.WithField("serial", last).Warn("unparseable serial state, counter reset")
		case lastYear == year:
			n = lastN + 1
		}
	}

	return g.Format(year, n), nil
}

// Format renders prefix, year and zero-padded counter.
func (g *SerialGenerator) Format(year, n int) string {
	return fmt.Sprintf("%s-%d-%0*d", g.Prefix, year, g.Padding, n)
}

// parse splits PREFIX-YYYY-NNN. Counters wider than the padding are legal:
// past the padded width the number simply keeps growing.
func (g *SerialGenerator) parse(s string) (int, int, bool) {
	rest, found := strings.CutPrefix(s, g.Prefix+"-")
	if !found {
		return 0, 0, false
	}
	parts := strings.SplitN(rest, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1 {
		return 0, 0, false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 1 {
		return 0, 0, false
	}
	return year, n, true
}
