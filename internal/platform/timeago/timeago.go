package timeago

import (
	"fmt"
	"time"

	"skillsetu/internal/platform/clock"
)

var units = []struct {
	seconds int64
	suffix  string
}{
	{31536000, "y"},
	{2592000, "mo"},
	{604800, "w"},
	{86400, "d"},
	{3600, "h"},
	{60, "m"},
}

// Format renders the time elapsed from t to now using the largest whole unit,
// e.g. "3d ago". Anything under a minute, future instants included, is "just now".
func Format(t, now time.Time) string {
	elapsed := int64(now.Sub(t) / time.Second)
	for _, u := range units {
		if n := elapsed / u.seconds; n >= 1 {
			return fmt.Sprintf("%d%s ago", n, u.suffix)
		}
	}
	return "just now"
}

type Formatter struct {
	Clock clock.Clock
}

func (f Formatter) Since(t time.Time) string {
	c := f.Clock
	if c == nil {
		c = clock.SystemClock{}
	}
	return Format(t, c.Now())
}
