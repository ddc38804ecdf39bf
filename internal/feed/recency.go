package feed

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Recency buckets derived from a relative-time label. Lower ranks first.
const (
	bucketMinutes = iota
	bucketHours
	bucketOther
)

// recencyBucket classifies a label such as "Il y a 15 min" by substring only:
// "min" before "h" before anything else. Magnitudes are not compared.
func recencyBucket(label string) int {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "min"):
		return bucketMinutes
	case strings.Contains(l, "h"):
		return bucketHours
	default:
		return bucketOther
	}
}

var ageRe = regexp.MustCompile(`(\d+)\s*(min|h|j)\b`)

// ParseAge reads the magnitude out of a relative-time label
// ("Il y a 45 min", "Il y a 2h", "Il y a 3 j").
func ParseAge(label string) (time.Duration, bool) {
	m := ageRe.FindStringSubmatch(strings.ToLower(label))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	switch m[2] {
	case "min":
		return time.Duration(n) * time.Minute, true
	case "h":
		return time.Duration(n) * time.Hour, true
	default:
		return time.Duration(n) * 24 * time.Hour, true
	}
}

// AgeLabel renders an age the way the feed labels posts. Anything under a
// minute is shown as one minute so it stays in the "min" bucket.
func AgeLabel(age time.Duration) string {
	switch {
	case age < time.Hour:
		mins := int(age / time.Minute)
		if mins < 1 {
			mins = 1
		}
		return "Il y a " + strconv.Itoa(mins) + " min"
	case age < 24*time.Hour:
		return "Il y a " + strconv.Itoa(int(age/time.Hour)) + "h"
	default:
		return "Il y a " + strconv.Itoa(int(age/(24*time.Hour))) + " j"
	}
}
