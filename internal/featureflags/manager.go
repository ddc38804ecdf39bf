// Package featureflags evaluates rollout switches read from FEATURE_FLAGS.
package featureflags

import (
	"hash/fnv"
	"strconv"
	"strings"
)

// Flags read by the application.
const (
	// ExactRecency orders the feed by parsed label age instead of the
	// coarse min/h bucket heuristic.
	ExactRecency = "exact_recency"
	// FeedStream enables the websocket feed event stream.
	FeedStream = "feed_stream"
)

// defaults apply to known flags missing from the configuration.
var defaults = map[string]bool{
	ExactRecency: false,
	FeedStream:   true,
}

// rule is a parsed flag value: the share of subjects, 0 to 100, that get it.
type rule struct {
	raw     string
	percent int
}

// Manager evaluates feature flags defined in a simple key=value list.
// Example: "exact_recency=on,feed_stream=25%"
type Manager struct {
	rules map[string]rule
}

// NewManager parses a comma-separated flag list. Values are on/true/1,
// off/false/0 or a percentage; anything else is ignored.
func NewManager(raw string) *Manager {
	rules := make(map[string]rule)
	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		key, value = normalize(key), normalize(value)
		if key == "" {
			continue
		}
		if pct, ok := parsePercent(value); ok {
			rules[key] = rule{raw: value, percent: pct}
		}
	}
	return &Manager{rules: rules}
}

func parsePercent(value string) (int, bool) {
	switch value {
	case "on", "true", "1":
		return 100, true
	case "off", "false", "0":
		return 0, true
	}
	if !strings.HasSuffix(value, "%") {
		return 0, false
	}
	pct, err := strconv.Atoi(strings.TrimSuffix(value, "%"))
	if err != nil {
		return 0, false
	}
	return min(max(pct, 0), 100), true
}

// Enabled reports whether name is on for subject (a client id or remote
// address). Partial rollouts are deterministic per subject and need one.
func (m *Manager) Enabled(name, subject string) bool {
	name = normalize(name)
	var r rule
	var ok bool
	if m != nil {
		r, ok = m.rules[name]
	}
	if !ok {
		return defaults[name]
	}

	switch {
	case r.percent <= 0:
		return false
	case r.percent >= 100:
		return true
	case subject == "":
		return false
	default:
		return rolloutBucket(name, subject) < r.percent
	}
}

// Raw returns the configured values as written, normalized.
func (m *Manager) Raw() map[string]string {
	out := map[string]string{}
	if m == nil {
		return out
	}
	for k, r := range m.rules {
		out[k] = r.raw
	}
	return out
}

// Snapshot evaluates every known and configured flag for one subject.
func (m *Manager) Snapshot(subject string) map[string]bool {
	out := make(map[string]bool, len(defaults))
	for name := range defaults {
		out[name] = m.Enabled(name, subject)
	}
	if m != nil {
		for name := range m.rules {
			out[name] = m.Enabled(name, subject)
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func rolloutBucket(name, subject string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name + ":" + subject))
	return int(h.Sum32() % 100)
}
