// Package featureflags evaluates runtime feature flags from configuration.
package featureflags

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// flagValue is a parsed flag: either a hard on/off or a rollout percentage.
type flagValue struct {
	on      bool
	rollout int
	isPct   bool
}

// Manager evaluates feature flags defined in a simple key=value list.
// Example: "event_sharing=on,new_feed=25%,legacy_profile=off"
type Manager struct {
	flags map[string]flagValue
}

// NewManager creates a feature-flag manager from a comma-separated config
// string. Malformed entries are dropped.
func NewManager(raw string) *Manager {
	flags := make(map[string]flagValue)

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := normalize(parts[0])
		if key == "" {
			continue
		}
		if value, ok := parseValue(normalize(parts[1])); ok {
			flags[key] = value
		}
	}

	return &Manager{flags: flags}
}

// parseValue accepts on/true/1, off/false/0, and N% rollouts.
func parseValue(s string) (flagValue, bool) {
	switch s {
	case "on", "true", "1":
		return flagValue{on: true}, true
	case "off", "false", "0":
		return flagValue{}, true
	}

	if strings.HasSuffix(s, "%") {
		pct, err := strconv.Atoi(strings.TrimSuffix(s, "%"))
		if err != nil {
			return flagValue{}, false
		}
		switch {
		case pct <= 0:
			return flagValue{}, true
		case pct >= 100:
			return flagValue{on: true}, true
		}
		return flagValue{rollout: pct, isPct: true}, true
	}

	return flagValue{}, false
}

// Enabled returns whether a flag is enabled for a given user. Percentage
// rollouts bucket users deterministically, so a user keeps the same answer
// across requests. Anonymous callers (userID 0) never join a rollout.
func (m *Manager) Enabled(name string, userID uint) bool {
	if m == nil {
		return false
	}

	value, ok := m.flags[normalize(name)]
	if !ok {
		return false
	}
	if value.isPct {
		if userID == 0 {
			return false
		}
		return rolloutBucket(name, userID) < value.rollout
	}
	return value.on
}

// Snapshot returns evaluated flag status for one user.
func (m *Manager) Snapshot(userID uint) map[string]bool {
	out := make(map[string]bool, len(m.flags))
	for name := range m.flags {
		out[name] = m.Enabled(name, userID)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func rolloutBucket(name string, userID uint) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(fmt.Sprintf("%s:%d", normalize(name), userID)))
	return int(h.Sum32() % 100)
}
