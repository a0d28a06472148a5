package condition

import (
	"fmt"
	"strings"

	"github.com/0xalexb/hjarta-extras/properties"
)

// ActiveProfilesKey is the property listing active profiles, either
// comma-separated or as an indexed list.
const ActiveProfilesKey = "profiles.active"

// DefaultProfile is considered active when no profile is configured.
const DefaultProfile = "default"

// OnProfile matches when any of the given profile expressions holds.
// An expression is a profile name, or "!name" for a profile that must not be active.
type OnProfile struct {
	expressions []string
}

// NewOnProfile returns a profile condition.
func NewOnProfile(expressions ...string) *OnProfile {
	return &OnProfile{expressions: expressions}
}

// Name describes the condition.
func (c *OnProfile) Name() string {
	return "OnProfile(" + strings.Join(c.expressions, ",") + ")"
}

// Evaluate checks the active profiles in the store.
func (c *OnProfile) Evaluate(store *properties.Store) Outcome {
	active := ActiveProfiles(store)

	for _, expression := range c.expressions {
		negated := strings.HasPrefix(expression, "!")
		_, isActive := active[strings.TrimPrefix(expression, "!")]

		if isActive != negated {
			return Match(fmt.Sprintf("profile expression %q holds", expression))
		}
	}

	return NotFound(fmt.Sprintf("no profile expression of %v holds for active profiles %v",
		c.expressions, sortedUnique(keys(active))))
}

// ActiveProfiles collects the active profiles from the store.
func ActiveProfiles(store *properties.Store) map[string]struct{} {
	active := map[string]struct{}{}

	if store != nil {
		for _, profile := range strings.Split(store.String(ActiveProfilesKey, ""), ",") {
			addProfile(active, profile)
		}

		for _, profile := range store.Strings(ActiveProfilesKey) {
			addProfile(active, profile)
		}
	}

	if len(active) == 0 {
		active[DefaultProfile] = struct{}{}
	}

	return active
}

func addProfile(active map[string]struct{}, profile string) {
	profile = strings.TrimSpace(profile)
	if profile != "" {
		active[profile] = struct{}{}
	}
}

func keys(set map[string]struct{}) []string {
	items := make([]string, 0, len(set))
	for item := range set {
		items = append(items, item)
	}

	return items
}
