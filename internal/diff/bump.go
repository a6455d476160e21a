package diff

import (
	"fmt"
	"strings"
)

// Bump is the semantic version increment a set of changes calls for.
type Bump string

const (
	None  Bump = "none"
	Patch Bump = "patch"
	Minor Bump = "minor"
	Major Bump = "major"
)

// VersionBump maps breaking changes to a major bump, dangerous ones to a minor
// bump and anything else to a patch.
func VersionBump(changes []Change) Bump {
	if len(changes) == 0 {
		return None
	}
	bump := Patch
	for _, c := range changes {
		switch c.Criticality {
		case Breaking:
			return Major
		case Dangerous:
			bump = Minor
		}
	}
	return bump
}

// Message is the one line verdict printed for bump.
func (b Bump) Message() string {
	switch b {
	case None:
		return "No version bump needed"
	case Patch:
		return "Patch version bump needed"
	case Minor:
		return "Minor version bump needed"
	case Major:
		return "Detected breaking changes, major version bump needed"
	}
	return "Unknown state, please check your input with 'diff' tool."
}

var symbols = map[Criticality]string{
	Breaking:    "✖",
	Dangerous:   "⚠",
	NonBreaking: "✔",
}

// Format renders changes one per line, marked by criticality, followed by a
// summary line.
func Format(changes []Change) string {
	if len(changes) == 0 {
		return "No changes detected\n"
	}
	var b strings.Builder
	breaking := 0
	for _, c := range changes {
		if c.Criticality == Breaking {
			breaking++
		}
		fmt.Fprintf(&b, "%s  %s\n", symbols[c.Criticality], c.Message)
	}
	if breaking > 0 {
		fmt.Fprintf(&b, "\nDetected %d breaking changes\n", breaking)
	} else {
		b.WriteString("\nNo breaking changes detected\n")
	}
	return b.String()
}
