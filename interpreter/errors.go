package interpreter

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// RuntimeError is the interpreter's own error kind (spec.md §7):
// missing/unknown helper lookups, the only failures this package
// raises on its own rather than propagating from a helper call
// verbatim. Helper name is carried so a caller can inspect it without
// re-parsing the message.
type RuntimeError struct {
	Kind    string
	Message string
	Helper  string
}

func (e *RuntimeError) Error() string { return e.Message }

// fuzzyThreshold bounds how far a suggested helper name may be (by the
// fuzzysearch library's Levenshtein-style distance) from the name that
// failed to resolve before the suggestion is considered too weak to
// surface. Only helper names containing every character of the failed
// name, in order, are ranked at all, so this catches a name typed with
// a letter or two missing ("ech" -> "each") without suggesting an
// unrelated helper for a genuinely made-up name.
const fuzzyThreshold = 3

// suggestHelper returns the closest registered helper name to name, or
// "" if none scores within fuzzyThreshold. Grounded on opal-lang-opal's
// runtime/planner.findClosestMatch, which applies the same
// fuzzy.RankFindFold call to suggest a command name on a lookup miss.
func suggestHelper(name string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	best := ranks[0]
	if best.Distance > fuzzyThreshold {
		return ""
	}
	return best.Target
}

// errMissingHelper builds the error a bare ambiguous mustache or a
// block/mustache helper invocation raises when name isn't registered
// (spec.md §4.3.2, matching `/Missing helper: "<name>"/`).
func errMissingHelper(name string, candidates []string) error {
	msg := fmt.Sprintf("Missing helper: %q", name)
	if suggestion := suggestHelper(name, candidates); suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
	}
	return &RuntimeError{Kind: "missing_helper", Message: msg, Helper: name}
}

// errUnknownHelper builds the error a sub-expression raises on a
// lookup miss (spec.md §4.3.5, matching `/unknown helper/i`) — a
// distinct message from errMissingHelper's, per spec.
func errUnknownHelper(name string, candidates []string) error {
	msg := fmt.Sprintf("Unknown helper: %s", name)
	if suggestion := suggestHelper(name, candidates); suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
	}
	return &RuntimeError{Kind: "unknown_helper", Message: msg, Helper: name}
}
