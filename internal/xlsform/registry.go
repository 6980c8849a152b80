// Package xlsform serializes extracted survey units into the two-sheet
// spreadsheet layout consumed by mobile data-collection platforms, and reads
// such workbooks back for verification.
package xlsform

import (
	"strconv"
	"strings"

	"github.com/xlsforge/xlsforge/internal/survey"
)

// ListRegistry assigns choice list names to select questions. Identity is
// structural: two questions with the same ordered, trimmed choice tuple
// share one physical list. Name assignment follows a strict precedence:
// an explicit name not yet claimed by a different tuple wins, then reuse of
// the name an identical tuple registered earlier, then a synthesized
// "<field>_list" name with a numeric suffix until unique.
type ListRegistry struct {
	byName  map[string][]string
	byTuple map[string]string
	order   []string
}

// NewListRegistry creates an empty registry.
func NewListRegistry() *ListRegistry {
	return &ListRegistry{
		byName:  make(map[string][]string),
		byTuple: make(map[string]string),
	}
}

// Assign registers the unit's choice tuple and returns the list name it
// resolved to. Units without choices resolve to the empty name.
func (r *ListRegistry) Assign(u survey.Unit) string {
	if !u.IsSelect() || len(u.Choices) == 0 {
		return ""
	}

	tuple := trimmedTuple(u.Choices)
	key := tupleKey(tuple)

	if u.ChoiceListName != "" {
		existing, taken := r.byName[u.ChoiceListName]
		if !taken {
			r.register(u.ChoiceListName, tuple, key)
			return u.ChoiceListName
		}
		if tupleKey(existing) == key {
			return u.ChoiceListName
		}
	}

	if name, ok := r.byTuple[key]; ok {
		return name
	}

	base := u.ChoiceListName
	if base == "" {
		base = u.FieldName + "_list"
	}
	name := base
	for n := 1; ; n++ {
		existing, taken := r.byName[name]
		if !taken {
			break
		}
		if tupleKey(existing) == key {
			return name
		}
		name = base + "_" + strconv.Itoa(n)
	}

	r.register(name, tuple, key)
	return name
}

// Lists returns the registered list names in first-registration order.
func (r *ListRegistry) Lists() []string {
	return r.order
}

// Choices returns the choice labels bound to a list name.
func (r *ListRegistry) Choices(name string) []string {
	return r.byName[name]
}

func (r *ListRegistry) register(name string, tuple []string, key string) {
	r.byName[name] = tuple
	if _, ok := r.byTuple[key]; !ok {
		r.byTuple[key] = name
	}
	r.order = append(r.order, name)
}

func trimmedTuple(choices []string) []string {
	tuple := make([]string, len(choices))
	for i, c := range choices {
		tuple[i] = strings.TrimSpace(c)
	}
	return tuple
}

// tupleKey builds the order-sensitive identity of a choice tuple. The unit
// separator cannot occur in document text.
func tupleKey(tuple []string) string {
	return strings.Join(tuple, "\x1f")
}
