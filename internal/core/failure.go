package core

import (
	"fmt"
	"strings"
)

// Explain renders the cause DAG behind a conflict as a numbered proof: each
// line either states a fact or derives one from earlier lines. An
// incompatibility only gets its own number when a later line cites it more
// than once; a derivation cited exactly once is folded straight into its
// sole citer's line instead of cluttering the proof with a one-off number.
// Package refs only spell out their source/description when two
// incompatibilities in the proof share a name but differ there.
func Explain(root *Clause) []string {
	order := topoOrder(root)
	refCount := map[*Clause]int{}
	for _, c := range order {
		countCause(refCount, c.Cause1)
		countCause(refCount, c.Cause2)
	}
	ambiguous := ambiguousNames(order)

	numbers := map[*Clause]int{}
	lines := make([]string, 0, len(order)+1)
	for _, c := range order {
		if c != root && refCount[c] < 2 {
			continue
		}
		numbers[c] = len(lines) + 1
		lines = append(lines, renderLine(c, numbers, ambiguous))
	}
	lines = append(lines, "So, version solving failed.")
	return wrapNumbered(lines, 78)
}

func countCause(refCount map[*Clause]int, c *Clause) {
	if c == nil {
		return
	}
	refCount[c]++
}

func topoOrder(root *Clause) []*Clause {
	visited := map[*Clause]bool{}
	var order []*Clause
	var visit func(c *Clause)
	visit = func(c *Clause) {
		if c == nil || visited[c] {
			return
		}
		visited[c] = true
		visit(c.Cause1)
		visit(c.Cause2)
		order = append(order, c)
	}
	visit(root)
	return order
}

// ambiguousNames finds package names that appear under more than one
// distinct (source, description) across the proof, the only case where a
// term needs to spell those out to stay unambiguous.
func ambiguousNames(order []*Clause) map[string]bool {
	variants := map[string]map[string]bool{}
	for _, c := range order {
		for _, t := range c.Terms {
			key := string(t.Ref.Source) + "|" + t.Ref.Description
			if variants[t.Ref.Name] == nil {
				variants[t.Ref.Name] = map[string]bool{}
			}
			variants[t.Ref.Name][key] = true
		}
	}
	ambiguous := map[string]bool{}
	for name, seen := range variants {
		if len(seen) > 1 {
			ambiguous[name] = true
		}
	}
	return ambiguous
}

// renderLine is c's own line: its cause references, numbered or inlined,
// followed by its description.
func renderLine(c *Clause, numbers map[*Clause]int, ambiguous map[string]bool) string {
	line := causePrefix(c, numbers, ambiguous) + describeKind(c, ambiguous)
	if c.Comment != "" {
		line += " (" + c.Comment + ")"
	}
	return line
}

func causePrefix(c *Clause, numbers map[*Clause]int, ambiguous map[string]bool) string {
	var parts []string
	if c.Cause1 != nil {
		parts = append(parts, causeText(c.Cause1, numbers, ambiguous))
	}
	if c.Cause2 != nil {
		parts = append(parts, causeText(c.Cause2, numbers, ambiguous))
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return "Because " + parts[0] + ", "
	default:
		return "Because " + strings.Join(parts, " and ") + ", "
	}
}

// causeText is how c reads when cited as another clause's cause: a bare
// "(n)" reference when c has its own numbered line, or c's own rendering
// folded in directly when this is its only citation in the whole proof.
func causeText(c *Clause, numbers map[*Clause]int, ambiguous map[string]bool) string {
	if n, ok := numbers[c]; ok {
		return fmt.Sprintf("(%d)", n)
	}
	return strings.TrimSuffix(renderLine(c, numbers, ambiguous), ".")
}

func describeKind(c *Clause, ambiguous map[string]bool) string {
	switch c.Kind {
	case ClauseRequirement, ClauseDependency:
		if len(c.Terms) == 2 {
			from := c.Terms[0].Negate()
			to := c.Terms[1]
			return fmt.Sprintf("%s requires %s.", from.describe(ambiguous[from.Ref.Name]), to.describe(ambiguous[to.Ref.Name]))
		}
	case ClauseProhibition:
		if len(c.Terms) == 1 {
			t := c.Terms[0].Negate()
			return fmt.Sprintf("%s is not allowed.", t.describe(ambiguous[t.Ref.Name]))
		}
		if len(c.Terms) == 2 {
			a := c.Terms[0].Negate()
			b := c.Terms[1].Negate()
			return fmt.Sprintf("%s and %s cannot be used together.", a.describe(ambiguous[a.Ref.Name]), b.describe(ambiguous[b.Ref.Name]))
		}
	case ClauseNoVersions:
		if len(c.Terms) == 1 {
			t := c.Terms[0].Negate()
			return fmt.Sprintf("no version of %s satisfies %s.", c.Terms[0].Ref.Name, t.describe(ambiguous[t.Ref.Name]))
		}
	case ClauseLearned:
		names := make([]string, 0, len(c.Terms))
		for _, t := range c.Terms {
			name := t.Ref.Name
			if ambiguous[name] {
				name = t.Ref.String()
			}
			names = append(names, name)
		}
		return fmt.Sprintf("%s cannot be selected together.", strings.Join(names, ", "))
	}
	return c.String()
}

func wrapNumbered(lines []string, width int) []string {
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		out = append(out, strings.Join(wrapOne(fmt.Sprintf("%d. %s", i+1, line), width), "\n"))
	}
	return out
}

func wrapOne(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var out []string
	cur := words[0]
	for _, w := range words[1:] {
		if len(cur)+1+len(w) > width {
			out = append(out, cur)
			cur = "  " + w
			continue
		}
		cur += " " + w
	}
	out = append(out, cur)
	return out
}
