package types

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseConstraint parses a pub-style constraint expression into a
// VersionConstraint. Supported forms, combinable with "||" for a union and
// whitespace for an intersection within one clause:
//
//	"any" / "*"        -> Any()
//	"1.2.3"            -> Exact(1.2.3)
//	">=1.2.0 <2.0.0"   -> the half-open range [1.2.0, 2.0.0)
//	"^1.2.3"           -> [1.2.3, 2.0.0), or [0.2.3, 0.3.0) below 1.0.0
//	"~1.2.3"           -> [1.2.3, 1.3.0)
func ParseConstraint(s string) (VersionConstraint, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "any" || s == "*" {
		return Any(), nil
	}
	var ranges []VersionRange
	for _, clause := range strings.Split(s, "||") {
		r, err := parseConstraintClause(strings.TrimSpace(clause))
		if err != nil {
			return VersionConstraint{}, err
		}
		ranges = append(ranges, r)
	}
	return NewConstraint(ranges...), nil
}

func parseConstraintClause(clause string) (VersionRange, error) {
	fields := strings.Fields(clause)
	if len(fields) == 0 {
		return VersionRange{}, fmt.Errorf("empty constraint clause")
	}
	if len(fields) == 1 {
		if r, ok, err := parseSugaredConstraint(fields[0]); ok {
			return r, err
		}
	}
	result := AnyRange()
	for _, field := range fields {
		r, err := parseComparison(field)
		if err != nil {
			return VersionRange{}, err
		}
		combined, ok := result.Intersect(r)
		if !ok {
			return VersionRange{}, fmt.Errorf("constraint clause %q admits no version", clause)
		}
		result = combined
	}
	return result, nil
}

// parseSugaredConstraint handles the single-token forms: a bare version
// (exact), "^version" (caret), and "~version" (tilde).
func parseSugaredConstraint(token string) (VersionRange, bool, error) {
	switch {
	case strings.HasPrefix(token, "^"):
		v, err := ParseVersion(strings.TrimPrefix(token, "^"))
		if err != nil {
			return VersionRange{}, true, err
		}
		return caretRange(v), true, nil
	case strings.HasPrefix(token, "~"):
		v, err := ParseVersion(strings.TrimPrefix(token, "~"))
		if err != nil {
			return VersionRange{}, true, err
		}
		return tildeRange(v), true, nil
	case strings.HasPrefix(token, ">") || strings.HasPrefix(token, "<") || strings.HasPrefix(token, "="):
		return VersionRange{}, false, nil
	default:
		v, err := ParseVersion(token)
		if err != nil {
			return VersionRange{}, true, err
		}
		return ExactRange(v), true, nil
	}
}

func parseComparison(token string) (VersionRange, error) {
	ops := []string{">=", "<=", "==", "=", ">", "<"}
	for _, op := range ops {
		if strings.HasPrefix(token, op) {
			v, err := ParseVersion(strings.TrimPrefix(token, op))
			if err != nil {
				return VersionRange{}, err
			}
			switch op {
			case ">=":
				return AtLeast(v), nil
			case "<=":
				return VersionRange{Min: nil, Max: &v, IncludeMax: true}, nil
			case ">":
				return VersionRange{Min: &v, IncludeMin: false}, nil
			case "<":
				return LessThan(v), nil
			case "=", "==":
				return ExactRange(v), nil
			}
		}
	}
	return VersionRange{}, fmt.Errorf("unrecognized constraint token %q", token)
}

// caretRange mirrors semver caret semantics: the next breaking change is the
// first increment of the leftmost nonzero component.
func caretRange(v Version) VersionRange {
	major, minor, patch := versionComponents(v)
	var upper Version
	switch {
	case major > 0:
		upper = MustParseVersion(strconv.Itoa(major+1) + ".0.0")
	case minor > 0:
		upper = MustParseVersion("0." + strconv.Itoa(minor+1) + ".0")
	default:
		upper = MustParseVersion("0.0." + strconv.Itoa(patch+1))
	}
	return VersionRange{Min: &v, IncludeMin: true, Max: &upper, IncludeMax: false}
}

// tildeRange allows patch-level changes only.
func tildeRange(v Version) VersionRange {
	major, minor, _ := versionComponents(v)
	upper := MustParseVersion(strconv.Itoa(major) + "." + strconv.Itoa(minor+1) + ".0")
	return VersionRange{Min: &v, IncludeMin: true, Max: &upper, IncludeMax: false}
}

func versionComponents(v Version) (int, int, int) {
	return int(v.inner.Major()), int(v.inner.Minor()), int(v.inner.Patch())
}
