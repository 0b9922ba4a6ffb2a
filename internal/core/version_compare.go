package core

import (
	"fmt"

	debversion "github.com/knqyf263/go-deb-version"

	pep440 "github.com/aquasecurity/go-pep440-version"
)

// systemVersionFamily names which foreign ordering a system package uses.
// apt packages follow dpkg's comparison rules; pip packages follow PEP 440.
type systemVersionFamily string

const (
	systemFamilyDeb   systemVersionFamily = "deb"
	systemFamilyPep440 systemVersionFamily = "pep440"
)

// compareSystemVersions orders two foreign version strings under family,
// mirroring the comparator Go package an apt- or pip-style resolver would
// reach for instead of reimplementing dpkg or PEP 440 ordering by hand.
func compareSystemVersions(family systemVersionFamily, a, b string) (int, error) {
	switch family {
	case systemFamilyPep440:
		va, err := pep440.Parse(a)
		if err != nil {
			return 0, fmt.Errorf("parse pep440 version %q: %w", a, err)
		}
		vb, err := pep440.Parse(b)
		if err != nil {
			return 0, fmt.Errorf("parse pep440 version %q: %w", b, err)
		}
		return va.Compare(vb), nil
	default:
		va, err := debversion.NewVersion(a)
		if err != nil {
			return 0, fmt.Errorf("parse deb version %q: %w", a, err)
		}
		vb, err := debversion.NewVersion(b)
		if err != nil {
			return 0, fmt.Errorf("parse deb version %q: %w", b, err)
		}
		return va.Compare(vb), nil
	}
}

// satisfiesSystemConstraint reports whether version meets op bound under
// family's comparator. op mirrors the operators apt and pip dependency
// specs use: >=, <=, =, <<, >>, ==, !=.
func satisfiesSystemConstraint(family systemVersionFamily, version, op, bound string) (bool, error) {
	if op == "" || bound == "" {
		return true, nil
	}
	cmp, err := compareSystemVersions(family, version, bound)
	if err != nil {
		return false, err
	}
	switch op {
	case ">=":
		return cmp >= 0, nil
	case "<=":
		return cmp <= 0, nil
	case ">>", ">":
		return cmp > 0, nil
	case "<<", "<":
		return cmp < 0, nil
	case "=", "==":
		return cmp == 0, nil
	case "!=":
		return cmp != 0, nil
	default:
		return false, fmt.Errorf("unsupported system constraint operator %q", op)
	}
}

func sortSystemVersions(family systemVersionFamily, versions []string) ([]string, error) {
	out := append([]string(nil), versions...)
	var sortErr error
	insertionSort(out, func(a, b string) bool {
		cmp, err := compareSystemVersions(family, a, b)
		if err != nil {
			sortErr = err
			return false
		}
		return cmp > 0
	})
	return out, sortErr
}

// insertionSort keeps system_solver.go's sorting independent of sort.Slice's
// inability to propagate a comparison error.
func insertionSort(items []string, less func(a, b string) bool) {
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && less(items[j], items[j-1]); j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
}
