package adapters

import "depsolve/internal/ports"

// ErrPackageNotFound is the sentinel every VersionOracle implementation
// wraps when a package name has no entry in its registry at all (distinct
// from a package existing but no version satisfying a constraint, which the
// solver itself reports as a learned prohibition). It aliases
// ports.ErrPackageNotFound so core can recognize it without importing
// adapters.
var ErrPackageNotFound = ports.ErrPackageNotFound
