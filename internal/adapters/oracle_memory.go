package adapters

import (
	"context"
	"fmt"

	"depsolve/internal/ports"
	"depsolve/internal/types"
)

// MemoryOracle is an in-memory VersionOracle fixture: tests build one
// directly from literal Pubspec values instead of standing up a registry.
type MemoryOracle struct {
	byName map[string][]types.Pubspec
}

// NewMemoryOracle indexes specs by package name, sorted ascending by
// version on first lookup via manifestsFor's own sort, so insertion order
// here does not matter.
func NewMemoryOracle(specs ...types.Pubspec) *MemoryOracle {
	o := &MemoryOracle{byName: map[string][]types.Pubspec{}}
	for _, s := range specs {
		o.byName[s.ID.Ref.Name] = append(o.byName[s.ID.Ref.Name], s)
	}
	return o
}

func (o *MemoryOracle) Versions(_ context.Context, ref types.PackageRef) ([]types.Version, error) {
	specs, ok := o.byName[ref.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, ref.Name)
	}
	out := make([]types.Version, 0, len(specs))
	for _, s := range specs {
		out = append(out, s.ID.Version)
	}
	return out, nil
}

func (o *MemoryOracle) Pubspec(_ context.Context, id types.PackageId) (types.Pubspec, error) {
	for _, s := range o.byName[id.Ref.Name] {
		if s.ID.Version.Equal(id.Version) {
			return s, nil
		}
	}
	return types.Pubspec{}, fmt.Errorf("%w: %s@%s", ErrPackageNotFound, id.Ref.Name, id.Version.String())
}

var _ ports.VersionOracle = (*MemoryOracle)(nil)
