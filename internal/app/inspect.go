package app

import (
	"context"
	"sort"
)

// Inspect summarizes an existing lockfile for display.
func (s Service) Inspect(_ context.Context, req InspectRequest) (InspectResponse, error) {
	lock, err := s.LockReader.Read(req.LockfilePath)
	if err != nil {
		return InspectResponse{}, err
	}
	resp := InspectResponse{Root: lock.Root}
	for _, p := range lock.Packages {
		version := p.Version.String()
		if version == "" {
			version = p.RawVersion
		}
		resp.Packages = append(resp.Packages, InspectPackageSummary{
			Name:    p.Ref.Name,
			Source:  string(p.Ref.Source),
			Version: version,
			Type:    string(p.Type),
		})
	}
	sort.Slice(resp.Packages, func(i, j int) bool { return resp.Packages[i].Name < resp.Packages[j].Name })
	return resp, nil
}
