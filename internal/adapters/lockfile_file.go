package adapters

import (
	"os"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"depsolve/internal/ports"
	"depsolve/internal/types"
)

type lockfileEntry struct {
	Name       string `yaml:"name"`
	Source     string `yaml:"source"`
	Descriptor string `yaml:"descriptor,omitempty"`
	Version    string `yaml:"version"`
	Type       string `yaml:"type"`
}

type lockfileDoc struct {
	Root     string          `yaml:"root"`
	Packages []lockfileEntry `yaml:"packages"`
}

// LockfileFileAdapter reads and writes the solve lockfile as yaml, the
// module's equivalent of a pubspec.lock.
type LockfileFileAdapter struct{}

func NewLockfileFileAdapter() LockfileFileAdapter {
	return LockfileFileAdapter{}
}

func (a LockfileFileAdapter) Read(path string) (types.Lockfile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return types.Lockfile{}, nil
	}
	if err != nil {
		return types.Lockfile{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read lockfile").
			WithCause(err)
	}
	var doc lockfileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return types.Lockfile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse lockfile yaml").
			WithCause(err)
	}
	lock := types.Lockfile{Root: doc.Root}
	for _, e := range doc.Packages {
		ref := types.PackageRef{Name: e.Name, Source: types.SourceKind(e.Source), Description: e.Descriptor}
		version, _ := types.ParseVersion(e.Version)
		lock.Packages = append(lock.Packages, types.LockedPackage{
			Ref:        ref,
			Version:    version,
			RawVersion: e.Version,
			Type:       types.DependencyType(e.Type),
		})
	}
	return lock, nil
}

func (a LockfileFileAdapter) Write(path string, result types.SolveResult) error {
	doc := lockfileDoc{Root: result.Root}
	for _, id := range result.Packages {
		version := id.Version.String()
		if version == "" {
			version = id.RawVersion
		}
		doc.Packages = append(doc.Packages, lockfileEntry{
			Name:       id.Ref.Name,
			Source:     string(id.Ref.Source),
			Descriptor: id.Ref.Description,
			Version:    version,
			Type:       string(types.DependencyDirect),
		})
	}
	sort.Slice(doc.Packages, func(i, j int) bool { return doc.Packages[i].Name < doc.Packages[j].Name })

	data, err := yaml.Marshal(doc)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal lockfile").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write lockfile").
			WithCause(err)
	}
	return nil
}

var (
	_ ports.LockfileReaderPort = LockfileFileAdapter{}
	_ ports.LockfileWriterPort = LockfileFileAdapter{}
)
