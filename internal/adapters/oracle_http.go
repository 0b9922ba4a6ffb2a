package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"depsolve/internal/ports"
	"depsolve/internal/types"
)

// registryVersionsResponse is the JSON shape a registry HTTP endpoint
// returns for GET /packages/{name}.
type registryVersionsResponse struct {
	Versions []string `json:"versions"`
}

// registryPubspecResponse is the JSON shape for GET /packages/{name}/{version}.
type registryPubspecResponse struct {
	Dependencies map[string]string `json:"dependencies"`
	Environment  map[string]string `json:"environment"`
}

// RegistryHTTPOracle talks to a JSON registry endpoint over HTTP, the
// module's equivalent of pub.dev's package API.
type RegistryHTTPOracle struct {
	BaseURL string
	Client  *http.Client
}

func NewRegistryHTTPOracle(baseURL string) *RegistryHTTPOracle {
	return &RegistryHTTPOracle{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (a *RegistryHTTPOracle) Versions(ctx context.Context, ref types.PackageRef) ([]types.Version, error) {
	endpoint := fmt.Sprintf("%s/packages/%s", a.BaseURL, url.PathEscape(ref.Name))
	var body registryVersionsResponse
	if err := a.getJSON(ctx, endpoint, &body); err != nil {
		return nil, err
	}
	out := make([]types.Version, 0, len(body.Versions))
	for _, raw := range body.Versions {
		v, err := types.ParseVersion(raw)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("registry returned invalid version for " + ref.Name).
				WithCause(err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (a *RegistryHTTPOracle) Pubspec(ctx context.Context, id types.PackageId) (types.Pubspec, error) {
	endpoint := fmt.Sprintf("%s/packages/%s/%s", a.BaseURL, url.PathEscape(id.Ref.Name), url.PathEscape(id.Version.String()))
	var body registryPubspecResponse
	if err := a.getJSON(ctx, endpoint, &body); err != nil {
		return types.Pubspec{}, err
	}
	spec := types.Pubspec{ID: id}
	for name, constraintStr := range body.Dependencies {
		constraint, err := types.ParseConstraint(constraintStr)
		if err != nil {
			return types.Pubspec{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid constraint for %s's dependency %s", id.Ref.Name, name)).
				WithCause(err)
		}
		spec.Dependencies = append(spec.Dependencies, types.PackageDep{
			Ref:        types.PackageRef{Name: name, Source: types.SourceHosted},
			Constraint: constraint,
			Type:       types.DependencyDirect,
		})
	}
	if runtime, ok := body.Environment["runtime"]; ok {
		constraint, err := types.ParseConstraint(runtime)
		if err != nil {
			return types.Pubspec{}, err
		}
		spec.RuntimeSDKConstraint = constraint
	}
	if platform, ok := body.Environment["platform"]; ok {
		constraint, err := types.ParseConstraint(platform)
		if err != nil {
			return types.Pubspec{}, err
		}
		spec.PlatformSDKConstraint = constraint
		spec.HasPlatformSDKConstraint = true
	}
	return spec, nil
}

func (a *RegistryHTTPOracle) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to build registry request").
			WithCause(err)
	}
	resp, err := a.Client.Do(req)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("registry request failed").
			WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrPackageNotFound, endpoint)
	}
	if resp.StatusCode != http.StatusOK {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("registry returned status %d for %s", resp.StatusCode, endpoint))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to decode registry response").
			WithCause(err)
	}
	return nil
}

var _ ports.VersionOracle = (*RegistryHTTPOracle)(nil)
