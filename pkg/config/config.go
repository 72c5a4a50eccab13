package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/paths"
	"github.com/arthur-debert/dotstrap/pkg/types"
)

// Well-known files inside the configuration repository
const (
	// ManifestName is the template manifest file
	ManifestName = "manifest.yaml"

	// ValuesName is the optional shared-values file
	ValuesName = "values.yaml"

	// SecretsName is the optional secrets declaration file
	SecretsName = "secrets/secrets.yaml"

	// DefaultBrewManifest is the optional Homebrew package spec
	DefaultBrewManifest = "brew/packages.yaml"
)

// SupportedManifestVersion gates forward compatibility: manifests
// declaring any other version fail before processing.
const SupportedManifestVersion = 1

// Manifest describes how templates are rendered and linked.
type Manifest struct {
	Version   int                   `yaml:"version"`
	Templates []types.ManifestEntry `yaml:"templates"`
}

// Validate checks every entry and rejects duplicate destinations.
// Two entries sharing a destination is a configuration error, caught
// before any rendering occurs.
func (m *Manifest) Validate() error {
	if m.Version != SupportedManifestVersion {
		return errors.Newf(errors.ErrManifestVersion,
			"manifest declares unsupported version %d (supported: %d)",
			m.Version, SupportedManifestVersion)
	}
	if len(m.Templates) == 0 {
		return errors.New(errors.ErrManifestEmpty, "manifest has no templates")
	}

	seen := make(map[string]string, len(m.Templates))
	for _, entry := range m.Templates {
		if err := paths.ValidateSource(entry.Source); err != nil {
			return err
		}
		if err := paths.ValidateDestination(entry.Destination); err != nil {
			return err
		}
		cleaned := filepath.Clean(entry.Destination)
		if prior, ok := seen[cleaned]; ok {
			return errors.Newf(errors.ErrManifestConflict,
				"entries %q and %q share destination %q",
				prior, entry.Source, entry.Destination)
		}
		seen[cleaned] = entry.Source
	}
	return nil
}

// LoadManifest reads and validates the manifest from the repository root.
func LoadManifest(fs types.FS, repoRoot string) (*Manifest, error) {
	path := filepath.Join(repoRoot, ManifestName)
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad,
			"failed to read manifest %s", path)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse,
			"failed to parse yaml file %s", path)
	}

	if err := manifest.Validate(); err != nil {
		return nil, err
	}
	return &manifest, nil
}

// LoadValues reads the shared values that seed the render context.
// A missing values file is not an error; a non-mapping document yields
// an empty value set.
func LoadValues(fs types.FS, repoRoot string) (map[string]interface{}, error) {
	path := filepath.Join(repoRoot, ValuesName)
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]interface{}{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigParse,
			"failed to read values %s", path)
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse,
			"failed to parse yaml file %s", path)
	}

	values, ok := raw.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}, nil
	}
	return values, nil
}

// LoadSecretSpecs reads the declared secrets. A missing declaration
// file means the run has no secrets.
func LoadSecretSpecs(fs types.FS, repoRoot string) (map[string]types.SecretSpec, error) {
	path := filepath.Join(repoRoot, SecretsName)
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]types.SecretSpec{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigParse,
			"failed to read secrets declaration %s", path)
	}

	var specs map[string]types.SecretSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse,
			"failed to parse yaml file %s", path)
	}

	for name, spec := range specs {
		if err := validateSecretSpec(name, spec); err != nil {
			return nil, err
		}
	}
	return specs, nil
}

func validateSecretSpec(name string, spec types.SecretSpec) error {
	switch spec.From {
	case types.SecretSourceEnv:
		if spec.Key == "" {
			return errors.Newf(errors.ErrConfigParse,
				"secret %q declares an env source without a key", name)
		}
		if spec.Path != "" {
			return errors.Newf(errors.ErrConfigParse,
				"secret %q declares both env and file fields", name)
		}
	case types.SecretSourceFile:
		if spec.Path == "" {
			return errors.Newf(errors.ErrConfigParse,
				"secret %q declares a file source without a path", name)
		}
		if spec.Key != "" {
			return errors.Newf(errors.ErrConfigParse,
				"secret %q declares both env and file fields", name)
		}
	default:
		return errors.Newf(errors.ErrConfigParse,
			"secret %q has unknown source %q (expected env or file)", name, spec.From)
	}
	return nil
}

// BrewSpec is the declarative list of Homebrew taps, formulae, and casks.
type BrewSpec struct {
	Taps     []string `yaml:"taps"`
	Formulae []string `yaml:"formulae"`
	Casks    []string `yaml:"casks"`
}

// Empty reports whether the spec declares nothing to install.
func (s *BrewSpec) Empty() bool {
	return len(s.Taps) == 0 && len(s.Formulae) == 0 && len(s.Casks) == 0
}

// LoadBrewSpec reads the optional Homebrew spec. A missing file
// returns nil without error.
func LoadBrewSpec(fs types.FS, repoRoot, manifestPath string) (*BrewSpec, error) {
	if manifestPath == "" {
		manifestPath = DefaultBrewManifest
	}
	path := filepath.Join(repoRoot, manifestPath)
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigParse,
			"failed to read brew spec %s", path)
	}

	var spec BrewSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse,
			"failed to parse yaml file %s", path)
	}
	return &spec, nil
}
