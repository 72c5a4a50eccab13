// Package secrets resolves declared secret references into plaintext
// values at run time. Values live only in memory for the duration of a
// run and are never persisted or logged.
package secrets

import (
	"os"
	"sort"
	"strings"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/logging"
	"github.com/arthur-debert/dotstrap/pkg/paths"
	"github.com/arthur-debert/dotstrap/pkg/types"
)

// Resolver resolves secret specs from the environment and from files
// inside the configuration repository.
type Resolver struct {
	fs    types.FS
	paths *paths.Paths

	// lookupEnv is swappable so tests never depend on process state.
	lookupEnv func(key string) (string, bool)
}

// NewResolver creates a resolver backed by the process environment.
func NewResolver(fs types.FS, p *paths.Paths) *Resolver {
	return &Resolver{fs: fs, paths: p, lookupEnv: os.LookupEnv}
}

// NewResolverWithEnv creates a resolver with an injected environment
// mapping, for tests.
func NewResolverWithEnv(fs types.FS, p *paths.Paths, env map[string]string) *Resolver {
	return &Resolver{
		fs:    fs,
		paths: p,
		lookupEnv: func(key string) (string, bool) {
			value, ok := env[key]
			return value, ok
		},
	}
}

// Resolve resolves every declared secret, all-or-nothing. A single
// unresolvable required secret invalidates the whole batch so templates
// never render with placeholder or blank values. Resolution order is
// deterministic (sorted by name) but secrets never depend on each other.
func (r *Resolver) Resolve(specs map[string]types.SecretSpec, repoRoot string) (map[string]types.ResolvedSecret, error) {
	logger := logging.GetLogger("secrets")

	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)

	resolved := make(map[string]types.ResolvedSecret, len(specs))
	for _, name := range names {
		spec := specs[name]
		switch spec.From {
		case types.SecretSourceEnv:
			value, ok := r.lookupEnv(spec.Key)
			if !ok {
				if spec.Optional {
					logger.Debug().
						Str("secret", name).
						Str("key", spec.Key).
						Msg("optional secret unset, skipping")
					continue
				}
				return nil, errors.Newf(errors.ErrMissingSecret,
					"secret %q is not available from environment variable %s",
					name, spec.Key).
					WithDetail("secret", name).
					WithDetail("key", spec.Key)
			}
			resolved[name] = types.ResolvedSecret{Name: name, Value: value}

		case types.SecretSourceFile:
			path := r.paths.Expand(spec.Path, repoRoot)
			data, err := r.fs.ReadFile(path)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrSecretFileRead,
					"secret %q is not readable from file %s", name, path).
					WithDetail("secret", name).
					WithDetail("path", path)
			}
			resolved[name] = types.ResolvedSecret{
				Name:  name,
				Value: trimTrailingNewline(string(data)),
			}

		default:
			return nil, errors.Newf(errors.ErrInvalidInput,
				"secret %q has unknown source %q", name, spec.From)
		}
	}

	// Log count only. Names would leak which credentials a repo uses;
	// values must never appear anywhere.
	logger.Debug().Int("count", len(resolved)).Msg("resolved secrets")
	return resolved, nil
}

// trimTrailingNewline removes a single trailing newline (LF or CRLF)
// so file secrets created with editors compare clean.
func trimTrailingNewline(value string) string {
	value = strings.TrimSuffix(value, "\n")
	return strings.TrimSuffix(value, "\r")
}
