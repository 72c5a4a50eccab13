// Package templating builds the render context and adapts the template
// engine to manifest entries.
package templating

import (
	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/types"
)

// BuildContext shallow-merges the shared values into the context root
// and inserts resolved secrets under the reserved "secrets" key.
//
// Shared values and secrets occupy disjoint namespaces: a shared value
// named "secrets" would silently shadow every secret reference, so it
// is rejected instead.
func BuildContext(values map[string]interface{}, resolved map[string]types.ResolvedSecret) (types.RenderContext, error) {
	if _, collides := values[types.SecretsContextKey]; collides {
		return nil, errors.Newf(errors.ErrNamespaceCollision,
			"shared values define reserved top-level key %q", types.SecretsContextKey)
	}

	context := make(types.RenderContext, len(values)+1)
	for key, value := range values {
		context[key] = value
	}

	secretValues := make(map[string]interface{}, len(resolved))
	for name, secret := range resolved {
		secretValues[name] = secret.Value
	}
	context[types.SecretsContextKey] = secretValues

	return context, nil
}
