package templating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/filesystem"
	"github.com/arthur-debert/dotstrap/pkg/types"
)

func TestBuildContext(t *testing.T) {
	values := map[string]interface{}{
		"name":  "Ada Lovelace",
		"email": "ada@example.com",
	}
	resolved := map[string]types.ResolvedSecret{
		"github_token": {Name: "github_token", Value: "abc123"},
	}

	context, err := BuildContext(values, resolved)
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", context["name"])
	assert.Equal(t, "ada@example.com", context["email"])

	secretValues, ok := context[types.SecretsContextKey].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "abc123", secretValues["github_token"])
}

func TestBuildContextEmptySecrets(t *testing.T) {
	context, err := BuildContext(map[string]interface{}{"a": 1}, nil)
	require.NoError(t, err)

	secretValues, ok := context[types.SecretsContextKey].(map[string]interface{})
	require.True(t, ok)
	assert.Empty(t, secretValues)
}

func TestBuildContextNamespaceCollision(t *testing.T) {
	values := map[string]interface{}{
		"secrets": map[string]interface{}{"rogue": "value"},
	}

	_, err := BuildContext(values, nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrNamespaceCollision, errors.GetErrorCode(err))
}

func TestRender(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/repo/gitconfig.tmpl",
		[]byte("[user]\n\tname = {{.name}}\n[github]\n\ttoken = {{.secrets.github_token}}\n"), 0644))

	context, err := BuildContext(
		map[string]interface{}{"name": "Ada Lovelace"},
		map[string]types.ResolvedSecret{
			"github_token": {Name: "github_token", Value: "abc123"},
		},
	)
	require.NoError(t, err)

	renderer := NewRenderer(fs)
	rendered, err := renderer.Render(types.ManifestEntry{
		Source:      "gitconfig.tmpl",
		Destination: ".gitconfig",
	}, "/repo", context)
	require.NoError(t, err)

	assert.Equal(t,
		"[user]\n\tname = Ada Lovelace\n[github]\n\ttoken = abc123\n",
		string(rendered))
}

func TestRenderMissingTemplate(t *testing.T) {
	fs := filesystem.NewMemory()
	renderer := NewRenderer(fs)

	_, err := renderer.Render(types.ManifestEntry{
		Source:      "missing.tmpl",
		Destination: ".missing",
	}, "/repo", types.RenderContext{})

	require.Error(t, err)
	assert.Equal(t, errors.ErrTemplateRead, errors.GetErrorCode(err))
	assert.Equal(t, "missing.tmpl", errors.GetErrorDetails(err)["source"])
}

func TestRenderSyntaxError(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/repo/bad.tmpl", []byte("{{.unclosed"), 0644))

	renderer := NewRenderer(fs)
	_, err := renderer.Render(types.ManifestEntry{
		Source:      "bad.tmpl",
		Destination: ".bad",
	}, "/repo", types.RenderContext{})

	require.Error(t, err)
	assert.Equal(t, errors.ErrRender, errors.GetErrorCode(err))
}

func TestRenderUnresolvedVariable(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/repo/gitconfig.tmpl",
		[]byte("token = {{.secrets.nope}}\n"), 0644))

	context, err := BuildContext(nil, nil)
	require.NoError(t, err)

	renderer := NewRenderer(fs)
	_, err = renderer.Render(types.ManifestEntry{
		Source:      "gitconfig.tmpl",
		Destination: ".gitconfig",
	}, "/repo", context)

	require.Error(t, err)
	assert.Equal(t, errors.ErrRender, errors.GetErrorCode(err))
	assert.Equal(t, ".gitconfig", errors.GetErrorDetails(err)["destination"])
}
