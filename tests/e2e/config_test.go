//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jerus-org/gen-changelog/internal/testutil"
)

func TestE2E_ConfigPrintsDefaults(t *testing.T) {
	env := testutil.NewE2EEnv(t)

	result := env.Run("config")
	require.Equal(t, 0, result.ExitCode, "stderr: %s", result.Stderr)

	assert.Contains(t, result.Stdout, "display-sections = 'all'")
	assert.Contains(t, result.Stdout, "[groups.Added]")
	assert.Contains(t, result.Stdout, "[headings]")
	assert.False(t, env.FileExists("gen-changelog.toml"))
}

func TestE2E_ConfigSave(t *testing.T) {
	env := testutil.NewE2EEnv(t)

	result := env.Run("config", "--save")
	require.Equal(t, 0, result.ExitCode, "stderr: %s", result.Stderr)
	require.True(t, env.FileExists("gen-changelog.toml"))

	saved := env.ReadFile("gen-changelog.toml")
	assert.Contains(t, saved, "# Group tables define the third-level headings")
	assert.Contains(t, saved, "[groups.Added]")
}

func TestE2E_ConfigFileDrivesGeneration(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	env.InitGitRepo()
	env.CommitFile("a.txt", "a", "feat: first feature")
	env.WriteFile("gen-changelog.toml", "output = \"HISTORY.md\"\n")

	result := env.Run("generate")
	require.Equal(t, 0, result.ExitCode, "stderr: %s", result.Stderr)

	assert.True(t, env.FileExists("HISTORY.md"))
	assert.False(t, env.FileExists("CHANGELOG.md"))
}

func TestE2E_EnvOverridesConfig(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	env.InitGitRepo()
	env.CommitFile("a.txt", "a", "feat: first feature")
	env.WriteFile("gen-changelog.toml", "output = \"HISTORY.md\"\n")

	result := env.RunWithEnv([]string{"GEN_CHANGELOG_OUTPUT=NEWS.md"}, "generate")
	require.Equal(t, 0, result.ExitCode, "stderr: %s", result.Stderr)

	assert.True(t, env.FileExists("NEWS.md"))
	assert.False(t, env.FileExists("HISTORY.md"))
}
