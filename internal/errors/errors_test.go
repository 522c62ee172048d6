package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatErrorPlain(t *testing.T) {
	tests := map[string]struct {
		err  *CLIError
		want []string
	}{
		"message and category": {
			err:  NewRepositoryError("no git repository found at ."),
			want: []string{"Error [Repository Error]: no git repository found at .\n"},
		},
		"remediation steps": {
			err: NewConfigError("invalid configuration",
				"Check the file for TOML syntax errors"),
			want: []string{
				"Error [Configuration Error]: invalid configuration\n",
				"To fix this:\n",
				"  • Check the file for TOML syntax errors\n",
			},
		},
		"usage line": {
			err: NewArgumentErrorWithUsage("invalid next version",
				"gen-changelog --next-version <major.minor.patch>"),
			want: []string{
				"Error [Argument Error]: invalid next version\n",
				"Usage: gen-changelog --next-version <major.minor.patch>\n",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out := FormatErrorPlain(tt.err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestFormatErrorNil(t *testing.T) {
	assert.Empty(t, FormatError(nil))
	assert.Empty(t, FormatErrorPlain(nil))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("boom")

	wrapped := WrapWithMessage(cause, Runtime, "changelog generation failed")
	require.NotNil(t, wrapped)
	assert.Equal(t, Runtime, wrapped.Category)
	assert.Equal(t, "changelog generation failed: boom", wrapped.Message)
	assert.ErrorIs(t, wrapped, cause)

	assert.Nil(t, Wrap(nil, Runtime))
}

func TestAsCLIError(t *testing.T) {
	cliErr := NewRuntimeError("it broke")
	assert.Equal(t, cliErr, AsCLIError(cliErr))
	assert.Nil(t, AsCLIError(stderrors.New("plain")))
}
