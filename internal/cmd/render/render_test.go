package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/wikidict/internal/config"
)

func TestRunRender(t *testing.T) {
	for _, v := range config.EnvVars {
		t.Setenv(v, "")
	}

	tests := []struct {
		name  string
		input string
		ruby  string
		strip bool
		want  string
	}{
		{"plain text", "hello", "", false, "hello\n"},
		{"ruby base text", "{{Rubi|雷電|らいでん}}将軍", "", false, "雷電将軍\n"},
		{"other templates dropped", "a{{Icon|x}}b", "", false, "ab\n"},
		{"custom ruby template", "{{Furigana|稲妻|いなずま}}", "Furigana", false, "稲妻\n"},
		{"strip references", " 雷電<ref>src</ref> ", "", true, "雷電\n"},
		{"strip tags", "<b>稲妻</b> city", "", true, "稲妻 city\n"},
		{"error node renders nothing", "a{{}}b", "", false, "ab\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runRender(&renderOptions{
				input:      "-",
				ruby:       tt.ruby,
				strip:      tt.strip,
				configPath: filepath.Join(t.TempDir(), "config.yml"),
				stdin:      strings.NewReader(tt.input),
				stdout:     &out,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRunRender_RubyFromConfig(t *testing.T) {
	for _, v := range config.EnvVars {
		t.Setenv(v, "")
	}
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, (&config.Config{RubyTemplate: "Furigana"}).Save(path))

	input := filepath.Join(t.TempDir(), "page.wiki")
	require.NoError(t, os.WriteFile(input, []byte("{{Furigana|稲妻|いなずま}}"), 0600))

	var out bytes.Buffer
	require.NoError(t, runRender(&renderOptions{input: input, configPath: path, stdout: &out}))
	assert.Equal(t, "稲妻\n", out.String())
}

func TestRunRender_MissingFile(t *testing.T) {
	err := runRender(&renderOptions{
		input:  filepath.Join(t.TempDir(), "missing.wiki"),
		ruby:   "Rubi",
		stdout: &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read input")
}
