package configcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/wikidict/internal/config"
)

func TestRunTest_Probe(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runTest(&out, true, config.Default(), ""))

	output := out.String()
	assert.Contains(t, output, "✓ Configuration is valid")
	assert.Contains(t, output, "✓ Found 1 {{Other Languages}} template(s)")
	assert.Contains(t, output, "✓ Extracted 1 entry")
	assert.Contains(t, output, "てすと\tテスト\t固有名詞")
}

func TestRunTest_UnmatchableTemplateName(t *testing.T) {
	cfg := config.Default()
	cfg.Template = "Lang=ja"

	var out bytes.Buffer
	err := runTest(&out, true, cfg, "")
	require.Error(t, err)
	assert.Contains(t, out.String(), "✗ No {{Lang=ja}} template found")
	assert.Contains(t, out.String(), "cannot be matched by the parser")
}

func TestRunTest_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Jobs = 0

	var out bytes.Buffer
	err := runTest(&out, true, cfg, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
	assert.Contains(t, out.String(), "wikidict init")
}

func TestRunTest_Page(t *testing.T) {
	page := filepath.Join(t.TempDir(), "page.wiki")
	require.NoError(t, os.WriteFile(page, []byte(`==Other Languages==
{{Other Languages
|ja = {{Rubi|稲妻|いなずま}}
|ja_rm = Inazuma
}}
{{Other Languages|en = Only English}}`), 0600))

	var out bytes.Buffer
	require.NoError(t, runTest(&out, true, config.Default(), page))

	output := out.String()
	assert.Contains(t, output, "✓ Found 2 {{Other Languages}} template(s)")
	assert.Contains(t, output, "4 dropped token(s)")
	assert.Contains(t, output, "いなずま\t稲妻\t固有名詞")
}

func TestRunTest_PageWithoutEntries(t *testing.T) {
	page := filepath.Join(t.TempDir(), "page.wiki")
	require.NoError(t, os.WriteFile(page, []byte(`{{Other Languages|en = Only English}}`), 0600))

	var out bytes.Buffer
	err := runTest(&out, true, config.Default(), page)
	require.Error(t, err)
	assert.Contains(t, out.String(), `"ja" and "ja_rm" missing or empty`)
}

func TestRunTest_MissingPage(t *testing.T) {
	err := runTest(&bytes.Buffer{}, true, config.Default(), filepath.Join(t.TempDir(), "missing.wiki"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read page")
}
