package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ieee0824/ctcdecode/internal/cmdapp"
	"github.com/ieee0824/ctcdecode/internal/document"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRootCmd_DecodeWritesOnlyDocument(t *testing.T) {
	in := filepath.Join(t.TempDir(), "in.yaml")
	doc := "sequences:\n  - steps:\n      - [0.8, 0.1, 0.1]\n      - [0.1, 0.1, 0.8]\n      - [0.1, 0.8, 0.1]\n"
	require.NoError(t, os.WriteFile(in, []byte(doc), 0o644))
	logger, _ := test.NewNullLogger()
	cmdapp.Log = logger

	cmdapp.Config.Set("dictionary.alphabet", "ab")
	cmdapp.Config.Set("dictionary.path", "")
	cmdapp.Config.Set("dictionary.trie", "")
	cmdapp.Config.Set("dictionary.multiWord", false)
	cmdapp.Config.Set("decoder.numClasses", 0)
	cmdapp.Config.Set("decoder.beamWidth", 4)
	cmdapp.Config.Set("decoder.topPaths", 1)
	cmdapp.Config.Set("decoder.mergeRepeated", true)
	cmdapp.Config.Set("decoder.labelSelectionSize", 0)
	cmdapp.Config.Set("decoder.labelSelectionMargin", -1)
	defer func() {
		cmdapp.Config.Set("dictionary.alphabet", "")
		cmdapp.Config.Set("decoder.numClasses", 0)
	}()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"decode", "-i", in, "--probabilities"})
	require.NoError(t, cmd.Execute())

	var res document.Output
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &res), out.String())
	require.Len(t, res.Results, 1)
	assert.Equal(t, []int{0, 1}, res.Results[0].Paths[0].Labels)
	assert.Equal(t, "ab", res.Results[0].Paths[0].Text)
	assert.NotContains(t, out.String(), "github.com/ieee0824/ctcdecode")
}

func TestPrintBanner(t *testing.T) {
	var out bytes.Buffer
	printBanner(&out)
	assert.Contains(t, out.String(), "github.com/ieee0824/ctcdecode")
}
