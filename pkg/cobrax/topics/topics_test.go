package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSource() fstest.MapFS {
	return fstest.MapFS{
		"configuration.md":   {Data: []byte("# Configuration\n\nUse [[dotfiles]].")},
		"option-dry-run.txt": {Data: []byte("Nothing is written.")},
		"notes/ignore.md":    {Data: []byte("# Ignore")},
		"skipped.json":       {Data: []byte("{}")},
	}
}

func TestScan(t *testing.T) {
	tm := New(testSource(), Options{})
	require.NoError(t, tm.Scan())

	assert.Equal(t, []string{"configuration", "ignore", "option-dry-run"}, tm.ListTopics())

	topic, ok := tm.GetTopic("configuration")
	require.True(t, ok)
	assert.Equal(t, "# Configuration\n\nUse [[dotfiles]].", topic.Content)

	topic, ok = tm.GetTopic("--dry-run")
	require.True(t, ok)
	assert.Equal(t, "Nothing is written.", tm.Render(topic))

	_, ok = tm.GetTopic("skipped")
	assert.False(t, ok)
}

func TestScanCustomExtensions(t *testing.T) {
	tm := New(testSource(), Options{Extensions: []string{".json"}})
	require.NoError(t, tm.Scan())
	assert.Equal(t, []string{"skipped"}, tm.ListTopics())
}

func TestWriteList(t *testing.T) {
	tm := New(testSource(), Options{})
	require.NoError(t, tm.Scan())

	var buf bytes.Buffer
	tm.WriteList(&buf, "dotsync")
	out := buf.String()
	assert.Contains(t, out, "General topics:\n  configuration\n  ignore\n")
	assert.Contains(t, out, "Option topics:\n  --dry-run\n")
	assert.Contains(t, out, "dotsync help <topic>")

	var empty bytes.Buffer
	New(fstest.MapFS{}, Options{}).WriteList(&empty, "dotsync")
	assert.Equal(t, "No help topics available.\n", empty.String())
}

func TestInitialize(t *testing.T) {
	root := &cobra.Command{Use: "dotsync", Short: "sync dotfiles"}
	root.AddCommand(&cobra.Command{Use: "sync", Short: "copy files", Run: func(*cobra.Command, []string) {}})

	_, err := Initialize(root, testSource(), Options{})
	require.NoError(t, err)

	run := func(args ...string) string {
		var buf bytes.Buffer
		root.SetOut(&buf)
		root.SetErr(&buf)
		root.SetArgs(args)
		require.NoError(t, root.Execute())
		return buf.String()
	}

	assert.Contains(t, run("help", "topics"), "configuration")
	assert.True(t, strings.HasPrefix(run("help", "configuration"), "# Configuration"))
	assert.Contains(t, run("help", "sync"), "copy files")
}

func TestGlamourRendererPassesThroughNonMarkdown(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))

	r = &GlamourRenderer{Style: "notty", Width: 40}
	out := r.Render("# Title\n\nbody", ".md")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body")
}
