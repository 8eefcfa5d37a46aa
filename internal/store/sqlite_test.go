package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveLoadDocument(t *testing.T) {
	st, err := New(t.TempDir())
	require.NoError(t, err)
	defer st.Close()

	in := map[string]string{"greeting": "hello", "sig": "-- \nme"}
	require.NoError(t, st.SaveDocument(DocSnippets, in))

	var out map[string]string
	found, err := st.LoadDocument(DocSnippets, &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestStore_LoadMissingDocument(t *testing.T) {
	st, err := New(t.TempDir())
	require.NoError(t, err)
	defer st.Close()

	var out []string
	found, err := st.LoadDocument(DocHistory, &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, out)
}

func TestStore_SaveReplacesDocument(t *testing.T) {
	st, err := New(t.TempDir())
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.SaveDocument(DocHistory, []string{"a", "b"}))
	require.NoError(t, st.SaveDocument(DocHistory, []string{"c"}))

	var out []string
	_, err = st.LoadDocument(DocHistory, &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, out)

	docs, err := st.ListDocuments()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, DocHistory, docs[0].Name)
	assert.Equal(t, int64(len(`["c"]`)), docs[0].Size)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()

	st, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, st.SaveDocument(DocTemplates, map[string]string{"t": "body"}))
	require.NoError(t, st.Close())

	st, err = New(dir)
	require.NoError(t, err)
	defer st.Close()

	var out map[string]string
	found, err := st.LoadDocument(DocTemplates, &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "body", out["t"])
}

func TestStore_DeleteDocument(t *testing.T) {
	st, err := New(t.TempDir())
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.SaveDocument(DocReminders, []int{1}))
	require.NoError(t, st.DeleteDocument(DocReminders))

	var out []int
	found, err := st.LoadDocument(DocReminders, &out)
	require.NoError(t, err)
	assert.False(t, found)
}
