package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestInfoBlock_DecodeLeaf(t *testing.T) {
	var b InfoBlock
	err := yaml.Unmarshal([]byte(`"Vul hier uw antwoord in"`), &b)
	require.NoError(t, err)

	assert.Equal(t, InfoLeaf, b.Kind)
	assert.Equal(t, "Vul hier uw antwoord in", b.Text)
}

func TestInfoBlock_DecodeList(t *testing.T) {
	var b InfoBlock
	err := yaml.Unmarshal([]byte("- eerste\n- tweede\n"), &b)
	require.NoError(t, err)

	require.Equal(t, InfoList, b.Kind)
	require.Len(t, b.Items, 2)
	assert.Equal(t, "eerste", b.Items[0].Text)
	assert.Equal(t, "tweede", b.Items[1].Text)
}

func TestInfoBlock_DecodeNodePreservesOrder(t *testing.T) {
	src := `
title: Toelichting
items:
  - punt een
  - punt twee
verder: nog een blok
`
	var b InfoBlock
	err := yaml.Unmarshal([]byte(src), &b)
	require.NoError(t, err)

	require.Equal(t, InfoNode, b.Kind)
	require.Len(t, b.Entries, 3)
	assert.Equal(t, InfoKeyTitle, b.Entries[0].Key)
	assert.Equal(t, InfoKeyItems, b.Entries[1].Key)
	assert.Equal(t, "verder", b.Entries[2].Key)
	assert.Equal(t, InfoList, b.Entries[1].Block.Kind)
}

func TestInfoBlock_DecodeLayoutHints(t *testing.T) {
	src := `
fontsize: scriptsize
above: true
title: Let op
`
	var b InfoBlock
	err := yaml.Unmarshal([]byte(src), &b)
	require.NoError(t, err)

	assert.Equal(t, "scriptsize", b.FontSize)
	assert.True(t, b.Above)
	// Layout hints are not content entries.
	require.Len(t, b.Entries, 1)
	assert.Equal(t, InfoKeyTitle, b.Entries[0].Key)
}

func TestInfoBlock_EmptyLeafStillValid(t *testing.T) {
	var b InfoBlock
	err := yaml.Unmarshal([]byte(`""`), &b)
	require.NoError(t, err)
	assert.Equal(t, InfoLeaf, b.Kind)
	assert.Empty(t, b.Text)
}
