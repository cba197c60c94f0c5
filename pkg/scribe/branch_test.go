package scribe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchManager_WriteOrderPreserved(t *testing.T) {
	m := NewBranchManager()
	root, err := m.CreateRoot("text", "root", "out.txt")
	require.NoError(t, err)

	m.AppendText(root, "first ")
	m.AppendText(root, "second")

	text, err := m.Flatten("root")
	require.NoError(t, err)
	assert.Equal(t, "first second", text)
}

func TestBranchManager_DeferredAppend(t *testing.T) {
	m := NewBranchManager()
	root, err := m.CreateRoot("text", "root", "out.txt")
	require.NoError(t, err)
	notes, err := m.CreateSub(root, "notes")
	require.NoError(t, err)

	m.AppendText(notes, "early note. ")
	m.AppendText(root, "intro [")
	require.NoError(t, m.AppendRef(root, "notes"))
	m.AppendText(root, "] outro")

	// Written after the reference was recorded; must still land at the
	// reference position, contiguous with the earlier note.
	m.AppendText(notes, "late note.")

	text, err := m.Flatten("root")
	require.NoError(t, err)
	assert.Equal(t, "intro [early note. late note.] outro", text)
}

func TestBranchManager_FlattenIsPure(t *testing.T) {
	m := NewBranchManager()
	root, err := m.CreateRoot("text", "root", "out.txt")
	require.NoError(t, err)
	sub, err := m.CreateSub(root, "sub")
	require.NoError(t, err)

	m.AppendText(root, "a")
	require.NoError(t, m.AppendRef(root, "sub"))
	m.AppendText(sub, "b")
	m.AppendText(root, "c")

	first, err := m.Flatten("root")
	require.NoError(t, err)
	second, err := m.Flatten("root")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "abc", first)
}

func TestBranchManager_NestedReferences(t *testing.T) {
	m := NewBranchManager()
	root, err := m.CreateRoot("text", "root", "out.txt")
	require.NoError(t, err)
	outer, err := m.CreateSub(root, "outer")
	require.NoError(t, err)
	inner, err := m.CreateSub(outer, "inner")
	require.NoError(t, err)

	require.NoError(t, m.AppendRef(root, "outer"))
	m.AppendText(outer, "(")
	require.NoError(t, m.AppendRef(outer, "inner"))
	m.AppendText(outer, ")")
	m.AppendText(inner, "core")

	text, err := m.Flatten("root")
	require.NoError(t, err)
	assert.Equal(t, "(core)", text)
}

func TestBranchManager_CycleDetection(t *testing.T) {
	m := NewBranchManager()
	root, err := m.CreateRoot("text", "root", "out.txt")
	require.NoError(t, err)
	a, err := m.CreateSub(root, "a")
	require.NoError(t, err)
	b, err := m.CreateSub(root, "b")
	require.NoError(t, err)

	require.NoError(t, m.AppendRef(root, "a"))
	require.NoError(t, m.AppendRef(a, "b"))
	require.NoError(t, m.AppendRef(b, "a"))

	_, err = m.Flatten("root")
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"root", "a", "b", "a"}, cycleErr.Chain)
}

func TestBranchManager_SelfReferenceIsACycle(t *testing.T) {
	m := NewBranchManager()
	root, err := m.CreateRoot("text", "root", "out.txt")
	require.NoError(t, err)
	require.NoError(t, m.AppendRef(root, "root"))

	_, err = m.Flatten("root")
	var cycleErr *CycleError
	assert.ErrorAs(t, err, &cycleErr)
}

func TestBranchManager_DuplicateNameFails(t *testing.T) {
	m := NewBranchManager()
	root, err := m.CreateRoot("text", "root", "out.txt")
	require.NoError(t, err)
	_, err = m.CreateRoot("text", "root", "other.txt")
	assert.Error(t, err)
	_, err = m.CreateSub(root, "root")
	assert.Error(t, err)
}

func TestBranchManager_AppendRefUnknownTargetFails(t *testing.T) {
	m := NewBranchManager()
	root, err := m.CreateRoot("text", "root", "out.txt")
	require.NoError(t, err)
	assert.Error(t, m.AppendRef(root, "ghost"))
}

func TestBranchManager_AutoNamesAreUnique(t *testing.T) {
	m := NewBranchManager()
	a := m.AutoName()
	b := m.AutoName()
	assert.NotEqual(t, a, b)
}
