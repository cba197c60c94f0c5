package scribe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_RenderWritesRootBranches(t *testing.T) {
	writer := &MapWriter{}
	g, err := New(Options{Writer: writer})
	require.NoError(t, err)

	source := "$$whitespace.skip\n" +
		"$branch.create.root[text][front][front.txt]\n" +
		"$branch.create.root[text][body][body.txt]\n" +
		"$branch.write[front][Preface]\n" +
		"$branch.write[body][Chapter one]\n"
	require.NoError(t, g.Execute(source, "book.scr"))

	outputs, err := g.Render()
	require.NoError(t, err)
	require.Len(t, outputs, 2)
	assert.Equal(t, []string{"body.txt", "front.txt"}, writer.Destinations())
	assert.Equal(t, "Preface", writer.Outputs["front.txt"])
	assert.Equal(t, "Chapter one", writer.Outputs["body.txt"])
}

func TestEngine_TableOfContentsForwardReference(t *testing.T) {
	// The contents block is referenced at the top of the document and
	// filled in while the chapters are expanded afterwards.
	writer := &MapWriter{}
	g, err := New(Options{Writer: writer})
	require.NoError(t, err)

	source := "$$whitespace.skip\n" +
		"$counter.create[chapter]\n" +
		"$branch.create.root[text][book][book.txt]\n" +
		"$branch.write[book][\n" +
		"  $branch.create.sub[!toc]\n" +
		"  Contents:$branch.append[$toc]$newline\n" +
		"  $macro.new[heading(title)][\n" +
		"    $chapter.incr\n" +
		"    $branch.write[$toc][ $chapter. $title]\n" +
		"    $chapter. $title$newline\n" +
		"  ]\n" +
		"  $heading[Beginnings]\n" +
		"  $heading[Endings]\n" +
		"]\n"
	require.NoError(t, g.Execute(source, "book.scr"))

	_, err = g.Render()
	require.NoError(t, err)
	assert.Equal(t, "Contents: 1. Beginnings 2. Endings\n1. Beginnings\n2. Endings\n",
		writer.Outputs["book.txt"])
}

func TestEngine_SystemBranchIsDiscarded(t *testing.T) {
	writer := &MapWriter{}
	g, err := New(Options{Writer: writer})
	require.NoError(t, err)
	require.NoError(t, g.Execute("stray text outside any branch", "test.scr"))

	outputs, err := g.Render()
	require.NoError(t, err)
	assert.Empty(t, outputs)
	assert.Empty(t, writer.Outputs)
}

func TestEngine_NoPartialOutputOnFlattenError(t *testing.T) {
	// One healthy root and one cyclic root: nothing at all is written.
	writer := &MapWriter{}
	g, err := New(Options{Writer: writer})
	require.NoError(t, err)

	source := "$$whitespace.skip\n" +
		"$branch.create.root[text][good][good.txt]\n" +
		"$branch.write[good][fine]\n" +
		"$branch.create.root[text][bad][bad.txt]\n" +
		"$branch.write[bad][$branch.append[bad]]\n"
	require.NoError(t, g.Execute(source, "test.scr"))

	_, err = g.Render()
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Empty(t, writer.Outputs)
}

func TestEngine_RenderIsOnceOnly(t *testing.T) {
	g, err := New(Options{})
	require.NoError(t, err)
	_, err = g.Render()
	require.NoError(t, err)
	_, err = g.Render()
	assert.ErrorContains(t, err, "already rendered")
}

func TestEngine_ExecuteFile(t *testing.T) {
	writer := &MapWriter{}
	g, err := New(Options{
		Resolver: &MapResolver{Sources: map[string]string{
			"main": "$branch.create.root[text][out][out.txt]$branch.write[out][via include]",
		}},
		Writer: writer,
	})
	require.NoError(t, err)
	require.NoError(t, g.ExecuteFile("main"))

	_, err = g.Render()
	require.NoError(t, err)
	assert.Equal(t, "via include", writer.Outputs["out.txt"])
}

func TestEngine_ExecuteFileWithoutResolver(t *testing.T) {
	g, err := New(Options{})
	require.NoError(t, err)
	assert.ErrorContains(t, g.ExecuteFile("main"), "no source resolver")
}

func TestEngine_StatePersistsAcrossExecuteCalls(t *testing.T) {
	g, err := New(Options{})
	require.NoError(t, err)
	require.NoError(t, g.Execute("$macro.new[title][My Book]", "defs.scr"))
	require.NoError(t, g.Execute("$title", "main.scr"))

	text, err := g.expander.branches.Flatten(SystemBranch)
	require.NoError(t, err)
	assert.Equal(t, "My Book", text)
}

func TestEngine_SeedConflictsWithBuiltinFails(t *testing.T) {
	_, err := New(Options{Seed: map[string]string{"include": "x"}})
	assert.Error(t, err)
}

func TestEngine_MaxDepthOption(t *testing.T) {
	g, err := New(Options{MaxDepth: 5})
	require.NoError(t, err)
	err = g.Execute("$macro.new[loop][$loop]$loop", "test.scr")
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.LessOrEqual(t, len(cycleErr.Chain), 6)
}
