package process

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleMergesRestoredPaths(t *testing.T) {
	res := parseBlocks(t, allBlocks...)
	ents := Project(res.Table, testSettings())

	rr := ResolveResult{
		Paths:      map[string]string{"700": "/restore/100/700/diagram.png", "9999": "/restore/ghost"},
		Resolved:   1,
		Unresolved: 0,
	}
	doc := Assemble(ents, res, rr, 0, "doc", testSettings())

	require.Len(t, doc.Attachments, 1)
	require.NotNil(t, doc.Attachments[0].RestoredPath)
	assert.Equal(t, "/restore/100/700/diagram.png", *doc.Attachments[0].RestoredPath)
}

func TestAssembleUnresolvedStaysNull(t *testing.T) {
	res := parseBlocks(t, allBlocks...)
	ents := Project(res.Table, testSettings())

	rr := ResolveResult{Paths: map[string]string{}, Unresolved: 1}
	doc := Assemble(ents, res, rr, 0, "doc", testSettings())

	require.Len(t, doc.Attachments, 1)
	assert.Nil(t, doc.Attachments[0].RestoredPath)
	assert.Equal(t, 1, doc.Summary.AttachmentsUnresolved)
}

func TestAssembleSummaryCounts(t *testing.T) {
	res := parseBlocks(t, allBlocks...)
	ents := Project(res.Table, testSettings())
	doc := Assemble(ents, res, ResolveResult{}, 0, "doc", testSettings())

	assert.Equal(t, "doc", doc.Summary.DocumentId)
	assert.Equal(t, len(allBlocks), doc.Summary.RecordsParsed)
	assert.Equal(t, 0, doc.Summary.RecordsSkipped)
	assert.Equal(t, 0, doc.Summary.DuplicateIds)

	assert.Equal(t, 1, doc.Summary.Entities["pages"])
	assert.Equal(t, 1, doc.Summary.Entities["blog_posts"])
	assert.Equal(t, 1, doc.Summary.Entities["custom_contents"])
	assert.Equal(t, 1, doc.Summary.Entities["users"])
	assert.Equal(t, 1, doc.Summary.Entities["labels"])
	assert.Equal(t, 3, doc.Summary.Entities["content_properties"])
	assert.Equal(t, 1, doc.Summary.Entities["attachments"])
	assert.Equal(t, 0, doc.Summary.Entities["others"])
}

func TestAssembleSectionOrdering(t *testing.T) {
	p1 := `<object class="Page"><id name="id">10</id><property name="title">b</property></object>`
	p2 := `<object class="Page"><id name="id">9</id><property name="title">a</property></object>`
	p3 := `<object class="Page"><id name="id">100</id><property name="title">c</property></object>`

	res := parseBlocks(t, p1, p2, p3)
	doc := Assemble(Project(res.Table, testSettings()), res, ResolveResult{}, 0, "doc", testSettings())

	require.Len(t, doc.Pages, 3)
	assert.Equal(t, "9", doc.Pages[0].Id)
	assert.Equal(t, "10", doc.Pages[1].Id)
	assert.Equal(t, "100", doc.Pages[2].Id)
}

func TestAssembleIdempotentOutput(t *testing.T) {
	render := func() []byte {
		res := parseBlocks(t, allBlocks...)
		ents := Project(res.Table, testSettings())
		doc := Assemble(ents, res, ResolveResult{}, 0, "doc", testSettings())

		var buf bytes.Buffer
		require.NoError(t, EncodeDocument(&buf, doc))
		return buf.Bytes()
	}

	assert.Equal(t, render(), render())
}

func TestEntityCountMatchesParsedBlocks(t *testing.T) {
	// every block in the fixture projects to exactly one entity, except
	// the structural body and space blocks
	res := parseBlocks(t, allBlocks...)
	ents := Project(res.Table, testSettings())
	doc := Assemble(ents, res, ResolveResult{}, 0, "doc", testSettings())

	total := 0
	for _, n := range doc.Summary.Entities {
		total += n
	}
	structural := 2 // bodyBlock, spaceBlock
	assert.Equal(t, doc.Summary.RecordsParsed-doc.Summary.RecordsSkipped-structural, total)
}
