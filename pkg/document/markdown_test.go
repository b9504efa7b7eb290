package document_test

import (
	"testing"

	"github.com/adrianliechti/ocr2/pkg/document"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

func TestMarkdownTable(t *testing.T) {
	rows := [][]string{
		{"Name", "Qty"},
		{"Apples", "3"},
		{"Pears | Plums", "12"},
	}

	md := document.MarkdownTable(rows)

	require.Equal(t, ""+
		"| Name           | Qty |\n"+
		"|----------------|-----|\n"+
		"| Apples         | 3   |\n"+
		"| Pears \\| Plums | 12  |", md)

	source := []byte(md)
	doc := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(source))

	var tables, rowsSeen int

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n.(type) {
		case *extast.Table:
			tables++
		case *extast.TableHeader, *extast.TableRow:
			rowsSeen++
		}

		return ast.WalkContinue, nil
	})

	require.Equal(t, 1, tables)
	require.Equal(t, 3, rowsSeen)
}

func TestMarkdownTableRaggedRows(t *testing.T) {
	md := document.MarkdownTable([][]string{
		{"a"},
		{"b", "c"},
	})

	require.Equal(t, ""+
		"| a   |     |\n"+
		"|-----|-----|\n"+
		"| b   | c   |", md)
}

func TestMarkdownTableEmpty(t *testing.T) {
	require.Empty(t, document.MarkdownTable(nil))
	require.Empty(t, document.MarkdownTable([][]string{{}}))
}
