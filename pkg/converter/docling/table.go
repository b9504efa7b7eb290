package docling

import (
	"errors"
	"fmt"

	"github.com/adrianliechti/ocr2/pkg/document"
	"github.com/adrianliechti/ocr2/pkg/shape"
)

// maxTableCells bounds the grid allocated from declared table dimensions.
const maxTableCells = 1 << 20

func tableMarkdown(node map[string]any) (string, error) {
	data, ok := node["data"].(map[string]any)

	if !ok {
		return "", errors.New("table has no data")
	}

	rows := gridRows(data["grid"])

	if rows == nil {
		var err error

		if rows, err = cellRows(data); err != nil {
			return "", err
		}
	}

	return document.MarkdownTable(rows), nil
}

func gridRows(v any) [][]string {
	grid, ok := shape.Items(v)

	if !ok || len(grid) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(grid))

	for _, r := range grid {
		cells, _ := shape.Items(r)

		row := make([]string, 0, len(cells))

		for _, cell := range cells {
			row = append(row, stringOf(shape.First(cell, "text")))
		}

		rows = append(rows, row)
	}

	return rows
}

func cellRows(data map[string]any) ([][]string, error) {
	numRows, _ := shape.Int(data["num_rows"])
	numCols, _ := shape.Int(data["num_cols"])

	cells, _ := shape.Items(data["table_cells"])

	if numRows <= 0 || numCols <= 0 {
		for _, cell := range cells {
			if n, ok := shape.Int(shape.First(cell, "end_row_offset_idx")); ok {
				numRows = max(numRows, n)
			}

			if n, ok := shape.Int(shape.First(cell, "end_col_offset_idx")); ok {
				numCols = max(numCols, n)
			}
		}
	}

	if numRows <= 0 || numCols <= 0 {
		return nil, nil
	}

	if numRows > maxTableCells || numCols > maxTableCells || numRows*numCols > maxTableCells {
		return nil, fmt.Errorf("table too large: %d x %d", numRows, numCols)
	}

	rows := make([][]string, numRows)

	for i := range rows {
		rows[i] = make([]string, numCols)
	}

	for _, cell := range cells {
		text := stringOf(shape.First(cell, "text"))

		r0, ok0 := shape.Int(shape.First(cell, "start_row_offset_idx"))
		c0, ok1 := shape.Int(shape.First(cell, "start_col_offset_idx"))

		if !ok0 || !ok1 {
			continue
		}

		r1, ok := shape.Int(shape.First(cell, "end_row_offset_idx"))

		if !ok || r1 <= r0 {
			r1 = r0 + 1
		}

		c1, ok := shape.Int(shape.First(cell, "end_col_offset_idx"))

		if !ok || c1 <= c0 {
			c1 = c0 + 1
		}

		for r := max(r0, 0); r < min(r1, numRows); r++ {
			for c := max(c0, 0); c < min(c1, numCols); c++ {
				rows[r][c] = text
			}
		}
	}

	return rows, nil
}
