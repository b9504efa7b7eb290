package multi_test

import (
	"context"
	"errors"
	"testing"

	"github.com/adrianliechti/ocr2/pkg/converter"
	"github.com/adrianliechti/ocr2/pkg/converter/multi"
	"github.com/adrianliechti/ocr2/pkg/document"

	"github.com/stretchr/testify/require"
)

type fake struct {
	doc document.Document
	err error

	calls int
}

func (f *fake) Convert(ctx context.Context, file converter.File, options *converter.ConvertOptions) (document.Document, error) {
	f.calls++
	return f.doc, f.err
}

func TestFirstSuccessWins(t *testing.T) {
	doc := &document.List{Content: "second"}

	first := &fake{err: errors.New("no text layer")}
	second := &fake{doc: doc}
	third := &fake{doc: &document.List{Content: "third"}}

	result, err := multi.New(first, second, third).Convert(context.Background(), converter.File{}, nil)
	require.NoError(t, err)

	require.Same(t, doc, result)
	require.Equal(t, 1, first.calls)
	require.Equal(t, 0, third.calls)
}

func TestAllFail(t *testing.T) {
	_, err := multi.New(&fake{err: errors.New("first")}, &fake{err: converter.ErrUnsupported}).Convert(context.Background(), converter.File{}, nil)
	require.ErrorContains(t, err, "first")

	_, err = multi.New(&fake{err: converter.ErrUnsupported}).Convert(context.Background(), converter.File{}, nil)
	require.ErrorIs(t, err, converter.ErrUnsupported)

	_, err = multi.New().Convert(context.Background(), converter.File{}, nil)
	require.ErrorIs(t, err, converter.ErrUnsupported)
}
