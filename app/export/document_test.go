package export_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healy-academy/app/export"
)

func TestOrientationFor(t *testing.T) {
	assert.Equal(t, export.Landscape, export.OrientationFor(800, 600))
	assert.Equal(t, export.Portrait, export.OrientationFor(600, 800))
	// Square content stays portrait.
	assert.Equal(t, export.Portrait, export.OrientationFor(500, 500))
}

func TestRenderAndDocumentSizing(t *testing.T) {
	renderer, err := export.NewTableRenderer()
	require.NoError(t, err)

	rows := [][]string{
		{"Student", "tumbling", "vault", "Total"},
		{"Amira Test", "8", "4", "12"},
		{"Ben Test", "6", "3", "9"},
	}

	img, err := renderer.Render(rows)
	require.NoError(t, err)

	doc := export.NewDocument(img)
	// The page matches the image's pixel dimensions exactly.
	assert.Equal(t, img.Bounds().Dx(), doc.Width)
	assert.Equal(t, img.Bounds().Dy(), doc.Height)
	// A wide table produces a landscape page.
	assert.Greater(t, doc.Width, doc.Height)
	assert.Equal(t, export.Landscape, doc.Orientation)

	var buf bytes.Buffer
	require.NoError(t, doc.Encode(&buf))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc.Width, decoded.Bounds().Dx())
}

func TestRenderRejectsEmptyTable(t *testing.T) {
	renderer, err := export.NewTableRenderer()
	require.NoError(t, err)

	_, err = renderer.Render(nil)
	assert.Error(t, err)
}
