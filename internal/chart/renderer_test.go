package chart

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPNGRenderer_Render(t *testing.T) {
	r := NewPNGRenderer()

	t.Run("produces a decodable png", func(t *testing.T) {
		blob, err := r.Render([]string{"food", "rent"}, []float64{12.5, 500})
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(blob))
		require.NoError(t, err)
		assert.Equal(t, 640, img.Bounds().Dx())
		assert.Equal(t, 400, img.Bounds().Dy())
	})

	t.Run("all-zero amounts still render", func(t *testing.T) {
		blob, err := r.Render([]string{"a"}, []float64{0})
		require.NoError(t, err)
		_, err = png.Decode(bytes.NewReader(blob))
		require.NoError(t, err)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := r.Render(nil, nil)
		assert.ErrorIs(t, err, ErrNoData)
	})

	t.Run("mismatched lengths", func(t *testing.T) {
		_, err := r.Render([]string{"a", "b"}, []float64{1})
		assert.ErrorIs(t, err, ErrNoData)
	})
}
