// Package ui implements the chess game UI using Ebitengine.
package ui

import (
	"bytes"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	// Font faces for text rendering
	regularFace *text.GoTextFace
	boldFace    *text.GoTextFace
)

const (
	defaultFontSize = 14.0
	titleFontSize   = 15.0
)

func init() {
	regularFace = loadFace(goregular.TTF, defaultFontSize)
	boldFace = loadFace(gobold.TTF, titleFontSize)
}

func loadFace(ttf []byte, size float64) *text.GoTextFace {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		log.Error().Err(err).Msg("font")
		return nil
	}
	return &text.GoTextFace{Source: src, Size: size}
}

// scaledFace returns face resized for the device scale.
func scaledFace(face *text.GoTextFace, scale float64) *text.GoTextFace {
	if face == nil {
		return nil
	}
	return &text.GoTextFace{Source: face.Source, Size: face.Size * scale}
}

// MeasureText returns the width and height of the given text.
func MeasureText(s string, face *text.GoTextFace) (width, height float64) {
	if face == nil {
		return 0, 0
	}
	return text.Measure(s, face, 0)
}
