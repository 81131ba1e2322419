// Package boardimg renders the 3×3 board projection to a PNG snapshot for
// the status endpoint. Purely presentational; it reads cells and draws them.
package boardimg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/kapu/tictac-client/internal/session"
)

const (
	squareSize   = 96
	gridGap      = 6
	margin       = 24
	headerHeight = 28
)

var (
	backgroundColor = color.RGBA{233, 207, 163, 255}
	gridLineColor   = color.RGBA{120, 86, 56, 255}
	captionColor    = color.RGBA{62, 44, 30, 255}
)

// Options carries the presentational extras drawn around the grid.
type Options struct {
	// Caption is drawn centered in the header band above the board.
	Caption string
}

// RenderPNG draws the given grid and returns the encoded PNG.
func RenderPNG(ctx context.Context, cells [3][3]session.Cell, opts Options) ([]byte, error) {
	boardSize := squareSize*3 + gridGap*2
	width := boardSize + margin*2
	height := boardSize + margin*2 + headerHeight
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	imagedraw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, imagedraw.Src)
	drawCaption(img, opts.Caption, width)
	drawGridLines(img, boardSize)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			cell := cells[x][y]
			if cell == session.CellEmpty {
				continue
			}
			mark, err := renderMarkImage(cell, squareSize)
			if err != nil {
				return nil, err
			}
			// x is the row, y the column, matching the wire coordinates
			px := margin + y*(squareSize+gridGap)
			py := headerHeight + margin + x*(squareSize+gridGap)
			imagedraw.Draw(img, image.Rect(px, py, px+squareSize, py+squareSize), mark, image.Point{}, imagedraw.Over)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawCaption(img *image.RGBA, text string, width int) {
	if text == "" {
		return
	}
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(captionColor),
		Face: basicfont.Face7x13,
	}
	textWidth := drawer.MeasureString(text).Ceil()
	x := (width - textWidth) / 2
	if x < margin {
		x = margin
	}
	baseline := (headerHeight + basicfont.Face7x13.Ascent) / 2
	drawer.Dot = fixed.P(x, baseline)
	drawer.DrawString(text)
}

func drawGridLines(img *image.RGBA, boardSize int) {
	for i := 1; i < 3; i++ {
		offset := margin + i*squareSize + (i-1)*gridGap
		// vertical
		imagedraw.Draw(img, image.Rect(offset, headerHeight+margin, offset+gridGap, headerHeight+margin+boardSize),
			image.NewUniform(gridLineColor), image.Point{}, imagedraw.Src)
		// horizontal
		imagedraw.Draw(img, image.Rect(margin, headerHeight+offset, margin+boardSize, headerHeight+offset+gridGap),
			image.NewUniform(gridLineColor), image.Point{}, imagedraw.Src)
	}
}
