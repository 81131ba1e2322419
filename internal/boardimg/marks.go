package boardimg

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/kapu/tictac-client/internal/session"
)

//go:embed assets/marks/*.svg
var markFiles embed.FS

type markCacheKey struct {
	cell session.Cell
	size int
}

var (
	markCache   = map[markCacheKey]image.Image{}
	markCacheMu sync.RWMutex
)

// renderMarkImage rasterizes the SVG mark for a cell at the given size,
// caching per (cell, size).
func renderMarkImage(cell session.Cell, size int) (image.Image, error) {
	key := markCacheKey{cell: cell, size: size}

	markCacheMu.RLock()
	if img, ok := markCache[key]; ok {
		markCacheMu.RUnlock()
		return img, nil
	}
	markCacheMu.RUnlock()

	name, err := markAssetName(cell)
	if err != nil {
		return nil, err
	}
	data, err := markFiles.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read mark asset %s: %w", name, err)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse mark svg: %w", err)
	}

	w := int(icon.ViewBox.W)
	h := int(icon.ViewBox.H)
	if w <= 0 {
		w = size
		icon.ViewBox.W = float64(w)
	}
	if h <= 0 {
		h = size
		icon.ViewBox.H = float64(h)
	}

	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	markCacheMu.Lock()
	markCache[key] = img
	markCacheMu.Unlock()

	return img, nil
}

func markAssetName(cell session.Cell) (string, error) {
	switch cell {
	case session.Cell(session.RoleX):
		return "assets/marks/x.svg", nil
	case session.Cell(session.RoleO):
		return "assets/marks/o.svg", nil
	}
	return "", fmt.Errorf("no mark asset for cell %q", cell)
}
