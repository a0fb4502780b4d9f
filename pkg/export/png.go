package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/paulmach/orb"

	"github.com/chazu/envelope/pkg/host"
)

var (
	pngBackground = color.RGBA{0xff, 0xff, 0xff, 0xff}
	pngWallFill   = color.RGBA{0x9a, 0x9a, 0x9a, 0xff}
	pngWallStroke = color.RGBA{0x20, 0x20, 0x20, 0xff}
	pngDoor       = color.RGBA{0xb0, 0x3a, 0x2e, 0xff}
	pngWindow     = color.RGBA{0x2e, 0x86, 0xc1, 0xff}
	pngRoof       = color.RGBA{0x1e, 0x84, 0x49, 0xff}
)

// Image renders a raster plan view of the model.
func Image(m host.Model, o Options) (*image.RGBA, error) {
	v, err := newView(m, o)
	if err != nil {
		return nil, err
	}
	width, height := v.size()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: pngBackground}, image.Point{}, draw.Src)

	gc := draw2dimg.NewGraphicContext(img)
	gc.SetLineWidth(1)

	gc.SetStrokeColor(pngRoof)
	gc.SetLineDash([]float64{6, 4}, 0)
	for _, r := range m.Roofs {
		v.path(gc, r.Outline())
		gc.Stroke()
	}
	gc.SetLineDash(nil, 0)

	gc.SetFillColor(pngWallFill)
	gc.SetStrokeColor(pngWallStroke)
	for _, w := range m.Walls {
		v.path(gc, wallOutline(w))
		gc.FillStroke()
	}

	gc.SetFillColor(pngBackground)
	for _, op := range m.Openings {
		ring, ok := openingOutline(m, op)
		if !ok {
			continue
		}
		if op.Category == host.CategoryDoors {
			gc.SetStrokeColor(pngDoor)
		} else {
			gc.SetStrokeColor(pngWindow)
		}
		v.path(gc, ring)
		gc.FillStroke()
	}
	return img, nil
}

// PNG renders the plan view and saves it to path.
func PNG(path string, m host.Model, o Options) error {
	img, err := Image(m, o)
	if err != nil {
		return err
	}
	if err := draw2dimg.SaveToPngFile(path, img); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}

func (v view) path(gc draw2d.GraphicContext, r orb.Ring) {
	for i, p := range r {
		x, y := v.pt(p)
		if i == 0 {
			gc.MoveTo(x, y)
		} else {
			gc.LineTo(x, y)
		}
	}
	gc.Close()
}
