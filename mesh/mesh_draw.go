package mesh

import (
	"math"
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/trimesh/dbg"
	"golang.org/x/image/colornames"
)

// Padding around the mesh so the hull edges aren't clipped
const dbgDrawPadding = 100

// Render the mesh to a PNG at path, and print it to the terminal if inline is
// set (iTerm only). Elements are filled, hull edges are drawn heavier than
// interior ones, and nodes are labelled with their readable names.
func (m *Mesh) DbgDraw(scale float64, path string, inline bool) error {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := range m.Nodes {
		if m.Nodes[i].IsZombie() {
			continue
		}
		p := m.Nodes[i].Position
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	if math.IsInf(minX, 1) {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}

	width := int(scale*(maxX-minX)) + dbgDrawPadding*2
	height := int(scale*(maxY-minY)) + dbgDrawPadding*2
	c := gg.NewContext(width, height)
	c.SetColor(colornames.Black)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	// Translate for padding
	c.Translate(dbgDrawPadding, dbgDrawPadding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	for e := range m.Elements {
		if m.Elements[e].IsZombie() {
			continue
		}
		v := m.ElementPositions(e)
		c.MoveTo(v[0].X, v[0].Y)
		c.LineTo(v[1].X, v[1].Y)
		c.LineTo(v[2].X, v[2].Y)
		c.ClosePath()
		if m.Elements[e].Flags&ElemRefine != 0 {
			c.SetColor(colornames.Darkorange)
		} else {
			c.SetColor(colornames.Darkslateblue)
		}
		c.FillPreserve()
		c.SetColor(colornames.Lime)
		c.SetLineWidth(1)
		c.Stroke()

		for slot, nbr := range m.Elements[e].Neighbors {
			if nbr != NoNeighbor {
				continue
			}
			a, b := v[(slot+1)%3], v[(slot+2)%3]
			c.MoveTo(a.X, a.Y)
			c.LineTo(b.X, b.Y)
			c.SetColor(colornames.Yellow)
			c.SetLineWidth(3)
			c.Stroke()
		}
	}

	for i := range m.Nodes {
		node := &m.Nodes[i]
		if node.IsZombie() {
			continue
		}
		x, y := c.TransformPoint(node.Position.X, node.Position.Y)
		// Text goes on in device space, or it comes out upside down
		c.Push()
		c.Identity()
		if node.Flags&NodeBBox != 0 {
			c.SetColor(colornames.Cyan)
		} else {
			c.SetColor(colornames.White)
		}
		c.DrawCircle(x, y, 3)
		c.Fill()
		c.DrawStringAnchored(dbg.Name("node", i), x, y-8, 0.5, 0)
		c.Pop()
	}

	if err := c.SavePNG(path); err != nil {
		return err
	}
	if inline {
		imgcat.CatFile(path, os.Stdout)
	}
	return nil
}
