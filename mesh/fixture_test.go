package mesh

import (
	"embed"
	"log"
	"math/rand"
	"strconv"
	"testing"

	"github.com/JoshVarga/svgparser"
	"github.com/stretchr/testify/require"
)

// This file parses the svg fixtures into point sets. This is not a full (or
// even correct) svg parser. Every <circle> in the file is a point at its
// centre; everything else is ignored. If anything goes wrong, it panics.
//
// Fixtures are available by name in the fixtures/ directory, sans extension.
// They all fit in the square from (0, 0) to (10, 10).

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) []Point {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	circles := rootEl.FindAll("circle")
	if len(circles) == 0 {
		log.Fatalf("No circles found in fixture %q", name)
	}
	points := make([]Point, 0, len(circles))
	for _, circle := range circles {
		x, err := strconv.ParseFloat(circle.Attributes["cx"], 64)
		if err != nil {
			log.Fatalf("Invalid cx value %q: %v", circle.Attributes["cx"], err)
		}
		y, err := strconv.ParseFloat(circle.Attributes["cy"], 64)
		if err != nil {
			log.Fatalf("Invalid cy value %q: %v", circle.Attributes["cy"], err)
		}
		points = append(points, Point{X: x, Y: y})
	}
	return points
}

// Two triangles covering the square from lo to hi. The corners are nodes 0 to
// 3, in the order (lo, lo), (hi, lo), (lo, hi), (hi, hi), and are flagged as
// bounding box nodes.
func boxMesh(t *testing.T, lo, hi float64) *Mesh {
	points := []Point{{X: lo, Y: lo}, {X: hi, Y: lo}, {X: lo, Y: hi}, {X: hi, Y: hi}}
	m, err := FromTriangles(points, [][3]int{{0, 1, 2}, {3, 2, 1}}, DefaultSettings())
	require.NoError(t, err)
	for i := range m.Nodes {
		m.Nodes[i].Flags = NodeBBox
	}
	return m
}

// The square (0, 0) to (10, 10) with a fixture inserted into it
func fixtureMesh(t *testing.T, name string) *Mesh {
	m := boxMesh(t, 0, 10)
	points := LoadFixture(name)
	added, err := m.AddPoints(points, 0, NodePoly)
	require.NoError(t, err)
	require.Equal(t, len(points), added)
	return m
}

// Single triangle (0, 0), (4, 0), (0, 4)
func triangleMesh(t *testing.T) *Mesh {
	m, err := FromTriangles([]Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}}, [][3]int{{0, 1, 2}}, DefaultSettings())
	require.NoError(t, err)
	return m
}

func randomPoints(seed int64, n int, lo, hi float64) []Point {
	rng := rand.New(rand.NewSource(seed))
	points := make([]Point, n)
	for i := range points {
		points[i] = Point{
			X: lo + rng.Float64()*(hi-lo),
			Y: lo + rng.Float64()*(hi-lo),
		}
	}
	return points
}
