package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/trimesh"
	"github.com/osuushi/trimesh/advanced"
	"github.com/osuushi/trimesh/config"
	"github.com/osuushi/trimesh/dbg"
	"github.com/osuushi/trimesh/mesh"
	"github.com/pkg/errors"
	"golang.org/x/term"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Demo of meshing by reading a point set and triangulating it. Input on stdin
// should be newline separated points in the form "x y". Blank lines and lines
// starting with # are ignored.
var (
	app        = kingpin.New("trimesh", "Build a Delaunay triangle mesh over a point set read from stdin.")
	configPath = app.Flag("config", "YAML configuration file.").Short('c').ExistingFile()
	verbose    = app.Flag("verbose", "Trace every insertion and deletion.").Short('v').Bool()

	buildCmd = app.Command("build", "Build the mesh and print its elements.").Default()
	drawPath = buildCmd.Flag("draw", "Render the mesh to this PNG file.").String()
	scale    = buildCmd.Flag("scale", "Pixels per unit when drawing.").Default("50").Float64()
	dump     = buildCmd.Flag("dump", "Print the whole mesh structure.").Bool()

	checkCmd = app.Command("check", "Build the mesh without the final verification, and report every fault.")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix(aurora.Cyan("trimesh: ").String())

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal(aurora.Red(err))
		}
	}

	points, err := readPoints(os.Stdin)
	if err != nil {
		log.Fatal(aurora.Red(err))
	}
	log.Printf("Read %d points", len(points))

	switch command {
	case buildCmd.FullCommand():
		build(points, cfg)
	case checkCmd.FullCommand():
		check(points, cfg)
	}
}

func build(points []mesh.Point, cfg config.Config) {
	var m *mesh.Mesh
	var err error
	if *verbose {
		// Build has no trace hook, so run the steps here
		m = grow(points, cfg)
		err = m.Verify(false)
	} else {
		m, err = trimesh.Build(points, cfg)
	}
	if err != nil {
		log.Fatal(aurora.Red(fmt.Sprintf("%s: %v", mesh.KindOf(err), err)))
	}
	log.Printf("%d nodes, %d elements", len(m.Nodes), len(m.Elements))

	if *dump {
		fmt.Println(dbg.Pretty(m.Nodes))
		fmt.Println(dbg.Pretty(m.Elements))
	} else {
		for _, elem := range m.Elements {
			fmt.Println(elem.Nodes[0], elem.Nodes[1], elem.Nodes[2])
		}
	}

	if *drawPath != "" {
		inline := term.IsTerminal(int(os.Stdout.Fd()))
		if err := m.DbgDraw(*scale, *drawPath, inline); err != nil {
			log.Fatal(aurora.Red(errors.Wrap(err, "drawing mesh")))
		}
	}
}

func check(points []mesh.Point, cfg config.Config) {
	m := grow(points, cfg)
	faults := m.VerifyAll(true)
	for _, fault := range faults {
		elem := m.Elements[fault.Elem]
		fmt.Printf("%s: %s\n", elem, aurora.Red(fault.Errors))
		if *verbose {
			fmt.Print(dbg.Dump(neighborhood(m, elem)))
		}
	}
	if len(faults) > 0 {
		log.Fatalf("%d bad elements", len(faults))
	}
	log.Print(aurora.Green("mesh is valid"))
}

// The element and whichever of its neighbors are in range, for dumping
func neighborhood(m *mesh.Mesh, elem mesh.Element) []mesh.Element {
	elems := []mesh.Element{elem}
	for _, nbr := range elem.Neighbors {
		if nbr >= 0 && nbr < len(m.Elements) {
			elems = append(elems, m.Elements[nbr])
		}
	}
	return elems
}

// The same pipeline as trimesh.Build, step by step and without the final
// verification, so a broken mesh can be reported in full.
func grow(points []mesh.Point, cfg config.Config) *mesh.Mesh {
	flags, err := cfg.NodeFlags()
	if err != nil {
		log.Fatal(aurora.Red(err))
	}
	m, err := advanced.NewBoundingBox(points, cfg.Build.Margin, cfg.Settings())
	if err != nil {
		log.Fatal(aurora.Red(err))
	}
	if *verbose {
		m.Tracef = func(format string, args ...interface{}) {
			log.Printf(aurora.Blue(format).String(), args...)
		}
	}
	added, err := m.AddPoints(points, cfg.Build.MinDist, flags)
	if err != nil {
		log.Fatal(aurora.Red(err))
	}
	log.Printf("Added %d of %d points", added, len(points))
	if _, err := advanced.RemoveBoundingBox(m); err != nil {
		log.Fatal(aurora.Red(err))
	}
	return m
}

func readPoints(in io.Reader) ([]mesh.Point, error) {
	var points []mesh.Point
	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		point, err := parsePoint(text)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		points = append(points, point)
	}
	return points, scanner.Err()
}

func parsePoint(line string) (mesh.Point, error) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return mesh.Point{}, errors.Errorf("expected \"x y\", got %q", line)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return mesh.Point{}, errors.Wrap(err, "parsing x")
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return mesh.Point{}, errors.Wrap(err, "parsing y")
	}
	return mesh.Point{X: x, Y: y}, nil
}
