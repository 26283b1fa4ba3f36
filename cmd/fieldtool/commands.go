package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/whodaresx/ff7-ultima/internal/config"
	"github.com/whodaresx/ff7-ultima/internal/logger"
	"github.com/whodaresx/ff7-ultima/internal/preview"
	"github.com/whodaresx/ff7-ultima/pkg/field"
)

// loadMesh parses the walkmesh for a field argument, exiting on failure.
func loadMesh(cfg *config.Config, arg string) *field.Walkmesh {
	path := walkmeshPath(cfg, arg)
	mesh, err := field.ParseWalkmeshFile(path)
	if err != nil {
		logger.Error("failed to parse walkmesh", zap.String("path", path), zap.Error(err))
		os.Exit(1)
	}
	logger.Debug("walkmesh decoded",
		zap.String("path", path),
		zap.Int("triangles", mesh.Count()))

	invalid := 0
	for i := range mesh.Triangles {
		for _, a := range mesh.Triangles[i].Access {
			if a != field.Blocked && int(a) >= mesh.Count() {
				invalid++
			}
		}
	}
	if invalid > 0 {
		logger.Warn("access values point past the triangle pool",
			zap.String("path", path), zap.Int("edges", invalid))
	}

	return mesh
}

// loadGateways parses the trigger section for a field argument. A missing
// trigger file is normal; it just means no gateways.
func loadGateways(cfg *config.Config, arg string) []field.Gateway {
	path := triggerPath(cfg, arg)
	gateways, err := field.ParseGatewaysFile(path)
	if err != nil {
		logger.Debug("no trigger section", zap.String("path", path), zap.Error(err))
		return nil
	}
	return gateways
}

// locator returns the configured point query: grid-indexed or linear.
func locator(cfg *config.Config, mesh *field.Walkmesh) func(x, y float64) (int, int) {
	if cfg.Query.UseGrid {
		return field.NewGridIndex(mesh, cfg.Query.GridCell).Locate
	}
	return mesh.Locate
}

// accessLabel formats one access value for listing output.
func accessLabel(a uint16) string {
	if a == field.Blocked {
		return "-"
	}
	return strconv.Itoa(int(a))
}

func cmdInfo(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: fieldtool info <field>")
		os.Exit(1)
	}

	mesh := loadMesh(cfg, args[0])
	gateways := loadGateways(cfg, args[0])
	b := field.ComputeBounds(mesh)

	fmt.Printf("Field:     %s\n", fieldName(args[0]))
	fmt.Printf("Triangles: %d\n", mesh.Count())
	fmt.Printf("Blocked:   %d of %d edges\n", mesh.CountBlockedEdges(), mesh.Count()*3)
	fmt.Printf("Bounds:    x [%g, %g]  y [%g, %g]  z [%g, %g]\n",
		b.MinX, b.MaxX, b.MinY, b.MaxY, b.MinZ, b.MaxZ)
	fmt.Printf("Center:    (%g, %g, %g)\n", b.CenterX, b.CenterY, b.CenterZ)
	fmt.Printf("Gateways:  %d\n", len(gateways))
}

func cmdTris(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("tris", flag.ExitOnError)
	limit := fs.Int("n", 0, "Limit output to N triangles (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: fieldtool tris <field> [-n N]")
		os.Exit(1)
	}

	mesh := loadMesh(cfg, fs.Arg(0))

	for i := range mesh.Triangles {
		if *limit > 0 && i >= *limit {
			fmt.Fprintf(os.Stderr, "\n(showing first %d of %d)\n", *limit, mesh.Count())
			break
		}
		t := &mesh.Triangles[i]
		fmt.Printf("%4d  (%d, %d, %d) (%d, %d, %d) (%d, %d, %d)  [%s %s %s]\n",
			i,
			t.Vertices[0].X, t.Vertices[0].Y, t.Vertices[0].Z,
			t.Vertices[1].X, t.Vertices[1].Y, t.Vertices[1].Z,
			t.Vertices[2].X, t.Vertices[2].Y, t.Vertices[2].Z,
			accessLabel(t.Access[0]), accessLabel(t.Access[1]), accessLabel(t.Access[2]))
	}
}

func cmdGateways(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: fieldtool gateways <field>")
		os.Exit(1)
	}

	gateways := loadGateways(cfg, args[0])
	if len(gateways) == 0 {
		fmt.Println("No gateways")
		return
	}

	for i, g := range gateways {
		mid := g.Midpoint2D()
		fmt.Printf("%2d: field %-4d  (%d, %d, %d) -> (%d, %d, %d)  mid (%g, %g)\n",
			i, g.FieldID,
			g.V1.X, g.V1.Y, g.V1.Z,
			g.V2.X, g.V2.Y, g.V2.Z,
			mid.X, mid.Y)
	}
}

func cmdBounds(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: fieldtool bounds <field>")
		os.Exit(1)
	}

	mesh := loadMesh(cfg, args[0])
	b := field.ComputeBounds(mesh)

	fmt.Printf("X: [%g, %g]  center %g  width %g\n", b.MinX, b.MaxX, b.CenterX, b.Width())
	fmt.Printf("Y: [%g, %g]  center %g  depth %g\n", b.MinY, b.MaxY, b.CenterY, b.Depth())
	fmt.Printf("Z: [%g, %g]  center %g  height %g\n", b.MinZ, b.MaxZ, b.CenterZ, b.Height())
}

func cmdLocate(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("locate", flag.ExitOnError)
	wire := fs.Bool("wire", false, "Print the encoded position update")
	radius := fs.Int("radius", 24, "Collision radius for the placeable")
	fs.Parse(args)

	if fs.NArg() < 3 {
		fmt.Fprintln(os.Stderr, "Usage: fieldtool locate <field> <x> <y>")
		os.Exit(1)
	}

	x, errX := strconv.ParseFloat(fs.Arg(1), 64)
	y, errY := strconv.ParseFloat(fs.Arg(2), 64)
	if errX != nil || errY != nil {
		fmt.Fprintln(os.Stderr, "locate: x and y must be numbers")
		os.Exit(1)
	}

	mesh := loadMesh(cfg, fs.Arg(0))

	tri, z := locator(cfg, mesh)(x, y)
	if tri == field.NoTriangle {
		fmt.Printf("(%g, %g): off-mesh\n", x, y)
	} else {
		fmt.Printf("(%g, %g): triangle %d, elevation %d\n", x, y, tri, z)
	}

	if *wire {
		p := field.Placeable{
			X:      int(math.Round(x)),
			Y:      int(math.Round(y)),
			Z:      z,
			Radius: uint16(*radius),
		}
		update := p.Snap(mesh)
		fmt.Printf("wire: % X\n", update.Encode())
	}
}

func cmdPath(cfg *config.Config, args []string) {
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: fieldtool path <field> <from> <to>")
		os.Exit(1)
	}

	from, errF := strconv.Atoi(args[1])
	to, errT := strconv.Atoi(args[2])
	if errF != nil || errT != nil {
		fmt.Fprintln(os.Stderr, "path: from and to must be triangle indices")
		os.Exit(1)
	}

	mesh := loadMesh(cfg, args[0])
	if from < 0 || from >= mesh.Count() || to < 0 || to >= mesh.Count() {
		fmt.Fprintf(os.Stderr, "path: indices must be in 0..%d\n", mesh.Count()-1)
		os.Exit(1)
	}

	path := mesh.FindPath(from, to)
	if path == nil {
		fmt.Printf("no route from %d to %d\n", from, to)
		return
	}

	steps := make([]string, len(path))
	for i, tri := range path {
		steps[i] = strconv.Itoa(tri)
	}
	fmt.Println(strings.Join(steps, " -> "))
	fmt.Fprintf(os.Stderr, "(%d triangles)\n", len(path))
}

func cmdPreview(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	out := fs.String("o", "", "Output PNG path")
	supersample := fs.Bool("supersample", false, "Render at 2x and downscale")
	at := fs.String("at", "", "Draw a position marker, as \"x,y\"")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: fieldtool preview <field> [-o file]")
		os.Exit(1)
	}

	mesh := loadMesh(cfg, fs.Arg(0))
	gateways := loadGateways(cfg, fs.Arg(0))

	opts := preview.DefaultOptions()
	opts.Scale = float64(cfg.Preview.Scale) / 1000
	opts.ShowGateways = cfg.Preview.ShowGateways
	opts.ShowBlocked = cfg.Preview.ShowBlocked
	opts.Supersample = *supersample

	r := preview.NewRenderer(mesh, gateways, opts)

	if *at != "" {
		marker, err := parseMarker(mesh, *at)
		if err != nil {
			fmt.Fprintf(os.Stderr, "preview: %v\n", err)
			os.Exit(1)
		}
		r.SetMarkers([]field.Placeable{marker})
	}

	outPath := *out
	if outPath == "" {
		outPath = filepath.Join(cfg.Preview.OutDir, fieldName(fs.Arg(0))+".png")
	}

	if err := r.WritePNG(outPath); err != nil {
		logger.Error("failed to write preview", zap.String("path", outPath), zap.Error(err))
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", outPath)
}

// parseMarker parses an "x,y" argument and grounds the marker on the
// mesh so it carries the surface elevation.
func parseMarker(mesh *field.Walkmesh, arg string) (field.Placeable, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 2 {
		return field.Placeable{}, fmt.Errorf("marker must be \"x,y\", got %q", arg)
	}

	x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errX != nil || errY != nil {
		return field.Placeable{}, fmt.Errorf("marker must be \"x,y\", got %q", arg)
	}

	p := field.Placeable{X: int(math.Round(x)), Y: int(math.Round(y)), Radius: 24}
	update := p.Snap(mesh)
	p.Z = int(update.Z)
	return p, nil
}
