package strskel

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/strskel/strskel/config"
	"github.com/strskel/strskel/engine"
	"github.com/strskel/strskel/geom"
	"github.com/strskel/strskel/skeleton"
	"github.com/strskel/strskel/triio"
)

// polygonFile is the on-disk JSON shape accepted by --input: one outer ring
// and zero or more holes, each a flat list of [x, y] pairs.
type polygonFile struct {
	Outer [][2]float64   `json:"outer"`
	Holes [][][2]float64 `json:"holes"`
}

func loadPolygon(path string) (*polygonFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pf polygonFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, err
	}
	return &pf, nil
}

func toVecs(pts [][2]float64) []geom.Vec {
	out := make([]geom.Vec, len(pts))
	for i, p := range pts {
		out[i] = geom.Vec{X: p[0], Y: p[1]}
	}
	return out
}

// forward maps every point in ring through tr, into the shrink-normalised
// frame the triangulator runs in.
func forward(tr *skeleton.Transform, ring []geom.Vec) []geom.Vec {
	out := make([]geom.Vec, len(ring))
	for i, p := range ring {
		out[i] = tr.Forward(p)
	}
	return out
}

func runRun(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logrus.SetLevel(level)

	cfg := config.DefaultRunConfig()
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	if internal {
		cfg.Options.InternalOnly = true
	}
	if noShrink {
		cfg.Options.Shrink = false
	}

	pf, err := loadPolygon(inputPath)
	if err != nil {
		return fmt.Errorf("loading polygon: %w", err)
	}

	outer := toVecs(pf.Outer)
	holes := make([][]geom.Vec, len(pf.Holes))
	for i, hole := range pf.Holes {
		holes[i] = toVecs(hole)
	}

	var transform *skeleton.Transform
	if cfg.Options.Shrink {
		all := append([]geom.Vec{}, outer...)
		for _, h := range holes {
			all = append(all, h...)
		}
		min, max := geom.BoundingBox(all)
		transform = skeleton.NewTransform(min, max)
		outer = forward(transform, outer)
		for i, h := range holes {
			holes[i] = forward(transform, h)
		}
	}

	builder := triio.NewPolygonBuilder()
	builder.AddRing(outer, nil)
	for _, h := range holes {
		builder.AddRing(h, nil)
	}

	cdt, err := builder.Triangulate()
	if err != nil {
		return fmt.Errorf("triangulating input: %w", err)
	}

	tol := cfg.Tolerances.ToTolerances()
	skel, err := skeleton.Init(cdt, tol)
	if err != nil {
		return fmt.Errorf("initializing skeleton: %w", err)
	}
	skel.Transform = transform
	if cfg.RayHorizon > 0 {
		skel.RayHorizon = cfg.RayHorizon
	}

	sim := engine.NewSimulator(skel, tol, geom.Orient2D)
	if cfg.Options.Pause {
		sim.Viz = engine.NewLoggingVisualizer()
	}
	if err := sim.Init(); err != nil {
		return fmt.Errorf("seeding event queue: %w", err)
	}
	if _, err := sim.Run(); err != nil {
		return fmt.Errorf("running simulation: %w", err)
	}

	logrus.Infof("simulation complete: %d iterations, %d edge events, %d split events, %d flip events",
		skel.Stats.Iterations, skel.Stats.EdgeEvents, skel.Stats.SplitEvents, skel.Stats.FlipEvents)

	printSegments(skel, cfg.Options.InternalOnly)
	return nil
}

// printSegments prints one WKT LINESTRING per finished skeleton edge. With
// internalOnly set, edges traced out by a vertex not flagged v.Internal
// (not on the interior side of the polygon boundary) are skipped, leaving
// only the edges
// spec.md §7 calls "the skeleton graph" proper.
func printSegments(skel *skeleton.Skeleton, internalOnly bool) {
	for _, v := range skel.Vertices {
		if v.StartNode == nil || v.StopNode == nil {
			continue
		}
		if internalOnly && !v.Internal {
			continue
		}
		start, end := v.StartNode.Pos, v.StopNode.Pos
		if skel.Transform != nil {
			start, end = skel.Transform.Backward(start), skel.Transform.Backward(end)
		}
		fmt.Printf("LINESTRING (%g %g, %g %g)\n", start.X, start.Y, end.X, end.Y)
	}
}
