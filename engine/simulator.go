package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/strskel/strskel/geom"
	"github.com/strskel/strskel/oracle"
	"github.com/strskel/strskel/skelerr"
	"github.com/strskel/strskel/skeleton"
	"github.com/strskel/strskel/triio"
)

// MaxIterations is the hard guard against pathological, non-converging
// runs (spec.md §4.4, §7 NumericStall).
const MaxIterations = 50_000

// Visualizer is the injectable no-op-by-default visualization sink (DESIGN
// NOTES: replace global mutable I/O sinks with a trait/interface). The
// event loop calls OnEvent after every handled event; a hosted environment
// can wire in a real renderer. NopVisualizer is the default; the CLI swaps
// in LoggingVisualizer when the pause option is set.
type Visualizer interface {
	OnEvent(now float64, ev *skeleton.Event)
}

type NopVisualizer struct{}

func (NopVisualizer) OnEvent(float64, *skeleton.Event) {}

// LoggingVisualizer logs one line per handled event, standing in for the
// original's interactive plot-and-pause stepping (grassfire.calc_skel's
// pause=True) in a non-interactive CLI: instead of blocking for a keypress
// between events, it reports each one as it is handled.
type LoggingVisualizer struct {
	log *logrus.Entry
}

func NewLoggingVisualizer() *LoggingVisualizer {
	return &LoggingVisualizer{log: logrus.WithField("component", "engine")}
}

func (v *LoggingVisualizer) OnEvent(now float64, ev *skeleton.Event) {
	v.log.Infof("t=%.6f triangle=%d kind=%s sides=%v", now, ev.Triangle.Info, ev.Kind, ev.Side)
}

// Simulator runs the event loop over a Skeleton: it owns the event queue,
// the current simulated time, and the oracle tolerances every handler
// threads through explicitly (DESIGN NOTES: one owned Tolerances struct
// instead of scattering ad-hoc epsilon constants).
type Simulator struct {
	Skel   *skeleton.Skeleton
	Tol    geom.Tolerances
	Orient triio.OrientFunc
	Viz    Visualizer

	q         *EventQueue
	now       float64
	step      int
	iteration int

	log *logrus.Entry
}

func NewSimulator(skel *skeleton.Skeleton, tol geom.Tolerances, orient triio.OrientFunc) *Simulator {
	return &Simulator{
		Skel:   skel,
		Tol:    tol,
		Orient: orient,
		Viz:    NopVisualizer{},
		q:      NewEventQueue(),
		log:    logrus.WithField("component", "engine"),
	}
}

// Init seeds the queue by computing the oracle's verdict for every
// triangle at t=0, using the strict (gt) sieve variant.
func (s *Simulator) Init() error {
	for _, t := range s.Skel.Triangles {
		if err := s.recompute(t, true); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulator) recompute(t *skeleton.Triangle, strict bool) error {
	if t.StopsAt != nil {
		t.ClearEvent()
		return nil
	}
	ev, err := oracle.Compute(t, s.now, s.Tol, strict)
	if err != nil {
		return err
	}
	t.SetEvent(ev)
	if ev != nil {
		oracle.CheckOrientation(t, ev, s.now, geom.Orient2D)
		if ev.Override {
			s.Skel.Stats.SidesOverrideCount++
		}
		s.q.Schedule(ev)
	}
	return nil
}

// Run drives the event loop to completion (spec.md §4.4) and returns the
// time of the last handled event.
func (s *Simulator) Run() (float64, error) {
	for !s.q.Empty() {
		s.iteration++
		if s.iteration > MaxIterations {
			return s.now, skelerr.NewNumericStall(s.now, MaxIterations)
		}
		ev, advances, ok := s.q.Pop()
		if !ok {
			break
		}
		if ev.Triangle.StopsAt != nil {
			continue // stale: triangle already collapsed via another event
		}
		if ev != ev.Triangle.Event() {
			continue // stale: triangle's cached verdict has since changed
		}
		if advances {
			s.now = ev.Time
		}
		if err := s.dispatch(ev); err != nil {
			return s.now, err
		}
		s.Viz.OnEvent(s.now, ev)
		s.Skel.Stats.Iterations = s.iteration
	}
	for _, t := range s.Skel.Triangles {
		if t.StopsAt != nil {
			continue
		}
		if !t.IsFinite() {
			continue
		}
		allInternal := true
		for _, v := range t.Vertices {
			kv, ok := v.(*skeleton.KineticVertex)
			if !ok || !kv.Internal {
				allInternal = false
				break
			}
		}
		if allInternal {
			return s.now, skelerr.NewInvariantViolation(t.Info, s.now, "internal triangle never collapsed")
		}
	}
	return s.now, nil
}

func (s *Simulator) dispatch(ev *skeleton.Event) error {
	switch ev.Kind {
	case skeleton.EdgeEvent:
		s.Skel.Stats.EdgeEvents++
		switch len(ev.Side) {
		case 1:
			if ev.Triangle.Type() == 3 {
				return s.handleType3SingleSideEdge(ev.Triangle, ev.Side[0])
			}
			return s.handleSingleSideEdge(ev.Triangle, ev.Side[0])
		case 3:
			return s.handleThreeSideEdge(ev.Triangle)
		default:
			return skelerr.NewImpossibleConfiguration(ev.Triangle.Info, s.now, "edge event with %d sides", len(ev.Side))
		}
	case skeleton.FlipEvent:
		s.Skel.Stats.FlipEvents++
		return s.handleFlip(ev.Triangle, ev.Side[0])
	case skeleton.SplitEvent:
		s.Skel.Stats.SplitEvents++
		return s.handleSplit(ev.Triangle, ev.Side[0])
	default:
		return skelerr.NewImpossibleConfiguration(ev.Triangle.Info, s.now, "unknown event kind")
	}
}

func (s *Simulator) nextStep() int {
	s.step++
	return s.step
}

func (s *Simulator) stopAt(pos geom.Vec, info int) *skeleton.Node {
	return s.Skel.NewNode(pos, s.nextStep(), info)
}

// findOrReuseNode returns an existing stop node within tolerance of pos
// among the given already-stopped vertices, or creates a new one.
func (s *Simulator) findOrReuseNode(pos geom.Vec, candidates ...*skeleton.KineticVertex) *skeleton.Node {
	for _, c := range candidates {
		if c == nil || c.StopNode == nil {
			continue
		}
		if geom.Dist2(c.StopNode.Pos, pos) <= s.Tol.Dist*s.Tol.Dist {
			return c.StopNode
		}
	}
	return s.stopAt(pos, -1)
}

func (s *Simulator) newKineticVertexFromBisector(ul, ur geom.Line2, wfl, wfr *geom.WaveFront, origin geom.Vec, startNode *skeleton.Node) *skeleton.KineticVertex {
	kv := s.Skel.NewKineticVertex()
	bis := geom.ComputeBisector(ul, ur, s.Tol)
	kv.Origin = origin
	kv.Velocity = bis.Velocity
	kv.UL, kv.UR = ul, ur
	kv.WFL, kv.WFR = wfl, wfr
	kv.StartsAt = s.now
	kv.StartNode = startNode
	if bis.IsNearZero(s.Tol) {
		kv.InfFast = true
	}
	return kv
}
