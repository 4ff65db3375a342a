package layout

import "context"

// DefaultCompactionStep is the distance, in layout units, that compaction
// moves a rectangle toward the origin per step.
const DefaultCompactionStep = 0.5

// Option configures a [Layouter].
type Option func(*config)

type config struct {
	compactionStep float64
	compact        bool
	gridCell       float64
}

// WithCompactionStep sets how far compaction moves a rectangle per step.
// Smaller steps pack tighter and cost more overlap tests. The step must be
// positive.
func WithCompactionStep(step float64) Option {
	return func(c *config) { c.compactionStep = step }
}

// WithoutCompaction leaves every rectangle at its raw spiral position.
func WithoutCompaction() Option {
	return func(c *config) { c.compact = false }
}

// WithGridIndex answers overlap queries with a uniform grid of the given cell
// size instead of a linear scan. Placements are identical either way; a
// cell size close to the typical rectangle size works best.
func WithGridIndex(cellSize float64) Option {
	return func(c *config) { c.gridCell = cellSize }
}

// Layouter places rectangles around a fixed origin without overlap.
//
// The zero value is not usable; construct with [New].
type Layouter struct {
	origin Point
	spiral *Spiral
	index  Index
	rects  []Rect
	bounds Box
	cfg    config
}

// New creates an empty layouter around origin. angleStep is the number of
// radians the spiral advances per candidate and radiusStep the radial growth
// per radian; both must be positive.
func New(origin Point, angleStep, radiusStep float64, opts ...Option) (*Layouter, error) {
	spiral, err := NewSpiral(origin, angleStep, radiusStep)
	if err != nil {
		return nil, err
	}

	cfg := config{compactionStep: DefaultCompactionStep, compact: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.compact {
		if err := checkStep("compaction step", cfg.compactionStep); err != nil {
			return nil, err
		}
	}

	var index Index = newScanIndex()
	if cfg.gridCell != 0 {
		if err := checkStep("grid cell size", cfg.gridCell); err != nil {
			return nil, err
		}
		index = newGridIndex(cfg.gridCell)
	}

	return &Layouter{
		origin: origin,
		spiral: spiral,
		index:  index,
		cfg:    cfg,
	}, nil
}

// PlaceNext places a rectangle of the given size and returns it. The result
// always has exactly the requested size; only its center is chosen.
//
// The first rectangle is centered on the origin. Later rectangles take the
// first free spiral candidate, continuing from where the previous search
// stopped, and are then compacted toward the origin.
//
// A size that is not positive in both dimensions fails with
// [ErrInvalidSize] and leaves the layouter unchanged.
func (l *Layouter) PlaceNext(size Size) (Rect, error) {
	return l.place(context.Background(), size)
}

// PlaceNextContext is [Layouter.PlaceNext] with cancellation. The spiral
// search polls ctx every few hundred candidates; a cancelled search returns
// ctx.Err() and leaves the layouter unchanged.
func (l *Layouter) PlaceNextContext(ctx context.Context, size Size) (Rect, error) {
	return l.place(ctx, size)
}

func (l *Layouter) place(ctx context.Context, size Size) (Rect, error) {
	if err := checkSize(size); err != nil {
		return Rect{}, err
	}

	if len(l.rects) == 0 {
		r := RectAt(l.origin, size)
		l.commit(r)
		return r, nil
	}

	cursor := *l.spiral
	r, err := l.search(ctx, size)
	if err != nil {
		*l.spiral = cursor
		return Rect{}, err
	}
	if l.cfg.compact {
		r = l.compact(r)
	}
	l.commit(r)
	return r, nil
}

// searchPollInterval is how many spiral candidates search tests between
// checks of its context.
const searchPollInterval = 256

// search advances the spiral until a candidate of the given size is free.
// It terminates because the spiral radius grows without bound while the
// placed set is finite.
func (l *Layouter) search(ctx context.Context, size Size) (Rect, error) {
	done := ctx.Done()
	for i := 1; ; i++ {
		r := RectAt(l.spiral.Next(), size)
		if !l.index.Intersects(r) {
			return r, nil
		}
		if done != nil && i%searchPollInterval == 0 {
			select {
			case <-done:
				return Rect{}, ctx.Err()
			default:
			}
		}
	}
}

// compactRefinements is the number of bisection rounds compaction spends
// closing the gap between the last free and the first blocked step.
const compactRefinements = 24

// compact slides r along the straight line toward the origin in fixed steps
// and returns the last position that overlaps nothing. When less than one
// step remains, the origin itself is tried. The gap to the first blocked
// step is then bisected so the rectangle ends flush against its neighbor.
func (l *Layouter) compact(r Rect) Rect {
	start := r.Center
	dist := start.Distance(l.origin)
	if dist == 0 {
		return r
	}
	delta := l.origin.Sub(start)
	dir := Point{X: delta.X / dist, Y: delta.Y / dist}
	at := func(travel float64) Rect {
		if travel >= dist {
			return RectAt(l.origin, r.Size)
		}
		return RectAt(start.Add(dir.Mul(travel)), r.Size)
	}
	step := l.cfg.compactionStep

	free := 0.0
	for k := 1; ; k++ {
		travel := min(float64(k)*step, dist)
		if l.index.Intersects(at(travel)) {
			return l.refine(at, free, travel)
		}
		free = travel
		if travel >= dist {
			return at(dist)
		}
	}
}

// refine bisects between a free travel distance and a blocked one and
// returns the rectangle at the furthest free distance found.
func (l *Layouter) refine(at func(float64) Rect, free, blocked float64) Rect {
	for range compactRefinements {
		mid := (free + blocked) / 2
		if l.index.Intersects(at(mid)) {
			blocked = mid
		} else {
			free = mid
		}
	}
	return at(free)
}

func (l *Layouter) commit(r Rect) {
	if len(l.rects) == 0 {
		l.bounds = BoxOf(r)
	} else {
		l.bounds = l.bounds.Union(BoxOf(r))
	}
	l.rects = append(l.rects, r)
	l.index.Insert(r)
}

// Rects returns a copy of the placed rectangles in placement order.
func (l *Layouter) Rects() []Rect {
	out := make([]Rect, len(l.rects))
	copy(out, l.rects)
	return out
}

// Len returns the number of placed rectangles.
func (l *Layouter) Len() int { return len(l.rects) }

// Empty reports whether nothing has been placed yet.
func (l *Layouter) Empty() bool { return len(l.rects) == 0 }

// Origin returns the fixed center of the cloud.
func (l *Layouter) Origin() Point { return l.origin }

// Bounds returns the bounding box of everything placed so far. ok is false
// while the layouter is empty.
func (l *Layouter) Bounds() (b Box, ok bool) {
	return l.bounds, len(l.rects) > 0
}

// SpiralRadius returns the radius the spiral search has reached. It is a
// measure of how much searching all placements so far required.
func (l *Layouter) SpiralRadius() float64 { return l.spiral.Radius() }

// SpiralSteps returns the number of spiral candidates examined so far.
func (l *Layouter) SpiralSteps() int { return l.spiral.Steps() }
