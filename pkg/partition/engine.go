package partition

import (
	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/history"
	"github.com/matzehuels/mondrian/pkg/observability"
)

// DefaultMinSize is the smallest width or height a split may produce.
const DefaultMinSize = 1.0

// EngineOption configures an [Engine].
type EngineOption func(*Engine)

// WithHistory uses h for split snapshots instead of a fresh store of
// [history.DefaultCapacity].
func WithHistory(h *history.Store[State]) EngineOption {
	return func(e *Engine) { e.history = h }
}

// WithMinSize sets the smallest child width or height a split may produce.
// Zero only rejects children without area.
func WithMinSize(min float64) EngineOption {
	return func(e *Engine) { e.minSize = min }
}

// WithOutlineStroke sets the stroke used while outlines are enabled.
func WithOutlineStroke(s Stroke) EngineOption {
	return func(e *Engine) { e.outlineStroke = s }
}

// WithOutline sets the initial outline mode (default enabled).
func WithOutline(enabled bool) EngineOption {
	return func(e *Engine) { e.outline = enabled }
}

// Engine owns the current tiling and applies mutations to it.
//
// Every mutation either produces a complete new [State] or returns an error
// and leaves the engine untouched. Splits snapshot the previous state into the
// history store so they can be undone; recolors and outline changes do not.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	state         State
	history       *history.Store[State]
	minSize       float64
	outline       bool
	outlineStroke Stroke
}

// NewEngine creates an engine whose state is the single tile canvas. The
// canvas stroke is replaced according to the outline mode.
func NewEngine(canvas Rect, opts ...EngineOption) (*Engine, error) {
	e := &Engine{
		minSize:       DefaultMinSize,
		outline:       true,
		outlineStroke: DefaultOutline,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.history == nil {
		e.history = history.New[State](history.DefaultCapacity)
	}
	if err := errors.ValidateDimensions(canvas.Width, canvas.Height, 0); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid canvas")
	}
	if e.minSize < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "negative minimum tile size %g", e.minSize)
	}

	canvas.Stroke = e.stroke()
	e.state = NewState(canvas)
	return e, nil
}

// State returns the current tiling.
func (e *Engine) State() State { return e.state }

// Outline reports whether outlines are enabled.
func (e *Engine) Outline() bool { return e.outline }

// UndoDepth returns how many undo steps are available.
func (e *Engine) UndoDepth() int { return e.history.Remaining() }

// SplitOne replaces the tile at index with its children from [Split], in place.
func (e *Engine) SplitOne(index int, o Orientation, arity Arity) (State, error) {
	if err := errors.ValidateIndex(index, e.state.Len()); err != nil {
		observability.Engine().OnSplit(0, 0, e.state.Len(), err)
		return e.state, err
	}
	return e.subdivide([]int{index}, o, arity)
}

// SplitAllMatching splits every tile whose fill equals the fill of the tile
// at index, as one undoable step. If any matching tile cannot be split the
// whole operation is rejected.
func (e *Engine) SplitAllMatching(index int, o Orientation, arity Arity) (State, error) {
	if err := errors.ValidateIndex(index, e.state.Len()); err != nil {
		observability.Engine().OnSplit(0, 0, e.state.Len(), err)
		return e.state, err
	}
	return e.subdivide(e.state.Matching(e.state.At(index).Fill), o, arity)
}

// Recolor sets the fill of the tile at index. Geometry is unchanged and the
// change is not recorded in history.
func (e *Engine) Recolor(index int, c Color) (State, error) {
	if err := errors.ValidateIndex(index, e.state.Len()); err != nil {
		observability.Engine().OnRecolor(index, c.Hex(), err)
		return e.state, err
	}
	e.state = e.state.withFill(index, c)
	observability.Engine().OnRecolor(index, c.Hex(), nil)
	return e.state, nil
}

// SetOutline restrokes every tile for the given outline mode. It reports
// false and leaves the state alone when the mode is already active.
// Outline changes are not recorded in history.
func (e *Engine) SetOutline(enabled bool) (State, bool) {
	if e.outline == enabled {
		observability.Engine().OnOutline(enabled, false)
		return e.state, false
	}
	e.outline = enabled
	e.state = e.state.withStroke(e.stroke())
	observability.Engine().OnOutline(enabled, true)
	return e.state, true
}

// Undo restores the snapshot taken before the most recent split not yet
// undone. Repeated calls step further back. When no snapshot is left it
// returns the current state and false.
//
// The restored tiles take the current outline mode, since outline changes
// are not part of history.
func (e *Engine) Undo() (State, bool) {
	prev, ok := e.history.Undo()
	if !ok {
		observability.Engine().OnUndo(false, 0)
		return e.state, false
	}
	e.state = prev.withStroke(e.stroke())
	observability.Engine().OnUndo(true, e.history.Remaining())
	return e.state, true
}

func (e *Engine) subdivide(targets []int, o Orientation, arity Arity) (State, error) {
	next, err := e.splitTargets(targets, o, arity)
	if err != nil {
		observability.Engine().OnSplit(len(targets), 0, e.state.Len(), err)
		return e.state, err
	}
	e.history.Record(e.state)
	e.state = next
	observability.Engine().OnSplit(len(targets), len(targets)*int(arity), next.Len(), nil)
	return next, nil
}

// splitTargets builds the state with each target tile replaced by its
// children. targets must be ascending.
func (e *Engine) splitTargets(targets []int, o Orientation, arity Arity) (State, error) {
	tiles := make([]Rect, 0, e.state.Len()+len(targets)*(int(arity)-1))
	next := 0
	for i, t := range e.state.tiles {
		if next >= len(targets) || targets[next] != i {
			tiles = append(tiles, t)
			continue
		}
		next++

		children, err := Split(t, o, arity)
		if err != nil {
			return State{}, err
		}
		for _, c := range children {
			if err := errors.ValidateDimensions(c.Width, c.Height, e.minSize); err != nil {
				return State{}, errors.Wrap(errors.ErrCodeDegenerateSplit, err, "cannot split tile %d", i)
			}
		}
		tiles = append(tiles, children...)
	}
	return State{tiles: tiles}, nil
}

func (e *Engine) stroke() Stroke {
	if e.outline {
		return e.outlineStroke
	}
	return NoStroke
}
