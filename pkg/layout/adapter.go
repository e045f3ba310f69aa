package layout

import (
	"math"
	"time"

	"github.com/travelboss/daygrid/pkg/timegrid"
)

// none marks an unset relationship index.
const none = -1

// growthFactor widens an event when its neighboring slot is otherwise
// free; widths are capped at the full column.
const growthFactor = 1.7

// gutter is the fixed spacing unit between a group matrix's columns, and
// between pixel-sized rows/leaves and their predecessors.
const gutter = 2.0

// node is one geometry adapter in the arena. It wraps a single input event
// and carries both its vertical placement and, after clustering, its
// position in the container/row/leaf tree or group matrix.
//
// Relationship fields are arena indices, never pointers, so the cyclic
// container↔row↔leaf references stay trivially garbage-free.
//
// Exactly one role holds after clustering: container (rows != nil), row
// (leaves != nil), leaf (row != none), or grouped.
type node struct {
	src int // index into the caller's event slice

	// Placement-space coordinates, used for overlap and adjacency tests at
	// layout granularity.
	start, end float64

	// Absolute instants in Unix milliseconds, used only for ordering.
	startMs, endMs int64

	// Vertical placement, passed through to the emitted style.
	top, height float64

	group    string
	fixed    Dimension
	hasFixed bool
	unit     Unit

	rows      []int // container: ordered row indices
	leaves    []int // row: ordered leaf indices
	container int   // row: owning container index
	row       int   // leaf: owning row index
	column    int   // grouped: global slot index across the key's matrix
	grouped   bool
}

func newNode(src int, r timegrid.Range, start, end time.Time) node {
	return node{
		src:       src,
		start:     r.Start,
		end:       r.End,
		startMs:   start.UnixMilli(),
		endMs:     end.UnixMilli(),
		top:       r.Top,
		height:    r.Height,
		unit:      UnitPercent,
		container: none,
		row:       none,
		column:    none,
	}
}

// arena holds all adapter nodes for one computation.
type arena struct {
	nodes []node
}

// effectiveWidth is the pre-growth width of a node, resolved by its role.
//
//   - fixed width: supplied value, bypassing all derivation
//   - container: 100 divided by one column for itself plus the busiest
//     row's leaf count plus that row itself
//   - row: the space left by its container, divided among itself and its
//     leaves
//   - leaf: its owning row's width
//   - grouped without a fixed width: one of the matrix's three columns
func (a *arena) effectiveWidth(i int) float64 {
	n := &a.nodes[i]

	if n.hasFixed {
		return n.fixed.Value
	}

	if n.grouped {
		return 100.0 / 3
	}

	if n.rows != nil {
		columns := 0
		for _, r := range n.rows {
			columns = max(columns, len(a.nodes[r].leaves)+1)
		}
		columns++ // the container claims a column of its own
		return 100 / float64(columns)
	}

	if n.leaves != nil {
		available := 100 - a.effectiveWidth(n.container)
		return available / float64(len(n.leaves)+1)
	}

	return a.effectiveWidth(n.row)
}

// width is the final, externally visible width. Percentage widths may grow
// by growthFactor when the node's role allows it; fixed and non-percentage
// widths never grow.
func (a *arena) width(i int) Dimension {
	n := &a.nodes[i]

	if n.hasFixed {
		return n.fixed
	}

	noOverlap := a.effectiveWidth(i)
	if n.unit != UnitPercent {
		return Dimension{Value: noOverlap, Unit: n.unit}
	}

	if n.grouped {
		// Matrix columns are fixed; growing would collide with the
		// neighboring slot.
		return Dimension{Value: noOverlap, Unit: n.unit}
	}

	overlap := math.Min(100, noOverlap*growthFactor)

	// The container can always grow.
	if n.rows != nil {
		return Dimension{Value: overlap, Unit: n.unit}
	}

	// Rows can grow if they have leaves.
	if n.leaves != nil {
		if len(n.leaves) > 0 {
			return Dimension{Value: overlap, Unit: n.unit}
		}
		return Dimension{Value: noOverlap, Unit: n.unit}
	}

	// Leaves can grow unless they are the last item in their row.
	leaves := a.nodes[n.row].leaves
	if leaves[len(leaves)-1] == i {
		return Dimension{Value: noOverlap, Unit: n.unit}
	}
	return Dimension{Value: overlap, Unit: n.unit}
}

// xOffset is the final horizontal offset, clamped to non-negative.
func (a *arena) xOffset(i int) Dimension {
	n := &a.nodes[i]

	// Grouped events sit at their assigned matrix column.
	if n.grouped {
		w := a.effectiveWidth(i)
		return Dimension{Value: math.Max(0, (w+gutter)*float64(n.column)), Unit: n.unit}
	}

	// Containers have no offset.
	if n.rows != nil {
		return Dimension{Value: 0, Unit: n.unit}
	}

	// Rows start where their container ends. Percentage containers already
	// account for spacing in their computed width; pixel units need the
	// explicit gutter.
	if n.leaves != nil {
		offset := a.effectiveWidth(n.container)
		if n.unit == UnitPixel {
			offset += gutter
		}
		return Dimension{Value: math.Max(0, offset), Unit: n.unit}
	}

	// Leaves are spread out evenly on the space left by their row.
	row := &a.nodes[n.row]
	index := 0
	for k, leaf := range row.leaves {
		if leaf == i {
			index = k + 1
			break
		}
	}
	offset := a.xOffset(n.row).Value + float64(index)*a.effectiveWidth(n.row)
	if n.unit == UnitPixel {
		offset += gutter
	}
	return Dimension{Value: math.Max(0, offset), Unit: n.unit}
}
