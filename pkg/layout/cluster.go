package layout

import "math"

// matrixColumns is the fixed slot count per group matrix row.
const matrixColumns = 3

// groupMatrix is the bounded packing for one grouping key: a growable
// sequence of slot rows, each holding up to matrixColumns adapter indices.
type groupMatrix struct {
	rows [][matrixColumns]int
}

func newGroupMatrix() *groupMatrix {
	m := &groupMatrix{}
	m.addRow()
	return m
}

func (m *groupMatrix) addRow() {
	m.rows = append(m.rows, [matrixColumns]int{none, none, none})
}

// builder links adapter nodes into the cluster structures during a single
// forward pass over the render order. Containers are never merged or
// re-evaluated once opened; this greedy, non-backtracking behavior is part
// of the layout contract.
type builder struct {
	a            *arena
	minStartDiff float64
	containers   []int
	matrices     map[string]*groupMatrix
}

func newBuilder(a *arena, minStartDiff float64) *builder {
	return &builder{
		a:            a,
		minStartDiff: minStartDiff,
		matrices:     make(map[string]*groupMatrix),
	}
}

// attach links node i into the cluster structures. Events must be attached
// in render order.
func (b *builder) attach(i int) {
	n := &b.a.nodes[i]

	if n.grouped {
		b.attachGrouped(i)
		return
	}

	// Check if this event fits into an open container: the first whose
	// span extends past this event's start, or whose start is within
	// tolerance of it.
	container := none
	for _, c := range b.containers {
		cn := &b.a.nodes[c]
		if cn.end > n.start || math.Abs(n.start-cn.start) < b.minStartDiff {
			container = c
			break
		}
	}

	// No container means this event becomes one.
	if container == none {
		n.rows = []int{}
		b.containers = append(b.containers, i)
		return
	}

	n.container = container

	// Look for a row that can take the event, newest rows first.
	cn := &b.a.nodes[container]
	row := none
	for j := len(cn.rows) - 1; row == none && j >= 0; j-- {
		if b.onSameRow(cn.rows[j], i) {
			row = cn.rows[j]
		}
	}

	if row != none {
		b.a.nodes[row].leaves = append(b.a.nodes[row].leaves, i)
		n.row = row
	} else {
		n.leaves = []int{}
		cn.rows = append(cn.rows, i)
	}
}

// onSameRow reports whether event b should sit beside row event a: they
// occupy the same start slot within tolerance, or b begins strictly inside
// a's span.
func (bu *builder) onSameRow(a, b int) bool {
	na, nb := &bu.a.nodes[a], &bu.a.nodes[b]
	return math.Abs(nb.start-na.start) < bu.minStartDiff ||
		(nb.start > na.start && nb.start < na.end)
}

// attachGrouped places node i into its key's matrix.
func (b *builder) attachGrouped(i int) {
	n := &b.a.nodes[i]

	m, ok := b.matrices[n.group]
	if !ok {
		m = newGroupMatrix()
		b.matrices[n.group] = m
		b.place(m, i, 0, 0)
		return
	}

	for {
		if b.tryPlace(m, i) {
			return
		}
		// Every slot row is full; overflow spawns a new row rather than
		// dropping the event.
		m.addRow()
	}
}

// tryPlace scans the matrix's slot rows in order for a home for node i.
// The first row takes the first empty slot unconditionally. Later rows
// pick the empty slot with the maximum gap back to the occupant of the
// same column in the previous row, which keeps a recurring group's slot
// from jumping across rows. Exact gap ties keep the first column
// encountered.
func (b *builder) tryPlace(m *groupMatrix, i int) bool {
	n := &b.a.nodes[i]

	for r := range m.rows {
		if r == 0 {
			for c := 0; c < matrixColumns; c++ {
				if m.rows[0][c] == none {
					b.place(m, i, 0, c)
					return true
				}
			}
			continue
		}

		bestCol := none
		bestGap := math.Inf(-1)
		for c := 0; c < matrixColumns; c++ {
			if m.rows[r][c] != none {
				continue
			}
			prevEnd := 0.0
			if p := m.rows[r-1][c]; p != none {
				prevEnd = b.a.nodes[p].end
			}
			if gap := n.start - prevEnd; gap > bestGap {
				bestGap = gap
				bestCol = c
			}
		}
		if bestCol != none {
			b.place(m, i, r, bestCol)
			return true
		}
	}
	return false
}

// place records node i at slot (row, col). The column exposed to the
// geometry is global across slot rows, so successive same-key events keep
// distinct offsets.
func (b *builder) place(m *groupMatrix, i, row, col int) {
	m.rows[row][col] = i
	b.a.nodes[i].column = row*matrixColumns + col
}
