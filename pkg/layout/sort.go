package layout

import (
	"cmp"
	"slices"
)

// renderOrder produces the single iteration order used by clustering and
// output assembly.
//
// The primary order is a stable multi-key sort: grouped events first, then
// ascending start instant, then descending end instant (longer events first
// among equal starts). Ties preserve input order.
//
// A reordering pass then keeps causally-overlapping ungrouped events
// contiguous: after emitting an event, the first later event that starts at
// or after its end is pulled forward so the next overlap chain begins
// immediately. Grouped events terminate the scan without being moved.
func renderOrder(a *arena) []int {
	byTime := make([]int, len(a.nodes))
	for i := range byTime {
		byTime[i] = i
	}

	slices.SortStableFunc(byTime, func(x, y int) int {
		nx, ny := &a.nodes[x], &a.nodes[y]
		if nx.grouped != ny.grouped {
			if nx.grouped {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(nx.startMs, ny.startMs); c != 0 {
			return c
		}
		return cmp.Compare(ny.endMs, nx.endMs)
	})

	sorted := make([]int, 0, len(byTime))
	for len(byTime) > 0 {
		i := byTime[0]
		byTime = byTime[1:]
		sorted = append(sorted, i)

		if a.nodes[i].grouped {
			continue
		}

		for j := 0; j < len(byTime); j++ {
			test := byTime[j]
			if a.nodes[test].grouped {
				break
			}

			// Still inside the current event, keep looking.
			if a.nodes[i].endMs > a.nodes[test].startMs {
				continue
			}

			// Found the first event of the next overlap chain. If it is
			// not already adjacent, drag it forward.
			if j > 0 {
				byTime = slices.Delete(byTime, j, j+1)
				sorted = append(sorted, test)
			}
			break
		}
	}
	return sorted
}
