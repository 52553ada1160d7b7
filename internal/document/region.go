package document

import (
	"fmt"

	"github.com/rezkam/weekly/internal/domain"
)

// Region locates a member's content in a document's top-level node list.
// Content spans nodes[Start:EndExclusive]; AnchorID is the heading node.
type Region struct {
	AnchorID     string
	Anchor       int
	Start        int
	EndExclusive int
}

// Len is the number of content nodes in the region.
func (r Region) Len() int { return r.EndExclusive - r.Start }

func (r Region) String() string {
	return fmt.Sprintf("anchor=%s [%d,%d)", r.AnchorID, r.Start, r.EndExclusive)
}

// RegionMap maps a heading label to its region. The first heading with a
// given label wins.
type RegionMap map[string]Region

// BuildRegions scans a flat node list once. A region runs strictly between a
// heading and the next heading or divider, or the end of the list.
func BuildRegions(nodes []domain.Block) RegionMap {
	regions := make(RegionMap)
	open := -1
	var label string

	closeAt := func(end int) {
		if open < 0 {
			return
		}
		if _, seen := regions[label]; !seen {
			regions[label] = Region{
				AnchorID:     nodes[open].ID,
				Anchor:       open,
				Start:        open + 1,
				EndExclusive: end,
			}
		}
		open = -1
	}

	for i, n := range nodes {
		if !n.IsBoundary() {
			continue
		}
		closeAt(i)
		if n.Kind == domain.BlockHeading {
			open = i
			label = n.Text
		}
	}
	closeAt(len(nodes))
	return regions
}
