package visgraph

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// labelEntry wraps a labelled node for R-tree storage.
type labelEntry struct {
	id   NodeID
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *labelEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// labelIndex answers nearest-waypoint queries over labelled nodes only.
type labelIndex struct {
	tree *rtreego.Rtree
}

func newLabelIndex() *labelIndex {
	return &labelIndex{tree: rtreego.NewTree(2, 2, 8)}
}

func (li *labelIndex) insert(id NodeID, p orb.Point) {
	li.tree.Insert(&labelEntry{
		id:   id,
		bbox: rtreego.Point{p.X(), p.Y()}.ToRect(0),
	})
}

// nearest returns the labelled node closest to p.
func (li *labelIndex) nearest(p orb.Point) (NodeID, bool) {
	if li.tree.Size() == 0 {
		return None, false
	}
	found := li.tree.NearestNeighbor(rtreego.Point{p.X(), p.Y()})
	if found == nil {
		return None, false
	}
	return found.(*labelEntry).id, true
}
