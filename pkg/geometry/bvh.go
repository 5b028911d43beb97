package geometry

import (
	"cmp"
	"slices"

	"github.com/taigrr/prism/pkg/math3d"
)

// BuildStrategy selects how a BVH partitions its geometries.
type BuildStrategy int

const (
	// SortedMerge sorts geometries by the coordinate sum of their box centers and
	// pairs neighbours bottom-up into a balanced binary tree.
	SortedMerge BuildStrategy = iota
	// MedianSplit partitions around the median box extremum on the x axis,
	// duplicating geometries that straddle the split into both halves.
	MedianSplit
)

func (s BuildStrategy) String() string {
	switch s {
	case SortedMerge:
		return "sorted"
	case MedianSplit:
		return "median"
	default:
		return "unknown"
	}
}

// Limits for MedianSplit.
const (
	MinObjects = 2
	MaxDepth   = 20
)

// bvhNode is a leaf when items is non-nil, otherwise it has two children.
type bvhNode struct {
	box         AABB
	left, right *bvhNode
	items       []Geometry
}

// BVH is an immutable bounding volume hierarchy over a fixed set of geometries.
// Unbounded geometries such as planes are kept outside the tree and tested for
// every ray. A BVH is safe for concurrent queries.
type BVH struct {
	root      *bvhNode
	unbounded []Geometry
	strategy  BuildStrategy
}

// BVHStats describes the shape of a built tree.
type BVHStats struct {
	Nodes     int
	Leaves    int
	Depth     int
	Unbounded int
}

// NewBVH builds a hierarchy over geometries. The input slice is not modified.
func NewBVH(geometries []Geometry, strategy BuildStrategy) *BVH {
	b := &BVH{strategy: strategy}

	var bounded []Geometry
	for _, g := range geometries {
		if _, ok := g.Bounds(); ok {
			bounded = append(bounded, g)
		} else {
			b.unbounded = append(b.unbounded, g)
		}
	}
	if len(bounded) == 0 {
		return b
	}

	switch strategy {
	case MedianSplit:
		b.root = buildMedian(bounded, 0)
	default:
		b.strategy = SortedMerge
		slices.SortStableFunc(bounded, func(x, y Geometry) int {
			return cmp.Compare(centerSum(x), centerSum(y))
		})
		b.root = buildSorted(bounded)
	}
	return b
}

func bounds(g Geometry) AABB {
	box, _ := g.Bounds()
	return box
}

func centerSum(g Geometry) float64 {
	return bounds(g).Center().Sum()
}

func unionOf(items []Geometry) AABB {
	box := bounds(items[0])
	for _, g := range items[1:] {
		box = box.Union(bounds(g))
	}
	return box
}

// buildSorted halves an already sorted list until single geometries remain.
func buildSorted(items []Geometry) *bvhNode {
	if len(items) == 1 {
		return &bvhNode{box: bounds(items[0]), items: items}
	}
	mid := len(items) / 2
	left := buildSorted(items[:mid])
	right := buildSorted(items[mid:])
	return &bvhNode{box: left.box.Union(right.box), left: left, right: right}
}

func buildMedian(items []Geometry, depth int) *bvhNode {
	box := unionOf(items)
	if len(items) <= MinObjects || depth >= MaxDepth {
		return &bvhNode{box: box, items: items}
	}

	xs := make([]float64, 0, 2*len(items))
	for _, g := range items {
		b := bounds(g)
		xs = append(xs, b.Min.X, b.Max.X)
	}
	slices.Sort(xs)
	median := xs[len(xs)/2]

	var left, right []Geometry
	for _, g := range items {
		b := bounds(g)
		switch {
		case b.Max.X <= median:
			left = append(left, g)
		case b.Min.X >= median:
			right = append(right, g)
		default:
			left = append(left, g)
			right = append(right, g)
		}
	}
	if len(left) == len(items) || len(right) == len(items) {
		return &bvhNode{box: box, items: items}
	}

	return &bvhNode{
		box:   box,
		left:  buildMedian(left, depth+1),
		right: buildMedian(right, depth+1),
	}
}

// Strategy returns the strategy the tree was built with.
func (b *BVH) Strategy() BuildStrategy { return b.strategy }

// Intersect returns every intersection of every geometry whose boxes the ray
// passes through, plus those of the unbounded geometries. Each geometry is
// reported at most once even when it is stored in several leaves.
func (b *BVH) Intersect(ray math3d.Ray, maxDistance float64) []Intersection {
	var hits []Intersection
	for _, g := range b.unbounded {
		hits = append(hits, g.Intersect(ray, maxDistance)...)
	}
	if b.root == nil {
		return hits
	}

	if b.strategy != MedianSplit {
		return b.root.collect(ray, maxDistance, hits, nil)
	}
	return b.root.collect(ray, maxDistance, hits, make(map[Geometry]struct{}))
}

// collect appends the intersections below n to out. When seen is non-nil,
// geometries already tested are skipped.
func (n *bvhNode) collect(ray math3d.Ray, maxDistance float64, out []Intersection, seen map[Geometry]struct{}) []Intersection {
	if !n.box.Hit(ray, maxDistance) {
		return out
	}
	if n.items != nil {
		for _, g := range n.items {
			if seen != nil {
				if _, ok := seen[g]; ok {
					continue
				}
				seen[g] = struct{}{}
			}
			out = append(out, g.Intersect(ray, maxDistance)...)
		}
		return out
	}
	out = n.left.collect(ray, maxDistance, out, seen)
	return n.right.collect(ray, maxDistance, out, seen)
}

// Stats walks the tree and reports its size.
func (b *BVH) Stats() BVHStats {
	s := BVHStats{Unbounded: len(b.unbounded)}
	var walk func(n *bvhNode, depth int)
	walk = func(n *bvhNode, depth int) {
		if n == nil {
			return
		}
		s.Nodes++
		s.Depth = max(s.Depth, depth)
		if n.items != nil {
			s.Leaves++
			return
		}
		walk(n.left, depth+1)
		walk(n.right, depth+1)
	}
	walk(b.root, 1)
	return s
}
