package gbwt

// Endmarker is the reserved node that delimits stored paths.
const Endmarker uint64 = 0

// Encode returns the node identifier for graph node id in the given
// orientation.
func Encode(id uint64, reverse bool) uint64 {
	if reverse {
		return 2*id + 1
	}
	return 2 * id
}

// ID returns the graph node id of node.
func ID(node uint64) uint64 { return node >> 1 }

// IsReverse reports whether node is in reverse orientation.
func IsReverse(node uint64) bool { return node&1 != 0 }

// Reverse returns node in the opposite orientation.
func Reverse(node uint64) uint64 { return node ^ 1 }

// ReversePath returns the reverse complement of a path: the nodes in
// reverse order, each with flipped orientation.
func ReversePath(path []uint64) []uint64 {
	out := make([]uint64, len(path))
	for i, node := range path {
		out[len(path)-1-i] = Reverse(node)
	}
	return out
}
