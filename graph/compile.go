package graph

import (
	"math/bits"
	"sort"

	"github.com/agencyenterprise/zkgraph/field"
)

// CompileLayeredCircuit flattens the expression graph rooted at output into
// a LayeredCircuit. It is the only entry point that consumes the Builder's
// accumulated state; that state is cleared before returning, success or
// failure, so the Builder can start a fresh, unrelated circuit afterwards.
// A Builder must not be used from more than one goroutine at a time.
func (b *Builder) CompileLayeredCircuit(output *Node) (*LayeredCircuit, error) {
	b.compiling = true
	defer func() {
		b.compiling = false
		b.anyLayered = false
	}()

	if output.layer < 0 {
		output.layer = 0
	}

	nodes := collectReachable(output)
	promoteFloatingInputs(nodes, b.nextID)
	nodes = collectReachable(output)
	insertSpanningRelays(nodes, b.nextID)
	nodes = collectReachable(output)

	layers := bucketByLayer(nodes)
	sizes, err := computeSizes(layers)
	if err != nil {
		return nil, err
	}

	index := make(map[*Node]uint32, len(nodes))
	for _, layerNodes := range layers {
		for i, n := range layerNodes {
			index[n] = uint32(i)
		}
	}

	return emitGates(layers, sizes, index)
}

// collectReachable walks the graph from output via left/right edges and
// returns every reachable node exactly once, in creation order.
func collectReachable(output *Node) []*Node {
	seen := make(map[*Node]bool)
	var order []*Node
	var visit func(*Node)
	visit = func(n *Node) {
		if n == nil || seen[n] {
			return
		}
		seen[n] = true
		visit(n.left)
		visit(n.right)
		order = append(order, n)
	}
	visit(output)
	sort.Slice(order, func(i, j int) bool { return order[i].id < order[j].id })
	return order
}

// insertRelayChain appends a chain of Relay nodes above child, one per
// skipped layer, up to and including targetLayer, and returns the chain's
// top node (the one now living at targetLayer). If targetLayer <= child's
// layer, child itself is returned and no nodes are created.
func insertRelayChain(child *Node, targetLayer int, nextID func() int) *Node {
	cur := child
	for l := cur.layer + 1; l <= targetLayer; l++ {
		relay := &Node{id: nextID(), op: OpRelay, left: cur, value: cur.value, layer: l}
		cur.consumers = append(cur.consumers, relay)
		cur = relay
	}
	return cur
}

// promoteFloatingInputs fixes the "floating constant" problem: an input
// node that was first used as an operand deep in the graph sits at that
// interior layer, but true inputs must live at layer 0. For every such
// node this demotes it to layer 0 and threads a relay chain back up to
// where its consumers expect to find it, rewiring those consumers to the
// top of the chain.
func promoteFloatingInputs(nodes []*Node, nextID func() int) {
	for _, n := range nodes {
		if n.op != OpInput || n.layer <= 0 {
			continue
		}
		target := n.layer
		consumers := n.consumers
		n.layer = 0
		n.consumers = nil

		top := insertRelayChain(n, target, nextID)
		if top == n {
			continue
		}
		top.consumers = consumers
		for _, c := range consumers {
			if c.left == n {
				c.left = top
			}
			if c.right == n {
				c.right = top
			}
		}
	}
}

// insertSpanningRelays ensures every gate's children live exactly one layer
// below it, inserting a relay chain wherever an edge spans more than one
// layer (the common case: one operand of an Add/Mul was computed many
// layers earlier and has been idle since).
func insertSpanningRelays(nodes []*Node, nextID func() int) {
	sorted := make([]*Node, len(nodes))
	copy(sorted, nodes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].layer < sorted[j].layer })

	for _, n := range sorted {
		if n.op == OpInput {
			continue
		}
		for _, slot := range []**Node{&n.left, &n.right} {
			child := *slot
			if child == nil {
				continue
			}
			if n.layer-child.layer > 1 {
				top := insertRelayChain(child, n.layer-1, nextID)
				removeConsumer(child, n)
				top.consumers = append(top.consumers, n)
				*slot = top
			}
		}
	}
}

func removeConsumer(n, consumer *Node) {
	for i, c := range n.consumers {
		if c == consumer {
			n.consumers = append(n.consumers[:i], n.consumers[i+1:]...)
			return
		}
	}
}

// bucketByLayer groups nodes by their assigned layer. Within a layer, nodes
// are ordered by creation id: since a given sequence of Builder calls always
// allocates ids in the same order, this makes gate indices a deterministic
// function of the construction code, not of map iteration or gate-count
// coincidences.
func bucketByLayer(nodes []*Node) [][]*Node {
	maxLayer := 0
	for _, n := range nodes {
		if n.layer > maxLayer {
			maxLayer = n.layer
		}
	}
	layers := make([][]*Node, maxLayer+1)
	ordered := make([]*Node, len(nodes))
	copy(ordered, nodes)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].id < ordered[j].id })
	for _, n := range ordered {
		layers[n.layer] = append(layers[n.layer], n)
	}
	return layers
}

// nextPowerOfTwo returns the smallest power of two that is >= n, with a
// floor of 1.
func nextPowerOfTwo(n uint32) uint32 {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len32(n-1)
}

// bitLength returns ceil(log2(size)), with a floor of 1 so even a
// single-gate layer has an addressable bit.
func bitLength(size uint32) uint8 {
	if size <= 1 {
		return 1
	}
	return uint8(bits.Len32(size - 1))
}

const maxLayerSize = 1 << 31

// computeSizes returns, for each layer, the power-of-two size it must be
// padded to: at least its own real gate count, and at least the padded size
// of the layer below it, so layer sizes never shrink going up the circuit.
func computeSizes(layers [][]*Node) ([]uint32, error) {
	counts := make([]uint32, len(layers))
	for i, l := range layers {
		counts[i] = uint32(len(l))
	}
	return computeSizesFromCounts(counts)
}

func computeSizesFromCounts(counts []uint32) ([]uint32, error) {
	sizes := make([]uint32, len(counts))
	var prev uint32
	for i, need := range counts {
		if need < prev {
			need = prev
		}
		if need > maxLayerSize {
			return nil, ErrCircuitTooLarge
		}
		size := nextPowerOfTwo(need)
		if size > maxLayerSize {
			return nil, ErrCircuitTooLarge
		}
		sizes[i] = size
		prev = size
	}
	return sizes, nil
}

// emitGates renders the bucketed, sized layers into the wire-format
// LayeredCircuit, padding each layer with zero-valued dummy relay gates.
func emitGates(layers [][]*Node, sizes []uint32, index map[*Node]uint32) (*LayeredCircuit, error) {
	circuit := &LayeredCircuit{Layers: make([]Layer, len(layers))}
	for i, nodes := range layers {
		size := sizes[i]
		gates := make([]Gate, size)
		for j, n := range nodes {
			g, err := emitGate(n, index)
			if err != nil {
				return nil, err
			}
			gates[j] = g
		}
		for j := uint32(len(nodes)); j < size; j++ {
			gates[j] = Gate{Type: GateRelay, U: dummyIndex, V: dummyIndex, C: field.Zero()}
		}
		circuit.Layers[i] = Layer{BitLength: bitLength(size), Size: size, Gates: gates}
	}
	return circuit, nil
}

func emitGate(n *Node, index map[*Node]uint32) (Gate, error) {
	switch n.op {
	case OpInput:
		return Gate{Type: GateInput, C: n.value}, nil
	case OpAdd:
		return Gate{Type: GateAdd, U: index[n.left], V: index[n.right]}, nil
	case OpMul:
		return Gate{Type: GateMul, U: index[n.left], V: index[n.right]}, nil
	case OpRelay:
		switch {
		case n.left != nil:
			return Gate{Type: GateRelay, U: index[n.left]}, nil
		case n.right != nil:
			return Gate{Type: GateRelay, U: index[n.right]}, nil
		default:
			return Gate{}, ErrMalformedNode
		}
	default:
		return Gate{}, ErrMalformedNode
	}
}
