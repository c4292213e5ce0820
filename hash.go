package magnet

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"sort"
)

// CanonicalHash returns a structural fingerprint of the net that is
// invariant under any relabeling bijection of node ids. Equal hashes are a
// necessary condition for isomorphism, so the hash serves both as the
// search deduplication key and as a cheap pre-filter before the full
// isomorphism test.
func CanonicalHash(n *Net) string {
	colors := refineColors(n)

	classes := make([]string, 0, len(colors))
	for _, c := range colors {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	pairs := make([]string, 0, len(n.Arcs))
	for _, a := range n.Arcs {
		pairs = append(pairs, colors[a.Src]+">"+colors[a.Dest])
	}
	sort.Strings(pairs)

	h := sha256.New()
	fmt.Fprintf(h, "%d|%d|%d;", len(n.Places), len(n.Transitions), len(n.Arcs))
	for _, c := range classes {
		h.Write([]byte(c))
		h.Write([]byte{';'})
	}
	for _, p := range pairs {
		h.Write([]byte(p))
		h.Write([]byte{';'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// refineColors runs iterated neighborhood refinement (1-WL): every node
// starts from its kind and interaction label, then repeatedly absorbs the
// sorted colors of its input and output neighborhoods until the partition
// stops splitting.
func refineColors(n *Net) map[string]string {
	colors := make(map[string]string, len(n.index))
	for id, node := range n.index {
		colors[id] = shortHash(fmt.Sprintf("%d|%s", node.Kind(), node.Interaction()))
	}
	distinct := countDistinct(colors)
	for round := 0; round < len(colors); round++ {
		next := make(map[string]string, len(colors))
		for id := range colors {
			ins := neighborColors(n.inputs[id], colors, func(a *Arc) string { return a.Src })
			outs := neighborColors(n.outputs[id], colors, func(a *Arc) string { return a.Dest })
			next[id] = shortHash(colors[id] + "(" + ins + ")(" + outs + ")")
		}
		colors = next
		d := countDistinct(colors)
		if d == distinct {
			break
		}
		distinct = d
	}
	return colors
}

func neighborColors(arcs []*Arc, colors map[string]string, end func(*Arc) string) string {
	cc := make([]string, 0, len(arcs))
	for _, a := range arcs {
		cc = append(cc, colors[end(a)])
	}
	sort.Strings(cc)
	out := ""
	for _, c := range cc {
		out += c + ","
	}
	return out
}

func countDistinct(colors map[string]string) int {
	seen := make(map[string]bool, len(colors))
	for _, c := range colors {
		seen[c] = true
	}
	return len(seen)
}

func shortHash(s string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return fmt.Sprintf("%016x", h.Sum64())
}
