// Package trie implements the prefix tree used to constrain beam search
// hypotheses to dictionary words.
//
// A trie is persisted as text, one node per line in depth-first preorder:
//
//	<label> <insertion-count> <number-of-children>
//
// The child count is required to rebuild the shape from a preorder listing;
// files holding only label and count are rejected. A node ends a word when
// its count exceeds the sum of its children's counts.
package trie

import "sort"

// RootLabel is the label carried by the root node.
const RootLabel = -1

// Node is a prefix tree node. A node owns its children exclusively and is
// read-only once construction is finished, so it can be shared between
// goroutines without locking.
type Node struct {
	label     int
	count     int
	endOfWord bool
	children  map[int]*Node
}

// New returns an empty root node.
func New() *Node {
	return newNode(RootLabel)
}

func newNode(label int) *Node {
	return &Node{label: label, children: make(map[int]*Node)}
}

// Build inserts every word into a fresh trie.
func Build(words [][]int) *Node {
	root := New()
	for _, w := range words {
		root.Insert(w)
	}
	return root
}

// Insert adds word below n. Every node on the path, n included, has its
// insertion count incremented; the last one is marked as a word end.
func (n *Node) Insert(word []int) {
	node := n
	node.count++
	for _, l := range word {
		child, ok := node.children[l]
		if !ok {
			child = newNode(l)
			node.children[l] = child
		}
		child.count++
		node = child
	}
	node.endOfWord = true
}

// ChildAt returns the child reached through label, or nil.
func (n *Node) ChildAt(label int) *Node {
	return n.children[label]
}

// IsEndOfWord reports whether some inserted word ends at n.
func (n *Node) IsEndOfWord() bool {
	return n.endOfWord
}

// Label returns the label on the edge leading into n.
func (n *Node) Label() int {
	return n.label
}

// Count returns how many insertions passed through n.
func (n *Node) Count() int {
	return n.count
}

// Children returns the children ordered by label.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].label < out[j].label })
	return out
}

// Contains reports whether word was inserted as a whole word.
func (n *Node) Contains(word []int) bool {
	node := n
	for _, l := range word {
		node = node.children[l]
		if node == nil {
			return false
		}
	}
	return node.endOfWord
}

// Size returns the number of nodes in the subtree rooted at n.
func (n *Node) Size() int {
	size := 1
	for _, c := range n.children {
		size += c.Size()
	}
	return size
}

// MaxLabel returns the largest label in the subtree rooted at n. An empty
// trie returns RootLabel.
func (n *Node) MaxLabel() int {
	max := n.label
	for _, c := range n.children {
		if l := c.MaxLabel(); l > max {
			max = l
		}
	}
	return max
}
