package trie

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrFormat is returned when a persisted trie cannot be parsed.
var ErrFormat = errors.New("trie: format error")

// WriteTo writes the subtree rooted at n in depth-first preorder, one node
// per line as "<label> <count> <children>". Children are visited in label
// order so the output is deterministic.
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64
	var walk func(*Node) error
	walk = func(node *Node) error {
		k, err := fmt.Fprintf(bw, "%d %d %d\n", node.label, node.count, len(node.children))
		written += int64(k)
		if err != nil {
			return err
		}
		for _, c := range node.Children() {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(n); err != nil {
		return written, errors.Wrap(err, "write trie")
	}
	if err := bw.Flush(); err != nil {
		return written, errors.Wrap(err, "write trie")
	}
	return written, nil
}

// Read parses a trie written by WriteTo. End-of-word marks are recovered
// from the counts: a node ends a word when its count exceeds the sum of its
// children's counts.
func Read(r io.Reader) (*Node, error) {
	p := &parser{scanner: bufio.NewScanner(r)}
	root, err := p.node(0)
	if err != nil {
		return nil, err
	}
	if root.label != RootLabel {
		return nil, errors.Wrapf(ErrFormat, "line 1: root label %d, want %d", root.label, RootLabel)
	}
	for p.scanner.Scan() {
		p.line++
		if strings.TrimSpace(p.scanner.Text()) != "" {
			return nil, errors.Wrapf(ErrFormat, "line %d: trailing data", p.line)
		}
	}
	if err := p.scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read trie")
	}
	return root, nil
}

type parser struct {
	scanner *bufio.Scanner
	line    int
}

func (p *parser) next() ([3]int, error) {
	var f [3]int
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return f, errors.Wrap(err, "read trie")
		}
		return f, errors.Wrapf(ErrFormat, "line %d: unexpected end of input", p.line+1)
	}
	p.line++
	fields := strings.Fields(p.scanner.Text())
	if len(fields) != 3 {
		return f, errors.Wrapf(ErrFormat, "line %d: expected 3 fields, got %d", p.line, len(fields))
	}
	for i, s := range fields {
		v, err := strconv.Atoi(s)
		if err != nil {
			return f, errors.Wrapf(ErrFormat, "line %d: %q is not an integer", p.line, s)
		}
		f[i] = v
	}
	return f, nil
}

func (p *parser) node(depth int) (*Node, error) {
	f, err := p.next()
	if err != nil {
		return nil, err
	}
	line := p.line
	label, count, nChildren := f[0], f[1], f[2]
	switch {
	case depth > 0 && label < 0:
		return nil, errors.Wrapf(ErrFormat, "line %d: negative label %d", line, label)
	case depth > 0 && count < 1:
		return nil, errors.Wrapf(ErrFormat, "line %d: count %d below 1", line, count)
	case count < 0:
		return nil, errors.Wrapf(ErrFormat, "line %d: negative count %d", line, count)
	case nChildren < 0:
		return nil, errors.Wrapf(ErrFormat, "line %d: negative child count %d", line, nChildren)
	}

	n := newNode(label)
	n.count = count
	sum := 0
	for i := 0; i < nChildren; i++ {
		c, err := p.node(depth + 1)
		if err != nil {
			return nil, err
		}
		if _, dup := n.children[c.label]; dup {
			return nil, errors.Wrapf(ErrFormat, "line %d: duplicate child label %d", line, c.label)
		}
		n.children[c.label] = c
		sum += c.count
	}
	if sum > count {
		return nil, errors.Wrapf(ErrFormat, "line %d: count %d below children total %d", line, count, sum)
	}
	n.endOfWord = count > sum
	return n, nil
}
