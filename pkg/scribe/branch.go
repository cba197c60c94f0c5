// branch.go implements the tree of deferred output buffers.
//
// A branch accumulates an append-only sequence of chunks; a chunk is either
// literal text or a reference to another branch. References are resolved
// only when a root branch is flattened, against the target branch's chunks
// as they exist at flatten time. This is the mechanism behind forward
// references such as tables of contents and footnote lists.
package scribe

import (
	"fmt"
	"strings"
)

// chunk is one element of a branch: literal text, or a reference when ref
// is non-empty.
type chunk struct {
	text string
	ref  string
}

// Branch is a named output buffer. Root branches carry an opaque kind and a
// destination tag for the destination writer; sub-branches carry neither.
type Branch struct {
	Name        string
	Kind        string // root only, opaque to the engine
	Destination string // root only, logical output name

	parent *Branch
	chunks []chunk
}

// Root reports whether the branch has no parent.
func (b *Branch) Root() bool { return b.parent == nil }

// BranchManager tracks every branch of a compilation unit by name.
type BranchManager struct {
	branches map[string]*Branch
	roots    []*Branch
	autoSeq  int
}

// NewBranchManager returns an empty manager.
func NewBranchManager() *BranchManager {
	return &BranchManager{branches: make(map[string]*Branch)}
}

// AutoName generates a fresh branch name. Used for identifiers that request
// auto-uniquification, so repeated structural contexts (one footnote buffer
// per section) never collide.
func (m *BranchManager) AutoName() string {
	name := fmt.Sprintf("auto%d", m.autoSeq)
	m.autoSeq++
	return name
}

// CreateRoot establishes a new root branch with a destination tag.
func (m *BranchManager) CreateRoot(kind, name, destination string) (*Branch, error) {
	if _, exists := m.branches[name]; exists {
		return nil, fmt.Errorf("a branch of this name already exists: %q", name)
	}
	b := &Branch{Name: name, Kind: kind, Destination: destination}
	m.branches[name] = b
	m.roots = append(m.roots, b)
	return b, nil
}

// CreateSub creates a branch nested under parent, visible thereafter by
// name for writes from anywhere in the unit.
func (m *BranchManager) CreateSub(parent *Branch, name string) (*Branch, error) {
	if _, exists := m.branches[name]; exists {
		return nil, fmt.Errorf("a branch of this name already exists: %q", name)
	}
	b := &Branch{Name: name, parent: parent}
	m.branches[name] = b
	return b, nil
}

// Lookup resolves a branch by name.
func (m *BranchManager) Lookup(name string) (*Branch, bool) {
	b, ok := m.branches[name]
	return b, ok
}

// Roots returns the root branches in creation order.
func (m *BranchManager) Roots() []*Branch { return m.roots }

// AppendText appends literal text to a branch. Consecutive text appends
// merge into one chunk.
func (m *BranchManager) AppendText(b *Branch, text string) {
	if text == "" {
		return
	}
	if n := len(b.chunks); n > 0 && b.chunks[n-1].ref == "" {
		b.chunks[n-1].text += text
		return
	}
	b.chunks = append(b.chunks, chunk{text: text})
}

// AppendRef records a reference chunk pointing at the named branch, at the
// current write cursor of b. The reference is resolved at flatten time.
func (m *BranchManager) AppendRef(b *Branch, name string) error {
	if _, exists := m.branches[name]; !exists {
		return fmt.Errorf("branch not found: %q", name)
	}
	b.chunks = append(b.chunks, chunk{ref: name})
	return nil
}

// Flatten resolves the named branch's chunk tree into final text. It is a
// pure function of the tree at the time of the call: flattening an
// unmodified tree twice yields identical output. A branch that transitively
// references itself fails with a CycleError before any output is produced.
func (m *BranchManager) Flatten(name string) (string, error) {
	b, ok := m.branches[name]
	if !ok {
		return "", fmt.Errorf("branch not found: %q", name)
	}
	var out strings.Builder
	visiting := make(map[string]bool)
	if err := m.flatten(b, visiting, []string{name}, &out); err != nil {
		return "", err
	}
	return out.String(), nil
}

func (m *BranchManager) flatten(b *Branch, visiting map[string]bool, path []string, out *strings.Builder) error {
	if visiting[b.Name] {
		return &CycleError{Msg: "branch reference cycle", Chain: path}
	}
	visiting[b.Name] = true
	defer delete(visiting, b.Name)

	for _, c := range b.chunks {
		if c.ref == "" {
			out.WriteString(c.text)
			continue
		}
		target := m.branches[c.ref]
		if err := m.flatten(target, visiting, append(path, c.ref), out); err != nil {
			return err
		}
	}
	return nil
}
