package objpool

import "github.com/jazz-lang/jazz/pkg/object"

// StaticRoot occupies pool slot 0 (§4.2). It has no behavior of its own
// beyond tracking handles a future collector would trace from; every other
// default comes from object.Base, mirroring the Rust StaticRoot which only
// overrides get_children.
type StaticRoot struct {
	object.Base
	children []int
}

func NewStaticRoot() *StaticRoot {
	return &StaticRoot{}
}

func (s *StaticRoot) TypeName() string { return "StaticRoot" }

func (s *StaticRoot) GetChildren() []int {
	out := make([]int, len(s.children))
	copy(out, s.children)
	return out
}

// AppendChild registers id as reachable from the root.
func (s *StaticRoot) AppendChild(id int) {
	s.children = append(s.children, id)
}
