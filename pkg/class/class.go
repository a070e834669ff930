// Package class implements the Class object of §4.5: a named, mutable field
// map with an initializer-based two-phase construction protocol, grounded
// in `_examples/original_source/src/class.rs`.
package class

import (
	"github.com/jazz-lang/jazz/pkg/object"
	"github.com/jazz-lang/jazz/pkg/value"
	"github.com/jazz-lang/jazz/pkg/vmerror"
)

// Class is a mutable named map from field name to Value, plus a name and an
// "initialized" flag (§4.5).
type Class struct {
	object.Base
	Name      string
	Fields    map[string]value.Value
	Inited    bool
}

// New returns an empty, uninitialized class named name.
func New(name string) *Class {
	return &Class{Name: name, Fields: make(map[string]value.Value)}
}

func (c *Class) TypeName() string { return c.Name }

// Call implements the two-phase construction protocol: the first call
// delegates to "init" (passing the class itself as args[0]) and marks the
// class initialized; every subsequent call delegates to "__call__".
func (c *Class) Call(m object.Machine, args []value.Value) value.Value {
	if !c.Inited {
		init, ok := c.Fields["init"]
		if !ok {
			vmerror.Throw(vmerror.FieldNotFound("init"))
		}
		result := m.Invoke(init, args)
		c.Inited = true
		return result
	}

	call, ok := c.Fields["__call__"]
	if !ok {
		vmerror.Throw(vmerror.FieldNotFound("__call__"))
	}
	return m.Invoke(call, args)
}

// LoadAt resolves args[1] as a field name (an Object whose to_string gives
// the key) or, for an Int/Long key, delegates to "__get__" (§4.5).
func (c *Class) LoadAt(m object.Machine, args []value.Value, dest int) value.Value {
	key := args[1]
	switch key.Kind {
	case value.KindObject:
		name := m.Resident(key.Handle).ToString(m)
		v, ok := c.Fields[name]
		if !ok {
			vmerror.Throw(vmerror.FieldNotFound(name))
		}
		return v
	case value.KindInt, value.KindLong:
		getter, ok := c.Fields["__get__"]
		if !ok {
			vmerror.Throw(vmerror.FieldNotFound("__get__"))
		}
		return m.Invoke(getter, args)
	default:
		vmerror.Throw(vmerror.Expected("Object, Int, or Long", key.Kind.String()))
		panic("unreachable")
	}
}

// StoreAt inserts or overwrites the named field (§4.5). The key must
// resolve to a pool object whose to_string is the field name.
func (c *Class) StoreAt(m object.Machine, args []value.Value) {
	key := args[1]
	if !key.IsObject() {
		vmerror.Throw(vmerror.Expected("Object", key.Kind.String()))
	}
	name := m.Resident(key.Handle).ToString(m)
	c.Fields[name] = args[2]
}

// CloneObject deep-copies the field map (shallow-copying each Value) into a
// fresh pool slot, for treating a class value as a new instance (§4.5).
func (c *Class) CloneObject(m object.Machine) value.Value {
	cp := New(c.Name)
	for k, v := range c.Fields {
		cp.Fields[k] = v
	}
	cp.Inited = c.Inited
	return value.Object(m.Allocate(cp))
}

func (c *Class) GetChildren() []int {
	children := make([]int, 0, len(c.Fields))
	for _, v := range c.Fields {
		if v.IsObject() {
			children = append(children, v.Handle)
		}
	}
	return children
}
