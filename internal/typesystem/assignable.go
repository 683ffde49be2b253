package typesystem

// IsAssignable reports whether a value of type source may be used where
// target is expected. The relation is directed: target is always the
// expected type.
func IsAssignable(target, source Type) bool {
	c := &checker{deep: true}
	return c.assignable(target, source)
}

// IsAssignableShallow is IsAssignable without recursing into the members of
// nested object types; nested objects must then be identical. It is used to
// prefer exact matches when selecting a union branch.
func IsAssignableShallow(target, source Type) bool {
	c := &checker{deep: false}
	return c.assignable(target, source)
}

type typePair struct {
	target, source Type
}

type checker struct {
	deep bool
	// assumed holds comparisons in progress; a recursive revisit is taken
	// to hold.
	assumed map[typePair]bool
}

func (c *checker) assignable(target, source Type) bool {
	if target == nil || source == nil {
		return true
	}
	if target == source {
		return true
	}
	switch target.Kind() {
	case KindUnknown:
		return true
	case KindType:
		return c.assignable(Resolve(target), source)
	}

	switch s := source.(type) {
	case *Alias:
		return c.assignable(target, Resolve(s))
	case *Primitive:
		if s == Unknown || s == Never {
			return true
		}
	case *TypeParam:
		if _, ok := target.(*TypeParam); !ok {
			return c.assignable(target, constraintOf(s))
		}
	case *Union:
		if _, ok := target.(*Union); !ok {
			for _, m := range s.Members {
				if !c.assignable(target, m) {
					return false
				}
			}
			return true
		}
	}

	pair := typePair{target, source}
	if c.assumed[pair] {
		return true
	}
	if c.assumed == nil {
		c.assumed = make(map[typePair]bool)
	}
	c.assumed[pair] = true
	ok := c.structural(target, source)
	delete(c.assumed, pair)
	return ok
}

func (c *checker) structural(target, source Type) bool {
	switch t := target.(type) {
	case *Primitive:
		switch s := source.(type) {
		case *EnumMember:
			return s.Owner.Content == t
		case *Primitive:
			return t == Void && s == Undefined
		}
		return false

	case *TypeParam:
		if p, ok := source.(*TypeParam); ok && p == t {
			return true
		}
		return c.assignable(constraintOf(t), source)

	case *Object:
		switch s := source.(type) {
		case *Object:
			return c.compareMembers(t.Members, t.Member, s.Members, s.Member)
		case *Class:
			return c.compareMembers(t.Members, t.Member, s.Members, s.Member)
		case *Enum:
			return len(t.Members) == 0
		}
		return false

	case *Function:
		s, ok := source.(*Function)
		if !ok {
			return false
		}
		return c.compareFunctions(t, s)

	case *Array:
		s, ok := source.(*Array)
		if !ok {
			return false
		}
		if KindOf(s.Element) == KindUnknown {
			return true
		}
		return c.assignable(t.Element, s.Element)

	case *Enum:
		s, ok := source.(*EnumMember)
		return ok && s.Owner == t

	case *EnumMember:
		s, ok := source.(*EnumMember)
		return ok && s.Owner == t.Owner

	case *Union:
		if s, ok := source.(*Union); ok {
			return c.unionFromUnion(t, s)
		}
		for _, m := range t.Members {
			if IsAssignableShallow(m, source) {
				return true
			}
		}
		for _, m := range t.Members {
			if c.assignable(m, source) {
				return true
			}
		}
		return false

	case *Mapped:
		return c.mappedFrom(t, source)

	case *Class:
		return false
	}
	return false
}

// compareMembers checks a source member list against a target member list.
// Every target member must be present in the source unless optional, and
// present members must be compatible. Source members the target does not
// declare are rejected.
func (c *checker) compareMembers(target []*Reference, targetByName func(string) *Reference,
	source []*Reference, sourceByName func(string) *Reference) bool {
	for _, tm := range target {
		sm := sourceByName(tm.Name)
		if sm == nil {
			if tm.IsOptional() {
				continue
			}
			return false
		}
		if sm.IsOptional() && !tm.IsOptional() {
			return false
		}
		if sm.Type == tm.Type {
			continue
		}
		_, tObj := Resolve(tm.Type).(*Object)
		_, sObj := Resolve(sm.Type).(*Object)
		if tObj && sObj && !c.deep {
			return false
		}
		if !c.assignable(tm.Type, sm.Type) {
			return false
		}
	}
	for _, sm := range source {
		if targetByName(sm.Name) == nil {
			return false
		}
	}
	return true
}

// compareFunctions accepts a source declaring fewer parameters than the
// target outright. Otherwise every parameter pair is compared by kind tag
// or bivariant assignability, source parameters beyond the target's must be
// optional, and the return type is checked unless the target discards it.
func (c *checker) compareFunctions(t, s *Function) bool {
	if len(s.Params) < len(t.Params) {
		return true
	}
	for i, sp := range s.Params {
		if i >= len(t.Params) {
			if !sp.Optional && !sp.Rest {
				return false
			}
			continue
		}
		if !c.paramCompatible(t.Params[i].Type, sp.Type) {
			return false
		}
	}
	tr := t.Return
	if tr == nil || tr == Void || KindOf(tr) == KindUnknown {
		return true
	}
	if s.Return == nil {
		return true
	}
	return c.assignable(tr, s.Return)
}

func (c *checker) paramCompatible(target, source Type) bool {
	tk, sk := KindOf(target), KindOf(source)
	if tk == KindUnknown || sk == KindUnknown || tk == KindParameter || sk == KindParameter {
		return true
	}
	if tk == sk {
		return true
	}
	return c.assignable(target, source) || c.assignable(source, target)
}

// unionFromUnion accepts a union source when each source member fits some
// target member, or when each target member is matched by some source
// member.
func (c *checker) unionFromUnion(t, s *Union) bool {
	every := func(outer, inner []Type, fits func(a, b Type) bool) bool {
		for _, o := range outer {
			found := false
			for _, i := range inner {
				if fits(o, i) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
	sourceCovered := every(s.Members, t.Members, func(sm, tm Type) bool { return c.assignable(tm, sm) })
	if sourceCovered {
		return true
	}
	return every(t.Members, s.Members, func(tm, sm Type) bool { return c.assignable(tm, sm) })
}

// mappedFrom checks an object (or mapped) source against an index-signature
// target. Members typed as the target's key placeholder are skipped.
func (c *checker) mappedFrom(t *Mapped, source Type) bool {
	switch s := source.(type) {
	case *Mapped:
		return c.assignable(t.Value, s.Value)
	case *Object:
		if KindOf(t.Value) == KindUnknown || len(s.Members) == 0 {
			return true
		}
		for _, m := range s.Members {
			if m.Type == t.Key {
				continue
			}
			if !c.assignable(t.Value, m.Type) {
				return false
			}
		}
		return true
	}
	return false
}
