package typesystem

// Subst maps generic parameters to the types bound to them.
type Subst map[*TypeParam]Type

// Bind pairs params with args positionally. Missing args bind to the
// parameter's constraint.
func Bind(params []*TypeParam, args []Type) Subst {
	s := make(Subst, len(params))
	for i, p := range params {
		if i < len(args) && args[i] != nil {
			s[p] = args[i]
		} else {
			s[p] = constraintOf(p)
		}
	}
	return s
}

// Substitute replaces bound parameters in t. Shapes containing no bound
// parameter are returned unchanged, so identity is preserved wherever
// nothing was replaced.
func Substitute(t Type, s Subst) Type {
	if len(s) == 0 || t == nil {
		return t
	}
	sb := &substituter{subst: s, done: make(map[Type]Type), occurs: make(map[Type]bool)}
	return sb.apply(t)
}

type substituter struct {
	subst  Subst
	done   map[Type]Type
	occurs map[Type]bool
}

// mentions reports whether t refers to a bound parameter. Cycles through
// named objects are cut by assuming no occurrence.
func (sb *substituter) mentions(t Type) bool {
	if v, ok := sb.occurs[t]; ok {
		return v
	}
	sb.occurs[t] = false
	found := false
	switch t := t.(type) {
	case *TypeParam:
		_, found = sb.subst[t]
	case *Array:
		found = sb.mentions(t.Element)
	case *Function:
		for _, p := range t.Params {
			if p.Type != nil && sb.mentions(p.Type) {
				found = true
				break
			}
		}
		if !found && t.Return != nil {
			found = sb.mentions(t.Return)
		}
	case *Object:
		for _, m := range t.Members {
			if m.Type != nil && sb.mentions(m.Type) {
				found = true
				break
			}
		}
	case *Union:
		for _, m := range t.Members {
			if sb.mentions(m) {
				found = true
				break
			}
		}
	case *Alias:
		for _, a := range t.Args {
			if sb.mentions(a) {
				found = true
				break
			}
		}
	case *Mapped:
		found = sb.mentions(t.Key) || sb.mentions(t.Value)
		if !found {
			if p, ok := t.Key.(*TypeParam); ok {
				found = sb.mentions(constraintOf(p))
			}
		}
	}
	sb.occurs[t] = found
	return found
}

func (sb *substituter) apply(t Type) Type {
	if t == nil || !sb.mentions(t) {
		return t
	}
	if r, ok := sb.done[t]; ok {
		return r
	}
	switch t := t.(type) {
	case *TypeParam:
		return sb.subst[t]

	case *Array:
		a := &Array{}
		sb.done[t] = a
		a.Element = sb.apply(t.Element)
		return a

	case *Function:
		f := &Function{Name: t.Name, TypeParams: t.TypeParams, Throwing: t.Throwing}
		sb.done[t] = f
		f.Params = make([]Param, len(t.Params))
		for i, p := range t.Params {
			p.Type = sb.apply(p.Type)
			f.Params[i] = p
		}
		f.Return = sb.apply(t.Return)
		return f

	case *Object:
		o := NewObject(t.Name)
		sb.done[t] = o
		for _, m := range t.Members {
			c := m.Clone(m.Name)
			c.Type = sb.apply(m.Type)
			o.AddMember(c)
		}
		return o

	case *Union:
		members := make([]Type, len(t.Members))
		for i, m := range t.Members {
			members[i] = sb.apply(m)
		}
		return NewUnion(members...)

	case *Alias:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = sb.apply(a)
		}
		return &Alias{Name: t.Name, Origin: t.Origin, Args: args}

	case *Mapped:
		key := t.Key
		if p, ok := key.(*TypeParam); ok {
			if bound, ok := sb.subst[p]; ok {
				key = bound
			} else if sb.mentions(constraintOf(p)) {
				fresh := &TypeParam{Name: p.Name, Constraint: sb.apply(constraintOf(p))}
				inner := make(Subst, len(sb.subst)+1)
				for k, v := range sb.subst {
					inner[k] = v
				}
				inner[p] = fresh
				return &Mapped{Key: fresh, Value: Substitute(t.Value, inner)}
			}
		} else {
			key = sb.apply(key)
		}
		return &Mapped{Key: key, Value: sb.apply(t.Value)}
	}
	return t
}
