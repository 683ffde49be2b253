package symbols

// Function returns the innermost enclosing function, or nil at module
// level.
func (s *Scope) Function() *FunctionInfo {
	for cur := s; cur != nil; cur = cur.outer {
		if cur.scopeType == ScopeFunction {
			return cur.function
		}
	}
	return nil
}

// PushLabel makes name available to break and continue inside s. loop is
// set when the labeled statement is a loop.
func (s *Scope) PushLabel(name string, loop bool) {
	s.labels = append(s.labels, label{name: name, loop: loop})
}

// PopLabel removes the most recent label of s.
func (s *Scope) PopLabel() {
	if n := len(s.labels); n > 0 {
		s.labels = s.labels[:n-1]
	}
}

// LookupLabel searches enclosing labels without crossing a function
// boundary. loop reports whether the label names a loop.
func (s *Scope) LookupLabel(name string) (found, loop bool) {
	for cur := s; cur != nil; cur = cur.outer {
		for i := len(cur.labels) - 1; i >= 0; i-- {
			if cur.labels[i].name == name {
				return true, cur.labels[i].loop
			}
		}
		if cur.scopeType == ScopeFunction {
			break
		}
	}
	return false, false
}

// InLoop reports whether continue is valid in s.
func (s *Scope) InLoop() bool {
	for cur := s; cur != nil && cur.scopeType != ScopeFunction; cur = cur.outer {
		if cur.loop {
			return true
		}
	}
	return false
}

// InBreakable reports whether an unlabeled break is valid in s.
func (s *Scope) InBreakable() bool {
	for cur := s; cur != nil && cur.scopeType != ScopeFunction; cur = cur.outer {
		if cur.breakers {
			return true
		}
	}
	return false
}
