package typesystem

import (
	"strconv"
	"strings"
)

// Type names as they appear in diagnostics. Arrays render as T[], functions
// as (params) => R. Recursive shapes are cut at the second visit.

func (a *Array) String() string { return formatType(a, map[Type]bool{}) }

func (f *Function) String() string { return formatType(f, map[Type]bool{}) }

func (o *Object) String() string { return formatType(o, map[Type]bool{}) }

func (u *Union) String() string { return formatType(u, map[Type]bool{}) }

func (e *Enum) String() string { return e.Name }

func (m *EnumMember) String() string { return m.Owner.Name + "." + m.Name }

func (a *Alias) String() string { return formatType(a, map[Type]bool{}) }

func (m *Mapped) String() string { return formatType(m, map[Type]bool{}) }

func (c *Class) String() string { return c.Name }

func (p *TypeParam) String() string { return p.Name }

func formatType(t Type, visiting map[Type]bool) string {
	switch t := t.(type) {
	case *Array:
		elem := formatType(t.Element, visiting)
		switch t.Element.(type) {
		case *Union, *Function:
			return "(" + elem + ")[]"
		}
		return elem + "[]"

	case *Function:
		var sb strings.Builder
		if len(t.TypeParams) > 0 {
			sb.WriteString("<")
			for i, tp := range t.TypeParams {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(tp.Name)
			}
			sb.WriteString(">")
		}
		sb.WriteString("(")
		for i, p := range t.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			if p.Rest {
				sb.WriteString("...")
			}
			name := p.Name
			if name == "" {
				name = "arg" + strconv.Itoa(i)
			}
			sb.WriteString(name)
			if p.Optional {
				sb.WriteString("?")
			}
			sb.WriteString(": ")
			sb.WriteString(formatType(p.Type, visiting))
		}
		sb.WriteString(") => ")
		ret := t.Return
		if ret == nil {
			ret = Unknown
		}
		sb.WriteString(formatType(ret, visiting))
		return sb.String()

	case *Object:
		if t.Name != "" {
			return t.Name
		}
		if visiting[t] {
			return "{...}"
		}
		if len(t.Members) == 0 {
			return "{}"
		}
		visiting[t] = true
		defer delete(visiting, t)
		parts := make([]string, len(t.Members))
		for i, m := range t.Members {
			opt := ""
			if m.IsOptional() {
				opt = "?"
			}
			parts[i] = m.Name + opt + ": " + formatType(m.Type, visiting)
		}
		return "{ " + strings.Join(parts, "; ") + " }"

	case *Union:
		parts := make([]string, len(t.Members))
		for i, m := range t.Members {
			s := formatType(m, visiting)
			if _, isFn := m.(*Function); isFn {
				s = "(" + s + ")"
			}
			parts[i] = s
		}
		return strings.Join(parts, " | ")

	case *Alias:
		name := t.Name
		if len(t.Args) == 0 {
			return name
		}
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = formatType(a, visiting)
		}
		return name + "<" + strings.Join(args, ", ") + ">"

	case *Mapped:
		key := "key"
		keyType := formatType(t.Key, visiting)
		if p, ok := t.Key.(*TypeParam); ok {
			return "{ [" + p.Name + " in " + formatType(constraintOf(p), visiting) + "]: " + formatType(t.Value, visiting) + " }"
		}
		return "{ [" + key + ": " + keyType + "]: " + formatType(t.Value, visiting) + " }"

	case nil:
		return "unknown"
	}
	return t.String()
}

func constraintOf(p *TypeParam) Type {
	if p.Constraint == nil {
		return Unknown
	}
	return p.Constraint
}
