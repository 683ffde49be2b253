package typesystem

// Kind is the variant tag of a Type. The declaration order is significant:
// binary operators other than comparisons produce the operand with the
// larger tag.
type Kind int

const (
	KindUnknown Kind = iota
	KindNumber
	KindString
	KindBoolean
	KindNull
	KindUndefined
	KindVoid
	KindNever
	KindArray
	KindFunction
	KindObject
	KindUnion
	KindEnum
	KindEnumMember
	KindType
	KindMapped
	KindClass
	KindParameter
)

var kindNames = [...]string{
	KindUnknown:    "unknown",
	KindNumber:     "number",
	KindString:     "string",
	KindBoolean:    "boolean",
	KindNull:       "null",
	KindUndefined:  "undefined",
	KindVoid:       "void",
	KindNever:      "never",
	KindArray:      "array",
	KindFunction:   "function",
	KindObject:     "object",
	KindUnion:      "union",
	KindEnum:       "enum",
	KindEnumMember: "enumMember",
	KindType:       "type",
	KindMapped:     "mapped",
	KindClass:      "class",
	KindParameter:  "parameter",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// Type is the interface for all types. The set of implementations is
// closed; consumers type-switch over them.
type Type interface {
	Kind() Kind
	String() string
	typeNode()
}

// Primitive is one of the singleton scalar types. Primitives are compared
// by identity.
type Primitive struct {
	kind Kind
}

func (p *Primitive) Kind() Kind     { return p.kind }
func (p *Primitive) String() string { return p.kind.String() }
func (p *Primitive) typeNode()      {}

var (
	Unknown   = &Primitive{kind: KindUnknown}
	Number    = &Primitive{kind: KindNumber}
	String    = &Primitive{kind: KindString}
	Boolean   = &Primitive{kind: KindBoolean}
	Null      = &Primitive{kind: KindNull}
	Undefined = &Primitive{kind: KindUndefined}
	Void      = &Primitive{kind: KindVoid}
	Never     = &Primitive{kind: KindNever}
)

// Primitives lists the singleton types in tag order.
var Primitives = []*Primitive{Unknown, Number, String, Boolean, Null, Undefined, Void, Never}

type Array struct {
	Element Type
}

func NewArray(elem Type) *Array { return &Array{Element: elem} }

func (a *Array) Kind() Kind { return KindArray }
func (a *Array) typeNode()  {}

// Param is one parameter of a function signature.
type Param struct {
	Name     string
	Type     Type
	Optional bool
	Rest     bool // the last parameter collects the remaining arguments
}

type Function struct {
	Name       string
	TypeParams []*TypeParam
	Params     []Param
	Return     Type
	Throwing   bool
}

func (f *Function) Kind() Kind { return KindFunction }
func (f *Function) typeNode()  {}

// MinArgs is the number of required parameters.
func (f *Function) MinArgs() int {
	n := 0
	for _, p := range f.Params {
		if p.Optional || p.Rest {
			break
		}
		n++
	}
	return n
}

// MaxArgs is the parameter count, or -1 when a rest parameter is present.
func (f *Function) MaxArgs() int {
	if n := len(f.Params); n > 0 && f.Params[n-1].Rest {
		return -1
	}
	return len(f.Params)
}

// ParamAt returns the parameter type receiving argument i; arguments past
// a rest parameter receive its element type.
func (f *Function) ParamAt(i int) (Type, bool) {
	n := len(f.Params)
	if n == 0 {
		return nil, false
	}
	if i < n && !f.Params[i].Rest {
		return f.Params[i].Type, true
	}
	last := f.Params[n-1]
	if !last.Rest {
		return nil, false
	}
	if arr, ok := Resolve(last.Type).(*Array); ok {
		return arr.Element, true
	}
	return Unknown, true
}

// Object is a structural object type. Members keep declaration order.
type Object struct {
	Name    string // interface name, empty for literal shapes
	Members []*Reference
	byName  map[string]*Reference
}

func NewObject(name string, members ...*Reference) *Object {
	o := &Object{Name: name, byName: make(map[string]*Reference)}
	for _, m := range members {
		o.AddMember(m)
	}
	return o
}

func (o *Object) Kind() Kind { return KindObject }
func (o *Object) typeNode()  {}

// AddMember appends m, or replaces an existing member of the same name in
// place.
func (o *Object) AddMember(m *Reference) {
	if o.byName == nil {
		o.byName = make(map[string]*Reference)
	}
	if old, ok := o.byName[m.Name]; ok {
		for i, existing := range o.Members {
			if existing == old {
				o.Members[i] = m
				break
			}
		}
	} else {
		o.Members = append(o.Members, m)
	}
	o.byName[m.Name] = m
}

func (o *Object) Member(name string) *Reference {
	return o.byName[name]
}

type Union struct {
	Members []Type
}

func (u *Union) Kind() Kind { return KindUnion }
func (u *Union) typeNode()  {}

// NewUnion flattens nested unions and drops duplicate members. A union of
// one member is that member.
func NewUnion(types ...Type) Type {
	var members []Type
	var add func(t Type)
	add = func(t Type) {
		if u, ok := t.(*Union); ok {
			for _, m := range u.Members {
				add(m)
			}
			return
		}
		for _, m := range members {
			if m == t {
				return
			}
		}
		members = append(members, t)
	}
	for _, t := range types {
		add(t)
	}
	if len(members) == 1 {
		return members[0]
	}
	return &Union{Members: members}
}

// Enum is a named set of constant members whose values all share Content
// (number or string).
type Enum struct {
	Name    string
	Content Type
	Members []*EnumMember
	byName  map[string]*EnumMember
}

func NewEnum(name string) *Enum {
	return &Enum{Name: name, Content: Number, byName: make(map[string]*EnumMember)}
}

func (e *Enum) Kind() Kind { return KindEnum }
func (e *Enum) typeNode()  {}

func (e *Enum) AddMember(name string, value any) *EnumMember {
	m := &EnumMember{Owner: e, Name: name, Value: value}
	e.Members = append(e.Members, m)
	e.byName[name] = m
	return m
}

func (e *Enum) Member(name string) *EnumMember { return e.byName[name] }

// EnumMember is the type of one constant of an enum. Value is a float64 or
// a string.
type EnumMember struct {
	Owner *Enum
	Name  string
	Value any
}

func (m *EnumMember) Kind() Kind { return KindEnumMember }
func (m *EnumMember) typeNode()  {}

// Alias is a named, possibly generic, type alias. An instantiation of a
// generic alias records Origin and Args; its aliased type is produced by
// substitution on first use.
type Alias struct {
	Name    string
	Params  []*TypeParam
	Aliased Type // nil while the declaration is being resolved

	Origin *Alias
	Args   []Type
}

func (a *Alias) Kind() Kind { return KindType }
func (a *Alias) typeNode()  {}

// Target returns the aliased type, instantiating it when a is a generic
// instantiation.
func (a *Alias) Target() Type {
	if a.Aliased != nil {
		return a.Aliased
	}
	if a.Origin == nil || a.Origin.Target() == nil {
		return nil
	}
	a.Aliased = Substitute(a.Origin.Target(), Bind(a.Origin.Params, a.Args))
	return a.Aliased
}

// Instantiate applies args to a generic alias. Arity is checked by callers.
func Instantiate(a *Alias, args []Type) *Alias {
	return &Alias{Name: a.Name, Params: nil, Origin: a, Args: args}
}

// Mapped is an index-signature shape: every key drawn from Key maps to
// Value. Key is a *TypeParam when the shape binds the key (Record<K, V>,
// { [K in keyof T]: V }).
type Mapped struct {
	Key   Type
	Value Type
}

func (m *Mapped) Kind() Kind { return KindMapped }
func (m *Mapped) typeNode()  {}

// Class is a constructible host type. Instances are modeled as the class
// type itself.
type Class struct {
	Name        string
	Constructor *Function
	Members     []*Reference
	byName      map[string]*Reference
}

func NewClass(name string, ctor *Function, members ...*Reference) *Class {
	c := &Class{Name: name, Constructor: ctor, byName: make(map[string]*Reference)}
	for _, m := range members {
		c.Members = append(c.Members, m)
		c.byName[m.Name] = m
	}
	return c
}

func (c *Class) Kind() Kind { return KindClass }
func (c *Class) typeNode()  {}

func (c *Class) Member(name string) *Reference { return c.byName[name] }

// TypeParam is a generic parameter standing for a not-yet-substituted
// argument.
type TypeParam struct {
	Name       string
	Constraint Type // Unknown when unconstrained
}

func (p *TypeParam) Kind() Kind { return KindParameter }
func (p *TypeParam) typeNode()  {}

// Resolve strips aliases until a non-alias type is reached. Unresolved
// aliases resolve to Unknown.
func Resolve(t Type) Type {
	for i := 0; i < 64; i++ {
		a, ok := t.(*Alias)
		if !ok {
			return t
		}
		t = a.Target()
		if t == nil {
			return Unknown
		}
	}
	return Unknown
}

// KindOf returns the tag of t after alias resolution.
func KindOf(t Type) Kind {
	return Resolve(t).Kind()
}
