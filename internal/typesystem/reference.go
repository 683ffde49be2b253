package typesystem

type RefFlag uint8

const (
	FlagConstant RefFlag = 1 << iota
	FlagOptional
	FlagExported
	FlagImported
	FlagTypeOnly
)

// Reference is a named binding to a type: a variable, function, parameter,
// import or object member.
//
// A Reference declared without annotation or initializer holds Unknown
// until the first assignment infers its type; after that, and for every
// other Reference from the start, the type is frozen.
type Reference struct {
	Name   string
	Type   Type
	Flags  RefFlag
	frozen bool
}

func NewReference(name string, t Type, flags RefFlag) *Reference {
	return &Reference{Name: name, Type: t, Flags: flags, frozen: true}
}

// NewInferredReference creates a Reference whose type is fixed by the
// first assignment.
func NewInferredReference(name string, flags RefFlag) *Reference {
	return &Reference{Name: name, Type: Unknown, Flags: flags}
}

func (r *Reference) Has(f RefFlag) bool { return r.Flags&f != 0 }

func (r *Reference) Set(f RefFlag) { r.Flags |= f }

func (r *Reference) IsConstant() bool { return r.Has(FlagConstant) }
func (r *Reference) IsOptional() bool { return r.Has(FlagOptional) }
func (r *Reference) IsExported() bool { return r.Has(FlagExported) }
func (r *Reference) IsFrozen() bool   { return r.frozen }

// Infer fixes the type of a not-yet-frozen Reference. It reports false when
// the type was already frozen.
func (r *Reference) Infer(t Type) bool {
	if r.frozen {
		return false
	}
	r.Type = t
	r.frozen = true
	return true
}

// Freeze marks the type as final.
func (r *Reference) Freeze() { r.frozen = true }

// Clone copies r with a new name, used for import and export aliases.
func (r *Reference) Clone(name string) *Reference {
	c := *r
	c.Name = name
	return &c
}

// NamedType is an exported type together with the name it is exported as.
type NamedType struct {
	Name string
	Type Type
}
