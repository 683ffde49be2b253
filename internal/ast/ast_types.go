package ast

import (
	"github.com/funvibe/tsfront/internal/token"
)

// --- Type annotation nodes ---

// Type is a type annotation. Annotations form their own tree, disjoint from
// value expressions.
type Type interface {
	Node
	typeNode()
}

// KeywordType is a built-in type keyword: number, string, boolean, void,
// never, unknown, any, object, null, undefined.
type KeywordType struct {
	Span token.Span
	Name string
}

func (kt *KeywordType) Accept(v Visitor)    { v.VisitKeywordType(kt) }
func (kt *KeywordType) GetSpan() token.Span { return kt.Span }
func (kt *KeywordType) typeNode()           {}

// TypeReference names a declared type, optionally qualified (ns.T) and
// with generic arguments.
type TypeReference struct {
	Span      token.Span
	Qualifier *Identifier
	Name      *Identifier
	Args      []Type
}

func (tr *TypeReference) Accept(v Visitor)    { v.VisitTypeReference(tr) }
func (tr *TypeReference) GetSpan() token.Span { return tr.Span }
func (tr *TypeReference) typeNode()           {}

type ArrayType struct {
	Span    token.Span
	Element Type
}

func (at *ArrayType) Accept(v Visitor)    { v.VisitArrayType(at) }
func (at *ArrayType) GetSpan() token.Span { return at.Span }
func (at *ArrayType) typeNode()           {}

type UnionType struct {
	Span  token.Span
	Types []Type
}

func (ut *UnionType) Accept(v Visitor)    { v.VisitUnionType(ut) }
func (ut *UnionType) GetSpan() token.Span { return ut.Span }
func (ut *UnionType) typeNode()           {}

// FunctionType: (a: T, b?: U) => R
type FunctionType struct {
	Span       token.Span
	TypeParams []*TypeParameter
	Params     []*Parameter
	ReturnType Type
}

func (ft *FunctionType) Accept(v Visitor)    { v.VisitFunctionType(ft) }
func (ft *FunctionType) GetSpan() token.Span { return ft.Span }
func (ft *FunctionType) typeNode()           {}

// PropertySignature is a member of an interface or type literal. Method
// signatures are stored with a *FunctionType.
type PropertySignature struct {
	Span     token.Span
	Name     *Identifier
	Optional bool
	Type     Type
	Method   bool
}

// IndexSignature: { [key: string]: V }
type IndexSignature struct {
	Span    token.Span
	KeyName *Identifier
	KeyType Type
	Value   Type
}

type TypeLiteral struct {
	Span    token.Span
	Members []*PropertySignature
	Index   *IndexSignature
}

func (tl *TypeLiteral) Accept(v Visitor)    { v.VisitTypeLiteral(tl) }
func (tl *TypeLiteral) GetSpan() token.Span { return tl.Span }
func (tl *TypeLiteral) typeNode()           {}

// MappedType: { [K in C]: V }
type MappedType struct {
	Span       token.Span
	Param      *Identifier
	Constraint Type
	Optional   bool
	Value      Type
}

func (mt *MappedType) Accept(v Visitor)    { v.VisitMappedType(mt) }
func (mt *MappedType) GetSpan() token.Span { return mt.Span }
func (mt *MappedType) typeNode()           {}

type KeyofType struct {
	Span token.Span
	Type Type
}

func (kt *KeyofType) Accept(v Visitor)    { v.VisitKeyofType(kt) }
func (kt *KeyofType) GetSpan() token.Span { return kt.Span }
func (kt *KeyofType) typeNode()           {}

// LiteralType is a string, number or boolean literal used as a type. It
// denotes the literal's primitive type.
type LiteralType struct {
	Span  token.Span
	Value Expression
}

func (lt *LiteralType) Accept(v Visitor)    { v.VisitLiteralType(lt) }
func (lt *LiteralType) GetSpan() token.Span { return lt.Span }
func (lt *LiteralType) typeNode()           {}

type ParenthesizedType struct {
	Span token.Span
	Type Type
}

func (pt *ParenthesizedType) Accept(v Visitor)    { v.VisitParenthesizedType(pt) }
func (pt *ParenthesizedType) GetSpan() token.Span { return pt.Span }
func (pt *ParenthesizedType) typeNode()           {}
