package ast

import (
	"github.com/funvibe/tsfront/internal/token"
)

type Identifier struct {
	Span  token.Span
	Value string
}

func (i *Identifier) Accept(v Visitor)    { v.VisitIdentifier(i) }
func (i *Identifier) GetSpan() token.Span { return i.Span }
func (i *Identifier) expressionNode()     {}

type NumberLiteral struct {
	Span  token.Span
	Value float64
	Raw   string
}

func (nl *NumberLiteral) Accept(v Visitor)    { v.VisitNumberLiteral(nl) }
func (nl *NumberLiteral) GetSpan() token.Span { return nl.Span }
func (nl *NumberLiteral) expressionNode()     {}

type StringLiteral struct {
	Span  token.Span
	Value string
}

func (sl *StringLiteral) Accept(v Visitor)    { v.VisitStringLiteral(sl) }
func (sl *StringLiteral) GetSpan() token.Span { return sl.Span }
func (sl *StringLiteral) expressionNode()     {}

// TemplateLiteral holds len(Expressions)+1 cooked string parts.
// `a${x}b` => Quasis ["a", "b"], Expressions [x]
type TemplateLiteral struct {
	Span        token.Span
	Quasis      []string
	Expressions []Expression
}

func (tl *TemplateLiteral) Accept(v Visitor)    { v.VisitTemplateLiteral(tl) }
func (tl *TemplateLiteral) GetSpan() token.Span { return tl.Span }
func (tl *TemplateLiteral) expressionNode()     {}

type BooleanLiteral struct {
	Span  token.Span
	Value bool
}

func (bl *BooleanLiteral) Accept(v Visitor)    { v.VisitBooleanLiteral(bl) }
func (bl *BooleanLiteral) GetSpan() token.Span { return bl.Span }
func (bl *BooleanLiteral) expressionNode()     {}

type NullLiteral struct {
	Span token.Span
}

func (nl *NullLiteral) Accept(v Visitor)    { v.VisitNullLiteral(nl) }
func (nl *NullLiteral) GetSpan() token.Span { return nl.Span }
func (nl *NullLiteral) expressionNode()     {}

type UndefinedLiteral struct {
	Span token.Span
}

func (ul *UndefinedLiteral) Accept(v Visitor)    { v.VisitUndefinedLiteral(ul) }
func (ul *UndefinedLiteral) GetSpan() token.Span { return ul.Span }
func (ul *UndefinedLiteral) expressionNode()     {}

// ArrayLiteral elements may include *SpreadElement.
type ArrayLiteral struct {
	Span     token.Span
	Elements []Expression
}

func (al *ArrayLiteral) Accept(v Visitor)    { v.VisitArrayLiteral(al) }
func (al *ArrayLiteral) GetSpan() token.Span { return al.Span }
func (al *ArrayLiteral) expressionNode()     {}

// Property is one member of an object literal.
//
//	{ a: 1 }        Key "a", Value 1
//	{ a }           Shorthand, Value is the identifier a
//	{ f() {} }      Method, Value is a *FunctionLiteral
//	{ ...rest }     Spread, Key empty
type Property struct {
	Span      token.Span
	Key       string
	KeySpan   token.Span
	Value     Expression
	Shorthand bool
	Method    bool
	Spread    bool
	Quoted    bool // key written as a string literal
}

type ObjectLiteral struct {
	Span       token.Span
	Properties []*Property
}

func (ol *ObjectLiteral) Accept(v Visitor)    { v.VisitObjectLiteral(ol) }
func (ol *ObjectLiteral) GetSpan() token.Span { return ol.Span }
func (ol *ObjectLiteral) expressionNode()     {}

type SpreadElement struct {
	Span     token.Span
	Argument Expression
}

func (se *SpreadElement) Accept(v Visitor)    { v.VisitSpreadElement(se) }
func (se *SpreadElement) GetSpan() token.Span { return se.Span }
func (se *SpreadElement) expressionNode()     {}

// FunctionLiteral is a function expression or an arrow function. An arrow
// with an expression body has ExprBody set and Body nil.
type FunctionLiteral struct {
	Span       token.Span
	Name       *Identifier
	TypeParams []*TypeParameter
	Params     []*Parameter
	ReturnType Type
	Body       *BlockStatement
	ExprBody   Expression
	Arrow      bool
}

func (fl *FunctionLiteral) Accept(v Visitor)    { v.VisitFunctionLiteral(fl) }
func (fl *FunctionLiteral) GetSpan() token.Span { return fl.Span }
func (fl *FunctionLiteral) expressionNode()     {}

type MemberExpression struct {
	Span     token.Span
	Object   Expression
	Property *Identifier
}

func (me *MemberExpression) Accept(v Visitor)    { v.VisitMemberExpression(me) }
func (me *MemberExpression) GetSpan() token.Span { return me.Span }
func (me *MemberExpression) expressionNode()     {}

type IndexExpression struct {
	Span   token.Span
	Object Expression
	Index  Expression
}

func (ie *IndexExpression) Accept(v Visitor)    { v.VisitIndexExpression(ie) }
func (ie *IndexExpression) GetSpan() token.Span { return ie.Span }
func (ie *IndexExpression) expressionNode()     {}

type CallExpression struct {
	Span      token.Span
	Callee    Expression
	TypeArgs  []Type
	Arguments []Expression
}

func (ce *CallExpression) Accept(v Visitor)    { v.VisitCallExpression(ce) }
func (ce *CallExpression) GetSpan() token.Span { return ce.Span }
func (ce *CallExpression) expressionNode()     {}

type NewExpression struct {
	Span      token.Span
	Callee    Expression
	TypeArgs  []Type
	Arguments []Expression
}

func (ne *NewExpression) Accept(v Visitor)    { v.VisitNewExpression(ne) }
func (ne *NewExpression) GetSpan() token.Span { return ne.Span }
func (ne *NewExpression) expressionNode()     {}

type PrefixExpression struct {
	Span     token.Span
	Operator token.Kind
	Operand  Expression
}

func (pe *PrefixExpression) Accept(v Visitor)    { v.VisitPrefixExpression(pe) }
func (pe *PrefixExpression) GetSpan() token.Span { return pe.Span }
func (pe *PrefixExpression) expressionNode()     {}

type PostfixExpression struct {
	Span     token.Span
	Operator token.Kind
	Operand  Expression
}

func (pe *PostfixExpression) Accept(v Visitor)    { v.VisitPostfixExpression(pe) }
func (pe *PostfixExpression) GetSpan() token.Span { return pe.Span }
func (pe *PostfixExpression) expressionNode()     {}

type InfixExpression struct {
	Span     token.Span
	Operator token.Kind
	Left     Expression
	Right    Expression
}

func (ie *InfixExpression) Accept(v Visitor)    { v.VisitInfixExpression(ie) }
func (ie *InfixExpression) GetSpan() token.Span { return ie.Span }
func (ie *InfixExpression) expressionNode()     {}

// AsExpression is a type assertion: expr as T.
type AsExpression struct {
	Span       token.Span
	Expression Expression
	Type       Type
}

func (ae *AsExpression) Accept(v Visitor)    { v.VisitAsExpression(ae) }
func (ae *AsExpression) GetSpan() token.Span { return ae.Span }
func (ae *AsExpression) expressionNode()     {}

type ConditionalExpression struct {
	Span       token.Span
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

func (ce *ConditionalExpression) Accept(v Visitor)    { v.VisitConditionalExpression(ce) }
func (ce *ConditionalExpression) GetSpan() token.Span { return ce.Span }
func (ce *ConditionalExpression) expressionNode()     {}

type AssignmentExpression struct {
	Span     token.Span
	Operator token.Kind // ASSIGN or a compound assignment
	Target   Expression
	Value    Expression
}

func (ae *AssignmentExpression) Accept(v Visitor)    { v.VisitAssignmentExpression(ae) }
func (ae *AssignmentExpression) GetSpan() token.Span { return ae.Span }
func (ae *AssignmentExpression) expressionNode()     {}

type SequenceExpression struct {
	Span        token.Span
	Expressions []Expression
}

func (se *SequenceExpression) Accept(v Visitor)    { v.VisitSequenceExpression(se) }
func (se *SequenceExpression) GetSpan() token.Span { return se.Span }
func (se *SequenceExpression) expressionNode()     {}

type ParenthesizedExpression struct {
	Span       token.Span
	Expression Expression
}

func (pe *ParenthesizedExpression) Accept(v Visitor)    { v.VisitParenthesizedExpression(pe) }
func (pe *ParenthesizedExpression) GetSpan() token.Span { return pe.Span }
func (pe *ParenthesizedExpression) expressionNode()     {}
