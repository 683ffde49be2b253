package ast

import (
	"github.com/funvibe/tsfront/internal/token"
)

// VariableDeclaration is a const/let/var statement.
// const a = 1, b: string = "x";
type VariableDeclaration struct {
	Span         token.Span
	Kind         token.Kind // CONST, LET or VAR
	Declarations []*VariableDeclarator
}

type VariableDeclarator struct {
	Span  token.Span
	Name  *Identifier
	Type  Type       // optional annotation
	Value Expression // optional initializer
}

func (vd *VariableDeclaration) Accept(v Visitor)    { v.VisitVariableDeclaration(vd) }
func (vd *VariableDeclaration) GetSpan() token.Span { return vd.Span }
func (vd *VariableDeclaration) statementNode()      {}

// TypeParameter is one entry of a generic parameter list: <T extends C = D>.
type TypeParameter struct {
	Span       token.Span
	Name       *Identifier
	Constraint Type
	Default    Type
}

// Parameter is one function parameter.
type Parameter struct {
	Span     token.Span
	Name     *Identifier
	Type     Type
	Optional bool // a?: T
	Rest     bool // ...a: T[]
	Default  Expression
}

// IsRequired reports whether callers must supply an argument for p.
func (p *Parameter) IsRequired() bool {
	return !p.Optional && !p.Rest && p.Default == nil
}

// FunctionDeclaration is a named, hoisted function statement.
type FunctionDeclaration struct {
	Span       token.Span
	Name       *Identifier
	TypeParams []*TypeParameter
	Params     []*Parameter
	ReturnType Type
	Body       *BlockStatement
}

func (fd *FunctionDeclaration) Accept(v Visitor)    { v.VisitFunctionDeclaration(fd) }
func (fd *FunctionDeclaration) GetSpan() token.Span { return fd.Span }
func (fd *FunctionDeclaration) statementNode()      {}

type ReturnStatement struct {
	Span  token.Span
	Value Expression // nil for a bare return
}

func (rs *ReturnStatement) Accept(v Visitor)    { v.VisitReturnStatement(rs) }
func (rs *ReturnStatement) GetSpan() token.Span { return rs.Span }
func (rs *ReturnStatement) statementNode()      {}

type IfStatement struct {
	Span        token.Span
	Condition   Expression
	Consequence Statement
	Alternative Statement // optional
}

func (is *IfStatement) Accept(v Visitor)    { v.VisitIfStatement(is) }
func (is *IfStatement) GetSpan() token.Span { return is.Span }
func (is *IfStatement) statementNode()      {}

// ForStatement is the C-style for loop. Init is a *VariableDeclaration or
// an *ExpressionStatement.
type ForStatement struct {
	Span      token.Span
	Init      Statement
	Condition Expression
	Update    Expression
	Body      Statement
}

func (fs *ForStatement) Accept(v Visitor)    { v.VisitForStatement(fs) }
func (fs *ForStatement) GetSpan() token.Span { return fs.Span }
func (fs *ForStatement) statementNode()      {}

// ForInStatement covers both for-in (Of == false) and for-of loops. Exactly
// one of Decl and Target is set.
type ForInStatement struct {
	Span   token.Span
	Decl   *VariableDeclaration
	Target Expression
	Of     bool
	Right  Expression
	Body   Statement
}

func (fs *ForInStatement) Accept(v Visitor)    { v.VisitForInStatement(fs) }
func (fs *ForInStatement) GetSpan() token.Span { return fs.Span }
func (fs *ForInStatement) statementNode()      {}

type WhileStatement struct {
	Span      token.Span
	Condition Expression
	Body      Statement
}

func (ws *WhileStatement) Accept(v Visitor)    { v.VisitWhileStatement(ws) }
func (ws *WhileStatement) GetSpan() token.Span { return ws.Span }
func (ws *WhileStatement) statementNode()      {}

type DoWhileStatement struct {
	Span      token.Span
	Body      Statement
	Condition Expression
}

func (ds *DoWhileStatement) Accept(v Visitor)    { v.VisitDoWhileStatement(ds) }
func (ds *DoWhileStatement) GetSpan() token.Span { return ds.Span }
func (ds *DoWhileStatement) statementNode()      {}

type BreakStatement struct {
	Span  token.Span
	Label *Identifier
}

func (bs *BreakStatement) Accept(v Visitor)    { v.VisitBreakStatement(bs) }
func (bs *BreakStatement) GetSpan() token.Span { return bs.Span }
func (bs *BreakStatement) statementNode()      {}

type ContinueStatement struct {
	Span  token.Span
	Label *Identifier
}

func (cs *ContinueStatement) Accept(v Visitor)    { v.VisitContinueStatement(cs) }
func (cs *ContinueStatement) GetSpan() token.Span { return cs.Span }
func (cs *ContinueStatement) statementNode()      {}

type LabeledStatement struct {
	Span  token.Span
	Label *Identifier
	Body  Statement
}

func (ls *LabeledStatement) Accept(v Visitor)    { v.VisitLabeledStatement(ls) }
func (ls *LabeledStatement) GetSpan() token.Span { return ls.Span }
func (ls *LabeledStatement) statementNode()      {}

type BlockStatement struct {
	Span       token.Span
	Statements []Statement
}

func (bs *BlockStatement) Accept(v Visitor)    { v.VisitBlockStatement(bs) }
func (bs *BlockStatement) GetSpan() token.Span { return bs.Span }
func (bs *BlockStatement) statementNode()      {}

type ThrowStatement struct {
	Span  token.Span
	Value Expression
}

func (ts *ThrowStatement) Accept(v Visitor)    { v.VisitThrowStatement(ts) }
func (ts *ThrowStatement) GetSpan() token.Span { return ts.Span }
func (ts *ThrowStatement) statementNode()      {}

// TryStatement: try {} catch (e) {} finally {}. Handler and Finalizer are
// optional but not both absent.
type TryStatement struct {
	Span      token.Span
	Block     *BlockStatement
	Param     *Identifier
	ParamType Type
	Handler   *BlockStatement
	Finalizer *BlockStatement
}

func (ts *TryStatement) Accept(v Visitor)    { v.VisitTryStatement(ts) }
func (ts *TryStatement) GetSpan() token.Span { return ts.Span }
func (ts *TryStatement) statementNode()      {}

type SwitchCase struct {
	Span token.Span
	Test Expression // nil for default
	Body []Statement
}

type SwitchStatement struct {
	Span         token.Span
	Discriminant Expression
	Cases        []*SwitchCase
}

func (ss *SwitchStatement) Accept(v Visitor)    { v.VisitSwitchStatement(ss) }
func (ss *SwitchStatement) GetSpan() token.Span { return ss.Span }
func (ss *SwitchStatement) statementNode()      {}

// ImportSpecifier is one name in an import list: { Imported as Local }.
type ImportSpecifier struct {
	Span     token.Span
	Imported *Identifier
	Local    *Identifier
	// IsType is set by the analyzer when the name resolves to an exported
	// type rather than a value.
	IsType bool
}

// ImportDeclaration covers named, namespace, type-only and side-effect
// imports. ResolvedPath is empty for non-relative specifiers.
type ImportDeclaration struct {
	Span         token.Span
	Specifiers   []*ImportSpecifier
	Namespace    *Identifier
	Source       *StringLiteral
	TypeOnly     bool
	ResolvedPath string
}

func (id *ImportDeclaration) Accept(v Visitor)    { v.VisitImportDeclaration(id) }
func (id *ImportDeclaration) GetSpan() token.Span { return id.Span }
func (id *ImportDeclaration) statementNode()      {}

type ExportSpecifier struct {
	Span     token.Span
	Local    *Identifier
	Exported *Identifier
}

// ExportDeclaration is either `export <declaration>` or `export { a as b }`.
type ExportDeclaration struct {
	Span        token.Span
	Declaration Statement
	Specifiers  []*ExportSpecifier
}

func (ed *ExportDeclaration) Accept(v Visitor)    { v.VisitExportDeclaration(ed) }
func (ed *ExportDeclaration) GetSpan() token.Span { return ed.Span }
func (ed *ExportDeclaration) statementNode()      {}

type TypeAliasDeclaration struct {
	Span       token.Span
	Name       *Identifier
	TypeParams []*TypeParameter
	Type       Type
}

func (ta *TypeAliasDeclaration) Accept(v Visitor)    { v.VisitTypeAliasDeclaration(ta) }
func (ta *TypeAliasDeclaration) GetSpan() token.Span { return ta.Span }
func (ta *TypeAliasDeclaration) statementNode()      {}

type InterfaceDeclaration struct {
	Span       token.Span
	Name       *Identifier
	TypeParams []*TypeParameter
	Extends    []*TypeReference
	Members    []*PropertySignature
}

func (id *InterfaceDeclaration) Accept(v Visitor)    { v.VisitInterfaceDeclaration(id) }
func (id *InterfaceDeclaration) GetSpan() token.Span { return id.Span }
func (id *InterfaceDeclaration) statementNode()      {}

type EnumMember struct {
	Span  token.Span
	Name  *Identifier
	Value Expression // optional initializer
}

type EnumDeclaration struct {
	Span    token.Span
	Name    *Identifier
	Members []*EnumMember
}

func (ed *EnumDeclaration) Accept(v Visitor)    { v.VisitEnumDeclaration(ed) }
func (ed *EnumDeclaration) GetSpan() token.Span { return ed.Span }
func (ed *EnumDeclaration) statementNode()      {}

type EmptyStatement struct {
	Span token.Span
}

func (es *EmptyStatement) Accept(v Visitor)    { v.VisitEmptyStatement(es) }
func (es *EmptyStatement) GetSpan() token.Span { return es.Span }
func (es *EmptyStatement) statementNode()      {}

type ExpressionStatement struct {
	Span       token.Span
	Expression Expression
}

func (es *ExpressionStatement) Accept(v Visitor)    { v.VisitExpressionStatement(es) }
func (es *ExpressionStatement) GetSpan() token.Span { return es.Span }
func (es *ExpressionStatement) statementNode()      {}
