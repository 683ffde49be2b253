package ast

import (
	"github.com/funvibe/tsfront/internal/token"
)

// Node is the base interface for all AST nodes. The set of node types is
// closed: consumers type-switch over the concrete types below.
type Node interface {
	Accept(v Visitor)
	GetSpan() token.Span
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents a value expression.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of one parsed source file.
type Program struct {
	Span       token.Span
	File       string // path relative to the project root
	Statements []Statement
}

func (p *Program) Accept(v Visitor)    { v.VisitProgram(p) }
func (p *Program) GetSpan() token.Span { return p.Span }

// Visitor is implemented by tree walkers that need every node kind.
type Visitor interface {
	VisitProgram(node *Program)

	// Statements
	VisitVariableDeclaration(node *VariableDeclaration)
	VisitFunctionDeclaration(node *FunctionDeclaration)
	VisitReturnStatement(node *ReturnStatement)
	VisitIfStatement(node *IfStatement)
	VisitForStatement(node *ForStatement)
	VisitForInStatement(node *ForInStatement)
	VisitWhileStatement(node *WhileStatement)
	VisitDoWhileStatement(node *DoWhileStatement)
	VisitBreakStatement(node *BreakStatement)
	VisitContinueStatement(node *ContinueStatement)
	VisitLabeledStatement(node *LabeledStatement)
	VisitBlockStatement(node *BlockStatement)
	VisitThrowStatement(node *ThrowStatement)
	VisitTryStatement(node *TryStatement)
	VisitSwitchStatement(node *SwitchStatement)
	VisitImportDeclaration(node *ImportDeclaration)
	VisitExportDeclaration(node *ExportDeclaration)
	VisitTypeAliasDeclaration(node *TypeAliasDeclaration)
	VisitInterfaceDeclaration(node *InterfaceDeclaration)
	VisitEnumDeclaration(node *EnumDeclaration)
	VisitEmptyStatement(node *EmptyStatement)
	VisitExpressionStatement(node *ExpressionStatement)

	// Expressions
	VisitIdentifier(node *Identifier)
	VisitNumberLiteral(node *NumberLiteral)
	VisitStringLiteral(node *StringLiteral)
	VisitTemplateLiteral(node *TemplateLiteral)
	VisitBooleanLiteral(node *BooleanLiteral)
	VisitNullLiteral(node *NullLiteral)
	VisitUndefinedLiteral(node *UndefinedLiteral)
	VisitArrayLiteral(node *ArrayLiteral)
	VisitObjectLiteral(node *ObjectLiteral)
	VisitSpreadElement(node *SpreadElement)
	VisitFunctionLiteral(node *FunctionLiteral)
	VisitMemberExpression(node *MemberExpression)
	VisitIndexExpression(node *IndexExpression)
	VisitCallExpression(node *CallExpression)
	VisitNewExpression(node *NewExpression)
	VisitPrefixExpression(node *PrefixExpression)
	VisitPostfixExpression(node *PostfixExpression)
	VisitInfixExpression(node *InfixExpression)
	VisitAsExpression(node *AsExpression)
	VisitConditionalExpression(node *ConditionalExpression)
	VisitAssignmentExpression(node *AssignmentExpression)
	VisitSequenceExpression(node *SequenceExpression)
	VisitParenthesizedExpression(node *ParenthesizedExpression)

	// Type annotations
	VisitKeywordType(node *KeywordType)
	VisitTypeReference(node *TypeReference)
	VisitArrayType(node *ArrayType)
	VisitUnionType(node *UnionType)
	VisitFunctionType(node *FunctionType)
	VisitTypeLiteral(node *TypeLiteral)
	VisitMappedType(node *MappedType)
	VisitKeyofType(node *KeyofType)
	VisitLiteralType(node *LiteralType)
	VisitParenthesizedType(node *ParenthesizedType)
}
