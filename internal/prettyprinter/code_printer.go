package prettyprinter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/tsfront/internal/ast"
	"github.com/funvibe/tsfront/internal/token"
)

// --- Code Printer (Output looks like source code) ---

// Expression precedence levels used for parenthesization. Binary operators
// sit between precConditional and precUnary at their token precedence.
const (
	precSequence = iota
	precAssign
	precConditional
	precBinaryBase
)

const (
	precUnary = precBinaryBase + token.PrecPower + 1 + iota
	precPostfix
	precCall
	precPrimary
)

func binaryPrec(op token.Kind) int {
	return precBinaryBase + op.Precedence()
}

func exprPrec(e ast.Expression) int {
	switch e := e.(type) {
	case *ast.SequenceExpression:
		return precSequence
	case *ast.AssignmentExpression:
		return precAssign
	case *ast.FunctionLiteral:
		if e.Arrow {
			return precAssign
		}
		return precPrimary
	case *ast.ConditionalExpression:
		return precConditional
	case *ast.InfixExpression:
		return binaryPrec(e.Operator)
	case *ast.AsExpression:
		return binaryPrec(token.LT)
	case *ast.PrefixExpression:
		return precUnary
	case *ast.PostfixExpression:
		return precPostfix
	case *ast.CallExpression, *ast.MemberExpression, *ast.IndexExpression, *ast.NewExpression:
		return precCall
	}
	return precPrimary
}

type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print renders node as source text.
func Print(node ast.Node) string {
	p := NewCodePrinter()
	node.Accept(p)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeln() {
	p.buf.WriteString("\n")
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

// printExpr prints an expression, adding parentheses only if needed
func (p *CodePrinter) printExpr(expr ast.Expression, minPrec int) {
	if expr == nil {
		p.write("<???>")
		return
	}
	if exprPrec(expr) < minPrec {
		p.write("(")
		expr.Accept(p)
		p.write(")")
		return
	}
	expr.Accept(p)
}

// leftmost returns the expression whose first token starts e.
func leftmost(e ast.Expression) ast.Expression {
	for {
		switch n := e.(type) {
		case *ast.InfixExpression:
			e = n.Left
		case *ast.CallExpression:
			e = n.Callee
		case *ast.MemberExpression:
			e = n.Object
		case *ast.IndexExpression:
			e = n.Object
		case *ast.PostfixExpression:
			e = n.Operand
		case *ast.AssignmentExpression:
			e = n.Target
		case *ast.ConditionalExpression:
			e = n.Test
		case *ast.AsExpression:
			e = n.Expression
		case *ast.SequenceExpression:
			e = n.Expressions[0]
		default:
			return e
		}
	}
}

// startsLikeStatement reports whether e, printed at statement start, would be
// read as a block or a function declaration.
func startsLikeStatement(e ast.Expression) bool {
	switch n := leftmost(e).(type) {
	case *ast.ObjectLiteral:
		return true
	case *ast.FunctionLiteral:
		return !n.Arrow
	}
	return false
}

func (p *CodePrinter) printStatementBody(s ast.Statement) {
	if s == nil {
		p.write("<???>")
		return
	}
	s.Accept(p)
}

func (p *CodePrinter) printStatements(stmts []ast.Statement) {
	p.indent++
	for _, stmt := range stmts {
		p.writeIndent()
		p.printStatementBody(stmt)
		p.writeln()
	}
	p.indent--
}

// --- Statements ---

func (p *CodePrinter) VisitProgram(n *ast.Program) {
	for _, stmt := range n.Statements {
		p.printStatementBody(stmt)
		p.writeln()
	}
}

func (p *CodePrinter) VisitExpressionStatement(n *ast.ExpressionStatement) {
	if n.Expression != nil && startsLikeStatement(n.Expression) {
		p.write("(")
		n.Expression.Accept(p)
		p.write(");")
		return
	}
	p.printExpr(n.Expression, precSequence)
	p.write(";")
}

func (p *CodePrinter) printVariableDeclaration(n *ast.VariableDeclaration) {
	p.write(n.Kind.String())
	p.write(" ")
	for i, d := range n.Declarations {
		if i > 0 {
			p.write(", ")
		}
		p.write(d.Name.Value)
		if d.Type != nil {
			p.write(": ")
			d.Type.Accept(p)
		}
		if d.Value != nil {
			p.write(" = ")
			p.printExpr(d.Value, precAssign)
		}
	}
}

func (p *CodePrinter) VisitVariableDeclaration(n *ast.VariableDeclaration) {
	p.printVariableDeclaration(n)
	p.write(";")
}

func (p *CodePrinter) printTypeParams(params []*ast.TypeParameter) {
	if len(params) == 0 {
		return
	}
	p.write("<")
	for i, tp := range params {
		if i > 0 {
			p.write(", ")
		}
		p.write(tp.Name.Value)
		if tp.Constraint != nil {
			p.write(" extends ")
			tp.Constraint.Accept(p)
		}
		if tp.Default != nil {
			p.write(" = ")
			tp.Default.Accept(p)
		}
	}
	p.write(">")
}

func (p *CodePrinter) printParams(params []*ast.Parameter) {
	p.write("(")
	for i, param := range params {
		if i > 0 {
			p.write(", ")
		}
		if param.Rest {
			p.write("...")
		}
		p.write(param.Name.Value)
		if param.Optional {
			p.write("?")
		}
		if param.Type != nil {
			p.write(": ")
			param.Type.Accept(p)
		}
		if param.Default != nil {
			p.write(" = ")
			p.printExpr(param.Default, precAssign)
		}
	}
	p.write(")")
}

// printSignature prints `<T>(params): R`.
func (p *CodePrinter) printSignature(typeParams []*ast.TypeParameter, params []*ast.Parameter, ret ast.Type) {
	p.printTypeParams(typeParams)
	p.printParams(params)
	if ret != nil {
		p.write(": ")
		ret.Accept(p)
	}
}

func (p *CodePrinter) VisitFunctionDeclaration(n *ast.FunctionDeclaration) {
	p.write("function ")
	p.write(n.Name.Value)
	p.printSignature(n.TypeParams, n.Params, n.ReturnType)
	p.write(" ")
	n.Body.Accept(p)
}

func (p *CodePrinter) VisitReturnStatement(n *ast.ReturnStatement) {
	p.write("return")
	if n.Value != nil {
		p.write(" ")
		p.printExpr(n.Value, precSequence)
	}
	p.write(";")
}

func (p *CodePrinter) VisitIfStatement(n *ast.IfStatement) {
	p.write("if (")
	p.printExpr(n.Condition, precSequence)
	p.write(") ")
	p.printStatementBody(n.Consequence)
	if n.Alternative != nil {
		p.write(" else ")
		p.printStatementBody(n.Alternative)
	}
}

func (p *CodePrinter) VisitForStatement(n *ast.ForStatement) {
	p.write("for (")
	switch init := n.Init.(type) {
	case *ast.VariableDeclaration:
		p.printVariableDeclaration(init)
	case *ast.ExpressionStatement:
		p.printExpr(init.Expression, precSequence)
	}
	p.write(";")
	if n.Condition != nil {
		p.write(" ")
		p.printExpr(n.Condition, precSequence)
	}
	p.write(";")
	if n.Update != nil {
		p.write(" ")
		p.printExpr(n.Update, precSequence)
	}
	p.write(") ")
	p.printStatementBody(n.Body)
}

func (p *CodePrinter) VisitForInStatement(n *ast.ForInStatement) {
	p.write("for (")
	if n.Decl != nil {
		p.printVariableDeclaration(n.Decl)
	} else {
		p.printExpr(n.Target, precCall)
	}
	if n.Of {
		p.write(" of ")
		p.printExpr(n.Right, precAssign)
	} else {
		p.write(" in ")
		p.printExpr(n.Right, precSequence)
	}
	p.write(") ")
	p.printStatementBody(n.Body)
}

func (p *CodePrinter) VisitWhileStatement(n *ast.WhileStatement) {
	p.write("while (")
	p.printExpr(n.Condition, precSequence)
	p.write(") ")
	p.printStatementBody(n.Body)
}

func (p *CodePrinter) VisitDoWhileStatement(n *ast.DoWhileStatement) {
	p.write("do ")
	p.printStatementBody(n.Body)
	p.write(" while (")
	p.printExpr(n.Condition, precSequence)
	p.write(");")
}

func (p *CodePrinter) VisitBreakStatement(n *ast.BreakStatement) {
	p.write("break")
	if n.Label != nil {
		p.write(" " + n.Label.Value)
	}
	p.write(";")
}

func (p *CodePrinter) VisitContinueStatement(n *ast.ContinueStatement) {
	p.write("continue")
	if n.Label != nil {
		p.write(" " + n.Label.Value)
	}
	p.write(";")
}

func (p *CodePrinter) VisitLabeledStatement(n *ast.LabeledStatement) {
	p.write(n.Label.Value)
	p.write(": ")
	p.printStatementBody(n.Body)
}

func (p *CodePrinter) VisitBlockStatement(n *ast.BlockStatement) {
	if len(n.Statements) == 0 {
		p.write("{}")
		return
	}
	p.write("{\n")
	p.printStatements(n.Statements)
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitThrowStatement(n *ast.ThrowStatement) {
	p.write("throw ")
	p.printExpr(n.Value, precSequence)
	p.write(";")
}

func (p *CodePrinter) VisitTryStatement(n *ast.TryStatement) {
	p.write("try ")
	n.Block.Accept(p)
	if n.Handler != nil {
		p.write(" catch ")
		if n.Param != nil {
			p.write("(" + n.Param.Value)
			if n.ParamType != nil {
				p.write(": ")
				n.ParamType.Accept(p)
			}
			p.write(") ")
		}
		n.Handler.Accept(p)
	}
	if n.Finalizer != nil {
		p.write(" finally ")
		n.Finalizer.Accept(p)
	}
}

func (p *CodePrinter) VisitSwitchStatement(n *ast.SwitchStatement) {
	p.write("switch (")
	p.printExpr(n.Discriminant, precSequence)
	p.write(") {\n")
	p.indent++
	for _, c := range n.Cases {
		p.writeIndent()
		if c.Test != nil {
			p.write("case ")
			p.printExpr(c.Test, precSequence)
			p.write(":")
		} else {
			p.write("default:")
		}
		p.writeln()
		p.printStatements(c.Body)
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitImportDeclaration(n *ast.ImportDeclaration) {
	p.write("import ")
	switch {
	case n.Namespace != nil:
		p.write("* as " + n.Namespace.Value + " from ")
	case len(n.Specifiers) > 0:
		if n.TypeOnly {
			p.write("type ")
		}
		p.write("{ ")
		for i, s := range n.Specifiers {
			if i > 0 {
				p.write(", ")
			}
			p.write(s.Imported.Value)
			if s.Local != nil && s.Local.Value != s.Imported.Value {
				p.write(" as " + s.Local.Value)
			}
		}
		p.write(" } from ")
	}
	p.write(quote(n.Source.Value))
	p.write(";")
}

func (p *CodePrinter) VisitExportDeclaration(n *ast.ExportDeclaration) {
	p.write("export ")
	if n.Declaration != nil {
		n.Declaration.Accept(p)
		return
	}
	p.write("{ ")
	for i, s := range n.Specifiers {
		if i > 0 {
			p.write(", ")
		}
		p.write(s.Local.Value)
		if s.Exported != nil && s.Exported.Value != s.Local.Value {
			p.write(" as " + s.Exported.Value)
		}
	}
	p.write(" };")
}

func (p *CodePrinter) VisitTypeAliasDeclaration(n *ast.TypeAliasDeclaration) {
	p.write("type " + n.Name.Value)
	p.printTypeParams(n.TypeParams)
	p.write(" = ")
	n.Type.Accept(p)
	p.write(";")
}

func (p *CodePrinter) VisitInterfaceDeclaration(n *ast.InterfaceDeclaration) {
	p.write("interface " + n.Name.Value)
	p.printTypeParams(n.TypeParams)
	if len(n.Extends) > 0 {
		p.write(" extends ")
		for i, ext := range n.Extends {
			if i > 0 {
				p.write(", ")
			}
			ext.Accept(p)
		}
	}
	if len(n.Members) == 0 {
		p.write(" {}")
		return
	}
	p.write(" {\n")
	p.indent++
	for _, m := range n.Members {
		p.writeIndent()
		p.printPropertySignature(m)
		p.write(";\n")
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitEnumDeclaration(n *ast.EnumDeclaration) {
	p.write("enum " + n.Name.Value)
	if len(n.Members) == 0 {
		p.write(" {}")
		return
	}
	p.write(" {\n")
	p.indent++
	for _, m := range n.Members {
		p.writeIndent()
		p.write(m.Name.Value)
		if m.Value != nil {
			p.write(" = ")
			p.printExpr(m.Value, precAssign)
		}
		p.write(",\n")
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitEmptyStatement(n *ast.EmptyStatement) {
	p.write(";")
}

// --- Expressions ---

func (p *CodePrinter) VisitIdentifier(n *ast.Identifier) {
	p.write(n.Value)
}

func (p *CodePrinter) VisitNumberLiteral(n *ast.NumberLiteral) {
	if n.Raw != "" {
		p.write(n.Raw)
		return
	}
	p.write(strconv.FormatFloat(n.Value, 'g', -1, 64))
}

func (p *CodePrinter) VisitStringLiteral(n *ast.StringLiteral) {
	p.write(quote(n.Value))
}

func (p *CodePrinter) VisitTemplateLiteral(n *ast.TemplateLiteral) {
	p.write("`")
	for i, q := range n.Quasis {
		p.write(escapeTemplate(q))
		if i < len(n.Expressions) {
			p.write("${")
			p.printExpr(n.Expressions[i], precSequence)
			p.write("}")
		}
	}
	p.write("`")
}

func (p *CodePrinter) VisitBooleanLiteral(n *ast.BooleanLiteral) {
	p.write(strconv.FormatBool(n.Value))
}

func (p *CodePrinter) VisitNullLiteral(n *ast.NullLiteral) {
	p.write("null")
}

func (p *CodePrinter) VisitUndefinedLiteral(n *ast.UndefinedLiteral) {
	p.write("undefined")
}

func (p *CodePrinter) VisitArrayLiteral(n *ast.ArrayLiteral) {
	p.write("[")
	for i, e := range n.Elements {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(e, precAssign)
	}
	p.write("]")
}

func (p *CodePrinter) VisitObjectLiteral(n *ast.ObjectLiteral) {
	if len(n.Properties) == 0 {
		p.write("{}")
		return
	}
	p.write("{ ")
	for i, prop := range n.Properties {
		if i > 0 {
			p.write(", ")
		}
		switch {
		case prop.Spread:
			p.write("...")
			p.printExpr(prop.Value, precAssign)
		case prop.Shorthand:
			p.write(prop.Key)
		case prop.Method:
			fn := prop.Value.(*ast.FunctionLiteral)
			p.writeKey(prop)
			p.printSignature(fn.TypeParams, fn.Params, fn.ReturnType)
			p.write(" ")
			fn.Body.Accept(p)
		default:
			p.writeKey(prop)
			p.write(": ")
			p.printExpr(prop.Value, precAssign)
		}
	}
	p.write(" }")
}

func (p *CodePrinter) writeKey(prop *ast.Property) {
	if prop.Quoted {
		p.write(quote(prop.Key))
		return
	}
	p.write(prop.Key)
}

func (p *CodePrinter) VisitSpreadElement(n *ast.SpreadElement) {
	p.write("...")
	p.printExpr(n.Argument, precAssign)
}

func (p *CodePrinter) VisitFunctionLiteral(n *ast.FunctionLiteral) {
	if !n.Arrow {
		p.write("function")
		if n.Name != nil {
			p.write(" " + n.Name.Value)
		}
		p.printSignature(n.TypeParams, n.Params, n.ReturnType)
		p.write(" ")
		n.Body.Accept(p)
		return
	}

	p.printSignature(n.TypeParams, n.Params, n.ReturnType)
	p.write(" => ")
	if n.Body != nil {
		n.Body.Accept(p)
		return
	}
	if _, ok := leftmost(n.ExprBody).(*ast.ObjectLiteral); ok {
		p.write("(")
		n.ExprBody.Accept(p)
		p.write(")")
		return
	}
	p.printExpr(n.ExprBody, precAssign)
}

func (p *CodePrinter) VisitMemberExpression(n *ast.MemberExpression) {
	if lit, ok := n.Object.(*ast.NumberLiteral); ok && isDigits(lit.Raw) {
		p.write("(")
		lit.Accept(p)
		p.write(")")
	} else {
		p.printExpr(n.Object, precCall)
	}
	p.write(".")
	p.write(n.Property.Value)
}

func (p *CodePrinter) VisitIndexExpression(n *ast.IndexExpression) {
	p.printExpr(n.Object, precCall)
	p.write("[")
	p.printExpr(n.Index, precSequence)
	p.write("]")
}

func (p *CodePrinter) printTypeArgs(args []ast.Type) {
	if len(args) == 0 {
		return
	}
	p.write("<")
	for i, a := range args {
		if i > 0 {
			p.write(", ")
		}
		a.Accept(p)
	}
	p.write(">")
}

func (p *CodePrinter) printArguments(args []ast.Expression) {
	p.write("(")
	for i, a := range args {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(a, precAssign)
	}
	p.write(")")
}

func (p *CodePrinter) VisitCallExpression(n *ast.CallExpression) {
	p.printExpr(n.Callee, precCall)
	p.printTypeArgs(n.TypeArgs)
	p.printArguments(n.Arguments)
}

func (p *CodePrinter) VisitNewExpression(n *ast.NewExpression) {
	p.write("new ")
	if _, isCall := n.Callee.(*ast.CallExpression); isCall {
		p.write("(")
		n.Callee.Accept(p)
		p.write(")")
	} else {
		p.printExpr(n.Callee, precCall)
	}
	p.printTypeArgs(n.TypeArgs)
	p.printArguments(n.Arguments)
}

func (p *CodePrinter) VisitPrefixExpression(n *ast.PrefixExpression) {
	p.write(n.Operator.String())
	switch {
	case n.Operator.IsKeyword():
		p.write(" ")
	case needsSpace(n.Operator, n.Operand):
		p.write(" ")
	}
	p.printExpr(n.Operand, precUnary)
}

// needsSpace keeps `- -a` and `+ ++a` from fusing into other operators.
func needsSpace(op token.Kind, operand ast.Expression) bool {
	inner, ok := operand.(*ast.PrefixExpression)
	if !ok {
		return false
	}
	plus := func(k token.Kind) bool { return k == token.PLUS || k == token.INCREMENT }
	minus := func(k token.Kind) bool { return k == token.MINUS || k == token.DECREMENT }
	return (plus(op) && plus(inner.Operator)) || (minus(op) && minus(inner.Operator))
}

func (p *CodePrinter) VisitPostfixExpression(n *ast.PostfixExpression) {
	p.printExpr(n.Operand, precCall)
	p.write(n.Operator.String())
}

func (p *CodePrinter) VisitInfixExpression(n *ast.InfixExpression) {
	prec := binaryPrec(n.Operator)
	if n.Operator == token.POWER {
		p.printExpr(n.Left, prec+1)
		p.write(" ** ")
		p.printExpr(n.Right, prec)
		return
	}
	p.printExpr(n.Left, prec)
	p.write(" " + n.Operator.String() + " ")
	p.printExpr(n.Right, prec+1)
}

func (p *CodePrinter) VisitAsExpression(n *ast.AsExpression) {
	p.printExpr(n.Expression, binaryPrec(token.LT))
	p.write(" as ")
	n.Type.Accept(p)
}

func (p *CodePrinter) VisitConditionalExpression(n *ast.ConditionalExpression) {
	p.printExpr(n.Test, precBinaryBase+1)
	p.write(" ? ")
	p.printExpr(n.Consequent, precAssign)
	p.write(" : ")
	p.printExpr(n.Alternate, precAssign)
}

func (p *CodePrinter) VisitAssignmentExpression(n *ast.AssignmentExpression) {
	p.printExpr(n.Target, precCall)
	p.write(" " + n.Operator.String() + " ")
	p.printExpr(n.Value, precAssign)
}

func (p *CodePrinter) VisitSequenceExpression(n *ast.SequenceExpression) {
	for i, e := range n.Expressions {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(e, precAssign)
	}
}

func (p *CodePrinter) VisitParenthesizedExpression(n *ast.ParenthesizedExpression) {
	p.write("(")
	p.printExpr(n.Expression, precSequence)
	p.write(")")
}

// --- Types ---

func (p *CodePrinter) VisitKeywordType(n *ast.KeywordType) {
	p.write(n.Name)
}

func (p *CodePrinter) VisitTypeReference(n *ast.TypeReference) {
	if n.Qualifier != nil {
		p.write(n.Qualifier.Value + ".")
	}
	p.write(n.Name.Value)
	p.printTypeArgs(n.Args)
}

func (p *CodePrinter) VisitArrayType(n *ast.ArrayType) {
	switch n.Element.(type) {
	case *ast.UnionType, *ast.FunctionType, *ast.KeyofType:
		p.write("(")
		n.Element.Accept(p)
		p.write(")")
	default:
		n.Element.Accept(p)
	}
	p.write("[]")
}

func (p *CodePrinter) VisitUnionType(n *ast.UnionType) {
	for i, t := range n.Types {
		if i > 0 {
			p.write(" | ")
		}
		if _, ok := t.(*ast.FunctionType); ok {
			p.write("(")
			t.Accept(p)
			p.write(")")
			continue
		}
		t.Accept(p)
	}
}

func (p *CodePrinter) VisitFunctionType(n *ast.FunctionType) {
	p.printTypeParams(n.TypeParams)
	p.printParams(n.Params)
	p.write(" => ")
	if n.ReturnType == nil {
		p.write("void")
		return
	}
	n.ReturnType.Accept(p)
}

func (p *CodePrinter) printPropertySignature(m *ast.PropertySignature) {
	p.write(m.Name.Value)
	if m.Optional {
		p.write("?")
	}
	if ft, ok := m.Type.(*ast.FunctionType); ok && m.Method {
		p.printSignature(ft.TypeParams, ft.Params, ft.ReturnType)
		return
	}
	p.write(": ")
	m.Type.Accept(p)
}

func (p *CodePrinter) VisitTypeLiteral(n *ast.TypeLiteral) {
	if len(n.Members) == 0 && n.Index == nil {
		p.write("{}")
		return
	}
	var parts []string
	for _, m := range n.Members {
		sub := NewCodePrinter()
		sub.printPropertySignature(m)
		parts = append(parts, sub.String())
	}
	if n.Index != nil {
		sub := NewCodePrinter()
		sub.write("[" + n.Index.KeyName.Value + ": ")
		n.Index.KeyType.Accept(sub)
		sub.write("]: ")
		n.Index.Value.Accept(sub)
		parts = append(parts, sub.String())
	}
	p.write("{ " + strings.Join(parts, "; ") + " }")
}

func (p *CodePrinter) VisitMappedType(n *ast.MappedType) {
	p.write("{ [" + n.Param.Value + " in ")
	n.Constraint.Accept(p)
	p.write("]")
	if n.Optional {
		p.write("?")
	}
	p.write(": ")
	n.Value.Accept(p)
	p.write(" }")
}

func (p *CodePrinter) VisitKeyofType(n *ast.KeyofType) {
	p.write("keyof ")
	n.Type.Accept(p)
}

func (p *CodePrinter) VisitLiteralType(n *ast.LiteralType) {
	n.Value.Accept(p)
}

func (p *CodePrinter) VisitParenthesizedType(n *ast.ParenthesizedType) {
	p.write("(")
	n.Type.Accept(p)
	p.write(")")
}

// quote renders s as a double-quoted string literal.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			writeEscaped(&b, r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func escapeTemplate(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '`':
			b.WriteString("\\`")
		case r == '\\':
			b.WriteString(`\\`)
		case r == '$' && strings.HasPrefix(s[i+1:], "{"):
			b.WriteString(`\$`)
		case r == '\n':
			b.WriteRune(r)
		default:
			writeEscaped(&b, r)
		}
	}
	return b.String()
}

func writeEscaped(b *strings.Builder, r rune) {
	switch r {
	case '\n':
		b.WriteString(`\n`)
	case '\r':
		b.WriteString(`\r`)
	case '\t':
		b.WriteString(`\t`)
	case '\b':
		b.WriteString(`\b`)
	case '\f':
		b.WriteString(`\f`)
	case '\v':
		b.WriteString(`\v`)
	default:
		if r < 0x20 || r == 0x7f {
			fmt.Fprintf(b, `\x%02x`, r)
			return
		}
		b.WriteRune(r)
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

var _ ast.Visitor = (*CodePrinter)(nil)
