package ast

// Visitor is implemented by passes over statement ASTs.
type Visitor interface {
	VisitExpressionStatement(node *ExpressionStatement)
	VisitIdentifier(node *Identifier)
	VisitIntegerLiteral(node *IntegerLiteral)
	VisitFloatLiteral(node *FloatLiteral)
	VisitStringLiteral(node *StringLiteral)
	VisitBooleanLiteral(node *BooleanLiteral)
	VisitNilLiteral(node *NilLiteral)
	VisitListLiteral(node *ListLiteral)
	VisitPrefixExpression(node *PrefixExpression)
	VisitInfixExpression(node *InfixExpression)
	VisitIndexExpression(node *IndexExpression)
	VisitAssignExpression(node *AssignExpression)
	VisitCallExpression(node *CallExpression)
}

// BaseVisitor walks every child and does nothing else. Embed it and
// override the methods of interest; call the embedded method to keep walking.
type BaseVisitor struct {
	// Self is the outermost visitor; children are dispatched to it so that
	// overrides in the embedding type see nested nodes.
	Self Visitor
}

func (b *BaseVisitor) self() Visitor {
	if b.Self != nil {
		return b.Self
	}
	return b
}

func (b *BaseVisitor) VisitExpressionStatement(node *ExpressionStatement) {
	if node.Expression != nil {
		node.Expression.Accept(b.self())
	}
}
func (b *BaseVisitor) VisitIdentifier(*Identifier)         {}
func (b *BaseVisitor) VisitIntegerLiteral(*IntegerLiteral) {}
func (b *BaseVisitor) VisitFloatLiteral(*FloatLiteral)     {}
func (b *BaseVisitor) VisitStringLiteral(*StringLiteral)   {}
func (b *BaseVisitor) VisitBooleanLiteral(*BooleanLiteral) {}
func (b *BaseVisitor) VisitNilLiteral(*NilLiteral)         {}
func (b *BaseVisitor) VisitListLiteral(node *ListLiteral) {
	for _, el := range node.Elements {
		el.Accept(b.self())
	}
}
func (b *BaseVisitor) VisitPrefixExpression(node *PrefixExpression) {
	node.Right.Accept(b.self())
}
func (b *BaseVisitor) VisitInfixExpression(node *InfixExpression) {
	node.Left.Accept(b.self())
	node.Right.Accept(b.self())
}
func (b *BaseVisitor) VisitIndexExpression(node *IndexExpression) {
	node.Left.Accept(b.self())
	node.Index.Accept(b.self())
}
func (b *BaseVisitor) VisitAssignExpression(node *AssignExpression) {
	node.Name.Accept(b.self())
	node.Value.Accept(b.self())
}
func (b *BaseVisitor) VisitCallExpression(node *CallExpression) {
	node.Function.Accept(b.self())
	for _, arg := range node.Arguments {
		arg.Accept(b.self())
	}
}

type callCollector struct {
	BaseVisitor
	calls []*CallExpression
}

func (c *callCollector) VisitCallExpression(node *CallExpression) {
	c.calls = append(c.calls, node)
	c.BaseVisitor.VisitCallExpression(node)
}

// Calls returns every call expression under node in source order.
func Calls(node Node) []*CallExpression {
	c := &callCollector{}
	c.Self = c
	node.Accept(c)
	return c.calls
}
