package engine

import (
	"fmt"

	"github.com/funvibe/monadic/internal/ast"
	"github.com/funvibe/monadic/internal/config"
	"github.com/funvibe/monadic/internal/diagnostics"
	"github.com/funvibe/monadic/internal/evaluator"
	"github.com/funvibe/monadic/internal/parser"
	"github.com/funvibe/monadic/internal/pipeline"
	"github.com/funvibe/monadic/internal/script"
)

// Program is a compiled script: its slots with every statement and
// condition already parsed. A Program holds no evaluation state and can
// be run any number of times.
type Program struct {
	Source string
	Slots  []script.Slot
	steps  []step
}

type step struct {
	text string
	stmt *ast.ExpressionStatement // statement slots; nil for blank text
	arms []arm                    // chain slots
}

type arm struct {
	cond   ast.Expression // nil for else
	source string
	body   []step
}

// Compile parses src without evaluating it.
func (e *Engine) Compile(src string) (*Program, error) {
	prog := &Program{Source: src}
	ctx := pipeline.New(
		pipeline.TreeProcessor{},
		pipeline.FlattenProcessor{},
		compileProcessor{prog: prog},
	).Run(&pipeline.PipelineContext{SourceCode: src})

	if len(ctx.Errors) > 0 {
		err := ctx.Errors[0]
		if _, ok := err.(*Error); ok {
			return nil, err
		}
		return nil, &Error{Op: OpParse, Err: err}
	}
	prog.Slots = ctx.Slots
	return prog, nil
}

type compileProcessor struct {
	prog *Program
}

func (c compileProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	steps, err := compileSlots(ctx.Slots)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	c.prog.steps = steps
	return ctx
}

func compileSlots(slots []script.Slot) ([]step, error) {
	steps := make([]step, 0, len(slots))
	for _, slot := range slots {
		st := step{text: slot.String()}
		switch slot.Kind {
		case script.SlotStatement:
			stmt, err := parser.ParseStatement(slot.Text)
			if err == nil && stmt != nil {
				err = checkForms(stmt, topCall(stmt))
			}
			if err != nil {
				return nil, &Error{Op: OpCompile, Statement: slot.Text, Err: fmt.Errorf("%w: %w", ErrStatementSyntax, err)}
			}
			st.stmt = stmt
		case script.SlotChain:
			for _, a := range slot.Arms {
				body, err := compileSlots(a.Body)
				if err != nil {
					return nil, err
				}
				compiled := arm{source: a.Condition, body: body}
				if !a.IsElse {
					cond, err := parser.ParseExpression(a.Condition)
					if err == nil {
						err = checkForms(cond, nil)
					}
					if err != nil {
						return nil, &Error{Op: OpCompile, Statement: a.Condition, Err: fmt.Errorf("%w: %w", ErrStatementSyntax, err)}
					}
					compiled.cond = cond
				}
				st.arms = append(st.arms, compiled)
			}
		}
		steps = append(steps, st)
	}
	return steps, nil
}

// topCall returns the statement's own call when it is a special form.
func topCall(stmt *ast.ExpressionStatement) *ast.CallExpression {
	call, ok := stmt.Expression.(*ast.CallExpression)
	if !ok {
		return nil
	}
	if name, ok := call.Callee(); ok && evaluator.IsSpecialForm(name) {
		return call
	}
	return nil
}

// checkForms rejects bind, do_ and unit2 anywhere below node except as
// top. A nested unit is an ordinary call that lifts its argument.
func checkForms(node ast.Node, top *ast.CallExpression) error {
	for _, call := range ast.Calls(node) {
		if call == top {
			continue
		}
		if name, ok := call.Callee(); ok && evaluator.IsSpecialForm(name) && name != config.UnitFormName {
			return diagnostics.NewError(diagnostics.ErrP006, call.Token, name+" must be the whole statement")
		}
	}
	return nil
}
