package pipeline

import (
	"github.com/funvibe/monadic/internal/script"
)

// PipelineContext carries a script through the compile stages.
type PipelineContext struct {
	SourceCode string
	FilePath   string
	Tree       *script.Block
	Slots      []script.Slot
	Errors     []error
}

// Processor is one compile stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(ctx *PipelineContext) *PipelineContext

func (f ProcessorFunc) Process(ctx *PipelineContext) *PipelineContext { return f(ctx) }

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Later stages consume the output of earlier
// ones, so the first stage that reports errors stops the run.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		if len(ctx.Errors) > 0 {
			break
		}
	}
	return ctx
}

// TreeProcessor builds the statement tree.
type TreeProcessor struct{}

func (TreeProcessor) Process(ctx *PipelineContext) *PipelineContext {
	tree, err := script.BuildTree(ctx.SourceCode)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.Tree = tree
	return ctx
}

// FlattenProcessor linearizes the tree into slots.
type FlattenProcessor struct{}

func (FlattenProcessor) Process(ctx *PipelineContext) *PipelineContext {
	slots, err := script.Flatten(ctx.Tree)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.Slots = slots
	return ctx
}
