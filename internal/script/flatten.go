package script

import "strings"

type SlotKind int

const (
	SlotStatement SlotKind = iota
	SlotChain
)

// Slot is one unit of evaluation: a single statement, or an entire
// if / else if / else chain.
type Slot struct {
	Kind   SlotKind
	Text   string // SlotStatement only
	Arms   []Arm  // SlotChain only
	Offset int
}

// Arm is one branch of a chain. The else arm, if any, is last.
type Arm struct {
	Condition string
	IsElse    bool
	Body      []Slot
}

// String renders the slot the way it would be written, with chain
// bodies elided.
func (s Slot) String() string {
	if s.Kind == SlotStatement {
		return s.Text
	}
	var b strings.Builder
	for i, arm := range s.Arms {
		if i > 0 {
			b.WriteString(" else ")
		}
		if arm.IsElse {
			b.WriteString("{...}")
			continue
		}
		b.WriteString("if ")
		b.WriteString(arm.Condition)
		b.WriteString(" {...}")
	}
	return b.String()
}

// Flatten linearizes a statement tree into evaluation slots, fusing each
// if with the else-if / else branches that directly follow it.
func Flatten(block *Block) ([]Slot, error) {
	if block == nil {
		return nil, nil
	}
	return flatten(block.Children)
}

// flatten decides each child by looking at it and its successor; the
// successor of the last child is a nil sentinel.
func flatten(children []Node) ([]Slot, error) {
	var slots []Slot
	var open *Slot

	for i, cur := range children {
		var next Node
		if i+1 < len(children) {
			next = children[i+1]
		}

		switch n := cur.(type) {
		case *Leaf:
			slots = append(slots, Slot{Kind: SlotStatement, Text: n.Text, Offset: n.Offset})
			continue
		case *IfBranch:
			body, err := flatten(n.Children)
			if err != nil {
				return nil, err
			}
			open = &Slot{Kind: SlotChain, Offset: n.Offset}
			open.Arms = append(open.Arms, Arm{Condition: n.Condition, Body: body})
		case *ElseIfBranch:
			if open == nil {
				return nil, &Error{Offset: n.Offset, Text: "else if " + n.Condition, Err: ErrOrphanBranch}
			}
			body, err := flatten(n.Children)
			if err != nil {
				return nil, err
			}
			open.Arms = append(open.Arms, Arm{Condition: n.Condition, Body: body})
		case *ElseBranch:
			if open == nil {
				return nil, &Error{Offset: n.Offset, Text: "else", Err: ErrOrphanBranch}
			}
			body, err := flatten(n.Children)
			if err != nil {
				return nil, err
			}
			open.Arms = append(open.Arms, Arm{IsElse: true, Body: body})
			slots = append(slots, *open)
			open = nil
			continue
		}

		if !continuesChain(next) {
			slots = append(slots, *open)
			open = nil
		}
	}
	return slots, nil
}

func continuesChain(n Node) bool {
	switch n.(type) {
	case *ElseIfBranch, *ElseBranch:
		return true
	}
	return false
}

// Parse builds and flattens script text in one step.
func Parse(text string) ([]Slot, error) {
	block, err := BuildTree(text)
	if err != nil {
		return nil, err
	}
	return Flatten(block)
}
