package script

// Node is one element of a statement tree: *Leaf, *IfBranch,
// *ElseIfBranch or *ElseBranch. Consumers switch over the concrete types.
type Node interface {
	node()
}

// Leaf is a single statement, without its terminating ';'.
type Leaf struct {
	Text   string
	Offset int
}

type IfBranch struct {
	Condition string
	Children  []Node
	Offset    int
}

type ElseIfBranch struct {
	Condition string
	Children  []Node
	Offset    int
}

type ElseBranch struct {
	Children []Node
	Offset   int
}

// Block is the root of a statement tree.
type Block struct {
	Children []Node
}

func (*Leaf) node()         {}
func (*IfBranch) node()     {}
func (*ElseIfBranch) node() {}
func (*ElseBranch) node()   {}
