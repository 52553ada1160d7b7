package domain

// BlockKind tags a node of the shared document tree.
type BlockKind string

const (
	BlockHeading      BlockKind = "heading"
	BlockNumberedItem BlockKind = "numbered_item"
	BlockBulletItem   BlockKind = "bullet_item"
	BlockParagraph    BlockKind = "paragraph"
	BlockDivider      BlockKind = "divider"
	BlockCallout      BlockKind = "callout"
)

// Block is a node of the shared document. ID is empty for nodes that have not
// been written to the document store yet.
type Block struct {
	ID       string    `json:"id,omitempty"`
	Kind     BlockKind `json:"kind"`
	Text     string    `json:"text,omitempty"`
	Children []Block   `json:"children,omitempty"`
}

// IsBoundary reports whether the node terminates a member region.
func (b Block) IsBoundary() bool {
	return b.Kind == BlockHeading || b.Kind == BlockDivider
}

// Heading returns a heading node.
func Heading(text string) Block { return Block{Kind: BlockHeading, Text: text} }

// Paragraph returns a paragraph leaf.
func Paragraph(text string) Block { return Block{Kind: BlockParagraph, Text: text} }

// Bullet returns a bullet item with optional children.
func Bullet(text string, children ...Block) Block {
	return Block{Kind: BlockBulletItem, Text: text, Children: children}
}

// Numbered returns a numbered item with optional children.
func Numbered(text string, children ...Block) Block {
	return Block{Kind: BlockNumberedItem, Text: text, Children: children}
}

// Divider returns a divider node.
func Divider() Block { return Block{Kind: BlockDivider} }

// Callout returns a callout node.
func Callout(text string) Block { return Block{Kind: BlockCallout, Text: text} }
