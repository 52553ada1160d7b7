package notion

import (
	"strings"

	"github.com/jomei/notionapi"

	"github.com/rezkam/weekly/internal/domain"
)

func joinPlainText(rt []notionapi.RichText) string {
	var sb strings.Builder
	for _, t := range rt {
		switch {
		case t.PlainText != "":
			sb.WriteString(t.PlainText)
		case t.Text != nil:
			sb.WriteString(t.Text.Content)
		}
	}
	return sb.String()
}

func text(s string) []notionapi.RichText {
	if s == "" {
		return []notionapi.RichText{}
	}
	return []notionapi.RichText{{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: s}}}
}

func boldText(s string) []notionapi.RichText {
	return []notionapi.RichText{{
		Type:        notionapi.ObjectTypeText,
		Text:        &notionapi.Text{Content: s},
		Annotations: &notionapi.Annotations{Bold: true, Color: notionapi.ColorDefault},
	}}
}

func basic(t notionapi.BlockType) notionapi.BasicBlock {
	return notionapi.BasicBlock{Object: notionapi.ObjectTypeBlock, Type: t}
}

// blockText returns the plain text of a block, or "" for bodiless types.
func blockText(b notionapi.Block) string {
	switch v := b.(type) {
	case *notionapi.ParagraphBlock:
		return joinPlainText(v.Paragraph.RichText)
	case *notionapi.Heading1Block:
		return joinPlainText(v.Heading1.RichText)
	case *notionapi.Heading2Block:
		return joinPlainText(v.Heading2.RichText)
	case *notionapi.Heading3Block:
		return joinPlainText(v.Heading3.RichText)
	case *notionapi.BulletedListItemBlock:
		return joinPlainText(v.BulletedListItem.RichText)
	case *notionapi.NumberedListItemBlock:
		return joinPlainText(v.NumberedListItem.RichText)
	case *notionapi.ToDoBlock:
		return joinPlainText(v.ToDo.RichText)
	case *notionapi.CalloutBlock:
		return joinPlainText(v.Callout.RichText)
	default:
		return ""
	}
}

// toNotion converts a domain block, with its children, to an API block.
// Numbered groupings render their title in bold. Callouts keep the
// workspace's default icon.
func toNotion(b domain.Block) notionapi.Block {
	children := toNotionAll(b.Children)

	switch b.Kind {
	case domain.BlockHeading:
		return &notionapi.Heading2Block{
			BasicBlock: basic(notionapi.BlockTypeHeading2),
			Heading2:   notionapi.Heading{RichText: text(b.Text)},
		}
	case domain.BlockNumberedItem:
		return &notionapi.NumberedListItemBlock{
			BasicBlock:       basic(notionapi.BlockTypeNumberedListItem),
			NumberedListItem: notionapi.ListItem{RichText: boldText(b.Text), Children: children},
		}
	case domain.BlockBulletItem:
		return &notionapi.BulletedListItemBlock{
			BasicBlock:       basic(notionapi.BlockTypeBulletedListItem),
			BulletedListItem: notionapi.ListItem{RichText: text(b.Text), Children: children},
		}
	case domain.BlockDivider:
		return &notionapi.DividerBlock{BasicBlock: basic(notionapi.BlockTypeDivider)}
	case domain.BlockCallout:
		return &notionapi.CalloutBlock{
			BasicBlock: basic(notionapi.BlockTypeCallout),
			Callout:    notionapi.Callout{RichText: text(b.Text)},
		}
	default:
		return &notionapi.ParagraphBlock{
			BasicBlock: basic(notionapi.BlockTypeParagraph),
			Paragraph:  notionapi.Paragraph{RichText: text(b.Text), Children: children},
		}
	}
}

func toNotionAll(blocks []domain.Block) []notionapi.Block {
	out := make([]notionapi.Block, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, toNotion(b))
	}
	return out
}

// fromNotion converts a top-level API block to a domain node without children.
// Types with no domain equivalent become paragraphs so they stay inside the
// surrounding region.
func fromNotion(b notionapi.Block) domain.Block {
	out := domain.Block{ID: string(b.GetID()), Text: blockText(b)}
	switch b.GetType() {
	case notionapi.BlockTypeHeading1, notionapi.BlockTypeHeading2, notionapi.BlockTypeHeading3:
		out.Kind = domain.BlockHeading
	case notionapi.BlockTypeNumberedListItem:
		out.Kind = domain.BlockNumberedItem
	case notionapi.BlockTypeBulletedListItem, notionapi.BlockTypeToDo:
		out.Kind = domain.BlockBulletItem
	case notionapi.BlockTypeDivider:
		out.Kind = domain.BlockDivider
	case notionapi.BlockTypeCallout:
		out.Kind = domain.BlockCallout
	default:
		out.Kind = domain.BlockParagraph
	}
	return out
}

// toRawLine converts a task page content block.
func toRawLine(b notionapi.Block) domain.RawLine {
	line := domain.RawLine{Kind: string(b.GetType()), Text: blockText(b)}
	if todo, ok := b.(*notionapi.ToDoBlock); ok {
		checked := todo.ToDo.Checked
		line.Checked = &checked
	}
	return line
}
