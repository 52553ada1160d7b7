package report

import (
	"regexp"
	"strings"

	"github.com/rezkam/weekly/internal/domain"
)

var (
	headingLine = regexp.MustCompile(`^#{1,6}\s+(.*)$`)
	sectionNum  = regexp.MustCompile(`^\d+\.\s*`)
	itemLine    = regexp.MustCompile(`^([a-z]{1,3})\.\s+(.+)$`)
	subLabel    = regexp.MustCompile(`^\s+(?:[ivxlc]+|\d+)\.\s+(.+)$`)
	indented    = regexp.MustCompile(`^\s{3,}(.+)$`)
)

type parseState int

const (
	awaitingSection parseState = iota
	inSection
	inItem
)

type parser struct {
	state   parseState
	out     []domain.Block
	section domain.Block
	item    domain.Block
}

// Parse converts report text into a block fragment: one numbered grouping per
// "### N. Title" heading, one bullet per lettered item, and leaf bullets for
// subitems and free lines. A single line without a heading marker becomes one
// paragraph.
func Parse(text string) []domain.Block {
	var lines []string
	for _, l := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, strings.TrimRight(l, " \t"))
		}
	}
	if len(lines) == 0 {
		return []domain.Block{}
	}
	if len(lines) == 1 && !headingLine.MatchString(strings.TrimSpace(lines[0])) {
		return []domain.Block{domain.Paragraph(strings.TrimSpace(lines[0]))}
	}

	p := &parser{out: []domain.Block{}}
	for _, line := range lines {
		p.feed(line)
	}
	p.closeSection()
	return p.out
}

func (p *parser) feed(line string) {
	trimmed := strings.TrimSpace(line)

	if m := headingLine.FindStringSubmatch(trimmed); m != nil {
		p.closeSection()
		p.section = domain.Numbered(sectionNum.ReplaceAllString(strings.TrimSpace(m[1]), ""))
		p.state = inSection
		return
	}
	if p.state == awaitingSection {
		return
	}

	isIndented := line != strings.TrimLeft(line, " \t")
	if !isIndented {
		if m := itemLine.FindStringSubmatch(line); m != nil {
			p.closeItem()
			p.item = domain.Bullet(strings.TrimSpace(m[2]))
			p.state = inItem
			return
		}
	}

	if p.state == inItem {
		leaf := trimmed
		if m := subLabel.FindStringSubmatch(line); m != nil {
			leaf = strings.TrimSpace(m[1])
		} else if m := indented.FindStringSubmatch(line); m != nil {
			leaf = strings.TrimSpace(m[1])
		}
		p.item.Children = append(p.item.Children, domain.Bullet(leaf))
		return
	}

	p.section.Children = append(p.section.Children, domain.Bullet(trimmed))
}

func (p *parser) closeItem() {
	if p.state == inItem {
		p.section.Children = append(p.section.Children, p.item)
		p.item = domain.Block{}
		p.state = inSection
	}
}

func (p *parser) closeSection() {
	p.closeItem()
	if p.state == inSection {
		p.out = append(p.out, p.section)
		p.section = domain.Block{}
	}
	p.state = awaitingSection
}
