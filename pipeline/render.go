package pipeline

import (
	"strings"

	"github.com/tildegen/tildegen/mml"
	"github.com/tildegen/tildegen/sexpr"
)

// Renderer turns a parsed document into its output text. Tags whose
// name is in the eval set hand their raw content to the shared
// evaluator context and splice the pulled buffer into the stream;
// other tags render their children.
type Renderer struct {
	ctx      *sexpr.Context
	evalTags map[string]bool
}

// NewRenderer creates a renderer over ctx evaluating the given tag
// names.
func NewRenderer(ctx *sexpr.Context, evalTags []string) *Renderer {
	tags := make(map[string]bool, len(evalTags))
	for _, name := range evalTags {
		tags[name] = true
	}
	return &Renderer{ctx: ctx, evalTags: tags}
}

// RenderDocument renders the whole element tree.
func (r *Renderer) RenderDocument(doc *mml.Document) (string, error) {
	var b strings.Builder
	if err := r.renderElements(&b, doc.Elements); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (r *Renderer) renderElements(b *strings.Builder, elems []mml.Element) error {
	for _, elem := range elems {
		switch e := elem.(type) {
		case *mml.Content:
			b.WriteString(unescapeContent(e.Text))

		case *mml.Tag:
			if err := r.renderTag(b, e); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) renderTag(b *strings.Builder, tag *mml.Tag) error {
	if r.evalTags[tag.Name] {
		if _, err := r.ctx.Eval(tag.RawContent); err != nil {
			return err
		}
		b.WriteString(r.ctx.PullBuffer())
		return nil
	}
	return r.renderElements(b, tag.Content)
}

// unescapeContent removes the backslash in front of the MML
// metacharacters; any other byte pair stays untouched.
func unescapeContent(text string) string {
	if !strings.ContainsRune(text, '\\') {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\\' && i+1 < len(text) {
			switch text[i+1] {
			case '~', '{', '}', '\\':
				i++
				c = text[i]
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
