package service

import (
	"os"
	"regexp"
	"strings"

	apperrors "github.com/cityops/esb-relay/internal/errors"
	"github.com/cityops/esb-relay/internal/relay/domain"
)

// placeholderRegex matches the {name} tokens of the deployed message
// templates. The template files are owned by the ESB integration, so the
// renderer keeps their brace-token syntax rather than imposing a Go one.
var placeholderRegex = regexp.MustCompile(`\{([a-z][a-z0-9_]*)\}`)

// TemplateRenderer substitutes outbound message values into a fixed message
// template. It knows nothing about transport or the record store.
type TemplateRenderer struct {
	template string
}

// NewTemplateRenderer creates a renderer over the given template text.
func NewTemplateRenderer(template string) *TemplateRenderer {
	return &TemplateRenderer{template: template}
}

// NewTemplateRendererFromFile loads the template file once and returns a
// renderer over its contents.
func NewTemplateRendererFromFile(path string) (*TemplateRenderer, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read message template")
	}
	return NewTemplateRenderer(string(text)), nil
}

// Render replaces every {name} placeholder with the message's value for that
// logical field. A placeholder with no corresponding message field is a
// template/deployment mismatch and returns a template error; it should never
// occur given the transformer's total field projection.
func (r *TemplateRenderer) Render(message *domain.OutboundMessage) (string, error) {
	var missing []string
	rendered := placeholderRegex.ReplaceAllStringFunc(r.template, func(token string) string {
		name := token[1 : len(token)-1]
		value, ok := message.Fields[name]
		if !ok {
			missing = append(missing, name)
			return token
		}
		return value
	})

	if len(missing) > 0 {
		return "", apperrors.Wrap(
			apperrors.ErrTemplate,
			"template references unknown fields: "+strings.Join(missing, ", "),
		)
	}

	return rendered, nil
}
