package lifecycle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/eureka-app/eureka-tui/internal/page"
	"github.com/go-playground/validator/v10"
)

// Classes set on fields that fail validation.
const (
	ClassInvalid      = "is-invalid"
	ClassErrorMessage = "error-message"
)

var fieldTags = map[string]bool{"input": true, "textarea": true, "select": true}

var skippedTypes = map[string]bool{"hidden": true, "submit": true, "button": true, "checkbox": true, "radio": true}

// Fields returns the validatable controls of form in document order.
func Fields(form *page.Element) []*page.Element {
	var out []*page.Element
	form.Walk(func(n *page.Element) bool {
		if n.Kind == page.KindElement && fieldTags[n.Tag] {
			if typ, _ := n.Attr("type"); !skippedTypes[typ] {
				out = append(out, n)
			}
			return false
		}
		return true
	})
	return out
}

// FieldValue reads the current value of a control. Textareas hold theirs as
// text, everything else in the value attribute.
func FieldValue(field *page.Element) string {
	if field.Tag == "textarea" {
		return field.TextContent()
	}
	v, _ := field.Attr("value")
	return v
}

// constraintTag turns the field's constraint attributes into a validator
// tag. An empty tag means the field is unconstrained.
func constraintTag(field *page.Element) string {
	var rules []string
	if n, ok := intAttr(field, "minlength"); ok {
		rules = append(rules, "min="+strconv.Itoa(n))
	}
	if n, ok := intAttr(field, "maxlength"); ok {
		rules = append(rules, "max="+strconv.Itoa(n))
	}
	switch typ, _ := field.Attr("type"); typ {
	case "email":
		rules = append(rules, "email")
	case "url":
		rules = append(rules, "url")
	}

	if _, required := field.Attr("required"); required {
		return strings.Join(append([]string{"required"}, rules...), ",")
	}
	if len(rules) == 0 {
		return ""
	}
	return strings.Join(append([]string{"omitempty"}, rules...), ",")
}

func intAttr(el *page.Element, name string) (int, bool) {
	v, ok := el.Attr(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// checkField returns the validation message for field, or "" when valid.
func (g *Glue) checkField(field *page.Element) string {
	tag := constraintTag(field)
	if tag == "" {
		return ""
	}
	err := g.validate.Var(FieldValue(field), tag)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return validationMessage(verrs[0])
	}
	g.logger.Debug("validating field", "tag", tag, "error", err)
	return "Please enter a valid value."
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Please fill out this field."
	case "min":
		return fmt.Sprintf("Please use at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Please use no more than %s characters.", fe.Param())
	case "email":
		return "Please enter an email address."
	case "url":
		return "Please enter a URL."
	default:
		return "Please enter a valid value."
	}
}

func (g *Glue) validateForm(e *page.Event) {
	form := e.Target
	if form == nil {
		return
	}

	valid := true
	for _, field := range Fields(form) {
		next := field.NextSibling()
		hasMessage := next != nil && next.HasClass(ClassErrorMessage)

		msg := g.checkField(field)
		if msg == "" {
			field.RemoveClass(ClassInvalid)
			if hasMessage {
				next.Remove()
			}
			continue
		}

		valid = false
		field.AddClass(ClassInvalid)
		if !hasMessage {
			span := g.doc.CreateElement("span")
			span.SetClassName(ClassErrorMessage)
			span.SetText(msg)
			if parent := field.Parent(); parent != nil {
				parent.InsertBefore(span, field.NextSibling())
			}
		}
	}

	if !valid {
		e.PreventDefault()
	}
}
