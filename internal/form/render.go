// internal/form/render.go
//
// Render-side helper.  Templates receive a View built here so the
// hidden CSRF and timestamp inputs are always emitted consistently.
//
//------------------------------------------------------------------------------

package form

import (
	"fmt"
	"time"
)

// View is the data a template needs to render one form.  Values and
// Errors are populated on re-render after a failed submission so the
// user's input is not lost.
type View struct {
	Def    *FormDef
	CSRF   string
	TS     int64
	Values map[string]string
	Errors map[string]string
}

// NewView prepares a fresh View for formID with a newly minted token.
func NewView(formID string) (*View, error) {
	fd, ok := GetFormDef(formID)
	if !ok {
		return nil, fmt.Errorf("unknown form %q", formID)
	}
	now := time.Now()
	return &View{
		Def:    fd,
		CSRF:   Token(formID, now),
		TS:     now.Unix(),
		Values: map[string]string{},
		Errors: map[string]string{},
	}, nil
}

// WithResult folds a failed validation Result back into the View so the
// form re-renders with the user's values and the error messages.
func (v *View) WithResult(res *Result) *View {
	for k, val := range res.Values {
		v.Values[k] = val
	}
	for _, e := range res.Errors {
		if _, dup := v.Errors[e.Field]; !dup {
			v.Errors[e.Field] = e.Message
		}
	}
	return v
}

// Value returns the sticky value for field, or "".
func (v *View) Value(field string) string { return v.Values[field] }

// Error returns the error message for field, or "".
func (v *View) Error(field string) string { return v.Errors[field] }

// FormError returns the form-level error, or "".
func (v *View) FormError() string { return v.Errors["_form"] }

// SetFormError records a form-level error message.
func (v *View) SetFormError(msg string) { v.Errors["_form"] = msg }
