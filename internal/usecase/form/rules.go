package form

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	domproduct "example.com/finproducts-admin/internal/domain/product"
)

const (
	msgReleaseInPast = "release date must be today or later"
	msgInvalidDate   = "must be a date in YYYY-MM-DD form"
)

// payload carries the sync field rules. min/max on strings validate length.
type payload struct {
	ID           string `validate:"required,min=3,max=10"`
	Name         string `validate:"required,min=5,max=100"`
	Description  string `validate:"required,min=10,max=200"`
	Logo         string `validate:"required"`
	DateRelease  string `validate:"required"`
	DateRevision string `validate:"required"`
}

// revalidateLocked reruns the cross-field date rule and the sync pass from
// the current raw values. Caller holds f.mu. Running both on every change
// keeps the rule idempotent: re-deriving an already-derived revision is a
// no-op.
func (f *Form) revalidateLocked() {
	f.applyDateRuleLocked()

	for _, name := range Fields {
		f.fields.get(name).Errors = nil
	}

	p := payload{
		ID:           f.fields.id.Value,
		Name:         f.fields.name.Value,
		Description:  f.fields.description.Value,
		Logo:         f.fields.logo.Value,
		DateRelease:  f.fields.dateRelease.Value,
		DateRevision: f.fields.dateRevision.Value,
	}
	if err := f.validate.Struct(p); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				state := f.fields.get(fieldFor(fe.StructField()))
				state.Errors = append(state.Errors, ruleMessage(fe))
			}
		}
	}

	if f.releaseRuleErr != "" {
		f.fields.dateRelease.Errors = append(f.fields.dateRelease.Errors, f.releaseRuleErr)
	}
}

// applyDateRuleLocked couples date_revision to date_release: a valid
// release on or after today derives revision = release + 1 year; anything
// else blanks the revision. Caller holds f.mu.
func (f *Form) applyDateRuleLocked() {
	f.releaseRuleErr = ""

	raw := f.fields.dateRelease.Value
	if raw == "" {
		f.fields.dateRevision.Value = ""
		return
	}

	release, err := domproduct.ParseDate(raw)
	if err != nil {
		f.releaseRuleErr = msgInvalidDate
		f.fields.dateRevision.Value = ""
		return
	}

	today := domproduct.Today(f.now())
	if release.Before(today) {
		f.releaseRuleErr = msgReleaseInPast
		f.fields.dateRevision.Value = ""
		return
	}

	f.fields.dateRevision.Value = release.AddYears(1).String()
}

func fieldFor(structField string) Field {
	switch structField {
	case "ID":
		return FieldID
	case "Name":
		return FieldName
	case "Description":
		return FieldDescription
	case "Logo":
		return FieldLogo
	case "DateRelease":
		return FieldDateRelease
	default:
		return FieldDateRevision
	}
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "invalid value"
	}
}
