package domain

import "fmt"

// FieldKind вид поля анкеты
type FieldKind string

const (
	FieldText           FieldKind = "text"
	FieldTextarea       FieldKind = "textarea"
	FieldChoiceSingle   FieldKind = "choice_single"
	FieldChoiceMultiple FieldKind = "choice_multiple"
	FieldDate           FieldKind = "date"
)

// QuestionnaireField describes one field of a session questionnaire
// Каждый вид поля несёт собственные правила валидации
type QuestionnaireField struct {
	Key      string
	Label    string
	Kind     FieldKind
	Required bool

	// Только для choice_single / choice_multiple
	Options []string
	// Только для text / textarea, 0 = без ограничения
	MaxLength int
}

// Questionnaire represents the intake questionnaire attached to a session category
type Questionnaire struct {
	ID              int64
	SessionCategory string
	Fields          []QuestionnaireField
}

// ValidateAnswer проверяет ответ на одно поле анкеты
// Пустой ответ допустим для необязательных полей
func (f *QuestionnaireField) ValidateAnswer(values []string) error {
	if len(values) == 0 || (len(values) == 1 && values[0] == "") {
		if f.Required {
			return fmt.Errorf("field %q is required", f.Key)
		}
		return nil
	}

	switch f.Kind {
	case FieldText, FieldTextarea:
		if len(values) != 1 {
			return fmt.Errorf("field %q expects a single value", f.Key)
		}
		if f.MaxLength > 0 && len(values[0]) > f.MaxLength {
			return fmt.Errorf("field %q exceeds max length %d", f.Key, f.MaxLength)
		}
	case FieldDate:
		if len(values) != 1 {
			return fmt.Errorf("field %q expects a single value", f.Key)
		}
	case FieldChoiceSingle:
		if len(values) != 1 {
			return fmt.Errorf("field %q expects a single choice", f.Key)
		}
		if !f.hasOption(values[0]) {
			return fmt.Errorf("field %q: unknown option %q", f.Key, values[0])
		}
	case FieldChoiceMultiple:
		for _, v := range values {
			if !f.hasOption(v) {
				return fmt.Errorf("field %q: unknown option %q", f.Key, v)
			}
		}
	default:
		return fmt.Errorf("field %q: unknown kind %q", f.Key, f.Kind)
	}
	return nil
}

func (f *QuestionnaireField) hasOption(v string) bool {
	for _, opt := range f.Options {
		if opt == v {
			return true
		}
	}
	return false
}
