package console

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/xiuxian-wiki/encyclopedia/i18n"
	"github.com/xiuxian-wiki/encyclopedia/models"
	"github.com/xiuxian-wiki/encyclopedia/present"
)

// FormField is one input of the create/edit form.
type FormField struct {
	Key      string
	Label    string
	Kind     models.FieldKind
	Value    string
	Required bool
	Options  []string
	Min, Max int
}

func (f FormField) IsLongText() bool { return f.Kind == models.KindLongText }
func (f FormField) IsNumber() bool   { return f.Kind == models.KindNumber }
func (f FormField) HasOptions() bool { return len(f.Options) > 0 }

// FormFields lays out the inputs for c filled with values. Pickers always
// offer the current value, even when it is not a predefined option.
func FormFields(c models.Category, values map[string]string, tag language.Tag) []FormField {
	printer := i18n.Printer(tag)
	fields := []FormField{
		{Key: "name", Label: printer.Sprintf("field.name"), Kind: models.KindText, Value: values["name"], Required: true},
	}
	for _, def := range c.Fields() {
		field := FormField{
			Key:      def.Key,
			Label:    present.Label(def, tag),
			Kind:     def.Kind,
			Value:    values[def.Key],
			Required: def.Required,
			Min:      def.Min,
			Max:      def.Max,
		}
		if options := present.FieldOptions(c, def.Key); options != nil {
			field.Options = options
			if field.Value != "" && !slices.Contains(options, field.Value) {
				field.Options = append(slices.Clone(options), field.Value)
			}
		}
		fields = append(fields, field)
	}
	return append(fields, FormField{Key: "imageUrl", Label: printer.Sprintf("field.imageUrl"), Kind: models.KindText, Value: values["imageUrl"]})
}

// RecordValues flattens rec into the form's value map.
func RecordValues(rec models.Record) map[string]string {
	values := rec.Values()
	base := rec.Base()
	values["name"] = base.Name
	if base.ImageURL != nil {
		values["imageUrl"] = *base.ImageURL
	}
	return values
}

// ParseForm reads and checks a submitted form for c. It returns the trimmed
// values for redisplay, the API payload and the validation messages; the
// payload must not be sent when there are messages.
func ParseForm(c models.Category, form url.Values, tag language.Tag) (map[string]string, map[string]any, []string) {
	printer := i18n.Printer(tag)
	values := map[string]string{}
	payload := map[string]any{}
	var problems []string

	name := strings.TrimSpace(form.Get("name"))
	values["name"] = name
	payload["name"] = name
	if name == "" {
		problems = append(problems, printer.Sprintf("form.required", printer.Sprintf("field.name")))
	}

	for _, def := range c.Fields() {
		value := strings.TrimSpace(form.Get(def.Key))
		values[def.Key] = value
		label := present.Label(def, tag)

		if value == "" {
			if def.Required {
				problems = append(problems, printer.Sprintf("form.required", label))
			}
			if def.Kind != models.KindNumber {
				payload[def.Key] = ""
			}
			continue
		}

		if def.Kind != models.KindNumber {
			payload[def.Key] = value
			continue
		}
		n, err := strconv.Atoi(value)
		switch {
		case err != nil:
			problems = append(problems, printer.Sprintf("form.not_number", label))
		case def.Max != 0 && (n < def.Min || n > def.Max):
			problems = append(problems, printer.Sprintf("form.out_of_range", label, def.Min, def.Max))
		case def.Min != 0 && n < def.Min:
			problems = append(problems, printer.Sprintf("form.too_small", label, def.Min))
		case def.Required && n == 0:
			problems = append(problems, printer.Sprintf("form.required", label))
		default:
			payload[def.Key] = n
		}
	}

	image := strings.TrimSpace(form.Get("imageUrl"))
	values["imageUrl"] = image
	payload["imageUrl"] = image
	if image != "" && !models.ValidImageURL(image) {
		problems = append(problems, printer.Sprintf("form.invalid_image"))
	}

	return values, payload, problems
}
