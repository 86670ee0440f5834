// Package present turns records into the views shared by the public site and
// the admin console: field rendering, search, filter options and templates.
package present

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/xiuxian-wiki/encyclopedia/i18n"
	"github.com/xiuxian-wiki/encyclopedia/models"
)

// cardFieldCount is how many leading fields a list card shows.
const cardFieldCount = 3

// FieldView is one non-empty field ready for rendering.
type FieldView struct {
	Key   string
	Label string
	Kind  models.FieldKind
	Value string
	Lines []string
}

func (v FieldView) IsBadge() bool    { return v.Kind == models.KindBadge }
func (v FieldView) IsNumber() bool   { return v.Kind == models.KindNumber }
func (v FieldView) IsLongText() bool { return v.Kind == models.KindLongText }

// Label returns the field label in the language of tag.
func Label(f models.FieldDef, tag language.Tag) string {
	if i18n.IsChinese(tag) {
		return f.LabelZH
	}
	return f.LabelEN
}

// CategoryTitle returns the display name of c in the language of tag.
func CategoryTitle(c models.Category, tag language.Tag) string {
	info := c.Info()
	if i18n.IsChinese(tag) {
		return info.ChineseName
	}
	return info.Name
}

// FieldViews renders every non-empty category field of rec in display order.
func FieldViews(rec models.Record, tag language.Tag) []FieldView {
	return fieldViews(rec, rec.Category().Fields(), tag)
}

// CardFields renders the non-empty values among the first few fields, as
// shown on list cards.
func CardFields(rec models.Record, tag language.Tag) []FieldView {
	defs := rec.Category().Fields()
	if len(defs) > cardFieldCount {
		defs = defs[:cardFieldCount]
	}
	return fieldViews(rec, defs, tag)
}

func fieldViews(rec models.Record, defs []models.FieldDef, tag language.Tag) []FieldView {
	values := rec.Values()
	views := make([]FieldView, 0, len(defs))
	for _, f := range defs {
		value := strings.TrimSpace(values[f.Key])
		if value == "" {
			continue
		}
		view := FieldView{Key: f.Key, Label: Label(f, tag), Kind: f.Kind, Value: value}
		if f.Kind == models.KindLongText {
			view.Lines = strings.Split(value, "\n")
		}
		views = append(views, view)
	}
	return views
}
