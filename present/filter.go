package present

import (
	"net/url"
	"strings"

	"golang.org/x/text/language"

	"github.com/xiuxian-wiki/encyclopedia/i18n"
	"github.com/xiuxian-wiki/encyclopedia/models"
)

// filterCandidates are the keys offered as filters when a loaded set has
// more than one distinct value for them.
var filterCandidates = []string{"type", "grade", "level", "category", "species"}

// FilterOption is one filter drop-down.
type FilterOption struct {
	Key      string
	Label    string
	Values   []string
	Selected string
}

// Matches reports whether rec contains query, case-insensitively, in its
// name, description or type.
func Matches(rec models.Record, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	values := rec.Values()
	for _, s := range []string{rec.Base().Name, values["description"], values["type"]} {
		if strings.Contains(strings.ToLower(s), query) {
			return true
		}
	}
	return false
}

// ApplyFilters returns the records matching query whose values equal every
// non-empty filter. The input order is kept.
func ApplyFilters(records []models.Record, query string, filters map[string]string) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, rec := range records {
		if !Matches(rec, query) {
			continue
		}
		values := rec.Values()
		ok := true
		for key, want := range filters {
			if want != "" && values[key] != want {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out
}

// FilterOptions derives the filter drop-downs for a loaded set. Values keep
// the order in which they first appear.
func FilterOptions(records []models.Record, selected map[string]string, tag language.Tag) []FilterOption {
	printer := i18n.Printer(tag)
	var options []FilterOption
	for _, key := range filterCandidates {
		seen := map[string]bool{}
		var values []string
		for _, rec := range records {
			v := rec.Values()[key]
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			values = append(values, v)
		}
		if len(values) > 1 {
			options = append(options, FilterOption{
				Key:      key,
				Label:    printer.Sprintf("filter." + key),
				Values:   values,
				Selected: selected[key],
			})
		}
	}
	return options
}

// ParseFilters reads the candidate filter keys from a query string lookup.
func ParseFilters(get func(string) string) map[string]string {
	filters := map[string]string{}
	for _, key := range filterCandidates {
		if v := strings.TrimSpace(get(key)); v != "" {
			filters[key] = v
		}
	}
	return filters
}

// SearchForm is the data of the shared search-and-filter partial.
type SearchForm struct {
	Action      string
	Query       string
	Placeholder string
	Options     []FilterOption
	Active      []ActiveFilter
}

// ActiveFilter is a selected filter with a link that removes it.
type ActiveFilter struct {
	Label    string
	Value    string
	ClearURL string
}

// NewSearchForm builds the form state, including removal links for every
// selected filter.
func NewSearchForm(action, query, placeholder string, options []FilterOption) SearchForm {
	form := SearchForm{Action: action, Query: query, Placeholder: placeholder, Options: options}
	for _, opt := range options {
		if opt.Selected == "" {
			continue
		}
		params := url.Values{}
		if query != "" {
			params.Set("q", query)
		}
		for _, other := range options {
			if other.Key != opt.Key && other.Selected != "" {
				params.Set(other.Key, other.Selected)
			}
		}
		link := action
		if encoded := params.Encode(); encoded != "" {
			link += "?" + encoded
		}
		form.Active = append(form.Active, ActiveFilter{Label: opt.Label, Value: opt.Selected, ClearURL: link})
	}
	return form
}
