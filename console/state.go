package console

import (
	"net/url"

	"github.com/xiuxian-wiki/encyclopedia/models"
)

// Mode is the main view of a category page.
type Mode int

const (
	ModeList Mode = iota
	ModeCreate
	ModeEdit
	ModeDetail
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	case ModeDetail:
		return "detail"
	default:
		return "list"
	}
}

// PageState is the view a category page shows. Importing and Deleting are
// overlays on the list.
type PageState struct {
	Mode      Mode
	ID        string
	Importing bool
	Deleting  string
}

// EventKind is a user action on a category page.
type EventKind int

const (
	EventAdd EventKind = iota
	EventEdit
	EventView
	EventBack
	EventSaved
	EventOpenImport
	EventCloseImport
	EventAskDelete
	EventCancelDelete
)

// Event is an action, with the record it targets when there is one.
type Event struct {
	Kind EventKind
	ID   string
}

// Next returns the state after ev. The bool is false when ev is not
// allowed from s, in which case s is returned unchanged.
func (s PageState) Next(ev Event) (PageState, bool) {
	switch s.Mode {
	case ModeList:
		switch {
		case s.Importing:
			if ev.Kind == EventCloseImport || ev.Kind == EventSaved {
				return PageState{Mode: ModeList}, true
			}
		case s.Deleting != "":
			if ev.Kind == EventCancelDelete || ev.Kind == EventSaved {
				return PageState{Mode: ModeList}, true
			}
		default:
			switch ev.Kind {
			case EventAdd:
				return PageState{Mode: ModeCreate}, true
			case EventEdit:
				if ev.ID != "" {
					return PageState{Mode: ModeEdit, ID: ev.ID}, true
				}
			case EventView:
				if ev.ID != "" {
					return PageState{Mode: ModeDetail, ID: ev.ID}, true
				}
			case EventOpenImport:
				return PageState{Mode: ModeList, Importing: true}, true
			case EventAskDelete:
				if ev.ID != "" {
					return PageState{Mode: ModeList, Deleting: ev.ID}, true
				}
			}
		}
	case ModeCreate, ModeEdit:
		if ev.Kind == EventSaved || ev.Kind == EventBack {
			return PageState{Mode: ModeList}, true
		}
	case ModeDetail:
		switch ev.Kind {
		case EventEdit:
			return PageState{Mode: ModeEdit, ID: s.ID}, true
		case EventBack:
			return PageState{Mode: ModeList}, true
		}
	}
	return s, false
}

// must applies ev and panics when the transition is not allowed.
func (s PageState) must(ev Event) PageState {
	next, ok := s.Next(ev)
	if !ok {
		panic("console: invalid transition from " + s.Mode.String())
	}
	return next
}

// URL is the address of the state's page for category c.
func (s PageState) URL(c models.Category) string {
	params := url.Values{}
	if s.Mode != ModeList {
		params.Set("mode", s.Mode.String())
	}
	if s.ID != "" {
		params.Set("id", s.ID)
	}
	if s.Importing {
		params.Set("import", "1")
	}
	if s.Deleting != "" {
		params.Set("delete", s.Deleting)
	}
	path := "/admin/" + string(c)
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}

// ParseState reads a state back from the query of its URL. Incomplete
// states fall back to the list.
func ParseState(query url.Values) PageState {
	id := query.Get("id")
	switch query.Get("mode") {
	case "create":
		return PageState{Mode: ModeCreate}
	case "edit":
		if id != "" {
			return PageState{Mode: ModeEdit, ID: id}
		}
	case "detail":
		if id != "" {
			return PageState{Mode: ModeDetail, ID: id}
		}
	case "", "list":
		if query.Get("import") == "1" {
			return PageState{Mode: ModeList, Importing: true}
		}
		if del := query.Get("delete"); del != "" {
			return PageState{Mode: ModeList, Deleting: del}
		}
	}
	return PageState{Mode: ModeList}
}
