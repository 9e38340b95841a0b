package pagescope

// ActionID identifies an extraction action.
type ActionID string

// Supported actions.
const (
	ActionImages      ActionID = "images"
	ActionLinks       ActionID = "links"
	ActionContacts    ActionID = "contacts"
	ActionSEO         ActionID = "seo"
	ActionTables      ActionID = "tables"
	ActionReadability ActionID = "readability"
	ActionPerformance ActionID = "performance"
	ActionDOMQuery    ActionID = "dom-query"
	ActionPrivacy     ActionID = "privacy"
)

// Action describes a supported action.
type Action struct {
	ID    ActionID `json:"id"`
	Label string   `json:"label"`
}

// actions is the read-only action table, in menu order.
var actions = []Action{
	{ID: ActionImages, Label: "Show all linked images on page"},
	{ID: ActionLinks, Label: "Extract all links"},
	{ID: ActionContacts, Label: "Find and copy emails / phone numbers"},
	{ID: ActionSEO, Label: "SEO snapshot"},
	{ID: ActionTables, Label: "Table Export"},
	{ID: ActionReadability, Label: "Readability mode"},
	{ID: ActionPerformance, Label: "Performance hints"},
	{ID: ActionDOMQuery, Label: "DOM query runner"},
	{ID: ActionPrivacy, Label: "Privacy tracker inspector"},
}

// Actions returns all supported actions in menu order.
func Actions() []Action {
	out := make([]Action, len(actions))
	copy(out, actions)
	return out
}

// LookupAction returns the action with the given id.
// Returns false if the id is not a supported action.
func LookupAction(id ActionID) (Action, bool) {
	for _, a := range actions {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}

// Options carries action-specific input. Only the DOM query action reads it.
type Options struct {
	Selector string `json:"selector,omitempty"`
}
