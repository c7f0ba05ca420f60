//nolint:revive // types is a standard Go package name pattern
package types

// ActionID is the stable identifier of a candidate action.
type ActionID string

// Category groups candidate actions by the part of the footprint they address.
type Category string

// Action categories, in the order the selector visits them
const (
	CategoryTransport   Category = "transport"
	CategoryDiet        Category = "diet"
	CategoryElectricity Category = "electricity"
	CategoryGeneral     Category = "general"
)

// SelectedAction is one recommendation chosen for a household.
type SelectedAction struct {
	ID       ActionID `json:"id"`
	Category Category `json:"category"`
	Text     string   `json:"text"`
}

// ActionSelection is the ordered list of recommendations for a household.
// Order is presentation order.
type ActionSelection struct {
	Actions []SelectedAction `json:"actions"`
}

// IDs returns the selected action ids in presentation order.
func (s *ActionSelection) IDs() []ActionID {
	ids := make([]ActionID, 0, len(s.Actions))
	for _, a := range s.Actions {
		ids = append(ids, a.ID)
	}
	return ids
}

// Texts returns the rendered sentences in presentation order.
func (s *ActionSelection) Texts() []string {
	texts := make([]string, 0, len(s.Actions))
	for _, a := range s.Actions {
		texts = append(texts, a.Text)
	}
	return texts
}

// Contains reports whether the selection includes the given action.
func (s *ActionSelection) Contains(id ActionID) bool {
	for _, a := range s.Actions {
		if a.ID == id {
			return true
		}
	}
	return false
}

// ActionsDocument is the serialized form written by the actions command.
type ActionsDocument struct {
	Actions []string `json:"actions"`
}

// Document converts the selection to its output document.
func (s *ActionSelection) Document() ActionsDocument {
	return ActionsDocument{Actions: s.Texts()}
}
