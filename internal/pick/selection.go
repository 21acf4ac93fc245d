package pick

import "github.com/san-kum/wellview/internal/scene"

// Event is delivered to the selection callback after every click.
// ComponentID is empty when no component is selected.
type Event struct {
	WellID      string `json:"well_id"`
	ComponentID string `json:"component_id"`
}

// Stopper cancels coasting when the selection is reset.
type Stopper interface {
	Stop()
}

// Selection owns the selection fields of a viewport state.
type Selection struct {
	state    *scene.ViewportState
	onChange func(Event)
	stop     Stopper
}

// NewSelection drives state. onChange and stop may be nil.
func NewSelection(state *scene.ViewportState, onChange func(Event), stop Stopper) *Selection {
	return &Selection{state: state, onChange: onChange, stop: stop}
}

// Click applies one click. A nil hit is a click on empty canvas.
//
//   - empty canvas clears the component
//   - the selected component again clears it
//   - any other component selects it and its well
//   - a well path or ornament selects the well and clears the component
//
// The well stays in focus when only the component is cleared.
func (s *Selection) Click(hit *Hit) Event {
	switch {
	case hit == nil:
		s.state.SelectedComponentID = ""
	case hit.Tag.ComponentID == "":
		s.state.SelectedWellID = hit.Tag.WellID
		s.state.SelectedComponentID = ""
	case hit.Tag.ComponentID == s.state.SelectedComponentID && hit.Tag.WellID == s.state.SelectedWellID:
		s.state.SelectedComponentID = ""
	default:
		s.state.SelectedWellID = hit.Tag.WellID
		s.state.SelectedComponentID = hit.Tag.ComponentID
	}
	return s.emit()
}

// Select focuses a well and component directly, as an editor list would.
func (s *Selection) Select(wellID, componentID string) Event {
	s.state.SelectedWellID = wellID
	s.state.SelectedComponentID = componentID
	return s.emit()
}

// Reset clears the whole selection and cancels any coast in flight.
func (s *Selection) Reset() Event {
	s.state.SelectedWellID = ""
	s.state.SelectedComponentID = ""
	if s.stop != nil {
		s.stop.Stop()
	}
	return s.emit()
}

// Current returns the selection without changing it.
func (s *Selection) Current() Event {
	return Event{WellID: s.state.SelectedWellID, ComponentID: s.state.SelectedComponentID}
}

func (s *Selection) emit() Event {
	ev := s.Current()
	if s.onChange != nil {
		s.onChange(ev)
	}
	return ev
}
