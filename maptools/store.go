package maptools

// DialogueMode distinguishes the two uses of the map dialogue.
type DialogueMode string

const (
	ModeCreateLocation DialogueMode = "create-location"
	ModeViewLocation   DialogueMode = "view-location"
)

// dialogueState is the closed set of dialogue situations. Modelling the
// dialogue as a variant keeps impossible field combinations (a view dialogue
// without a location id, coordinates on a closed dialogue) unrepresentable.
type dialogueState interface {
	mode() DialogueMode
}

type dialogueClosed struct{}

type dialogueCreating struct {
	coords Coordinates
	pos    ScreenPosition
}

type dialogueViewing struct {
	locationID int64
	coords     Coordinates
	pos        ScreenPosition
}

// A closed dialogue reports the default create mode.
func (dialogueClosed) mode() DialogueMode   { return ModeCreateLocation }
func (dialogueCreating) mode() DialogueMode { return ModeCreateLocation }
func (dialogueViewing) mode() DialogueMode  { return ModeViewLocation }

// Store tracks the map interaction state: which tool is armed and which
// dialogue, if any, is open. Operations are invoked synchronously from UI
// event handlers and each completes before the next event is processed, so
// Store carries no lock and is not safe for concurrent use.
type Store struct {
	selectedTool ToolType
	dialogue     dialogueState
}

// NewStore returns a store at rest: no tool armed, dialogue closed.
func NewStore() *Store {
	return &Store{selectedTool: ToolNone, dialogue: dialogueClosed{}}
}

// SelectTool arms a drawing tool. It does not open a dialogue.
func (s *Store) SelectTool(tool ToolType) {
	s.selectedTool = tool
}

// ClearSelection disarms the tool. An open creation dialogue is closed along
// with it, since an in-progress creation is meaningless without an armed
// tool. A view dialogue is left untouched: clearing the tool must not
// dismiss a marker the user is inspecting.
func (s *Store) ClearSelection() {
	s.selectedTool = ToolNone
	if _, creating := s.dialogue.(dialogueCreating); creating {
		s.CloseDialogue()
	}
}

// OpenDialogue opens the creation dialogue anchored at the clicked map point
// and screen position. Callers are expected to have an armed tool, but that
// policy is not enforced here.
func (s *Store) OpenDialogue(coords Coordinates, pos ScreenPosition) {
	s.dialogue = dialogueCreating{coords: coords, pos: pos}
}

// OpenLocationView opens the dialogue in view mode for an existing marker.
// The armed tool is unaffected.
func (s *Store) OpenLocationView(locationID int64, coords Coordinates, pos ScreenPosition) {
	s.dialogue = dialogueViewing{locationID: locationID, coords: coords, pos: pos}
}

// CloseDialogue dismisses the dialogue and drops its location context.
// Closing an already-closed dialogue is a no-op.
func (s *Store) CloseDialogue() {
	s.dialogue = dialogueClosed{}
}

// SelectedTool reports the armed tool, ToolNone when none is armed.
func (s *Store) SelectedTool() ToolType {
	return s.selectedTool
}

// DialogueOpen reports whether a dialogue is currently open.
func (s *Store) DialogueOpen() bool {
	_, closed := s.dialogue.(dialogueClosed)
	return !closed
}

// DialogueMode reports the current dialogue mode.
func (s *Store) DialogueMode() DialogueMode {
	return s.dialogue.mode()
}

// SelectedLocationID returns the marker being viewed. The second return is
// false unless a view dialogue is open.
func (s *Store) SelectedLocationID() (int64, bool) {
	v, ok := s.dialogue.(dialogueViewing)
	if !ok {
		return 0, false
	}
	return v.locationID, true
}

// ClickedCoordinates returns the map point the open dialogue is anchored to.
func (s *Store) ClickedCoordinates() (Coordinates, bool) {
	switch d := s.dialogue.(type) {
	case dialogueCreating:
		return d.coords, true
	case dialogueViewing:
		return d.coords, true
	}
	return Coordinates{}, false
}

// ScreenPosition returns the pixel anchor of the open dialogue.
func (s *Store) ScreenPosition() (ScreenPosition, bool) {
	switch d := s.dialogue.(type) {
	case dialogueCreating:
		return d.pos, true
	case dialogueViewing:
		return d.pos, true
	}
	return ScreenPosition{}, false
}
