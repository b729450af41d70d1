package maptools

// ToolType identifies the category of marker a user can place on the map.
// The non-empty values are the exact strings accepted by the locations API.
type ToolType string

const (
	ToolIceSighting     ToolType = "Ice sighting"
	ToolHomelessShelter ToolType = "Homeless Shelter"
	ToolFoodBank        ToolType = "Food bank"

	// ToolNone means no drawing tool is armed.
	ToolNone ToolType = ""
)

// Coordinates is a geographic point in degrees. Bounds are checked by the
// submission validator, not by the type, so out-of-range values can exist
// transiently before validation.
type Coordinates struct {
	Lng float64
	Lat float64
}

// ScreenPosition is a pixel offset within the map viewport. It is only
// meaningful while a dialogue is open.
type ScreenPosition struct {
	X float64
	Y float64
}
