package domain

// Project groups the artifacts one build touches: the controller, the root
// menu and the menu's synchronized parameter set.
type Project struct {
	ID             string          `json:"id" yaml:"id"`
	Controller     *Controller     `json:"controller" yaml:"controller"`
	Menu           *Menu           `json:"menu" yaml:"menu"`
	MenuParameters *ParameterSpace `json:"menu_parameters" yaml:"menu_parameters"`
}

// NewProject creates a project with an empty controller, menu and parameter set.
func NewProject(id string) *Project {
	return &Project{
		ID:             id,
		Controller:     NewController(id),
		Menu:           NewMenu(id),
		MenuParameters: NewParameterSpace(),
	}
}
