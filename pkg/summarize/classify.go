package summarize

// Common effects and component labels produced by model frontends.
const (
	EffectsFixed  = "fixed"
	EffectsRandom = "random"

	ComponentConditional  = "conditional"
	ComponentZeroInflated = "zero_inflated"
	ComponentDispersion   = "dispersion"
)

// Classification assigns a parameter to a model component and effect group.
// Empty fields mean the model does not distinguish that axis.
type Classification struct {
	Effects   string `json:"effects,omitempty"`
	Component string `json:"component,omitempty"`
}

// ModelInfo describes which parameters belong to which model component.
// It is the metadata recovered from a fitted model object; the summarizer
// only ever reads it.
type ModelInfo struct {
	Parameters map[string]Classification `json:"parameters"`
}

// Classify returns the classification for a parameter name and whether the
// model knows the parameter at all.
func (m *ModelInfo) Classify(parameter string) (Classification, bool) {
	if m == nil || m.Parameters == nil {
		return Classification{}, false
	}
	c, ok := m.Parameters[parameter]
	return c, ok
}

// HasEffects reports whether any parameter carries an effects label.
func (m *ModelInfo) HasEffects() bool {
	if m == nil {
		return false
	}
	for _, c := range m.Parameters {
		if c.Effects != "" {
			return true
		}
	}
	return false
}

// HasComponents reports whether any parameter carries a component label.
func (m *ModelInfo) HasComponents() bool {
	if m == nil {
		return false
	}
	for _, c := range m.Parameters {
		if c.Component != "" {
			return true
		}
	}
	return false
}
