package models

// AgentKind names an agent architecture.
type AgentKind string

const (
	AgentReflex     AgentKind = "reflex"
	AgentModelBased AgentKind = "model_based"
)

// DisplayName returns the human readable name used in summaries.
func (k AgentKind) DisplayName() string {
	switch k {
	case AgentReflex:
		return "Simple Reflex"
	case AgentModelBased:
		return "Model-Based"
	default:
		return string(k)
	}
}
