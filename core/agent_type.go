package core

// AgentType is the closed enum of specialist and coordinator identities.
// See spec §4.1.
type AgentType string

const (
	AgentProfile           AgentType = "profile"
	AgentCurriculumPlanner AgentType = "curriculum_planner"
	AgentExerciseGenerator AgentType = "exercise_generator"
	AgentReviewer          AgentType = "reviewer"
	AgentResources         AgentType = "resources"
	AgentProgressTracker   AgentType = "progress_tracker"
	AgentOrchestrator      AgentType = "orchestrator"
)

// AllAgentTypes lists every agent type a complete deployment registers,
// orchestrator excluded (the orchestrator is never itself a registry entry
// it routes to — see spec §4.5's cyclic-reference note).
var AllAgentTypes = []AgentType{
	AgentProfile,
	AgentCurriculumPlanner,
	AgentExerciseGenerator,
	AgentReviewer,
	AgentResources,
	AgentProgressTracker,
}
