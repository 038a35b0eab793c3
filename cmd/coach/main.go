// Command coach assembles the coordination runtime end to end: registry,
// router, orchestrator, and every specialist, each mounted behind its own
// breaker-protected envelope (spec §4.1, §4.5). It carries no HTTP surface
// and no persistent storage, per spec.md §1's explicit non-goals — every
// port is left nil. The exercise generator, reviewer and resources
// specialists check for their nil ports; the profile, curriculum planner
// and progress tracker specialists call their repositories without a nil
// check, so any of their intents that reaches a repository call panics.
// The demo's onboarding payload carries no goals, so the workflow stops
// with a validation error at update_goals, before any repository call.
// Grounded on the teacher's own cmd/ convention of a
// small main that wires Config -> framework primitives -> mounted agents.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/khushparag/agentic-learning-coach/agents"
	"github.com/khushparag/agentic-learning-coach/config"
	"github.com/khushparag/agentic-learning-coach/core"
	"github.com/khushparag/agentic-learning-coach/orchestration"
	"github.com/khushparag/agentic-learning-coach/progress"
	"github.com/khushparag/agentic-learning-coach/registry"
	"github.com/khushparag/agentic-learning-coach/resilience"
	"github.com/khushparag/agentic-learning-coach/router"
)

func main() {
	configPath := "coach.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := core.NewProductionLogger("coach", "text", false)
	telemetry := core.NoOpTelemetry{}

	reg := registry.New()
	rtr := router.New(router.WithMinConfidence(cfg.Router.MinConfidence))

	orchestratorBreaker := newBreaker("orchestrator", cfg, logger)
	orch := orchestration.New(reg, rtr, orchestratorBreaker, logger, telemetry, cfg.Workflows.Enabled)

	specialists := []core.Agent{
		agents.NewProfileAgent(nil, logger),
		agents.NewCurriculumPlannerAgent(nil, nil, logger),
		agents.NewExerciseGeneratorAgent(nil, logger),
		agents.NewReviewerAgent(nil, nil, logger),
		agents.NewResourcesAgent(nil, logger),
		progress.New(nil, nil, progress.DefaultThresholds(), logger),
	}
	for _, agent := range specialists {
		orch.Mount(agent, newBreaker(string(agent.AgentType()), cfg, logger))
	}

	rc, err := core.NewContext("demo-user", "demo-session",
		core.WithSkillLevel(core.SkillBeginner),
		core.WithLearningGoals([]string{"learn python fundamentals"}),
		core.WithCurrentObjective("variables and functions"),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "context: %v\n", err)
		os.Exit(1)
	}

	result := orch.ExecuteWithProtection(context.Background(), rc, &core.Payload{
		Workflow: orchestration.WorkflowNewLearnerOnboarding,
		Data:     map[string]interface{}{},
	})

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(encoded))

	health, err := json.MarshalIndent(orch.Health(), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode health: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(health))
}

// newBreaker builds a per-agent circuit breaker from the shared
// configuration, tagged with name for its Stats() output.
func newBreaker(name string, cfg *config.Config, logger core.Logger) *resilience.CircuitBreaker {
	return resilience.New(resilience.Config{
		Name:             name,
		FailureThreshold: cfg.Breaker.FailureThreshold,
		RecoveryTimeout:  cfg.Breaker.RecoveryTimeout(),
		SuccessThreshold: cfg.Breaker.SuccessThreshold,
		DefaultTimeout:   cfg.Breaker.DefaultTimeout(),
		Logger:           logger,
	})
}
