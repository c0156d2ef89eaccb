package run_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/cardquest-go/internal/domain/run"
	"github.com/andrescamacho/cardquest-go/internal/domain/shared"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeRunLifecycleScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type runLifecycleContext struct {
	run             *run.Run
	clock           *shared.MockClock
	transitionError error
}

func (rc *runLifecycleContext) reset() {
	rc.clock = shared.NewMockClock(time.Time{})
	rc.run = nil
	rc.transitionError = nil
}

// Given steps

func (rc *runLifecycleContext) aRunInState(state string) error {
	rc.run = run.NewRun("run-1", "starter", 1, rc.clock)

	switch state {
	case "pending":
		return nil
	case "running":
		return rc.run.Start()
	case "completed":
		if err := rc.run.Start(); err != nil {
			return err
		}
		return rc.run.Complete()
	case "failed":
		if err := rc.run.Start(); err != nil {
			return err
		}
		return rc.run.Fail(fmt.Errorf("test error"))
	case "stopped":
		return rc.run.Stop()
	default:
		return fmt.Errorf("unknown state: %s", state)
	}
}

func (rc *runLifecycleContext) secondsPass(seconds int) error {
	rc.clock.Advance(time.Duration(seconds) * time.Second)
	return nil
}

// When steps

func (rc *runLifecycleContext) theRunTransitions(action string) error {
	switch action {
	case "start":
		rc.transitionError = rc.run.Start()
	case "complete":
		rc.transitionError = rc.run.Complete()
	case "stop":
		rc.transitionError = rc.run.Stop()
	case "fail":
		rc.transitionError = rc.run.Fail(fmt.Errorf("tick loop crashed"))
	default:
		return fmt.Errorf("unknown action: %s", action)
	}
	return nil
}

func (rc *runLifecycleContext) theRunBooksTicks(ticks int, deltaMs float64) error {
	for i := 0; i < ticks; i++ {
		rc.run.RecordTick(deltaMs)
	}
	return nil
}

// Then steps

func (rc *runLifecycleContext) theRunStatusShouldBe(expected string) error {
	if actual := string(rc.run.Status()); actual != expected {
		return fmt.Errorf("expected status %s, got %s", expected, actual)
	}
	return nil
}

func (rc *runLifecycleContext) theTransitionShouldFail() error {
	if rc.transitionError == nil {
		return fmt.Errorf("expected transition to fail")
	}
	return nil
}

func (rc *runLifecycleContext) theTransitionShouldSucceed() error {
	if rc.transitionError != nil {
		return fmt.Errorf("expected transition to succeed, got %v", rc.transitionError)
	}
	return nil
}

func (rc *runLifecycleContext) theRunShouldBeFinished(expected string) error {
	want := expected == "finished"
	if rc.run.IsFinished() != want {
		return fmt.Errorf("expected run finished=%t, got %t", want, rc.run.IsFinished())
	}
	return nil
}

func (rc *runLifecycleContext) theRuntimeShouldBe(seconds int) error {
	if got := rc.run.Runtime(); got != time.Duration(seconds)*time.Second {
		return fmt.Errorf("expected runtime %ds, got %s", seconds, got)
	}
	return nil
}

func (rc *runLifecycleContext) theRunShouldHaveSimulated(ticks int, ms float64) error {
	if rc.run.Ticks() != ticks || rc.run.SimulatedMs() != ms {
		return fmt.Errorf("expected %d ticks / %.0f ms, got %d / %.0f", ticks, ms, rc.run.Ticks(), rc.run.SimulatedMs())
	}
	return nil
}

func (rc *runLifecycleContext) theLastErrorShouldBe(message string) error {
	if rc.run.LastError() == nil || rc.run.LastError().Error() != message {
		return fmt.Errorf("expected last error %q, got %v", message, rc.run.LastError())
	}
	return nil
}

func InitializeRunLifecycleScenario(sc *godog.ScenarioContext) {
	rc := &runLifecycleContext{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		rc.reset()
		return ctx, nil
	})

	sc.Step(`^a run in state "([^"]*)"$`, rc.aRunInState)
	sc.Step(`^(\d+) seconds pass$`, rc.secondsPass)
	sc.Step(`^the run is asked to (start|complete|stop|fail)$`, rc.theRunTransitions)
	sc.Step(`^the run books (\d+) ticks of (\d+) ms$`, rc.theRunBooksTicks)
	sc.Step(`^the run status should be "([^"]*)"$`, rc.theRunStatusShouldBe)
	sc.Step(`^the transition should fail$`, rc.theTransitionShouldFail)
	sc.Step(`^the transition should succeed$`, rc.theTransitionShouldSucceed)
	sc.Step(`^the run should be (finished|live)$`, rc.theRunShouldBeFinished)
	sc.Step(`^the runtime should be (\d+) seconds$`, rc.theRuntimeShouldBe)
	sc.Step(`^the run should have simulated (\d+) ticks and (\d+) ms$`, rc.theRunShouldHaveSimulated)
	sc.Step(`^the last error should be "([^"]*)"$`, rc.theLastErrorShouldBe)
}
