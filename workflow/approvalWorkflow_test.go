package workflow

import (
	"testing"

	"github.com/daiwaprint/erp_backend/models"
)

func routeOf(approvers ...string) models.ApprovalSteps {
	steps := make(models.ApprovalSteps, 0, len(approvers))
	for _, a := range approvers {
		steps = append(steps, models.ApprovalStep{ApproverId: a})
	}
	return steps
}

func TestFirstApprover(t *testing.T) {
	if _, err := FirstApprover(nil); err != ErrRouteMisconfigured {
		t.Fatalf("empty route expected ErrRouteMisconfigured, got %v", err)
	}
	if _, err := FirstApprover(routeOf("")); err != ErrRouteMisconfigured {
		t.Fatalf("blank approver expected ErrRouteMisconfigured, got %v", err)
	}
	approver, err := FirstApprover(routeOf("u1", "u2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if approver != "u1" {
		t.Fatalf("expected u1, got %s", approver)
	}
}

func TestWalkApprovalStep_AdvancesThroughEveryLevel(t *testing.T) {
	steps := routeOf("u1", "u2", "u3")

	level := 1
	seen := []string{}
	for {
		decision, err := WalkApprovalStep(steps, level)
		if err != nil {
			t.Fatalf("level %d: unexpected error: %v", level, err)
		}
		if decision.Done {
			break
		}
		if decision.NextLevel != level+1 {
			t.Fatalf("level %d: expected next level %d, got %d", level, level+1, decision.NextLevel)
		}
		seen = append(seen, decision.NextApproverId)
		level = decision.NextLevel
	}

	if level != 3 {
		t.Fatalf("expected walk to finish at level 3, finished at %d", level)
	}
	if len(seen) != 2 || seen[0] != "u2" || seen[1] != "u3" {
		t.Fatalf("unexpected approver order: %v", seen)
	}
}

func TestWalkApprovalStep_SingleStepFinishesImmediately(t *testing.T) {
	decision, err := WalkApprovalStep(routeOf("u1"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decision.Done {
		t.Fatal("single-step route should finish on first approval")
	}
}

func TestWalkApprovalStep_RejectsBadLevels(t *testing.T) {
	steps := routeOf("u1", "u2")
	for _, level := range []int{0, -1, 3, 99} {
		if _, err := WalkApprovalStep(steps, level); err != ErrRouteMisconfigured {
			t.Fatalf("level %d: expected ErrRouteMisconfigured, got %v", level, err)
		}
	}
}

func TestWalkApprovalStep_BlankNextApprover(t *testing.T) {
	if _, err := WalkApprovalStep(routeOf("u1", ""), 1); err != ErrRouteMisconfigured {
		t.Fatalf("expected ErrRouteMisconfigured, got %v", err)
	}
}
