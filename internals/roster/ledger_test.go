package roster

import (
	"errors"
	"math"
	"testing"

	"github.com/gmsim/api-server/internals/pool"
	"github.com/gmsim/api-server/internals/positions"
)

func testPool() map[string]pool.Player {
	players := []pool.Player{
		{PlayerID: "a", Name: "A", Position: positions.QB, Salary: 20},
		{PlayerID: "b", Name: "B", Position: positions.WR, Salary: 140},
		{PlayerID: "c", Name: "C", Position: positions.WR, Salary: 10.3},
		{PlayerID: "d", Name: "D", Position: positions.WR, Salary: 7.7},
	}
	return pool.ByID(players)
}

func TestAddDebitsBudget(t *testing.T) {
	l := NewLedger(150, testPool())

	if err := l.Add("a"); err != nil {
		t.Fatalf("Add(a): %v", err)
	}
	if l.Remaining() != 130 {
		t.Errorf("Remaining = %v, want 130", l.Remaining())
	}
}

func TestAddOverCapIsRejectedWithoutStateChange(t *testing.T) {
	l := NewLedger(150, testPool())

	if err := l.Add("a"); err != nil {
		t.Fatalf("Add(a): %v", err)
	}
	err := l.Add("b")
	if !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("Add(b) err = %v, want ErrBudgetExceeded", err)
	}
	if l.Remaining() != 130 {
		t.Errorf("Remaining after rejected add = %v, want 130", l.Remaining())
	}
	if l.Has("b") {
		t.Error("rejected player must not be on the roster")
	}
}

func TestRemoveCreditsBudget(t *testing.T) {
	l := NewLedger(150, testPool())

	l.Add("a")
	l.Add("c")
	before := l.Remaining()

	if err := l.Remove("c"); err != nil {
		t.Fatalf("Remove(c): %v", err)
	}
	if err := l.Add("c"); err != nil {
		t.Fatalf("re-Add(c): %v", err)
	}
	if math.Abs(l.Remaining()-before) > 1e-9 {
		t.Errorf("remove then re-add drifted budget: %v, want %v", l.Remaining(), before)
	}
}

func TestRemoveAbsentPlayer(t *testing.T) {
	l := NewLedger(150, testPool())

	if err := l.Remove("a"); !errors.Is(err, ErrNotOnRoster) {
		t.Errorf("Remove of absent player err = %v, want ErrNotOnRoster", err)
	}
}

func TestDuplicateAdd(t *testing.T) {
	l := NewLedger(150, testPool())

	l.Add("a")
	if err := l.Add("a"); !errors.Is(err, ErrAlreadyOnRoster) {
		t.Errorf("second Add err = %v, want ErrAlreadyOnRoster", err)
	}
	if l.Remaining() != 130 {
		t.Errorf("duplicate add changed budget: %v", l.Remaining())
	}
}

func TestAddUnknownPlayer(t *testing.T) {
	l := NewLedger(150, testPool())

	if err := l.Add("zz"); !errors.Is(err, ErrUnknownPlayer) {
		t.Errorf("Add of unknown id err = %v, want ErrUnknownPlayer", err)
	}
}

func TestBudgetInvariantOverMutationSequence(t *testing.T) {
	byID := testPool()
	l := NewLedger(150, byID)

	ops := []struct {
		action string
		id     string
	}{
		{"add", "a"}, {"add", "c"}, {"remove", "a"}, {"add", "d"},
		{"add", "a"}, {"remove", "c"}, {"add", "c"}, {"remove", "d"},
	}
	for _, op := range ops {
		if op.action == "add" {
			l.Add(op.id)
		} else {
			l.Remove(op.id)
		}

		var spent float64
		for _, p := range l.Members() {
			spent += p.Salary
		}
		if l.Remaining() < 0 {
			t.Fatalf("after %s %s: remaining went negative (%v)", op.action, op.id, l.Remaining())
		}
		if math.Abs(l.Remaining()-(150-spent)) > 1e-9 {
			t.Fatalf("after %s %s: remaining = %v, want cap - spent = %v",
				op.action, op.id, l.Remaining(), 150-spent)
		}
	}
}

func TestMembersInsertionOrder(t *testing.T) {
	l := NewLedger(150, testPool())

	l.Add("c")
	l.Add("a")
	l.Add("d")
	l.Remove("a")

	members := l.Members()
	if len(members) != 2 {
		t.Fatalf("members = %d, want 2", len(members))
	}
	if members[0].PlayerID != "c" || members[1].PlayerID != "d" {
		t.Errorf("order = [%s %s], want [c d]", members[0].PlayerID, members[1].PlayerID)
	}
}

func TestPositionCounts(t *testing.T) {
	l := NewLedger(150, testPool())

	l.Add("a")
	l.Add("c")
	l.Add("d")

	counts := l.PositionCounts()
	if counts[positions.QB] != 1 || counts[positions.WR] != 2 {
		t.Errorf("counts = %v, want QB:1 WR:2", counts)
	}
}
