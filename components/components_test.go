package components

import "testing"

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateWalking, "walking"},
		{StateTalking, "talking"},
		{StateIdle, "idle"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestStateFrozen(t *testing.T) {
	if StateWalking.Frozen() {
		t.Error("walking agents must move")
	}
	if !StateTalking.Frozen() || !StateIdle.Frozen() {
		t.Error("talking and idle agents must not move")
	}
}

func TestBehaviorTalkingRoundTrip(t *testing.T) {
	var b Behavior
	b.StartTalking("theo")
	if !b.Talking() || b.TalkingTo != "theo" {
		t.Fatalf("after StartTalking: %+v", b)
	}
	b.StopTalking()
	if b.Talking() || b.TalkingTo != "" {
		t.Fatalf("after StopTalking: %+v", b)
	}
}
