package mock

import (
	"context"
	"testing"
)

func TestSubmitAndPoll_ImmediateCompletion(t *testing.T) {
	a := New()
	ctx := context.Background()

	callID, err := a.Submit(ctx, "url")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if callID == "" {
		t.Fatal("expected non-empty call ID")
	}

	frames, done, err := a.Poll(ctx, callID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !done {
		t.Fatal("expected default adapter to finish on first poll")
	}
	if len(frames) == 0 {
		t.Error("expected fixture frames")
	}
}

func TestPoll_PendingUntilConfigured(t *testing.T) {
	a := New()
	a.PollsUntilDone = 2
	ctx := context.Background()

	callID, _ := a.Submit(ctx, "url")

	for i := 0; i < 2; i++ {
		_, done, err := a.Poll(ctx, callID)
		if err != nil {
			t.Fatalf("poll %d: unexpected error: %v", i, err)
		}
		if done {
			t.Fatalf("poll %d: expected pending", i)
		}
	}

	_, done, err := a.Poll(ctx, callID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !done {
		t.Error("expected completion after configured polls")
	}
}

func TestPoll_UnknownCall(t *testing.T) {
	a := New()

	if _, _, err := a.Poll(context.Background(), "nope"); err == nil {
		t.Error("expected error for unknown call ID")
	}
}

func TestSubmit_UniqueCallIDs(t *testing.T) {
	a := New()
	ctx := context.Background()

	first, _ := a.Submit(ctx, "url")
	second, _ := a.Submit(ctx, "url")
	if first == second {
		t.Errorf("expected distinct call IDs, got %s twice", first)
	}
}

func TestDefaultFrames_Shape(t *testing.T) {
	if len(DefaultFrames) < 2 {
		t.Fatal("expected at least 2 fixture frames")
	}
	for i, f := range DefaultFrames {
		if i > 0 && f.Timestamp <= DefaultFrames[i-1].Timestamp {
			t.Fatalf("frame %d: timestamps must increase", i)
		}
		if len(f.Poses) == 0 {
			t.Fatalf("frame %d: expected a pose", i)
		}
		if _, ok := f.Poses[0].Landmark(15); !ok {
			t.Fatalf("frame %d: expected a left wrist landmark", i)
		}
	}
}
