package difficulty

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/focusflow/focusflow/internal/llm"
)

func TestAdvisor_Agrees(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"tier":"hard","confidence":0.8,"reasoning":"A thesis is a big, multi-step project."}`),
	})
	a := NewAdvisor(mock, DefaultAdvisorConfig())

	r := Classify("Research and write my thesis", "")
	advice, err := a.Advise(context.Background(), "Research and write my thesis", "", r)
	if err != nil {
		t.Fatalf("Advise: %v", err)
	}
	if advice.Tier != TierHard || !advice.Agrees {
		t.Errorf("advice = %+v, want agreeing hard", advice)
	}
	if advice.Model != "mock" {
		t.Errorf("model = %q, want mock", advice.Model)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema != AdviceSchema {
		t.Error("request did not carry the advice schema")
	}
	msg := req.Messages[0].Content
	if !strings.Contains(msg, "Task: Research and write my thesis") {
		t.Errorf("prompt missing title:\n%s", msg)
	}
	if !strings.Contains(msg, "Heuristic tier: hard (67% confident)") {
		t.Errorf("prompt missing heuristic tier:\n%s", msg)
	}
}

func TestAdvisor_DisagreesAndClamps(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"tier":"Easy","confidence":1.7,"reasoning":"Sending notes is one step."}`),
	})
	a := NewAdvisor(mock, DefaultAdvisorConfig())

	r := Classify("Send the research notes", "")
	advice, err := a.Advise(context.Background(), "Send the research notes", "", r)
	if err != nil {
		t.Fatalf("Advise: %v", err)
	}
	if advice.Tier != TierEasy || advice.Agrees {
		t.Errorf("advice = %+v, want disagreeing easy", advice)
	}
	if advice.Confidence != 1 {
		t.Errorf("confidence = %v, want clamped to 1", advice.Confidence)
	}
	// The heuristic result is untouched.
	if r.Tier != TierMedium {
		t.Errorf("heuristic tier changed to %q", r.Tier)
	}
}

func TestAdvisor_PromptIncludesDescriptionAndReasons(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"tier":"medium","confidence":0.6,"reasoning":"ok"}`),
	})
	a := NewAdvisor(mock, DefaultAdvisorConfig())

	r := Classify("Deep clean the garage", "this weekend")
	if _, err := a.Advise(context.Background(), "Deep clean the garage", "this weekend", r); err != nil {
		t.Fatalf("Advise: %v", err)
	}
	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "Details: this weekend") {
		t.Errorf("prompt missing details:\n%s", msg)
	}
	if !strings.Contains(msg, "- Mentions a long time frame (~3 hours)") {
		t.Errorf("prompt missing reasons:\n%s", msg)
	}
}

func TestAdvisor_UnknownTier(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"tier":"legendary","confidence":0.9,"reasoning":"?"}`),
	})
	a := NewAdvisor(mock, DefaultAdvisorConfig())

	_, err := a.Advise(context.Background(), "Call mom", "", Classify("Call mom", ""))
	if err == nil {
		t.Fatal("expected error for unknown tier")
	}
}

func TestAdvisor_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider()
	a := NewAdvisor(mock, DefaultAdvisorConfig())

	_, err := a.Advise(context.Background(), "Call mom", "", Classify("Call mom", ""))
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
}

func TestNeedsAdvice(t *testing.T) {
	if NeedsAdvice(Classify("Call mom", ""), ConfidenceThreshold) {
		t.Error("confident easy result should not need advice")
	}
	if !NeedsAdvice(Classify("Send the research notes", ""), ConfidenceThreshold) {
		t.Error("demoted result should need advice")
	}
	if !NeedsAdvice(Classify("Send the research notes", ""), 0) {
		t.Error("demoted result should need advice at any threshold")
	}
	if NeedsAdvice(Classify("Call mom", ""), 0) {
		t.Error("zero threshold should only flag demoted results")
	}
}

func TestReclassified(t *testing.T) {
	if !Reclassified(Classify("Send the research notes", "")) {
		t.Error("expected demotion to be detected")
	}
	if Reclassified(Classify("Call mom", "")) {
		t.Error("confident result was not demoted")
	}
	if Reclassified(Classify("", "")) {
		t.Error("default medium is not a demotion")
	}
}
