package model

import (
	"testing"

	"github.com/pkg/errors"
)

func TestRICE(t *testing.T) {
	type testCase struct {
		Reach, Impact, Confidence, Effort int
		Expected                          int
	}

	testCases := []testCase{
		{Reach: 85, Impact: 90, Confidence: 80, Effort: 60, Expected: 102},
		{Reach: 70, Impact: 75, Confidence: 85, Effort: 45, Expected: 99},
		{Reach: 95, Impact: 95, Confidence: 70, Effort: 80, Expected: 79},
		{Reach: 10, Impact: 10, Confidence: 10, Effort: 0, Expected: 10},
		{Reach: 10, Impact: 10, Confidence: 10, Effort: -5, Expected: 10},
		{Reach: 0, Impact: 90, Confidence: 90, Effort: 10, Expected: 0},
		{Reach: 1, Impact: 1, Confidence: 50, Effort: 1, Expected: 1},
		{Reach: 1, Impact: 1, Confidence: 49, Effort: 1, Expected: 0},
	}

	for _, tc := range testCases {
		if e, g := tc.Expected, RICE(tc.Reach, tc.Impact, tc.Confidence, tc.Effort); e != g {
			t.Errorf("RICE(%d, %d, %d, %d): expected %d, got %d", tc.Reach, tc.Impact, tc.Confidence, tc.Effort, e, g)
		}
	}
}

func TestClassify(t *testing.T) {
	type testCase struct {
		Impact, Effort int
		Expected       Quadrant
	}

	testCases := []testCase{
		{Impact: 50, Effort: 50, Expected: QuadrantQuickWins},
		{Impact: 90, Effort: 10, Expected: QuadrantQuickWins},
		{Impact: 50, Effort: 51, Expected: QuadrantMajorProjects},
		{Impact: 49, Effort: 50, Expected: QuadrantFillIns},
		{Impact: 0, Effort: 0, Expected: QuadrantFillIns},
		{Impact: 49, Effort: 51, Expected: QuadrantTimeWasters},
	}

	for _, tc := range testCases {
		if e, g := tc.Expected, Classify(tc.Impact, tc.Effort); e != g {
			t.Errorf("Classify(%d, %d): expected %s, got %s", tc.Impact, tc.Effort, e, g)
		}
	}
}

func TestQuadrantPositionRoundTrip(t *testing.T) {
	for _, q := range Quadrants {
		impact, effort, err := q.Position()
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if e, g := q, Classify(impact, effort); e != g {
			t.Errorf("Classify(%s.Position()): expected %s, got %s", q, e, g)
		}
	}

	if _, _, err := Quadrant("nowhere").Position(); err == nil {
		t.Errorf("Position(): expected an error for an unknown quadrant")
	} else {
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("Position(): expected a validation error, got %T", err)
		}
	}
}

func TestFeedbackVote(t *testing.T) {
	f := &Feedback{Votes: 1}

	if !f.Vote(VoteDown) {
		t.Errorf("Vote(down): expected record to be modified")
	}
	f.Vote(VoteDown)

	if e, g := 0, f.Votes; e != g {
		t.Errorf("f.Votes: expected %d, got %d", e, g)
	}

	if f.Vote(VoteType("sideways")) {
		t.Errorf("Vote(sideways): expected record to be left untouched")
	}

	f.Vote(VoteUp)

	if e, g := 1, f.Votes; e != g {
		t.Errorf("f.Votes: expected %d, got %d", e, g)
	}
}

func TestFeatureDefaults(t *testing.T) {
	f := &Feature{Title: "SSO", Description: "Single sign-on", AssignedTo: "jane marie doe"}
	f.ApplyDefaults()

	if e, g := "JMD", f.AssigneeAvatar; e != g {
		t.Errorf("f.AssigneeAvatar: expected %s, got %s", e, g)
	}

	if e, g := DefaultFeatureStatus, f.Status; e != g {
		t.Errorf("f.Status: expected %s, got %s", e, g)
	}

	unassigned := &Feature{}
	unassigned.ApplyDefaults()

	if e, g := "U", unassigned.AssigneeAvatar; e != g {
		t.Errorf("unassigned.AssigneeAvatar: expected %s, got %s", e, g)
	}

	if err := unassigned.Validate(); err == nil {
		t.Errorf("Validate(): expected an error for a feature without title")
	}
}
