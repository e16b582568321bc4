package entities

import "time"

// FlowKind identifies an in-flight interaction flow. Each kind has its own
// typed state record; a user has at most one active flow per kind.
type FlowKind string

const (
	FlowExercise   FlowKind = "exercise"
	FlowAssessment FlowKind = "assessment"
)

// ExerciseFlow is the state of an in-flight exercise session.
type ExerciseFlow struct {
	Questions []Question `json:"questions"`
	Current   int        `json:"current"`  // index of the question being shown
	Correct   int        `json:"correct"`  // correct answers so far
	AskedAt   time.Time  `json:"asked_at"` // when the current question was shown
	StartedAt time.Time  `json:"started_at"`
}

// NewExerciseFlow creates an exercise flow over the given questions.
func NewExerciseFlow(questions []Question) *ExerciseFlow {
	now := time.Now()
	return &ExerciseFlow{
		Questions: questions,
		Current:   0,
		Correct:   0,
		AskedAt:   now,
		StartedAt: now,
	}
}

// CurrentQuestion returns the question being shown, or nil when the flow is done.
func (f *ExerciseFlow) CurrentQuestion() *Question {
	if f.Current < 0 || f.Current >= len(f.Questions) {
		return nil
	}
	return &f.Questions[f.Current]
}

// Advance moves to the next question, counting the answer just given.
func (f *ExerciseFlow) Advance(correct bool) {
	if correct {
		f.Correct++
	}
	f.Current++
	f.AskedAt = time.Now()
}

// Done reports whether every question has been answered.
func (f *ExerciseFlow) Done() bool {
	return f.Current >= len(f.Questions)
}

// AssessmentQuestion is one placement-test question produced by the LLM.
type AssessmentQuestion struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Level        Level    `json:"level"` // level the question probes
}

// AssessmentFlow is the state of an in-flight placement assessment.
type AssessmentFlow struct {
	Questions []AssessmentQuestion `json:"questions"`
	Current   int                  `json:"current"`
	Correct   int                  `json:"correct"`
	StartedAt time.Time            `json:"started_at"`
}

// NewAssessmentFlow creates an assessment flow over the given questions.
func NewAssessmentFlow(questions []AssessmentQuestion) *AssessmentFlow {
	return &AssessmentFlow{
		Questions: questions,
		StartedAt: time.Now(),
	}
}

// CurrentQuestion returns the question being shown, or nil when the flow is done.
func (f *AssessmentFlow) CurrentQuestion() *AssessmentQuestion {
	if f.Current < 0 || f.Current >= len(f.Questions) {
		return nil
	}
	return &f.Questions[f.Current]
}

// Advance moves to the next question, counting the answer just given.
func (f *AssessmentFlow) Advance(correct bool) {
	if correct {
		f.Correct++
	}
	f.Current++
}

// Done reports whether every question has been answered.
func (f *AssessmentFlow) Done() bool {
	return f.Current >= len(f.Questions)
}
