package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/levkar/milim-bot/internal/domain/entities"
)

var ErrNoActiveAssessment = errors.New("no active assessment")

const assessmentLength = 5

// AssessmentService runs the placement assessment that assigns a new
// user's initial CEFR level.
type AssessmentService struct {
	generator AssessmentGenerator
	flowRepo  FlowRepository
	learning  *LearningService
}

// NewAssessmentService creates a new AssessmentService.
func NewAssessmentService(generator AssessmentGenerator, flowRepo FlowRepository, learning *LearningService) *AssessmentService {
	return &AssessmentService{
		generator: generator,
		flowRepo:  flowRepo,
		learning:  learning,
	}
}

// Start generates a fresh assessment and stores it as the user's active
// assessment flow, replacing any abandoned one.
func (s *AssessmentService) Start(ctx context.Context, userID int64) (*entities.AssessmentFlow, error) {
	questions, err := s.generator.Generate(ctx, assessmentLength)
	if err != nil {
		return nil, fmt.Errorf("generate assessment: %w", err)
	}

	flow := entities.NewAssessmentFlow(questions)
	if err := s.flowRepo.SaveAssessment(ctx, userID, flow); err != nil {
		return nil, err
	}

	return flow, nil
}

// AssessmentAnswerResult describes the outcome of one assessment answer.
type AssessmentAnswerResult struct {
	Correct       bool
	CorrectAnswer string
	Done          bool
	Level         entities.Level // assigned level, set when Done
	CorrectCount  int
	Total         int
	Next          *entities.AssessmentQuestion // nil when Done
}

// Answer processes one assessment answer. When the last question is
// answered the score is mapped to a CEFR level and assigned to the user.
func (s *AssessmentService) Answer(ctx context.Context, userID int64, questionIndex, selectedIndex int) (*AssessmentAnswerResult, error) {
	flow, err := s.flowRepo.GetAssessment(ctx, userID)
	if err != nil {
		return nil, ErrNoActiveAssessment
	}

	if questionIndex != flow.Current {
		return nil, ErrStaleAnswer
	}

	q := flow.CurrentQuestion()
	if q == nil {
		return nil, ErrNoActiveAssessment
	}

	correct := selectedIndex == q.CorrectIndex
	flow.Advance(correct)

	result := &AssessmentAnswerResult{
		Correct:       correct,
		CorrectAnswer: q.Options[q.CorrectIndex],
		CorrectCount:  flow.Correct,
		Total:         len(flow.Questions),
	}

	if flow.Done() {
		level := levelForScore(flow.Correct, len(flow.Questions))
		if err := s.learning.AssignLevel(ctx, userID, level); err != nil {
			return nil, err
		}
		if err := s.flowRepo.Delete(ctx, userID, entities.FlowAssessment); err != nil {
			return nil, err
		}
		result.Done = true
		result.Level = level
		return result, nil
	}

	if err := s.flowRepo.SaveAssessment(ctx, userID, flow); err != nil {
		return nil, err
	}
	result.Next = flow.CurrentQuestion()

	return result, nil
}

// levelForScore maps an assessment score to the initial CEFR level.
// C2 is never assigned from placement; it can only be reached by
// mastering C1.
func levelForScore(correct, total int) entities.Level {
	if total <= 0 {
		return entities.LevelA1
	}

	switch {
	case correct*100/total >= 90:
		return entities.LevelC1
	case correct*100/total >= 70:
		return entities.LevelB2
	case correct*100/total >= 50:
		return entities.LevelB1
	case correct*100/total >= 30:
		return entities.LevelA2
	default:
		return entities.LevelA1
	}
}
