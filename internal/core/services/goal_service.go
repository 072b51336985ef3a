package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/personal_finance_app/internal/apperrors"
	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type goalService struct {
	BaseService
	goalRepo portsrepo.GoalRepositoryFacade
}

func NewGoalService(goalRepo portsrepo.GoalRepositoryFacade, options ...ServiceOption) portssvc.GoalSvcFacade {
	return &goalService{
		BaseService: newBaseService(options),
		goalRepo:    goalRepo,
	}
}

var _ portssvc.GoalSvcFacade = (*goalService)(nil)

func (s *goalService) CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*domain.Goal, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required: %w", apperrors.ErrValidation)
	}
	if !req.TargetAmount.IsPositive() {
		return nil, fmt.Errorf("target amount must be greater than zero: %w", apperrors.ErrValidation)
	}
	if req.CurrentAmount.IsNegative() {
		return nil, fmt.Errorf("current amount cannot be negative: %w", apperrors.ErrValidation)
	}
	targetDate, err := dto.ParseOptionalDate(req.TargetDate)
	if err != nil {
		return nil, err
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	goal := domain.Goal{
		GoalID:        uuid.NewString(),
		UserID:        userID,
		Title:         title,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		TargetDate:    targetDate,
		Priority:      priority,
		Status:        domain.GoalActive,
		AuditFields:   domain.NewAuditFields(userID, s.Now()),
	}
	goal.RefreshStatus()

	if err := s.goalRepo.SaveGoal(ctx, goal); err != nil {
		s.LogError(ctx, err, "Failed to save goal", slog.String("user_id", userID))
		return nil, err
	}
	return &goal, nil
}

func (s *goalService) GetGoal(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	goal, err := s.goalRepo.FindGoalByID(ctx, userID, goalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find goal", slog.String("goal_id", goalID))
		}
		return nil, err
	}
	return goal, nil
}

func (s *goalService) ListGoals(ctx context.Context, userID string, status domain.GoalStatus) ([]domain.Goal, error) {
	goals, err := s.goalRepo.ListGoals(ctx, userID, status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list goals", slog.String("user_id", userID))
		return nil, err
	}
	if goals == nil {
		goals = []domain.Goal{}
	}
	return goals, nil
}

func (s *goalService) UpdateGoal(ctx context.Context, userID, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, error) {
	goal, err := s.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("title is required: %w", apperrors.ErrValidation)
		}
		goal.Title = title
	}
	if req.TargetAmount != nil {
		if !req.TargetAmount.IsPositive() {
			return nil, fmt.Errorf("target amount must be greater than zero: %w", apperrors.ErrValidation)
		}
		goal.TargetAmount = *req.TargetAmount
	}
	if req.CurrentAmount != nil {
		if req.CurrentAmount.IsNegative() {
			return nil, fmt.Errorf("current amount cannot be negative: %w", apperrors.ErrValidation)
		}
		goal.CurrentAmount = *req.CurrentAmount
	}
	if req.TargetDate != nil {
		if goal.TargetDate, err = dto.ParseOptionalDate(*req.TargetDate); err != nil {
			return nil, err
		}
	}
	if req.Priority != nil {
		goal.Priority = *req.Priority
	}
	if req.Status != nil {
		goal.Status = *req.Status
	}
	goal.RefreshStatus()
	goal.Touch(userID, s.Now())

	if err := s.goalRepo.UpdateGoal(ctx, *goal); err != nil {
		s.LogError(ctx, err, "Failed to update goal", slog.String("goal_id", goalID))
		return nil, err
	}
	return goal, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	if err := s.goalRepo.DeleteGoal(ctx, userID, goalID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete goal", slog.String("goal_id", goalID))
		}
		return err
	}
	return nil
}

func (s *goalService) Contribute(ctx context.Context, userID, goalID string, amount decimal.Decimal) (*domain.Goal, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("contribution must be greater than zero: %w", apperrors.ErrValidation)
	}
	goal, err := s.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if goal.Status == domain.GoalCanceled {
		return nil, fmt.Errorf("cannot contribute to a canceled goal: %w", apperrors.ErrValidation)
	}

	updated, err := s.goalRepo.AddContribution(ctx, userID, goalID, amount, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to add goal contribution", slog.String("goal_id", goalID))
		return nil, err
	}
	if goal.Status != updated.Status {
		s.LogInfo(ctx, "Goal reached its target", slog.String("goal_id", goalID))
	}
	return updated, nil
}
