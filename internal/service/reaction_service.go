// Package service implements the application's business rules on top of the
// repository layer.
package service

import (
	"context"
	"fmt"

	"microblog/internal/middleware"
	"microblog/internal/models"
	"microblog/internal/repository"
)

// ReactionService owns the reaction-kind catalog and reaction creation.
type ReactionService struct {
	reactionRepo repository.ReactionRepository
}

// NewReactionService creates a new reaction service
func NewReactionService(reactionRepo repository.ReactionRepository) *ReactionService {
	return &ReactionService{reactionRepo: reactionRepo}
}

// ListReactions returns the full reaction-kind catalog.
func (s *ReactionService) ListReactions(ctx context.Context) ([]models.ReactionReference, error) {
	return s.reactionRepo.ListReferences(ctx)
}

// GetReaction resolves a reaction kind by id.
func (s *ReactionService) GetReaction(ctx context.Context, id uint) (*models.ReactionReference, error) {
	ref, err := s.reactionRepo.GetReference(ctx, id)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, models.NewNotFoundError("Reaction")
	}
	return ref, nil
}

// React stores userID's reaction of the given kind on a reactable resource.
// The kind is validated before anything is written. Callers must have
// verified the resource itself exists; a missing reactable row at this point
// breaks the creation invariant and is reported as an internal error.
func (s *ReactionService) React(ctx context.Context, resourceID uint, resourceType models.ResourceType, userID, reactionID uint) (*models.Reaction, error) {
	ref, err := s.GetReaction(ctx, reactionID)
	if err != nil {
		return nil, err
	}

	reactable, err := s.reactionRepo.GetReactable(ctx, resourceID, resourceType)
	if err != nil {
		return nil, err
	}
	if reactable == nil {
		return nil, models.NewInternalError(
			fmt.Errorf("no reactable association for %s %d", resourceType, resourceID))
	}

	reaction, err := s.reactionRepo.Upsert(ctx, userID, reactable.ID, ref.ID)
	if err != nil {
		return nil, err
	}

	middleware.ReactionsCreated.WithLabelValues(ref.Name).Inc()
	return reaction, nil
}

// ListForResource returns all reactions attached to a resource. An empty
// result is returned as-is; callers decide whether emptiness is an error.
func (s *ReactionService) ListForResource(ctx context.Context, resourceID uint, resourceType models.ResourceType) ([]*models.Reaction, error) {
	reactable, err := s.reactionRepo.GetReactable(ctx, resourceID, resourceType)
	if err != nil {
		return nil, err
	}
	if reactable == nil {
		return nil, nil
	}
	return s.reactionRepo.ListByReactable(ctx, reactable.ID)
}
