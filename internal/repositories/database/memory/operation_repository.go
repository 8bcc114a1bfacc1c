package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/SscSPs/forexdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/forexdesk/internal/core/ports/repositories"
)

type operationRepository struct {
	baseRepository
}

var _ portsrepo.OperationRepositoryFacade = (*operationRepository)(nil)

func (r *operationRepository) FindOperationByID(_ context.Context, operationID string) (*domain.Operation, error) {
	var found domain.Operation
	err := r.view(func(s *state) error {
		op, ok := s.operations[operationID]
		if !ok {
			return fmt.Errorf("%w: operation %s", apperrors.ErrNotFound, operationID)
		}
		found = op
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *operationRepository) ListOperationsBySession(_ context.Context, sessionID string) ([]domain.Operation, error) {
	out := []domain.Operation{}
	err := r.view(func(s *state) error {
		for _, op := range s.operations {
			if op.SessionID == sessionID {
				out = append(out, op)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.Operation) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, err
}

func (r *operationRepository) SaveOperation(_ context.Context, operation domain.Operation) error {
	return r.view(func(s *state) error {
		if _, exists := s.operations[operation.OperationID]; exists {
			return fmt.Errorf("%w: operation %s", apperrors.ErrDuplicate, operation.OperationID)
		}
		operation.Lines = slices.Clone(operation.Lines)
		s.operations[operation.OperationID] = operation
		return nil
	})
}
