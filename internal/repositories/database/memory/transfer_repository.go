package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/SscSPs/forexdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/forexdesk/internal/core/ports/repositories"
)

type transferRepository struct {
	baseRepository
}

var _ portsrepo.TransferRepositoryFacade = (*transferRepository)(nil)

func sortLines(lines []domain.TransferLine) {
	slices.SortFunc(lines, func(a, b domain.TransferLine) int {
		if c := b.SourceTime.Compare(a.SourceTime); c != 0 {
			return c
		}
		return strings.Compare(a.LineID, b.LineID)
	})
}

func (r *transferRepository) FindTransferByID(_ context.Context, transferID string) (*domain.Transfer, error) {
	var found domain.Transfer
	err := r.view(func(s *state) error {
		t, ok := s.transfers[transferID]
		if !ok {
			return fmt.Errorf("%w: transfer %s", apperrors.ErrNotFound, transferID)
		}
		t.Lines = nil
		for _, l := range s.lines {
			if l.TransferID == transferID {
				t.Lines = append(t.Lines, l)
			}
		}
		slices.SortFunc(t.Lines, func(a, b domain.TransferLine) int { return strings.Compare(a.LineID, b.LineID) })
		found = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *transferRepository) FindLineByID(_ context.Context, lineID string) (*domain.TransferLine, error) {
	var found domain.TransferLine
	err := r.view(func(s *state) error {
		l, ok := s.lines[lineID]
		if !ok {
			return fmt.Errorf("%w: transfer line %s", apperrors.ErrNotFound, lineID)
		}
		found = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *transferRepository) ListLinesByUser(_ context.Context, userID string) ([]domain.TransferLine, error) {
	out := []domain.TransferLine{}
	err := r.view(func(s *state) error {
		for _, l := range s.lines {
			if l.SentBy == userID || l.SentTo == userID {
				out = append(out, l)
			}
		}
		return nil
	})
	sortLines(out)
	return out, err
}

func (r *transferRepository) SaveTransfer(_ context.Context, transfer domain.Transfer) error {
	return r.view(func(s *state) error {
		if _, exists := s.transfers[transfer.TransferID]; exists {
			return fmt.Errorf("%w: transfer %s", apperrors.ErrDuplicate, transfer.TransferID)
		}
		for _, l := range transfer.Lines {
			s.lines[l.LineID] = l
		}
		transfer.Lines = nil
		s.transfers[transfer.TransferID] = transfer
		return nil
	})
}

func (r *transferRepository) UpdateLine(_ context.Context, line domain.TransferLine) error {
	return r.view(func(s *state) error {
		if _, exists := s.lines[line.LineID]; !exists {
			return fmt.Errorf("%w: transfer line %s", apperrors.ErrNotFound, line.LineID)
		}
		s.lines[line.LineID] = line
		return nil
	})
}
