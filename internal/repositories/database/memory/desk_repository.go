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

type deskRepository struct {
	baseRepository
}

var (
	_ portsrepo.DeskReader               = (*deskRepository)(nil)
	_ portsrepo.DeskLinkRepositoryFacade = (*deskRepository)(nil)
)

func (r *deskRepository) FindDeskByID(_ context.Context, deskID string) (*domain.Desk, error) {
	var found domain.Desk
	err := r.view(func(s *state) error {
		d, ok := s.desks[deskID]
		if !ok {
			return fmt.Errorf("%w: desk %s", apperrors.ErrNotFound, deskID)
		}
		found = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *deskRepository) FindWorkcenterByID(_ context.Context, workcenterID string) (*domain.Workcenter, error) {
	var found domain.Workcenter
	err := r.view(func(s *state) error {
		w, ok := s.workcenters[workcenterID]
		if !ok {
			return fmt.Errorf("%w: workcenter %s", apperrors.ErrNotFound, workcenterID)
		}
		found = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *deskRepository) ListDesks(_ context.Context) ([]domain.Desk, error) {
	var out []domain.Desk
	err := r.view(func(s *state) error {
		for _, d := range s.desks {
			out = append(out, d)
		}
		return nil
	})
	slices.SortFunc(out, func(a, b domain.Desk) int { return strings.Compare(a.DeskID, b.DeskID) })
	return out, err
}

func (r *deskRepository) FindDeskLink(_ context.Context, userID string) (*domain.DeskLink, error) {
	var found domain.DeskLink
	err := r.view(func(s *state) error {
		l, ok := s.links[userID]
		if !ok {
			return fmt.Errorf("%w: no desk linked for user %s", apperrors.ErrNotFound, userID)
		}
		found = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *deskRepository) SaveDeskLink(_ context.Context, link domain.DeskLink) error {
	return r.view(func(s *state) error {
		s.links[link.UserID] = link
		return nil
	})
}

// AddWorkcenter registers a workcenter. Desk configuration is read-only for the services.
func (s *Store) AddWorkcenter(w domain.Workcenter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.AcceptedCurrencies = slices.Clone(w.AcceptedCurrencies)
	s.st.workcenters[w.WorkcenterID] = w
}

// AddDesk registers a desk.
func (s *Store) AddDesk(d domain.Desk) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.desks[d.DeskID] = d
}
