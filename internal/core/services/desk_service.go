package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/SscSPs/forexdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/forexdesk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/forexdesk/internal/core/ports/services"
	"github.com/SscSPs/forexdesk/internal/utils"
)

type deskService struct {
	BaseService
	deskRepo portsrepo.DeskReader
	linkRepo portsrepo.DeskLinkRepositoryFacade
}

// NewDeskService creates the service recording which desk a user works at.
func NewDeskService(deskRepo portsrepo.DeskReader, linkRepo portsrepo.DeskLinkRepositoryFacade, opts ...Option) portssvc.DeskSvc {
	return &deskService{BaseService: newBaseService(opts...), deskRepo: deskRepo, linkRepo: linkRepo}
}

var _ portssvc.DeskSvc = (*deskService)(nil)

func (s *deskService) LinkDesk(ctx context.Context, userID, deskID, pairingCode string) (*domain.DeskLink, error) {
	desk, err := s.deskRepo.FindDeskByID(ctx, deskID)
	if err != nil {
		return nil, err
	}
	if !utils.CheckPairingCode(pairingCode, desk.PairingCodeHash) {
		err := fmt.Errorf("%w: invalid pairing code for desk %s", apperrors.ErrForbidden, deskID)
		s.LogWarn(ctx, err, "Desk link refused", slog.String("desk_id", deskID))
		return nil, err
	}

	current, err := s.linkRepo.FindDeskLink(ctx, userID)
	switch {
	case err == nil && current.DeskID == deskID:
		s.Emit(ctx, domain.EventDeskAlreadyLinked, domain.SeverityWarning, "Desk already linked",
			fmt.Sprintf("you are already working at desk %s", desk.Name))
		return current, nil
	case err != nil && !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}

	link := domain.DeskLink{UserID: userID, DeskID: deskID, LinkedAt: s.now()}
	if err := s.linkRepo.SaveDeskLink(ctx, link); err != nil {
		s.LogError(ctx, err, "Failed to save desk link", slog.String("desk_id", deskID))
		return nil, err
	}
	s.LogInfo(ctx, "Desk linked", slog.String("desk_id", deskID))
	return &link, nil
}

func (s *deskService) CurrentDesk(ctx context.Context, userID string) (*domain.DeskLink, error) {
	link, err := s.linkRepo.FindDeskLink(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user is not linked to a desk", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return link, nil
}
