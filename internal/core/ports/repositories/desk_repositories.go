package repositories

import (
	"context"

	"github.com/SscSPs/forexdesk/internal/core/domain"
)

// DeskReader exposes desk and workcenter configuration. It is administered elsewhere.
type DeskReader interface {
	FindDeskByID(ctx context.Context, deskID string) (*domain.Desk, error)
	FindWorkcenterByID(ctx context.Context, workcenterID string) (*domain.Workcenter, error)
	ListDesks(ctx context.Context) ([]domain.Desk, error)
}

// DeskLinkReader reads the desk a user declared to be working at.
type DeskLinkReader interface {
	FindDeskLink(ctx context.Context, userID string) (*domain.DeskLink, error)
}

// DeskLinkWriter records the desk a user is working at.
type DeskLinkWriter interface {
	SaveDeskLink(ctx context.Context, link domain.DeskLink) error
}

// DeskLinkRepositoryFacade combines desk link operations.
type DeskLinkRepositoryFacade interface {
	DeskLinkReader
	DeskLinkWriter
}
