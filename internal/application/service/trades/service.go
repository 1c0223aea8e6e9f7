package trades

import (
	"context"
	"errors"

	"trade-journal/internal/application/failure"
	domain "trade-journal/internal/domain/entity/journal"
	interfaces "trade-journal/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	msgUserNotFound    = "User does not exist."
	msgProjectNotFound = "User does not have a project with that name."
	msgTradeNotFound   = "That trade does not exist."
	msgInvalidTrade    = "A trade was not provided."
)

// TradeView is a trade assembled with its legs and tags, ready for DTO
// conversion at the transport layer.
type TradeView struct {
	Trade domain.Trade
	Legs  []domain.Leg
	Tags  []domain.Tag
}

// Service orchestrates authorization, validation and repository calls for
// every trade operation. It holds no per-request state; concurrent requests
// share nothing beyond the repositories.
type Service struct {
	trades   interfaces.TradeRepository
	projects interfaces.ProjectRepository
	users    interfaces.UserRepository
	log      *logrus.Logger
}

func NewService(trades interfaces.TradeRepository, projects interfaces.ProjectRepository, users interfaces.UserRepository, log *logrus.Logger) *Service {
	return &Service{trades: trades, projects: projects, users: users, log: log}
}

// ListTrades returns every trade in the named project with legs and tags
// attached. Listing is public: no caller identity is compared, unlike the
// mutating operations.
func (s *Service) ListTrades(ctx context.Context, username, projectName string) ([]TradeView, error) {
	const msg = "Failed to get trades."

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, interfaces.ErrUserNotFound) {
			return nil, failure.NotFound(msgUserNotFound)
		}
		return nil, s.internal("get user by username", msg, err)
	}

	project, err := s.projects.GetProjectByName(ctx, user.UUID, projectName)
	if err != nil {
		if errors.Is(err, interfaces.ErrProjectNotFound) {
			return nil, failure.NotFound(msgProjectNotFound)
		}
		return nil, s.internal("get project by name", msg, err)
	}

	list, err := s.trades.GetTradesByProject(ctx, project.ID)
	if err != nil {
		return nil, s.internal("get trades by project", msg, err)
	}

	// Legs and tags fan out per trade; the indexed writes keep the result in
	// the original trade order.
	views := make([]TradeView, len(list))
	g, gctx := errgroup.WithContext(ctx)
	for i := range list {
		g.Go(func() error {
			legs, err := s.trades.GetLegsByTradeID(gctx, list[i].ID)
			if err != nil {
				return err
			}
			tags, err := s.trades.GetTradeTags(gctx, list[i].ID)
			if err != nil {
				return err
			}
			views[i] = TradeView{Trade: list[i], Legs: legs, Tags: tags}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, s.internal("assemble trades", msg, err)
	}
	return views, nil
}

// GetTrade returns a single trade with legs and tags.
func (s *Service) GetTrade(ctx context.Context, id int64) (*TradeView, error) {
	const msg = "Failed to get trade."

	trade, err := s.trades.GetTradeByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrTradeNotFound) {
			return nil, failure.NotFound(msgTradeNotFound)
		}
		return nil, s.internal("get trade by id", msg, err)
	}

	legs, err := s.trades.GetLegsByTradeID(ctx, trade.ID)
	if err != nil {
		return nil, s.internal("get legs by trade id", msg, err)
	}
	tags, err := s.trades.GetTradeTags(ctx, trade.ID)
	if err != nil {
		return nil, s.internal("get trade tags", msg, err)
	}

	return &TradeView{Trade: *trade, Legs: legs, Tags: tags}, nil
}

// CreateTrade resolves the user and project, requires the caller-supplied
// UUID to match the resolved user, validates the payload and persists it.
// Success carries no body, so nothing is returned beyond the error.
func (s *Service) CreateTrade(ctx context.Context, username, projectName, userUUID string, input domain.TradeCreateInput) error {
	const msg = "Failed to add trade."

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, interfaces.ErrUserNotFound) {
			return failure.NotFound(msgUserNotFound)
		}
		return s.internal("get user by username", msg, err)
	}

	if userUUID != user.UUID.String() {
		return failure.Forbidden()
	}

	project, err := s.projects.GetProjectByName(ctx, user.UUID, projectName)
	if err != nil {
		if errors.Is(err, interfaces.ErrProjectNotFound) {
			return failure.NotFound(msgProjectNotFound)
		}
		return s.internal("get project by name", msg, err)
	}

	model, err := domain.NewTradeCreate(input)
	if err != nil {
		return failure.BadRequest(msgInvalidTrade)
	}

	if err := s.trades.AddTrade(ctx, project.ID, model); err != nil {
		return s.internal("add trade", msg, err)
	}
	return nil
}

// UpdateTrade resolves the trade's ownership chain, requires the
// caller-supplied UUID to match the owner and merges the supplied fields
// over the stored trade. Absent fields are left untouched.
func (s *Service) UpdateTrade(ctx context.Context, id int64, userUUID string, input domain.TradeUpdateInput) error {
	const msg = "Failed to update trade."

	trade, err := s.trades.GetTradeByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrTradeNotFound) {
			return failure.NotFound(msgTradeNotFound)
		}
		return s.internal("get trade by id", msg, err)
	}

	owner, err := s.resolveOwner(ctx, trade.ProjectID)
	if err != nil {
		return s.internal("resolve trade owner", msg, err)
	}
	if userUUID != owner.UUID.String() {
		return failure.Forbidden()
	}

	if err := s.trades.UpdateTrade(ctx, trade.ID, domain.NewTradeUpdate(input)); err != nil {
		return s.internal("update trade", msg, err)
	}
	return nil
}

// DeleteTrade removes a trade after authorizing against its owner. Deleting
// an id that does not exist succeeds without touching anything.
func (s *Service) DeleteTrade(ctx context.Context, id int64, userUUID string) error {
	const msg = "Failed to delete trade."

	trade, err := s.trades.GetTradeByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrTradeNotFound) {
			return nil
		}
		return s.internal("get trade by id", msg, err)
	}

	owner, err := s.resolveOwner(ctx, trade.ProjectID)
	if err != nil {
		return s.internal("resolve trade owner", msg, err)
	}
	if userUUID != owner.UUID.String() {
		return failure.Forbidden()
	}

	if err := s.trades.DeleteTradeByID(ctx, trade.ID); err != nil {
		return s.internal("delete trade", msg, err)
	}
	return nil
}

// resolveOwner walks the Trade -> Project -> User chain.
func (s *Service) resolveOwner(ctx context.Context, projectID int64) (*domain.User, error) {
	project, err := s.projects.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.users.GetUserByUUID(ctx, project.UserUUID)
}

// internal logs the underlying error with context and returns the generic
// caller-visible failure. Repository detail never reaches the response.
func (s *Service) internal(op, message string, err error) *failure.Failure {
	s.log.WithError(err).WithField("op", op).Error("trade operation failed")
	return failure.Internal(message, err)
}
