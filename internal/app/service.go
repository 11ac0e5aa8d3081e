package app

import (
	"context"
	"fmt"

	"github.com/glabrego/lobsters-cli/internal/lobsters"
	"github.com/glabrego/lobsters-cli/internal/mode"
)

type LobstersClient interface {
	ListPosts(ctx context.Context, m mode.Mode) ([]lobsters.Post, error)
	PostDetails(ctx context.Context, shortID string) (lobsters.PostDetails, error)
}

type Repository interface {
	MarkRead(ctx context.Context, shortID string) error
	MarkUnread(ctx context.Context, shortID string) error
	FlagRead(ctx context.Context, posts []lobsters.Post) error
}

// Service is what the fetch and persistence workers call into.
type Service struct {
	client LobstersClient
	repo   Repository
}

func NewService(client LobstersClient, repo Repository) *Service {
	return &Service{client: client, repo: repo}
}

// Listing fetches one listing page and flags the posts already read locally.
func (s *Service) Listing(ctx context.Context, m mode.Mode) ([]lobsters.Post, error) {
	posts, err := s.client.ListPosts(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("fetch %s posts from lobste.rs: %w", m, err)
	}
	if err := s.repo.FlagRead(ctx, posts); err != nil {
		return nil, fmt.Errorf("load read state: %w", err)
	}
	return posts, nil
}

func (s *Service) Details(ctx context.Context, shortID string) (lobsters.PostDetails, error) {
	details, err := s.client.PostDetails(ctx, shortID)
	if err != nil {
		return lobsters.PostDetails{}, fmt.Errorf("fetch comments of post %s from lobste.rs: %w", shortID, err)
	}
	return details, nil
}

// Apply writes one read/unread change to the repository.
func (s *Service) Apply(ctx context.Context, action Action) error {
	switch action.Kind {
	case MarkRead:
		if err := s.repo.MarkRead(ctx, action.ShortID); err != nil {
			return fmt.Errorf("save read state: %w", err)
		}
	case MarkUnread:
		if err := s.repo.MarkUnread(ctx, action.ShortID); err != nil {
			return fmt.Errorf("save unread state: %w", err)
		}
	default:
		return fmt.Errorf("unknown persistence action %d", action.Kind)
	}
	return nil
}
