package directory

import (
	"context"

	"github.com/bmwcca/bmwcca-sso/internal/models"
)

// MockClient is a simple mock implementation of the directory client.
type MockClient struct {
	AuthenticateFunc         func(ctx context.Context, username string, password string) (*models.AuthenticatedUser, error)
	FetchMemberDetailsFunc   func(ctx context.Context, memberNumber string, includeInactive bool) (*models.MemberDetails, error)
	IsMemberNumberActiveFunc func(ctx context.Context, memberNumber string, chapterID string) bool
}

func (m *MockClient) Authenticate(ctx context.Context, username string, password string) (*models.AuthenticatedUser, error) {
	if m.AuthenticateFunc == nil {
		return nil, nil
	}
	return m.AuthenticateFunc(ctx, username, password)
}

func (m *MockClient) FetchMemberDetails(ctx context.Context, memberNumber string, includeInactive bool) (*models.MemberDetails, error) {
	if m.FetchMemberDetailsFunc == nil {
		return models.NewMemberDetails(), nil
	}
	return m.FetchMemberDetailsFunc(ctx, memberNumber, includeInactive)
}

func (m *MockClient) IsMemberNumberActive(ctx context.Context, memberNumber string, chapterID string) bool {
	if m.IsMemberNumberActiveFunc == nil {
		return false
	}
	return m.IsMemberNumberActiveFunc(ctx, memberNumber, chapterID)
}
