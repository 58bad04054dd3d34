package interfaces

import (
	"context"
	"net/url"

	"github.com/bmwcca/bmwcca-sso/internal/models"
)

// HTTPPoster sends a form-encoded POST and returns the status and body.
// Non-2xx statuses are returned as responses, not errors.
type HTTPPoster interface {
	PostForm(ctx context.Context, url string, form url.Values) (*models.HTTPResponse, error)
}

// DirectoryClient defines operations against the membership directory.
type DirectoryClient interface {
	// Authenticate checks end-user credentials. A nil user with a nil error means rejected credentials.
	Authenticate(ctx context.Context, username string, password string) (*models.AuthenticatedUser, error)

	// FetchMemberDetails returns the member's details. An unknown member yields empty, not-found details.
	FetchMemberDetails(ctx context.Context, memberNumber string, includeInactive bool) (*models.MemberDetails, error)

	// IsMemberNumberActive reports whether the member's chapter membership is ACTIVE. It never fails.
	IsMemberNumberActive(ctx context.Context, memberNumber string, chapterID string) bool
}

// MetricsEmitter publishes membership check outcomes.
type MetricsEmitter interface {
	EmitMembershipCheck(ctx context.Context, chapterID string, active bool) error
}
