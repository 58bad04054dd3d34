package directory

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bmwcca/bmwcca-sso/internal/interfaces"
	"github.com/bmwcca/bmwcca-sso/internal/models"
	"github.com/bmwcca/bmwcca-sso/internal/xmltree"
	"github.com/sirupsen/logrus"
)

const (
	authenticationPath = "/CENSSAWEBSVCLIB.AUTHENTICATION"
	custInfoPath       = "/CENSSAWEBSVCLIB.GET_CUST_INFO_XML"

	// xmlDocField is the single form field carrying the request document.
	xmlDocField = "P_INPUT_XML_DOC"
)

// Credentials identify this integrator to the directory.
type Credentials struct {
	BaseURL  string
	Username string
	Password string
}

// Client implements directory operations over an HTTP collaborator.
type Client struct {
	creds  Credentials
	poster interfaces.HTTPPoster
}

// NewClient creates a directory client. Credentials are held for the client's lifetime.
func NewClient(creds Credentials, poster interfaces.HTTPPoster) (*Client, error) {
	if creds.BaseURL == "" {
		return nil, fmt.Errorf("integrator base URL is required")
	}
	if creds.Username == "" {
		return nil, fmt.Errorf("integrator username is required")
	}
	if creds.Password == "" {
		return nil, fmt.Errorf("integrator password is required")
	}
	if poster == nil {
		return nil, fmt.Errorf("http poster is required")
	}
	creds.BaseURL = strings.TrimRight(creds.BaseURL, "/")
	return &Client{creds: creds, poster: poster}, nil
}

// Authenticate checks end-user credentials against the directory.
// Rejected credentials return a nil user and a nil error.
func (c *Client) Authenticate(ctx context.Context, username string, password string) (*models.AuthenticatedUser, error) {
	body, err := buildAuthenticationRequest(c.creds, username, password)
	if err != nil {
		return nil, err
	}

	result, err := c.sendRequest(ctx, authenticationPath, body)
	if err != nil {
		return nil, fmt.Errorf("authenticating %s: %w", username, err)
	}

	user := parseAuthentication(result)
	logrus.WithFields(logrus.Fields{
		"username":      username,
		"authenticated": user != nil,
	}).Debug("directory authentication completed")
	return user, nil
}

// FetchMemberDetails retrieves name, member type, memberships and committee
// positions for a member number. A member unknown to the directory yields
// empty details for which Found reports false.
func (c *Client) FetchMemberDetails(ctx context.Context, memberNumber string, includeInactive bool) (*models.MemberDetails, error) {
	body, err := buildCustInfoRequest(c.creds, memberNumber, includeInactive)
	if err != nil {
		return nil, err
	}

	result, err := c.sendRequest(ctx, custInfoPath, body)
	if err != nil {
		return nil, fmt.Errorf("fetching member %s: %w", memberNumber, err)
	}

	details, err := parseMemberDetails(result)
	if err != nil {
		return nil, fmt.Errorf("fetching member %s: %w", memberNumber, err)
	}

	logrus.WithFields(logrus.Fields{
		"member_number": memberNumber,
		"found":         details.Found(),
		"memberships":   len(details.Memberships),
		"committees":    len(details.Committees),
	}).Debug("directory member details fetched")
	return details, nil
}

// sendRequest posts an XML document to the given operation path and parses
// the response into a generic tree. It never inspects the payload's meaning.
func (c *Client) sendRequest(ctx context.Context, path string, xmlBody string) (*xmltree.Node, error) {
	form := url.Values{}
	form.Set(xmlDocField, xmlBody)

	resp, err := c.poster.PostForm(ctx, c.creds.BaseURL+path, form)
	if err != nil {
		return nil, &RemoteServiceError{Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		logrus.WithFields(logrus.Fields{
			"path":   path,
			"status": resp.StatusCode,
		}).Warn("⚠ directory returned non-200 status")
		return nil, &RemoteServiceError{StatusCode: resp.StatusCode}
	}

	result, err := xmltree.Parse(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, err
	}
	return result, nil
}
