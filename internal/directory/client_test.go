package directory

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/bmwcca/bmwcca-sso/internal/interfaces"
	"github.com/bmwcca/bmwcca-sso/internal/models"
	"github.com/bmwcca/bmwcca-sso/internal/xmltree"
)

var _ interfaces.DirectoryClient = (*Client)(nil)
var _ interfaces.DirectoryClient = (*MockClient)(nil)

type fakePoster struct {
	status int
	body   string
	err    error

	calls   int
	lastURL string
	lastDoc string
}

func (f *fakePoster) PostForm(ctx context.Context, target string, form url.Values) (*models.HTTPResponse, error) {
	f.calls++
	f.lastURL = target
	f.lastDoc = form.Get("P_INPUT_XML_DOC")
	if f.err != nil {
		return nil, f.err
	}
	status := f.status
	if status == 0 {
		status = 200
	}
	return &models.HTTPResponse{StatusCode: status, Body: []byte(f.body)}, nil
}

func testCredentials() Credentials {
	return Credentials{
		BaseURL:  "https://directory.example.com/pls/prod/",
		Username: "integrator",
		Password: "s3cret",
	}
}

func newTestClient(t *testing.T, poster *fakePoster) *Client {
	t.Helper()
	client, err := NewClient(testCredentials(), poster)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return client
}

const authenticatedResponse = `<?xml version="1.0"?>
<authentication-response>
  <authenticated>true</authenticated>
  <customer>
    <cust-id>12345</cust-id>
    <cust-email>jane@example.com</cust-email>
    <name>
      <first-name>Jane</first-name>
      <last-name>Doe</last-name>
    </name>
  </customer>
</authentication-response>`

const detailsResponse = `<?xml version="1.0"?>
<custInfoResponse>
  <name><firstName>Jane</firstName><lastName>Doe</lastName></name>
  <roles><role>ASSOCIATE</role><role>PRIMARY</role></roles>
  <memberships>
    <membership>
      <subgroupId>BMWCCA</subgroupId>
      <subgroupName>BMW Car Club of America</subgroupName>
      <statusCode>ACTIVE</statusCode>
      <expirationDate>2027-01-31</expirationDate>
      <joinDate>2010-05-01</joinDate>
    </membership>
    <membership>
      <subgroupId>CH042</subgroupId>
      <subgroupName>Golden Gate Chapter</subgroupName>
      <statusCode>EXPIRED</statusCode>
      <expirationDate>2020-01-31</expirationDate>
      <joinDate>2012-03-01</joinDate>
    </membership>
  </memberships>
  <committeePositions>
    <committeePosition>
      <subgroupId>CH042</subgroupId>
      <subgroupName>Golden Gate Chapter</subgroupName>
      <committeeType>BOARD</committeeType>
      <committeeGrpDescr>Chapter Board</committeeGrpDescr>
      <committeeDescr>Board of Directors</committeeDescr>
      <startDate>2021-01-01</startDate>
      <positionCode>PRES</positionCode>
      <positionDescr>President</positionDescr>
    </committeePosition>
    <committeePosition>
      <subgroupId>CH042</subgroupId>
      <subgroupName>Golden Gate Chapter</subgroupName>
      <committeeType>EVENTS</committeeType>
      <committeeGrpDescr>Events</committeeGrpDescr>
      <committeeDescr>Driving Events</committeeDescr>
      <startDate>2022-06-01</startDate>
      <positionCode>CHAIR</positionCode>
      <positionDescr>Chair</positionDescr>
    </committeePosition>
  </committeePositions>
</custInfoResponse>`

func TestNewClientValidatesCredentials(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Credentials)
	}{
		{name: "missing base url", mutate: func(c *Credentials) { c.BaseURL = "" }},
		{name: "missing username", mutate: func(c *Credentials) { c.Username = "" }},
		{name: "missing password", mutate: func(c *Credentials) { c.Password = "" }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			creds := testCredentials()
			tc.mutate(&creds)
			if _, err := NewClient(creds, &fakePoster{}); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}

	if _, err := NewClient(testCredentials(), nil); err == nil {
		t.Fatalf("expected error for nil poster, got nil")
	}
}

func TestAuthenticateSuccess(t *testing.T) {
	poster := &fakePoster{body: authenticatedResponse}
	client := newTestClient(t, poster)

	user, err := client.Authenticate(context.Background(), "jdoe", "pa<ss]]>word")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user == nil {
		t.Fatalf("expected user, got nil")
	}
	want := models.AuthenticatedUser{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", MemberNumber: "12345"}
	if *user != want {
		t.Fatalf("expected %#v, got %#v", want, *user)
	}
	if poster.lastURL != "https://directory.example.com/pls/prod/CENSSAWEBSVCLIB.AUTHENTICATION" {
		t.Fatalf("unexpected url %s", poster.lastURL)
	}

	doc, err := xmltree.Parse(strings.NewReader(poster.lastDoc))
	if err != nil {
		t.Fatalf("expected well-formed request, got %v", err)
	}
	if doc.Name != "authentication-request" {
		t.Fatalf("expected authentication-request root, got %s", doc.Name)
	}
	if doc.Path("integratorUsername") != "integrator" || doc.Path("integratorPassword") != "s3cret" {
		t.Fatalf("expected integrator credentials in request, got %s", poster.lastDoc)
	}
	if doc.Path("username") != "jdoe" {
		t.Fatalf("expected username jdoe, got %q", doc.Path("username"))
	}
	if doc.Path("password") != "pa<ss]]>word" {
		t.Fatalf("expected password to survive as character data, got %q", doc.Path("password"))
	}
	if !strings.Contains(poster.lastDoc, "<![CDATA[") {
		t.Fatalf("expected password wrapped in CDATA, got %s", poster.lastDoc)
	}
}

func TestAuthenticateRejected(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "authenticated false", body: `<authentication-response><authenticated>false</authenticated></authentication-response>`},
		{name: "authenticated missing", body: `<authentication-response><message>bad login</message></authentication-response>`},
		{name: "authenticated uppercase", body: `<authentication-response><authenticated>TRUE</authenticated></authentication-response>`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, &fakePoster{body: tc.body})
			user, err := client.Authenticate(context.Background(), "jdoe", "wrong")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if user != nil {
				t.Fatalf("expected nil user, got %#v", user)
			}
		})
	}
}

func TestAuthenticateNon200(t *testing.T) {
	client := newTestClient(t, &fakePoster{status: 503})
	_, err := client.Authenticate(context.Background(), "jdoe", "pw")
	var remoteErr *RemoteServiceError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected RemoteServiceError, got %v", err)
	}
	if remoteErr.StatusCode != 503 {
		t.Fatalf("expected status 503, got %d", remoteErr.StatusCode)
	}
}

func TestFetchMemberDetails(t *testing.T) {
	poster := &fakePoster{body: detailsResponse}
	client := newTestClient(t, poster)

	details, err := client.FetchMemberDetails(context.Background(), "12345", false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if poster.lastURL != "https://directory.example.com/pls/prod/CENSSAWEBSVCLIB.GET_CUST_INFO_XML" {
		t.Fatalf("unexpected url %s", poster.lastURL)
	}
	if details.FirstName != "Jane" || details.LastName != "Doe" {
		t.Fatalf("unexpected name %s %s", details.FirstName, details.LastName)
	}
	if details.MemberType != models.MemberTypePrimary {
		t.Fatalf("expected PRIMARY, got %s", details.MemberType)
	}
	if len(details.Memberships) != 2 {
		t.Fatalf("expected 2 memberships, got %d", len(details.Memberships))
	}
	national := details.Memberships["BMWCCA"]
	want := models.Membership{
		GroupID:        "BMWCCA",
		GroupName:      "BMW Car Club of America",
		Status:         "ACTIVE",
		ExpirationDate: "2027-01-31",
		JoinDate:       "2010-05-01",
	}
	if national != want {
		t.Fatalf("expected %#v, got %#v", want, national)
	}
	if len(details.Committees) != 2 {
		t.Fatalf("expected 2 committees, got %d", len(details.Committees))
	}
	if details.Committees[0].PositionType != "PRES" || details.Committees[1].PositionType != "CHAIR" {
		t.Fatalf("expected committees in source order, got %#v", details.Committees)
	}
	first := details.Committees[0]
	if first.CommitteeGroupDescription != "Chapter Board" || first.CommitteeDescription != "Board of Directors" ||
		first.PositionDescription != "President" || first.StartDate != "2021-01-01" || first.CommitteeType != "BOARD" {
		t.Fatalf("unexpected committee mapping %#v", first)
	}
}

func TestFetchMemberDetailsSingleMembership(t *testing.T) {
	body := `<r>
  <name><firstName>A</firstName><lastName>B</lastName></name>
  <roles><role>ASSOCIATE</role></roles>
  <memberships><membership><subgroupId>BMWCCA</subgroupId><statusCode>ACTIVE</statusCode></membership></memberships>
</r>`
	client := newTestClient(t, &fakePoster{body: body})

	details, err := client.FetchMemberDetails(context.Background(), "1", false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(details.Memberships) != 1 {
		t.Fatalf("expected exactly 1 membership, got %d", len(details.Memberships))
	}
	if details.MemberType != models.MemberTypeAssociate {
		t.Fatalf("expected ASSOCIATE, got %s", details.MemberType)
	}
	if details.Committees == nil || len(details.Committees) != 0 {
		t.Fatalf("expected empty committees when section is absent, got %#v", details.Committees)
	}
}

func TestFetchMemberDetailsSingleCommitteePosition(t *testing.T) {
	body := `<r>
  <roles><role>PRIMARY</role></roles>
  <committeePositions>
    <committeePosition><subgroupId>CH042</subgroupId><positionCode>TREAS</positionCode></committeePosition>
  </committeePositions>
</r>`
	client := newTestClient(t, &fakePoster{body: body})

	details, err := client.FetchMemberDetails(context.Background(), "1", false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(details.Committees) != 1 {
		t.Fatalf("expected exactly 1 committee, got %d", len(details.Committees))
	}
	if details.Committees[0].GroupID != "CH042" || details.Committees[0].PositionType != "TREAS" {
		t.Fatalf("unexpected committee %#v", details.Committees[0])
	}
}

func TestFetchMemberDetailsDuplicateGroupLastWins(t *testing.T) {
	body := `<r>
  <roles><role>PRIMARY</role></roles>
  <memberships>
    <membership><subgroupId>BMWCCA</subgroupId><statusCode>EXPIRED</statusCode></membership>
    <membership><subgroupId>BMWCCA</subgroupId><statusCode>ACTIVE</statusCode></membership>
  </memberships>
</r>`
	client := newTestClient(t, &fakePoster{body: body})

	details, err := client.FetchMemberDetails(context.Background(), "1", false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(details.Memberships) != 1 {
		t.Fatalf("expected 1 membership, got %d", len(details.Memberships))
	}
	if details.Memberships["BMWCCA"].Status != "ACTIVE" {
		t.Fatalf("expected later duplicate to win, got %s", details.Memberships["BMWCCA"].Status)
	}
}

func TestFetchMemberDetailsRemoteError(t *testing.T) {
	client := newTestClient(t, &fakePoster{body: `<custInfoResponse><error>not found</error></custInfoResponse>`})

	details, err := client.FetchMemberDetails(context.Background(), "999", false)
	if details != nil {
		t.Fatalf("expected no partial details, got %#v", details)
	}
	var remoteErr *RemoteServiceError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected RemoteServiceError, got %v", err)
	}
	if remoteErr.Message != "not found" {
		t.Fatalf("expected message 'not found', got %q", remoteErr.Message)
	}
	if !IsRemoteServiceError(err) {
		t.Fatalf("expected IsRemoteServiceError to match")
	}
}

func TestFetchMemberDetailsEmptyResult(t *testing.T) {
	client := newTestClient(t, &fakePoster{body: `<?xml version="1.0"?><custInfoResponse/>`})

	details, err := client.FetchMemberDetails(context.Background(), "0", false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if details.Found() {
		t.Fatalf("expected empty details to be not found")
	}
	if details.FirstName != "" || len(details.Memberships) != 0 || len(details.Committees) != 0 {
		t.Fatalf("expected all fields empty, got %#v", details)
	}
}

func TestFetchMemberDetailsMalformedBody(t *testing.T) {
	client := newTestClient(t, &fakePoster{body: `<html><body>maintenance`})

	if _, err := client.FetchMemberDetails(context.Background(), "1", false); err == nil {
		t.Fatalf("expected parse error, got nil")
	}
}

func TestFetchMemberDetailsTransportError(t *testing.T) {
	client := newTestClient(t, &fakePoster{err: errors.New("connection refused")})

	_, err := client.FetchMemberDetails(context.Background(), "1", false)
	if !IsRemoteServiceError(err) {
		t.Fatalf("expected RemoteServiceError, got %v", err)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("expected cause in error, got %v", err)
	}
}

func TestSendRequestDoesNotRetry(t *testing.T) {
	poster := &fakePoster{status: 500}
	client := newTestClient(t, poster)

	if _, err := client.FetchMemberDetails(context.Background(), "1", false); err == nil {
		t.Fatalf("expected error, got nil")
	}
	if poster.calls != 1 {
		t.Fatalf("expected exactly 1 call, got %d", poster.calls)
	}
}
