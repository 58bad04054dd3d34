package models

// MemberType is the member's role in the directory, derived from its role list.
type MemberType string

const (
	MemberTypePrimary   MemberType = "PRIMARY"
	MemberTypeAssociate MemberType = "ASSOCIATE"
	MemberTypeUnknown   MemberType = "UNKNOWN"
)

// MembershipStatusActive is the status code of a current membership.
const MembershipStatusActive = "ACTIVE"

// ResolveMemberType applies role precedence: PRIMARY wins over ASSOCIATE, regardless of order.
func ResolveMemberType(roles []string) MemberType {
	var associate bool
	for _, role := range roles {
		switch MemberType(role) {
		case MemberTypePrimary:
			return MemberTypePrimary
		case MemberTypeAssociate:
			associate = true
		}
	}
	if associate {
		return MemberTypeAssociate
	}
	return MemberTypeUnknown
}

// AuthenticatedUser is the directory customer returned by a successful login.
type AuthenticatedUser struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	MemberNumber string `json:"member_number"`
}

// MemberDetails holds a member's name, type, chapter memberships and committee positions.
type MemberDetails struct {
	FirstName   string                `json:"first_name"`
	LastName    string                `json:"last_name"`
	MemberType  MemberType            `json:"member_type,omitempty"`
	Memberships map[string]Membership `json:"memberships"`
	Committees  []Committee           `json:"committees"`
}

// NewMemberDetails returns an empty record with initialized collections.
func NewMemberDetails() *MemberDetails {
	return &MemberDetails{
		Memberships: map[string]Membership{},
		Committees:  []Committee{},
	}
}

// Found reports whether the directory returned any data for the member.
func (d *MemberDetails) Found() bool {
	return d != nil && d.MemberType != ""
}

// Membership returns the membership for a group ID.
func (d *MemberDetails) Membership(groupID string) (Membership, bool) {
	if d == nil {
		return Membership{}, false
	}
	m, ok := d.Memberships[groupID]
	return m, ok
}

// Membership is a member's subscription to one group (chapter).
type Membership struct {
	GroupID        string `json:"group_id"`
	GroupName      string `json:"group_name"`
	Status         string `json:"status"`
	ExpirationDate string `json:"expires"`
	JoinDate       string `json:"joined"`
}

// IsActive returns true if the membership status is ACTIVE.
func (m Membership) IsActive() bool {
	return m.Status == MembershipStatusActive
}

// Committee is a single committee position held by a member.
type Committee struct {
	GroupID                   string `json:"group_id"`
	GroupName                 string `json:"group_name"`
	CommitteeType             string `json:"committee_type"`
	CommitteeGroupDescription string `json:"committee_group_description"`
	CommitteeDescription      string `json:"committee_description"`
	StartDate                 string `json:"start_date"`
	PositionType              string `json:"position_type"`
	PositionDescription       string `json:"position_description"`
}
