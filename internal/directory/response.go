package directory

import (
	"github.com/bmwcca/bmwcca-sso/internal/models"
	"github.com/bmwcca/bmwcca-sso/internal/xmltree"
)

const authenticatedTrue = "true"

// parseAuthentication maps an authentication response. Anything but
// authenticated=true yields nil.
func parseAuthentication(result *xmltree.Node) *models.AuthenticatedUser {
	if result.Path("authenticated") != authenticatedTrue {
		return nil
	}
	customer := result.Child("customer")
	return &models.AuthenticatedUser{
		LastName:     customer.Path("name", "last-name"),
		FirstName:    customer.Path("name", "first-name"),
		Email:        customer.Path("cust-email"),
		MemberNumber: customer.Path("cust-id"),
	}
}

// parseMemberDetails maps a customer info response. An empty result yields
// empty details; a result carrying an error element yields a RemoteServiceError.
func parseMemberDetails(result *xmltree.Node) (*models.MemberDetails, error) {
	if result.Has("error") {
		return nil, &RemoteServiceError{StatusCode: 200, Message: result.Path("error")}
	}

	details := models.NewMemberDetails()
	if result.IsEmpty() {
		return details, nil
	}

	details.FirstName = result.Path("name", "firstName")
	details.LastName = result.Path("name", "lastName")
	details.MemberType = models.ResolveMemberType(result.Child("roles").Texts("role"))

	for _, node := range result.Child("memberships").All("membership") {
		membership := models.Membership{
			GroupID:        node.Path("subgroupId"),
			GroupName:      node.Path("subgroupName"),
			Status:         node.Path("statusCode"),
			ExpirationDate: node.Path("expirationDate"),
			JoinDate:       node.Path("joinDate"),
		}
		details.Memberships[membership.GroupID] = membership
	}

	for _, node := range result.Child("committeePositions").All("committeePosition") {
		details.Committees = append(details.Committees, models.Committee{
			GroupID:                   node.Path("subgroupId"),
			GroupName:                 node.Path("subgroupName"),
			CommitteeType:             node.Path("committeeType"),
			CommitteeGroupDescription: node.Path("committeeGrpDescr"),
			CommitteeDescription:      node.Path("committeeDescr"),
			StartDate:                 node.Path("startDate"),
			PositionType:              node.Path("positionCode"),
			PositionDescription:       node.Path("positionDescr"),
		})
	}

	return details, nil
}
