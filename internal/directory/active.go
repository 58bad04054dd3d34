package directory

import (
	"context"

	"github.com/sirupsen/logrus"
)

// DefaultChapterID is the national club group checked when no chapter is given.
const DefaultChapterID = "BMWCCA"

// IsMemberNumberActive reports whether the member holds an ACTIVE membership
// in chapterID (DefaultChapterID when empty).
//
// It is a best-effort predicate: any failure to fetch or read the details,
// including remote errors, an unknown member or a missing chapter, reports
// false. Callers treat unknown and inactive the same way.
func (c *Client) IsMemberNumberActive(ctx context.Context, memberNumber string, chapterID string) bool {
	if chapterID == "" {
		chapterID = DefaultChapterID
	}
	fields := logrus.Fields{
		"member_number": memberNumber,
		"chapter_id":    chapterID,
	}

	details, err := c.FetchMemberDetails(ctx, memberNumber, false)
	if err != nil {
		logrus.WithFields(fields).WithError(err).Debug("membership check failed, reporting inactive")
		return false
	}

	membership, ok := details.Membership(chapterID)
	if !ok {
		logrus.WithFields(fields).Debug("no membership for chapter, reporting inactive")
		return false
	}

	fields["status"] = membership.Status
	logrus.WithFields(fields).Debug("membership checked")
	return membership.IsActive()
}
