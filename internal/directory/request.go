package directory

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// xmlDeclaration is the exact prolog the directory expects.
const xmlDeclaration = `<?xml version="1.0"?>` + "\n"

type cdata struct {
	Value string `xml:",cdata"`
}

type authenticationRequest struct {
	XMLName            xml.Name `xml:"authentication-request"`
	IntegratorUsername string   `xml:"integratorUsername"`
	IntegratorPassword string   `xml:"integratorPassword"`
	Username           string   `xml:"username"`
	Password           cdata    `xml:"password"`
}

type custInfoRequest struct {
	XMLName            xml.Name       `xml:"custInfoRequest"`
	CustID             string         `xml:"custId"`
	IntegratorUsername string         `xml:"integratorUsername"`
	IntegratorPassword string         `xml:"integratorPassword"`
	BulkRequest        bool           `xml:"bulkRequest"`
	Details            requestDetails `xml:"details"`
}

type requestDetails struct {
	IncludeCodeValues  bool            `xml:"includeCodeValues,attr"`
	Roles              includeFlag     `xml:"roles"`
	CommitteePositions committeeFlags  `xml:"committeePositions"`
	Memberships        membershipFlags `xml:"memberships"`
}

type includeFlag struct {
	Include bool `xml:"include,attr"`
}

type committeeFlags struct {
	Include         bool   `xml:"include,attr"`
	IncludeInactive string `xml:"includeInactive,attr"`
}

type membershipFlags struct {
	Include              bool   `xml:"include,attr"`
	IncludeInactive      string `xml:"includeInactive,attr"`
	IncludeInactiveSlots string `xml:"includeInactiveSlots,attr"`
}

// buildAuthenticationRequest renders the login document. All values are
// escaped by the encoder; the end-user password is also wrapped in CDATA.
func buildAuthenticationRequest(creds Credentials, username string, password string) (string, error) {
	return render(authenticationRequest{
		IntegratorUsername: creds.Username,
		IntegratorPassword: creds.Password,
		Username:           username,
		Password:           cdata{Value: password},
	})
}

func buildCustInfoRequest(creds Credentials, memberNumber string, includeInactive bool) (string, error) {
	flag := strconv.FormatBool(includeInactive)
	return render(custInfoRequest{
		CustID:             memberNumber,
		IntegratorUsername: creds.Username,
		IntegratorPassword: creds.Password,
		BulkRequest:        false,
		Details: requestDetails{
			IncludeCodeValues: true,
			Roles:             includeFlag{Include: true},
			CommitteePositions: committeeFlags{
				Include:         true,
				IncludeInactive: flag,
			},
			Memberships: membershipFlags{
				Include:              true,
				IncludeInactive:      flag,
				IncludeInactiveSlots: flag,
			},
		},
	})
}

func render(doc interface{}) (string, error) {
	body, err := xml.MarshalIndent(doc, "", "    ")
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}
	return xmlDeclaration + string(body), nil
}
