package resource

import (
	"strings"

	"github.com/xraph/scimcore/scimerr"
)

// Address is one element of the multi-valued "addresses" attribute
// (RFC 7643 §4.1.2). At least one component must be present; Country,
// when set, must be a two-letter ISO 3166-1 alpha-2 code.
type Address struct {
	Formatted     string `json:"formatted,omitempty"`
	StreetAddress string `json:"streetAddress,omitempty"`
	Locality      string `json:"locality,omitempty"`
	Region        string `json:"region,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
	Country       string `json:"country,omitempty"`
	Type          string `json:"type,omitempty"`
	Primary       bool   `json:"primary,omitempty"`
}

func NewAddress(a Address) (Address, error) {
	if a.Country != "" {
		if err := validateCountryCode(a.Country); err != nil {
			return Address{}, err
		}
	}
	if a.Formatted == "" && a.StreetAddress == "" && a.Locality == "" &&
		a.Region == "" && a.PostalCode == "" && a.Country == "" {
		return Address{}, scimerr.MissingRequired("addresses")
	}
	return a, nil
}

func validateCountryCode(country string) error {
	if len(country) != 2 {
		return scimerr.MalformedRequest("addresses.country must be 2 letters (ISO 3166-1 alpha-2)")
	}
	upper := strings.ToUpper(country)
	for _, r := range upper {
		if r < 'A' || r > 'Z' {
			return scimerr.MalformedRequest("addresses.country must contain only letters")
		}
	}
	if !iso3166Alpha2[upper] {
		return scimerr.MalformedRequest("addresses.country is not a recognised ISO 3166-1 alpha-2 code")
	}
	return nil
}

// iso3166Alpha2 is the current ISO 3166-1 alpha-2 country code set.
var iso3166Alpha2 = func() map[string]bool {
	codes := strings.Fields(`
		AD AE AF AG AI AL AM AO AQ AR AS AT AU AW AX AZ
		BA BB BD BE BF BG BH BI BJ BL BM BN BO BQ BR BS BT BV BW BY BZ
		CA CC CD CF CG CH CI CK CL CM CN CO CR CU CV CW CX CY CZ
		DE DJ DK DM DO DZ
		EC EE EG EH ER ES ET
		FI FJ FK FM FO FR
		GA GB GD GE GF GG GH GI GL GM GN GP GQ GR GS GT GU GW GY
		HK HM HN HR HT HU
		ID IE IL IM IN IO IQ IR IS IT
		JE JM JO JP
		KE KG KH KI KM KN KP KR KW KY KZ
		LA LB LC LI LK LR LS LT LU LV LY
		MA MC MD ME MF MG MH MK ML MM MN MO MP MQ MR MS MT MU MV MW MX MY MZ
		NA NC NE NF NG NI NL NO NP NR NU NZ
		OM
		PA PE PF PG PH PK PL PM PN PR PS PT PW PY
		QA
		RE RO RS RU RW
		SA SB SC SD SE SG SH SI SJ SK SL SM SN SO SR SS ST SV SX SY SZ
		TC TD TF TG TH TJ TK TL TM TN TO TR TT TV TW TZ
		UA UG UM US UY UZ
		VA VC VE VG VI VN VU
		WF WS
		YE YT
		ZA ZM ZW
	`)
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	return set
}()
