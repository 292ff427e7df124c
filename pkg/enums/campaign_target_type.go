package enums

import "fmt"

// CampaignTargetType identifies what a campaign target row points at.
type CampaignTargetType string

const (
	CampaignTargetProduct  CampaignTargetType = "product"
	CampaignTargetCategory CampaignTargetType = "category"
)

var validCampaignTargetTypes = []CampaignTargetType{
	CampaignTargetProduct,
	CampaignTargetCategory,
}

// String implements fmt.Stringer.
func (c CampaignTargetType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CampaignTargetType.
func (c CampaignTargetType) IsValid() bool {
	for _, candidate := range validCampaignTargetTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCampaignTargetType converts raw input into a CampaignTargetType.
func ParseCampaignTargetType(value string) (CampaignTargetType, error) {
	for _, candidate := range validCampaignTargetTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid campaign target type %q", value)
}
