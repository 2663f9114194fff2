package models

import "strings"

// SkillLevel represents the user's technical skill tier, inferred from the
// way they describe their objective. It drives prompt phrasing throughout
// the wizard.
type SkillLevel string

const (
	// SkillBeginner indicates plain, non-technical language and general requests.
	SkillBeginner SkillLevel = "beginner"
	// SkillIntermediate indicates some technical aspects and specific functional needs.
	SkillIntermediate SkillLevel = "intermediate"
	// SkillAdvanced indicates precise technical terms and detailed implementation specifics.
	SkillAdvanced SkillLevel = "advanced"
)

// Valid returns true if the skill level is a known value.
func (s SkillLevel) Valid() bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return true
	default:
		return false
	}
}

// ParseSkillLevel normalizes a skill level string. Unrecognized values
// default to intermediate so that downstream prompt selection always has a
// usable tier.
func ParseSkillLevel(s string) SkillLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(SkillBeginner):
		return SkillBeginner
	case string(SkillAdvanced):
		return SkillAdvanced
	default:
		return SkillIntermediate
	}
}
