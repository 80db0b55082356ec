package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// SkillRef is the single internal representation of a skill mention.
// Job postings store skills either as plain strings or as
// {name, proficiency} objects; both forms resolve to a SkillRef once,
// at ingestion, instead of being re-inspected throughout scoring.
type SkillRef struct {
	Name        string
	Proficiency float64
	Rated       bool // true when a proficiency was stated
}

// ParseSkillRefs decodes a jsonb skill list of mixed string/object form.
// Malformed entries are skipped, never fatal.
func ParseSkillRefs(data datatypes.JSON) []SkillRef {
	if len(data) == 0 {
		return nil
	}

	var raw []interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	refs := make([]SkillRef, 0, len(raw))
	for _, entry := range raw {
		switch v := entry.(type) {
		case string:
			if v != "" {
				refs = append(refs, SkillRef{Name: v})
			}
		case map[string]interface{}:
			name, _ := v["name"].(string)
			if name == "" {
				continue
			}
			ref := SkillRef{Name: name}
			if p, ok := v["proficiency"].(float64); ok {
				ref.Proficiency = p
				ref.Rated = true
			}
			refs = append(refs, ref)
		}
	}
	return refs
}

// SkillScore is a per-candidate skill proficiency record. A verified
// level may only come from a completed, passed assessment; self-rated
// levels are never authoritative.
type SkillScore struct {
	BaseModel
	CandidateID    string           `gorm:"index;not null"`
	SkillName      string           `gorm:"not null"`
	VerifiedLevel  float64          // 0-10
	SelfRatedLevel float64          // 0-10
	Status         SkillScoreStatus `gorm:"type:varchar(20);default:'claimed'"`
}

// EffectiveLevel prefers the verified level when the score is verified.
func (s *SkillScore) EffectiveLevel() float64 {
	if s.Status == SkillScoreVerified {
		return s.VerifiedLevel
	}
	return s.SelfRatedLevel
}

// SkillRequirement is a structured job-side skill requirement. When
// present it takes precedence over the job's flat skill list for
// proficiency-aware scoring.
type SkillRequirement struct {
	BaseModel
	JobID               string  `gorm:"index;not null"`
	Skill               string  `gorm:"not null"`
	RequiredProficiency float64 // 0-10
	Criticality         float64 // 0-1
	IsMandatory         bool    `gorm:"default:false"`
	Weight              float64 `gorm:"default:1.0"` // 0.1-3.0
}

// AssessmentAttempt records a completed skill assessment.
type AssessmentAttempt struct {
	BaseModel
	CandidateID string  `gorm:"index;not null"`
	SkillName   string  `gorm:"not null"`
	Percentage  float64 // 0-100
	Passed      bool
	CompletedAt *time.Time
}
