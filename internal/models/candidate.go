package models

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
)

type Candidate struct {
	BaseModel
	Name            string   `gorm:"not null"`
	Email           string   `gorm:"uniqueIndex;not null"`
	UserType        UserType `gorm:"type:varchar(20);default:'job_seeker'"`
	JobTitle        string
	Objective       string
	Skills          string // comma separated skill names
	DegreeName      string
	CGPA            *float64
	ExperienceYears *float64
	Location        string
	Industry        string
	Projects        datatypes.JSON `gorm:"type:jsonb"`
	Certifications  datatypes.JSON `gorm:"type:jsonb"`
	WorkExperience  datatypes.JSON `gorm:"type:jsonb"`

	// Relations
	SkillScores []SkillScore `gorm:"foreignKey:CandidateID"`
	Preference  *Preference  `gorm:"foreignKey:CandidateID"`
}

type ProjectEntry struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CertificationEntry struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
}

type WorkExperienceEntry struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Duration string `json:"duration"`
}

// SkillList returns the candidate's skills as a trimmed slice.
func (c *Candidate) SkillList() []string {
	if strings.TrimSpace(c.Skills) == "" {
		return nil
	}
	parts := strings.Split(c.Skills, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

func (c *Candidate) GetProjects() []ProjectEntry {
	var projects []ProjectEntry
	if len(c.Projects) > 0 {
		_ = json.Unmarshal(c.Projects, &projects)
	}
	return projects
}

func (c *Candidate) GetCertifications() []CertificationEntry {
	var certs []CertificationEntry
	if len(c.Certifications) > 0 {
		_ = json.Unmarshal(c.Certifications, &certs)
	}
	return certs
}

func (c *Candidate) GetWorkExperience() []WorkExperienceEntry {
	var entries []WorkExperienceEntry
	if len(c.WorkExperience) > 0 {
		_ = json.Unmarshal(c.WorkExperience, &entries)
	}
	return entries
}

func (c *Candidate) SetProjects(projects []ProjectEntry) {
	data, _ := json.Marshal(projects)
	c.Projects = datatypes.JSON(data)
}

func (c *Candidate) SetCertifications(certs []CertificationEntry) {
	data, _ := json.Marshal(certs)
	c.Certifications = datatypes.JSON(data)
}

func (c *Candidate) SetWorkExperience(entries []WorkExperienceEntry) {
	data, _ := json.Marshal(entries)
	c.WorkExperience = datatypes.JSON(data)
}
