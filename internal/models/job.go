package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

type Job struct {
	BaseModel
	Title              string `gorm:"not null"`
	Company            string
	Location           string
	JobType            string
	Description        string
	Requirements       string
	SalaryRange        string // free text, e.g. "$80,000 - $120,000"
	ExperienceRequired *float64
	IsRemote           bool           `gorm:"default:false"`
	Status             JobStatus      `gorm:"type:varchar(20);default:'open'"`
	Skills             datatypes.JSON `gorm:"type:jsonb"` // strings or {name, proficiency}

	// Relations
	SkillRequirements []SkillRequirement `gorm:"foreignKey:JobID"`
}

// SkillRefs resolves the flat jsonb skill list into SkillRefs.
func (j *Job) SkillRefs() []SkillRef {
	return ParseSkillRefs(j.Skills)
}

// SkillNames returns the names from the flat skill list.
func (j *Job) SkillNames() []string {
	refs := j.SkillRefs()
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.Name)
	}
	return names
}

// SetSkills stores plain skill names into the jsonb column.
func (j *Job) SetSkills(skills []string) {
	data, _ := json.Marshal(skills)
	j.Skills = datatypes.JSON(data)
}

// SetRatedSkills stores {name, proficiency} skill objects.
func (j *Job) SetRatedSkills(refs []SkillRef) {
	type rated struct {
		Name        string  `json:"name"`
		Proficiency float64 `json:"proficiency"`
	}
	out := make([]rated, 0, len(refs))
	for _, r := range refs {
		out = append(out, rated{Name: r.Name, Proficiency: r.Proficiency})
	}
	data, _ := json.Marshal(out)
	j.Skills = datatypes.JSON(data)
}
