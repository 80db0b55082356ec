package models

import "strings"

// Document flattens the candidate profile into one free-text document
// for TF-IDF vectorization.
func (c *Candidate) Document() string {
	var parts []string
	parts = append(parts, c.Skills, c.Objective, c.JobTitle, c.Industry)
	for _, p := range c.GetProjects() {
		parts = append(parts, p.Title, p.Description)
	}
	for _, cert := range c.GetCertifications() {
		parts = append(parts, cert.Name)
	}
	for _, w := range c.GetWorkExperience() {
		parts = append(parts, w.Title, w.Company)
	}
	return strings.Join(parts, " ")
}

// Document flattens the job posting into one free-text document.
func (j *Job) Document() string {
	parts := []string{j.Title, j.Description, j.Requirements, j.Company}
	parts = append(parts, j.SkillNames()...)
	for _, req := range j.SkillRequirements {
		parts = append(parts, req.Skill)
	}
	return strings.Join(parts, " ")
}
