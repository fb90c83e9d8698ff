package dto

import (
	"job-match/internal/domain/job"
	"job-match/internal/domain/matching"

	"github.com/google/uuid"
)

type JobResponse struct {
	JobID          uuid.UUID `json:"job_id"`
	ExternalID     string    `json:"external_id"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	EmploymentType string    `json:"employment_type"`
	WorkplaceModel string    `json:"workplace_model"`
	Salary         string    `json:"salary"`
	Description    string    `json:"description"`
	Posted         string    `json:"posted"`
	URL            string    `json:"url"`
	RequiredSkills []string  `json:"required_skills"`
}

type MatchResultResponse struct {
	MatchPercentage float64  `json:"match_percentage"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
}

type RankedJobResponse struct {
	JobResponse
	Match        MatchResultResponse `json:"match"`
	TurnoverRate int                 `json:"turnover_rate"`
}

type JobMatchResponse struct {
	JobID        uuid.UUID           `json:"job_id"`
	JobTitle     string              `json:"job_title"`
	Company      string              `json:"company"`
	TurnoverRate int                 `json:"turnover_rate"`
	Match        MatchResultResponse `json:"match"`
}

type JobStatsResponse struct {
	TotalJobs       int      `json:"total_jobs"`
	TotalCompanies  int      `json:"total_companies"`
	EmploymentTypes []string `json:"employment_types"`
}

func NewJobResponse(j job.Job) JobResponse {
	skills := j.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return JobResponse{
		JobID:          j.ID,
		ExternalID:     j.ExternalID,
		Title:          j.Title,
		Company:        j.Company,
		Location:       j.Location,
		EmploymentType: j.EmploymentType,
		WorkplaceModel: j.WorkplaceModel,
		Salary:         j.Salary,
		Description:    j.Description,
		Posted:         j.Posted,
		URL:            j.URL,
		RequiredSkills: skills,
	}
}

func NewMatchResultResponse(r matching.Result) MatchResultResponse {
	out := MatchResultResponse{
		MatchPercentage: r.MatchPercentage,
		MatchedSkills:   r.MatchedSkills,
		MissingSkills:   r.MissingSkills,
	}
	if out.MatchedSkills == nil {
		out.MatchedSkills = []string{}
	}
	if out.MissingSkills == nil {
		out.MissingSkills = []string{}
	}
	return out
}
