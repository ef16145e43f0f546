package models

import "time"

type JobStatus string

const (
	JobApplied   JobStatus = "Applied"
	JobInterview JobStatus = "Interview"
	JobOffer     JobStatus = "Offer"
	JobRejected  JobStatus = "Rejected"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobApplied, JobInterview, JobOffer, JobRejected:
		return true
	}
	return false
}

type Job struct {
	ID          string    `json:"id"`
	Company     string    `json:"company"`
	Role        string    `json:"role"`
	DateApplied string    `json:"dateApplied"`
	Status      JobStatus `json:"status"`
	Notes       string    `json:"notes"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type JobPatch struct {
	Company     *string
	Role        *string
	DateApplied *string
	Status      *JobStatus
	Notes       *string
}

func ValidJobs(jobs []Job) bool {
	for _, j := range jobs {
		if j.ID == "" || j.Company == "" || !j.Status.Valid() {
			return false
		}
	}
	return true
}

type JobAnalytics struct {
	Total         int
	Interviews    int
	Offers        int
	InterviewRate float64
	OfferRate     float64
}

func AnalyzeJobs(jobs []Job) JobAnalytics {
	a := JobAnalytics{Total: len(jobs)}
	for _, j := range jobs {
		switch j.Status {
		case JobInterview:
			a.Interviews++
		case JobOffer:
			a.Offers++
		}
	}
	if a.Total > 0 {
		a.InterviewRate = float64(a.Interviews) / float64(a.Total) * 100
		a.OfferRate = float64(a.Offers) / float64(a.Total) * 100
	}
	return a
}
