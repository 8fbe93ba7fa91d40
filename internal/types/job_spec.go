package types

// JobSpec is the structured output of job-posting ingestion and the input
// to document generation. The ingestion side (fetch + LLM extraction) is a
// collaborator; generation only consumes this shape.
type JobSpec struct {
	JobTitle       string `json:"job_title"`
	CompanyName    string `json:"company_name"`
	JobDescription string `json:"job_description"`
	CompanyURL     string `json:"company_url,omitempty"`
}

// Valid reports whether the spec carries the fields generation requires
func (j *JobSpec) Valid() bool {
	return j != nil && j.JobTitle != "" && j.CompanyName != "" && j.JobDescription != ""
}
