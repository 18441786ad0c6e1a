package domain

// QualificationStatus buckets a scored job applicant.
type QualificationStatus string

const (
	Qualified    QualificationStatus = "qualified"
	NotQualified QualificationStatus = "not_qualified"
)

func (q QualificationStatus) String() string { return string(q) }

// IsQualified reports whether the applicant cleared the scoring threshold.
func (q QualificationStatus) IsQualified() bool { return q == Qualified }
