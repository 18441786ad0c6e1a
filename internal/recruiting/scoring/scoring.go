// Package scoring holds the qualification formula used to gate job
// applicants. Pure functions, no I/O.
package scoring

import id "careerhub/pkg/domain"

// QualificationThreshold is the minimum final score for a "qualified"
// verdict. An applicant scoring exactly the threshold qualifies.
const QualificationThreshold = 60

// Weights applied to each input. The formula is
//
//	final = academic + 5*certificates + 2*workExperienceYears + relevance
const (
	certificateWeight    = 5
	workExperienceWeight = 2
)

// Input carries the four scoring inputs. Absent or malformed values are
// coerced to zero at the transport boundary, so zero values here are
// legitimate inputs, not errors.
type Input struct {
	AcademicScore       float64
	CertificateCount    int
	WorkExperienceYears float64
	RelevanceScore      float64
}

// FinalScore computes the deterministic final score. It has no error
// conditions: every Input is scorable.
func FinalScore(in Input) float64 {
	return in.AcademicScore +
		float64(in.CertificateCount)*certificateWeight +
		in.WorkExperienceYears*workExperienceWeight +
		in.RelevanceScore
}

// Classify buckets a final score against the threshold.
func Classify(finalScore float64) id.QualificationStatus {
	if finalScore >= QualificationThreshold {
		return id.Qualified
	}
	return id.NotQualified
}
