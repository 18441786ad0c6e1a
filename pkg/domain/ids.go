// Package domain holds identifier and enum types shared across modules.
//
// IDs for actors (students, institutions, companies) are opaque strings
// supplied by the caller at registration time. IDs for records this system
// creates (applications, admissions, jobs, applicant records) are UUIDs
// generated at write time.
package domain

import "github.com/google/uuid"

// Caller-supplied actor and catalog identifiers.
type (
	StudentID     string
	InstitutionID string
	CompanyID     string
	FacultyID     string
	CourseID      string
)

func (id StudentID) String() string     { return string(id) }
func (id InstitutionID) String() string { return string(id) }
func (id CompanyID) String() string     { return string(id) }
func (id FacultyID) String() string     { return string(id) }
func (id CourseID) String() string      { return string(id) }

func (id StudentID) IsZero() bool     { return id == "" }
func (id InstitutionID) IsZero() bool { return id == "" }
func (id CompanyID) IsZero() bool     { return id == "" }
func (id FacultyID) IsZero() bool     { return id == "" }
func (id CourseID) IsZero() bool      { return id == "" }

// Generated record identifiers.
type (
	ApplicationID string
	AdmissionID   string
	JobID         string
	ApplicantID   string
	DocumentID    string
	AccountID     string
)

func (id ApplicationID) String() string { return string(id) }
func (id AdmissionID) String() string   { return string(id) }
func (id JobID) String() string         { return string(id) }
func (id ApplicantID) String() string   { return string(id) }
func (id DocumentID) String() string    { return string(id) }
func (id AccountID) String() string     { return string(id) }

func (id ApplicationID) IsZero() bool { return id == "" }
func (id JobID) IsZero() bool         { return id == "" }

// NewApplicationID mints a fresh application identifier.
func NewApplicationID() ApplicationID { return ApplicationID(uuid.NewString()) }

// NewAdmissionID mints a fresh admission identifier.
func NewAdmissionID() AdmissionID { return AdmissionID(uuid.NewString()) }

// NewJobID mints a fresh job identifier.
func NewJobID() JobID { return JobID(uuid.NewString()) }

// NewApplicantID mints a fresh applicant record identifier.
func NewApplicantID() ApplicantID { return ApplicantID(uuid.NewString()) }

// NewDocumentID mints a fresh document metadata identifier.
func NewDocumentID() DocumentID { return DocumentID(uuid.NewString()) }

// NewFacultyID mints a fresh faculty identifier for catalog entries created
// server-side.
func NewFacultyID() FacultyID { return FacultyID(uuid.NewString()) }

// NewCourseID mints a fresh course identifier for catalog entries created
// server-side.
func NewCourseID() CourseID { return CourseID(uuid.NewString()) }
