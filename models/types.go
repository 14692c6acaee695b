package models

import "time"

// Exam type constants
const (
	TypeParcial      = "Parcial"
	TypeFinal        = "Final"
	TypeSustitutorio = "Sustitutorio"
)

// Period constants
const (
	PeriodFirst  = "1"
	PeriodSecond = "2"
)

// Oldest academic year accepted for an exam
const MinExamYear = 2020

// DefaultAdminName is shown when an admin account carries no display name
const DefaultAdminName = "Administrador URP"

// Auth event constants
type AuthEvent string

const (
	EventSignedIn       AuthEvent = "SIGNED_IN"
	EventSignedOut      AuthEvent = "SIGNED_OUT"
	EventTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
)

type Career struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Careers is the fixed set of programs exams are filed under
var Careers = []Career{
	{Key: "informatica", Name: "Ingeniería Informática"},
	{Key: "civil", Name: "Ingeniería Civil"},
	{Key: "mecatronica", Name: "Ingeniería Mecatrónica"},
	{Key: "industrial", Name: "Ingeniería Industrial"},
	{Key: "electricidad", Name: "Ingeniería de Electricidad"},
}

// FindCareer looks up a career by key
func FindCareer(key string) (Career, bool) {
	for _, c := range Careers {
		if c.Key == key {
			return c, true
		}
	}
	return Career{}, false
}

// Domain types

type Exam struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Course    string    `json:"course"`
	Career    string    `json:"career"`
	Cycle     string    `json:"cycle"`
	Type      string    `json:"type"`
	Period    string    `json:"period"`
	Year      int       `json:"year"`
	ExamURL   string    `json:"exam_url"`
	CreatedAt time.Time `json:"created_at"`
}

// ExamInput is the insert payload; the service fills id and created_at
type ExamInput struct {
	Title   string `json:"title" validate:"required"`
	Course  string `json:"course" validate:"required"`
	Career  string `json:"career" validate:"required,career"`
	Cycle   string `json:"cycle" validate:"omitempty,cycle"`
	Type    string `json:"type" validate:"omitempty,examtype"`
	Period  string `json:"period" validate:"omitempty,period"`
	Year    int    `json:"year" validate:"examyear"`
	ExamURL string `json:"exam_url" validate:"required,url"`
}

// ExamPatch is a partial update; nil fields are left untouched
type ExamPatch struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,min=1"`
	Course  *string `json:"course,omitempty" validate:"omitempty,min=1"`
	Career  *string `json:"career,omitempty" validate:"omitempty,career"`
	Cycle   *string `json:"cycle,omitempty" validate:"omitempty,cycle"`
	Type    *string `json:"type,omitempty" validate:"omitempty,examtype"`
	Period  *string `json:"period,omitempty" validate:"omitempty,period"`
	Year    *int    `json:"year,omitempty" validate:"omitempty,examyear"`
	ExamURL *string `json:"exam_url,omitempty" validate:"omitempty,url"`
}

// Empty reports whether the patch changes nothing
func (p ExamPatch) Empty() bool {
	return p.Title == nil && p.Course == nil && p.Career == nil && p.Cycle == nil &&
		p.Type == nil && p.Period == nil && p.Year == nil && p.ExamURL == nil
}

// Apply returns a copy of e with the patch fields set
func (p ExamPatch) Apply(e Exam) Exam {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Course != nil {
		e.Course = *p.Course
	}
	if p.Career != nil {
		e.Career = *p.Career
	}
	if p.Cycle != nil {
		e.Cycle = *p.Cycle
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Period != nil {
		e.Period = *p.Period
	}
	if p.Year != nil {
		e.Year = *p.Year
	}
	if p.ExamURL != nil {
		e.ExamURL = *p.ExamURL
	}
	return e
}

type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

type AdminSession struct {
	ID        string    `json:"id"`
	AdminID   string    `json:"admin_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// User is the public view of an authenticated admin
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type Session struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}

// Request types

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Response types

type CareerSummary struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type ExamListResponse struct {
	Exams []Exam `json:"exams"`
	Count int    `json:"count"`
	// Last load error of the server-side catalog, if any
	LoadError string `json:"load_error,omitempty"`
}

type CareerExamsResponse struct {
	Career Career `json:"career"`
	Exams  []Exam `json:"exams"`
	Count  int    `json:"count"`
}

type YearsResponse struct {
	Years []int `json:"years"`
}

type ReloadResponse struct {
	Count int `json:"count"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
