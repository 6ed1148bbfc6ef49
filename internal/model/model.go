package model

// RoleKind is the closed set of roles the authorization checks switch over.
// Role rows in the store carry the same names; anything else is rejected at
// token issuance.
type RoleKind string

const (
	RoleEmployee RoleKind = "Employee"
	RoleLead     RoleKind = "Lead"
	RoleHR       RoleKind = "HR"
)

func ParseRoleKind(s string) (RoleKind, bool) {
	switch RoleKind(s) {
	case RoleEmployee, RoleLead, RoleHR:
		return RoleKind(s), true
	default:
		return "", false
	}
}

// Caller is the authenticated request context the middleware derives from a
// bearer token. Services trust it and do not re-verify identity.
type Caller struct {
	EmployeeID    int
	Name          string
	Role          RoleKind
	DesignationID int
	TeamID        int
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

type LoginUser struct {
	EmployeeID      int    `json:"employee_id"`
	EmployeeName    string `json:"employee_name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	DesignationID   int    `json:"designation_id"`
	DesignationName string `json:"designation_name"`
	TeamID          int    `json:"team_id"`
	TeamName        string `json:"team_name"`
}

type CategoryInput struct {
	CategoryID int  `json:"category_id" binding:"required"`
	IsPrimary  bool `json:"is_primary"`
}

type RegisterRequest struct {
	EmployeeName  string          `json:"employee_name" binding:"required"`
	Email         string          `json:"email" binding:"required"`
	Password      string          `json:"password" binding:"required"`
	RoleID        int             `json:"role_id" binding:"required"`
	DesignationID int             `json:"designation_id" binding:"required"`
	TeamID        *int            `json:"team_id"`
	HrID          *int            `json:"hr_id"`
	Categories    []CategoryInput `json:"categories" binding:"required"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type EmployeeRatingInput struct {
	SkillMatrixID  int `json:"skill_matrix_id" binding:"required"`
	EmployeeRating int `json:"employee_rating" binding:"required"`
}

type SubmitAssessmentRequest struct {
	AssessmentID int                   `json:"assessment_id"`
	Ratings      []EmployeeRatingInput `json:"ratings" binding:"required,min=1"`
}

type LeadRatingInput struct {
	SkillID    int `json:"skill_id" binding:"required"`
	LeadRating int `json:"lead_rating" binding:"required"`
}

type SubmitLeadRatingRequest struct {
	AssessmentID int               `json:"assessment_id" binding:"required"`
	EmployeeID   int               `json:"employee_id" binding:"required"`
	LeadComments string            `json:"lead_comments"`
	Ratings      []LeadRatingInput `json:"ratings" binding:"required,min=1"`
}

type ApproveAssessmentRequest struct {
	AssessmentID int    `json:"assessment_id" binding:"required"`
	EmployeeID   int    `json:"employee_id" binding:"required"`
	HrComments   string `json:"hr_comments"`
	HrApprove    *bool  `json:"hr_approve" binding:"required"`
}

type InitiateRequest struct {
	Quarter int `json:"quarter" binding:"required"`
	Year    int `json:"year" binding:"required"`
}
