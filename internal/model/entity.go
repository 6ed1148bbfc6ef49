package model

import "time"

type Role struct {
	RoleID   int    `gorm:"primaryKey" json:"role_id"`
	RoleName string `gorm:"uniqueIndex" json:"role_name"`
}

type Designation struct {
	DesignationID   int    `gorm:"primaryKey" json:"designation_id"`
	DesignationName string `gorm:"uniqueIndex" json:"designation_name"`
}

type Team struct {
	TeamID   int    `gorm:"primaryKey" json:"team_id"`
	TeamName string `json:"team_name"`
	LeadID   *int   `json:"lead_id"`
}

type Employee struct {
	EmployeeID    int       `gorm:"primaryKey" json:"employee_id"`
	EmployeeName  string    `json:"employee_name"`
	Email         string    `gorm:"uniqueIndex" json:"email"`
	PasswordHash  string    `json:"-"`
	RoleID        int       `json:"role_id"`
	DesignationID int       `json:"designation_id"`
	TeamID        *int      `json:"team_id"`
	HrID          *int      `json:"hr_id"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

type Category struct {
	CategoryID   int    `gorm:"primaryKey" json:"category_id"`
	CategoryName string `gorm:"uniqueIndex" json:"category_name"`
}

type EmployeeCategoryAssociation struct {
	EmployeeID int  `gorm:"primaryKey;autoIncrement:false" json:"employee_id"`
	CategoryID int  `gorm:"primaryKey;autoIncrement:false" json:"category_id"`
	IsPrimary  bool `json:"is_primary"`
}

type Skill struct {
	SkillID    int    `gorm:"primaryKey" json:"skill_id"`
	SkillName  string `json:"skill_name"`
	CategoryID int    `json:"category_id"`
	IsActive   bool   `gorm:"default:true" json:"is_active"`
}

type SkillLevelDetailed struct {
	LevelID     int    `gorm:"primaryKey" json:"level_id"`
	SkillID     int    `gorm:"uniqueIndex:uk_skill_level" json:"skill_id"`
	LevelNumber int    `gorm:"uniqueIndex:uk_skill_level" json:"level_number"`
	Description string `gorm:"type:text" json:"description"`
}

type SkillProgression struct {
	PathID        int    `gorm:"primaryKey" json:"path_id"`
	SkillID       int    `json:"skill_id"`
	CategoryID    int    `json:"category_id"`
	FromLevelID   int    `json:"from_level_id"`
	ToLevelID     int    `json:"to_level_id"`
	Guidance      string `gorm:"type:text" json:"guidance"`
	ResourcesLink string `json:"resources_link"`
}

type DesignationSkillThreshold struct {
	ThresholdID   int `gorm:"primaryKey" json:"threshold_id"`
	SkillID       int `gorm:"uniqueIndex:uk_designation_skill" json:"skill_id"`
	DesignationID int `gorm:"uniqueIndex:uk_designation_skill" json:"designation_id"`
	Threshold     int `json:"threshold"`
}

// Assessment status progression. 3 is terminal; the HR decision is carried by
// HrApprove, not by a distinct rejected status.
const (
	StatusInitiated         = 0
	StatusEmployeeSubmitted = 1
	StatusLeadRated         = 2
	StatusHRDecided         = 3
)

type Assessment struct {
	AssessmentID int       `gorm:"primaryKey" json:"assessment_id"`
	EmployeeID   int       `gorm:"uniqueIndex:uk_employee_quarter_year" json:"employee_id"`
	Quarter      int       `gorm:"uniqueIndex:uk_employee_quarter_year" json:"quarter"`
	Year         int       `gorm:"uniqueIndex:uk_employee_quarter_year" json:"year"`
	Status       int       `json:"status"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	LeadComments *string   `gorm:"type:text" json:"lead_comments"`
	HrApprove    bool      `gorm:"default:false" json:"hr_approve"`
	HrComments   *string   `gorm:"type:text" json:"hr_comments"`
	InitiatedAt  time.Time `gorm:"autoCreateTime" json:"initiated_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type SkillMatrix struct {
	SkillMatrixID  int       `gorm:"primaryKey" json:"skill_matrix_id"`
	EmployeeID     int       `gorm:"uniqueIndex:uk_employee_assessment_skill" json:"employee_id"`
	AssessmentID   int       `gorm:"uniqueIndex:uk_employee_assessment_skill" json:"assessment_id"`
	SkillID        int       `gorm:"uniqueIndex:uk_employee_assessment_skill" json:"skill_id"`
	EmployeeRating *int      `json:"employee_rating"`
	LeadRating     *int      `json:"lead_rating"`
	LeadComments   *string   `gorm:"type:text" json:"lead_comments"`
	HrApprove      bool      `gorm:"default:false" json:"hr_approve"`
	HrComments     *string   `gorm:"type:text" json:"hr_comments"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Role) TableName() string                        { return "roles" }
func (Designation) TableName() string                 { return "designations" }
func (Team) TableName() string                        { return "teams" }
func (Employee) TableName() string                    { return "employees" }
func (Category) TableName() string                    { return "categories" }
func (EmployeeCategoryAssociation) TableName() string { return "employee_category_associations" }
func (Skill) TableName() string                       { return "skills" }
func (SkillLevelDetailed) TableName() string          { return "skill_levels_detailed" }
func (SkillProgression) TableName() string            { return "skill_progressions" }
func (DesignationSkillThreshold) TableName() string   { return "designation_skill_thresholds" }
func (Assessment) TableName() string                  { return "assessments" }
func (SkillMatrix) TableName() string                 { return "skill_matrix" }
