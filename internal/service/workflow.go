package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skill-matrix/internal/logger"
	"skill-matrix/internal/model"

	"gorm.io/gorm"
)

// WorkflowService drives an assessment through its lifecycle:
// HR initiates (0) -> employee submits (1) -> lead rates (2) -> HR decides (3).
// State 3 is terminal whether HR approved or rejected.
type WorkflowService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewWorkflowService(db *gorm.DB) *WorkflowService {
	return &WorkflowService{db: db, now: time.Now}
}

type InitiationResult struct {
	EmployeeID  int    `json:"employee_id"`
	Status      string `json:"status"`
	SkillsCount int    `json:"skills_count,omitempty"`
}

// Per-employee initiation outcomes.
const (
	InitSkippedHR     = "Skipped (HR)"
	InitAlreadyExists = "Already exists"
	InitNoCategories  = "No categories assigned"
	InitNoSkills      = "No skills in assigned categories"
	InitCreated       = "Assessment initiated"
	InitFailed        = "Failed"
)

// InitiateAssessments opens the (quarter, year) cycle for every active non-HR
// employee. Each employee is processed independently; one failure never aborts
// the batch.
func (s *WorkflowService) InitiateAssessments(ctx context.Context, quarter, year int) ([]InitiationResult, error) {
	if quarter < 1 || quarter > 4 {
		return nil, fmt.Errorf("quarter must be 1-4: %w", ErrValidation)
	}

	var roles []model.Role
	if err := s.db.WithContext(ctx).Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}
	roleNames := make(map[int]string, len(roles))
	for _, r := range roles {
		roleNames[r.RoleID] = r.RoleName
	}

	var employees []model.Employee
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}

	results := make([]InitiationResult, 0, len(employees))
	for _, emp := range employees {
		if roleNames[emp.RoleID] == string(model.RoleHR) {
			results = append(results, InitiationResult{EmployeeID: emp.EmployeeID, Status: InitSkippedHR})
			continue
		}
		status, count, err := s.initiateOne(ctx, emp.EmployeeID, quarter, year)
		if err != nil {
			logger.Error("initiate assessment failed", "employee_id", emp.EmployeeID, "err", err)
			status = InitFailed
		}
		results = append(results, InitiationResult{EmployeeID: emp.EmployeeID, Status: status, SkillsCount: count})
	}
	return results, nil
}

func (s *WorkflowService) initiateOne(ctx context.Context, employeeID, quarter, year int) (string, int, error) {
	db := s.db.WithContext(ctx)

	var existing int64
	err := db.Model(&model.Assessment{}).
		Where("employee_id = ? AND quarter = ? AND year = ?", employeeID, quarter, year).
		Count(&existing).Error
	if err != nil {
		return "", 0, fmt.Errorf("check existing: %w", err)
	}
	if existing > 0 {
		return InitAlreadyExists, 0, nil
	}

	var categoryIDs []int
	err = db.Model(&model.EmployeeCategoryAssociation{}).
		Where("employee_id = ?", employeeID).
		Pluck("category_id", &categoryIDs).Error
	if err != nil {
		return "", 0, fmt.Errorf("load categories: %w", err)
	}
	if len(categoryIDs) == 0 {
		return InitNoCategories, 0, nil
	}

	var skills []model.Skill
	if err := db.Where("category_id IN ?", categoryIDs).Find(&skills).Error; err != nil {
		return "", 0, fmt.Errorf("load skills: %w", err)
	}
	if len(skills) == 0 {
		return InitNoSkills, 0, nil
	}

	assessment := model.Assessment{
		EmployeeID: employeeID,
		Quarter:    quarter,
		Year:       year,
		Status:     model.StatusInitiated,
		IsActive:   true,
	}
	if err := db.Create(&assessment).Error; err != nil {
		return "", 0, fmt.Errorf("create assessment: %w", err)
	}

	rows := make([]model.SkillMatrix, 0, len(skills))
	for _, sk := range skills {
		rows = append(rows, model.SkillMatrix{
			EmployeeID:   employeeID,
			AssessmentID: assessment.AssessmentID,
			SkillID:      sk.SkillID,
		})
	}
	if err := db.Create(&rows).Error; err != nil {
		return "", 0, fmt.Errorf("create skill matrix rows: %w", err)
	}
	return InitCreated, len(rows), nil
}

type AssessmentSkill struct {
	SkillMatrixID int    `json:"skill_matrix_id"`
	SkillID       int    `json:"skill_id"`
	SkillName     string `json:"skill_name"`
}

type EmployeeAssessment struct {
	AssessmentID int               `json:"assessment_id"`
	Quarter      int               `json:"quarter"`
	Year         int               `json:"year"`
	Status       int               `json:"status"`
	Skills       []AssessmentSkill `json:"skills"`
}

// CurrentAssessment is the open-cycle query behind my-assessment: the active
// assessment of the wall-clock quarter, with its skill rows.
func (s *WorkflowService) CurrentAssessment(ctx context.Context, employeeID int) (*EmployeeAssessment, error) {
	quarter, year := cycleAt(s.now())

	var a model.Assessment
	err := s.db.WithContext(ctx).
		Where("employee_id = ? AND quarter = ? AND year = ? AND is_active = ?", employeeID, quarter, year, true).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("no assessment for current cycle: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load assessment: %w", err)
	}

	skills := []AssessmentSkill{}
	err = s.db.WithContext(ctx).Table("skill_matrix").
		Select("skill_matrix.skill_matrix_id, skill_matrix.skill_id, skills.skill_name").
		Joins("JOIN skills ON skills.skill_id = skill_matrix.skill_id").
		Where("skill_matrix.assessment_id = ?", a.AssessmentID).
		Scan(&skills).Error
	if err != nil {
		return nil, fmt.Errorf("load skill rows: %w", err)
	}

	return &EmployeeAssessment{
		AssessmentID: a.AssessmentID,
		Quarter:      a.Quarter,
		Year:         a.Year,
		Status:       a.Status,
		Skills:       skills,
	}, nil
}

// SubmitEmployeeRatings writes the employee's self-ratings onto their matrix
// rows and moves the assessment to state 1. The state advances even when not
// every row was rated; the UI enforces completeness, the engine does not.
// A zero assessmentID resolves the open cycle from the wall clock; otherwise
// the mutation is keyed to the given assessment.
// Rows not belonging to the employee and the assessment are skipped silently.
func (s *WorkflowService) SubmitEmployeeRatings(ctx context.Context, employeeID, assessmentID int, ratings []model.EmployeeRatingInput) (int, error) {
	db := s.db.WithContext(ctx)

	var a model.Assessment
	var err error
	if assessmentID == 0 {
		quarter, year := cycleAt(s.now())
		err = db.Where("employee_id = ? AND quarter = ? AND year = ? AND is_active = ?", employeeID, quarter, year, true).
			First(&a).Error
	} else {
		err = db.Where("assessment_id = ? AND employee_id = ? AND is_active = ?", assessmentID, employeeID, true).
			First(&a).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("assessment: %w", ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("load assessment: %w", err)
	}

	updated := 0
	for _, r := range ratings {
		res := db.Model(&model.SkillMatrix{}).
			Where("skill_matrix_id = ? AND employee_id = ? AND assessment_id = ?", r.SkillMatrixID, employeeID, a.AssessmentID).
			Update("employee_rating", r.EmployeeRating)
		if res.Error != nil {
			return updated, fmt.Errorf("update rating: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			updated++
		}
	}

	err = db.Model(&model.Assessment{}).
		Where("assessment_id = ?", a.AssessmentID).
		Update("status", model.StatusEmployeeSubmitted).Error
	if err != nil {
		return updated, fmt.Errorf("advance status: %w", err)
	}
	return updated, nil
}

// SubmitLeadRatings records the lead's ratings and comments and moves the
// assessment to state 2. The target employee must belong to a team led by
// leadID. Returns the number of matrix rows updated; pairs that match no row
// are skipped silently.
func (s *WorkflowService) SubmitLeadRatings(ctx context.Context, leadID, assessmentID, employeeID int, leadComments string, ratings []model.LeadRatingInput) (int, error) {
	db := s.db.WithContext(ctx)

	teamIDs, err := s.ledTeamIDs(ctx, leadID)
	if err != nil {
		return 0, err
	}
	member := false
	if len(teamIDs) > 0 {
		var n int64
		err = db.Model(&model.Employee{}).
			Where("employee_id = ? AND team_id IN ?", employeeID, teamIDs).
			Count(&n).Error
		if err != nil {
			return 0, fmt.Errorf("check membership: %w", err)
		}
		member = n > 0
	}
	if !member {
		return 0, fmt.Errorf("employee not under your team: %w", ErrForbidden)
	}

	var a model.Assessment
	err = db.Where("assessment_id = ? AND employee_id = ?", assessmentID, employeeID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("assessment: %w", ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("load assessment: %w", err)
	}

	err = db.Model(&model.Assessment{}).
		Where("assessment_id = ?", a.AssessmentID).
		Updates(map[string]interface{}{
			"lead_comments": leadComments,
			"status":        model.StatusLeadRated,
		}).Error
	if err != nil {
		return 0, fmt.Errorf("record lead comments: %w", err)
	}

	updated := 0
	for _, r := range ratings {
		res := db.Model(&model.SkillMatrix{}).
			Where("assessment_id = ? AND employee_id = ? AND skill_id = ?", assessmentID, employeeID, r.SkillID).
			Update("lead_rating", r.LeadRating)
		if res.Error != nil {
			return updated, fmt.Errorf("update lead rating: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			updated++
		}
	}
	return updated, nil
}

type HRDecision struct {
	AssessmentID int  `json:"assessment_id"`
	NewStatus    int  `json:"new_status"`
	HrApproved   bool `json:"hr_approved"`
}

// ApproveByHR records the HR decision and closes the assessment. Status moves
// to 3 whether hrApprove is true or false; a rejected assessment is just as
// closed as an approved one.
func (s *WorkflowService) ApproveByHR(ctx context.Context, hrID, assessmentID, employeeID int, hrComments string, hrApprove bool) (*HRDecision, error) {
	db := s.db.WithContext(ctx)

	var emp model.Employee
	err := db.Where("employee_id = ? AND hr_id = ?", employeeID, hrID).First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("employee not under your HR purview: %w", ErrForbidden)
	}
	if err != nil {
		return nil, fmt.Errorf("load employee: %w", err)
	}

	var a model.Assessment
	err = db.Where("assessment_id = ? AND employee_id = ?", assessmentID, employeeID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("assessment: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load assessment: %w", err)
	}

	err = db.Model(&model.Assessment{}).
		Where("assessment_id = ?", a.AssessmentID).
		Updates(map[string]interface{}{
			"hr_comments": hrComments,
			"hr_approve":  hrApprove,
			"status":      model.StatusHRDecided,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("record decision: %w", err)
	}

	return &HRDecision{AssessmentID: a.AssessmentID, NewStatus: model.StatusHRDecided, HrApproved: hrApprove}, nil
}

type SubmittedSkill struct {
	SkillID        int    `json:"skill_id"`
	SkillName      string `json:"skill_name"`
	EmployeeRating *int   `json:"employee_rating"`
}

type TeamAssessment struct {
	EmployeeID   int              `json:"employee_id"`
	EmployeeName string           `json:"employee_name"`
	AssessmentID int              `json:"assessment_id"`
	Quarter      int              `json:"quarter"`
	Year         int              `json:"year"`
	Skills       []SubmittedSkill `json:"skills"`
}

// TeamSubmittedAssessments lists the lead's team assessments awaiting lead
// review in the current cycle (state 1), with the employees' self-ratings.
func (s *WorkflowService) TeamSubmittedAssessments(ctx context.Context, leadID int) ([]TeamAssessment, error) {
	db := s.db.WithContext(ctx)
	quarter, year := cycleAt(s.now())

	teamIDs, err := s.ledTeamIDs(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if len(teamIDs) == 0 {
		return []TeamAssessment{}, nil
	}

	var members []model.Employee
	if err := db.Where("team_id IN ?", teamIDs).Find(&members).Error; err != nil {
		return nil, fmt.Errorf("load team members: %w", err)
	}
	if len(members) == 0 {
		return []TeamAssessment{}, nil
	}
	memberNames := make(map[int]string, len(members))
	memberIDs := make([]int, 0, len(members))
	for _, m := range members {
		memberNames[m.EmployeeID] = m.EmployeeName
		memberIDs = append(memberIDs, m.EmployeeID)
	}

	var assessments []model.Assessment
	err = db.Where("employee_id IN ? AND quarter = ? AND year = ? AND status = ?",
		memberIDs, quarter, year, model.StatusEmployeeSubmitted).
		Find(&assessments).Error
	if err != nil {
		return nil, fmt.Errorf("load assessments: %w", err)
	}

	results := make([]TeamAssessment, 0, len(assessments))
	for _, a := range assessments {
		skills := []SubmittedSkill{}
		err = db.Table("skill_matrix").
			Select("skill_matrix.skill_id, skills.skill_name, skill_matrix.employee_rating").
			Joins("JOIN skills ON skills.skill_id = skill_matrix.skill_id").
			Where("skill_matrix.assessment_id = ?", a.AssessmentID).
			Scan(&skills).Error
		if err != nil {
			return nil, fmt.Errorf("load skill rows: %w", err)
		}
		results = append(results, TeamAssessment{
			EmployeeID:   a.EmployeeID,
			EmployeeName: memberNames[a.EmployeeID],
			AssessmentID: a.AssessmentID,
			Quarter:      a.Quarter,
			Year:         a.Year,
			Skills:       skills,
		})
	}
	return results, nil
}

type RatedSkill struct {
	SkillID        int    `json:"skill_id"`
	SkillName      string `json:"skill_name"`
	EmployeeRating *int   `json:"employee_rating"`
	LeadRating     *int   `json:"lead_rating"`
}

type PendingAssessment struct {
	EmployeeID   int          `json:"employee_id"`
	EmployeeName string       `json:"employee_name"`
	AssessmentID int          `json:"assessment_id"`
	Quarter      int          `json:"quarter"`
	Year         int          `json:"year"`
	Status       int          `json:"status"`
	LeadComments *string      `json:"lead_comments"`
	Skills       []RatedSkill `json:"skills"`
}

// HRPendingAssessments lists current-cycle assessments of employees reporting
// to hrID that are lead-rated and awaiting the HR decision (state 2).
func (s *WorkflowService) HRPendingAssessments(ctx context.Context, hrID int) ([]PendingAssessment, error) {
	db := s.db.WithContext(ctx)
	quarter, year := cycleAt(s.now())

	var reports []model.Employee
	if err := db.Where("hr_id = ?", hrID).Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("load reports: %w", err)
	}
	if len(reports) == 0 {
		return []PendingAssessment{}, nil
	}
	names := make(map[int]string, len(reports))
	ids := make([]int, 0, len(reports))
	for _, e := range reports {
		names[e.EmployeeID] = e.EmployeeName
		ids = append(ids, e.EmployeeID)
	}

	var assessments []model.Assessment
	err := db.Where("employee_id IN ? AND quarter = ? AND year = ? AND status = ?",
		ids, quarter, year, model.StatusLeadRated).
		Find(&assessments).Error
	if err != nil {
		return nil, fmt.Errorf("load assessments: %w", err)
	}

	results := make([]PendingAssessment, 0, len(assessments))
	for _, a := range assessments {
		skills := []RatedSkill{}
		err = db.Table("skill_matrix").
			Select("skill_matrix.skill_id, skills.skill_name, skill_matrix.employee_rating, skill_matrix.lead_rating").
			Joins("JOIN skills ON skills.skill_id = skill_matrix.skill_id").
			Where("skill_matrix.assessment_id = ?", a.AssessmentID).
			Scan(&skills).Error
		if err != nil {
			return nil, fmt.Errorf("load skill rows: %w", err)
		}
		results = append(results, PendingAssessment{
			EmployeeID:   a.EmployeeID,
			EmployeeName: names[a.EmployeeID],
			AssessmentID: a.AssessmentID,
			Quarter:      a.Quarter,
			Year:         a.Year,
			Status:       a.Status,
			LeadComments: a.LeadComments,
			Skills:       skills,
		})
	}
	return results, nil
}

func (s *WorkflowService) ledTeamIDs(ctx context.Context, leadID int) ([]int, error) {
	var teamIDs []int
	err := s.db.WithContext(ctx).Model(&model.Team{}).
		Where("lead_id = ?", leadID).
		Pluck("team_id", &teamIDs).Error
	if err != nil {
		return nil, fmt.Errorf("load led teams: %w", err)
	}
	return teamIDs, nil
}
