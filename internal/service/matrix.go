package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"skill-matrix/internal/model"

	"gorm.io/gorm"
)

// MatrixService is the read side: it assembles approved skill ratings against
// designation targets and progression guidance for an employee or a team.
type MatrixService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewMatrixService(db *gorm.DB) *MatrixService {
	return &MatrixService{db: db, now: time.Now}
}

type SkillView struct {
	SkillMatrixID     int    `json:"skill_matrix_id"`
	SkillID           int    `json:"skill_id"`
	SkillName         string `json:"skill_name"`
	CategoryID        int    `json:"category_id"`
	CategoryName      string `json:"category_name"`
	EmployeeRating    *int   `json:"employee_rating"`
	LeadRating        *int   `json:"lead_rating"`
	CurrentRating     *int   `json:"current_rating"`
	DesignationTarget int    `json:"designation_target"`
}

type ProgressionPath struct {
	PathID               int    `json:"path_id"`
	SkillID              int    `json:"skill_id"`
	SkillName            string `json:"skill_name"`
	CategoryID           int    `json:"category_id"`
	CategoryName         string `json:"category_name"`
	FromLevelID          int    `json:"from_level_id"`
	FromLevelNumber      int    `json:"from_level_number"`
	FromLevelDescription string `json:"from_level_description"`
	ToLevelID            int    `json:"to_level_id"`
	ToLevelNumber        int    `json:"to_level_number"`
	ToLevelDescription   string `json:"to_level_description"`
	Guidance             string `json:"guidance"`
	ResourcesLink        string `json:"resources_link"`
}

type ApprovedMatrix struct {
	AssessmentID     int               `json:"assessment_id"`
	EmployeeID       int               `json:"employee_id"`
	EmployeeName     string            `json:"employee_name"`
	DesignationID    int               `json:"designation_id"`
	DesignationName  string            `json:"designation_name"`
	Quarter          int               `json:"quarter"`
	Year             int               `json:"year"`
	Status           int               `json:"status"`
	LeadComments     *string           `json:"lead_comments"`
	HrComments       *string           `json:"hr_comments"`
	HrApprove        bool              `json:"hr_approve"`
	Skills           []SkillView       `json:"skills"`
	ProgressionPaths []ProgressionPath `json:"skill_progression_paths"`
}

// ApprovedSkillMatrix projects the employee's HR-approved ratings for the
// current cycle against their designation targets. Only a state-3 assessment
// with hr_approve set qualifies; a rejected or still-open one reads as absent.
func (s *MatrixService) ApprovedSkillMatrix(ctx context.Context, employeeID int) (*ApprovedMatrix, error) {
	db := s.db.WithContext(ctx)
	quarter, year := cycleAt(s.now())

	var a model.Assessment
	err := db.Where("employee_id = ? AND quarter = ? AND year = ? AND status = ? AND hr_approve = ?",
		employeeID, quarter, year, model.StatusHRDecided, true).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("no approved assessment for current cycle: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load assessment: %w", err)
	}

	var emp model.Employee
	if err := db.Where("employee_id = ?", employeeID).First(&emp).Error; err != nil {
		return nil, fmt.Errorf("load employee: %w", err)
	}
	var des model.Designation
	if err := db.Where("designation_id = ?", emp.DesignationID).First(&des).Error; err != nil {
		return nil, fmt.Errorf("load designation: %w", err)
	}

	skills := []SkillView{}
	err = db.Table("skill_matrix").
		Select("skill_matrix.skill_matrix_id, skill_matrix.skill_id, skills.skill_name, skills.category_id, categories.category_name, skill_matrix.employee_rating, skill_matrix.lead_rating").
		Joins("JOIN skills ON skills.skill_id = skill_matrix.skill_id").
		Joins("JOIN categories ON categories.category_id = skills.category_id").
		Where("skill_matrix.assessment_id = ?", a.AssessmentID).
		Scan(&skills).Error
	if err != nil {
		return nil, fmt.Errorf("load skill rows: %w", err)
	}

	targets, err := s.designationTargets(ctx, emp.DesignationID)
	if err != nil {
		return nil, err
	}
	for i := range skills {
		skills[i].CurrentRating = skills[i].LeadRating
		skills[i].DesignationTarget = targets[skills[i].SkillID]
	}
	sortSkillViews(skills)

	paths, err := s.progressionPaths(ctx)
	if err != nil {
		return nil, err
	}

	return &ApprovedMatrix{
		AssessmentID:     a.AssessmentID,
		EmployeeID:       emp.EmployeeID,
		EmployeeName:     emp.EmployeeName,
		DesignationID:    des.DesignationID,
		DesignationName:  des.DesignationName,
		Quarter:          a.Quarter,
		Year:             a.Year,
		Status:           a.Status,
		LeadComments:     a.LeadComments,
		HrComments:       a.HrComments,
		HrApprove:        a.HrApprove,
		Skills:           skills,
		ProgressionPaths: paths,
	}, nil
}

type MemberMatrix struct {
	EmployeeID           int         `json:"employee_id"`
	EmployeeName         string      `json:"employee_name"`
	DesignationName      string      `json:"designation_name"`
	AverageCurrentRating *float64    `json:"average_current_rating"`
	Skills               []SkillView `json:"skills"`
}

type TeamMatrix struct {
	Quarter     int            `json:"quarter"`
	Year        int            `json:"year"`
	TeamMembers []MemberMatrix `json:"team_members_skill_matrices"`
}

// TeamSkillMatrix builds the lead's team dashboard. Members without an
// approved assessment this cycle get a synthesized unfilled matrix: their
// skills with designation targets attached and all ratings null, so the lead
// still sees what should be rated.
func (s *MatrixService) TeamSkillMatrix(ctx context.Context, leadID int) (*TeamMatrix, error) {
	db := s.db.WithContext(ctx)
	quarter, year := cycleAt(s.now())

	var teamIDs []int
	err := db.Model(&model.Team{}).Where("lead_id = ?", leadID).Pluck("team_id", &teamIDs).Error
	if err != nil {
		return nil, fmt.Errorf("load led teams: %w", err)
	}

	members := []model.Employee{}
	if len(teamIDs) > 0 {
		err = db.Where("team_id IN ? AND is_active = ?", teamIDs, true).Find(&members).Error
		if err != nil {
			return nil, fmt.Errorf("load team members: %w", err)
		}
	}

	result := &TeamMatrix{Quarter: quarter, Year: year, TeamMembers: []MemberMatrix{}}
	seen := make(map[int]bool, len(members))
	for _, m := range members {
		if seen[m.EmployeeID] {
			continue
		}
		seen[m.EmployeeID] = true

		member := MemberMatrix{EmployeeID: m.EmployeeID, EmployeeName: m.EmployeeName}

		approved, err := s.ApprovedSkillMatrix(ctx, m.EmployeeID)
		switch {
		case err == nil:
			member.DesignationName = approved.DesignationName
			member.Skills = approved.Skills
		case errors.Is(err, ErrNotFound):
			skills, designationName, err := s.unfilledMatrix(ctx, m)
			if err != nil {
				return nil, err
			}
			member.DesignationName = designationName
			member.Skills = skills
		default:
			return nil, err
		}

		member.AverageCurrentRating = averageCurrentRating(member.Skills)
		result.TeamMembers = append(result.TeamMembers, member)
	}
	return result, nil
}

// unfilledMatrix synthesizes a rating-less skill view from the employee's
// category associations and designation thresholds.
func (s *MatrixService) unfilledMatrix(ctx context.Context, emp model.Employee) ([]SkillView, string, error) {
	db := s.db.WithContext(ctx)

	var des model.Designation
	if err := db.Where("designation_id = ?", emp.DesignationID).First(&des).Error; err != nil {
		return nil, "", fmt.Errorf("load designation: %w", err)
	}

	var categoryIDs []int
	err := db.Model(&model.EmployeeCategoryAssociation{}).
		Where("employee_id = ?", emp.EmployeeID).
		Pluck("category_id", &categoryIDs).Error
	if err != nil {
		return nil, "", fmt.Errorf("load categories: %w", err)
	}

	skills := []SkillView{}
	if len(categoryIDs) > 0 {
		err = db.Table("skills").
			Select("skills.skill_id, skills.skill_name, skills.category_id, categories.category_name").
			Joins("JOIN categories ON categories.category_id = skills.category_id").
			Where("skills.category_id IN ?", categoryIDs).
			Scan(&skills).Error
		if err != nil {
			return nil, "", fmt.Errorf("load skills: %w", err)
		}
	}

	targets, err := s.designationTargets(ctx, emp.DesignationID)
	if err != nil {
		return nil, "", err
	}
	for i := range skills {
		skills[i].DesignationTarget = targets[skills[i].SkillID]
	}
	sortSkillViews(skills)
	return skills, des.DesignationName, nil
}

func (s *MatrixService) designationTargets(ctx context.Context, designationID int) (map[int]int, error) {
	var thresholds []model.DesignationSkillThreshold
	err := s.db.WithContext(ctx).
		Where("designation_id = ?", designationID).
		Find(&thresholds).Error
	if err != nil {
		return nil, fmt.Errorf("load designation thresholds: %w", err)
	}
	targets := make(map[int]int, len(thresholds))
	for _, t := range thresholds {
		targets[t.SkillID] = t.Threshold
	}
	return targets, nil
}

// progressionPaths loads the whole progression table. It is global reference
// data, deliberately not filtered to the employee's skills.
func (s *MatrixService) progressionPaths(ctx context.Context) ([]ProgressionPath, error) {
	paths := []ProgressionPath{}
	err := s.db.WithContext(ctx).Table("skill_progressions").
		Select("skill_progressions.path_id, skill_progressions.skill_id, skills.skill_name, " +
			"skill_progressions.category_id, categories.category_name, " +
			"fl.level_id AS from_level_id, fl.level_number AS from_level_number, fl.description AS from_level_description, " +
			"tl.level_id AS to_level_id, tl.level_number AS to_level_number, tl.description AS to_level_description, " +
			"skill_progressions.guidance, skill_progressions.resources_link").
		Joins("JOIN skills ON skills.skill_id = skill_progressions.skill_id").
		Joins("JOIN categories ON categories.category_id = skill_progressions.category_id").
		Joins("JOIN skill_levels_detailed fl ON fl.level_id = skill_progressions.from_level_id").
		Joins("JOIN skill_levels_detailed tl ON tl.level_id = skill_progressions.to_level_id").
		Order("skills.skill_name ASC, fl.level_number ASC").
		Scan(&paths).Error
	if err != nil {
		return nil, fmt.Errorf("load progression paths: %w", err)
	}
	return paths, nil
}

func sortSkillViews(skills []SkillView) {
	sort.Slice(skills, func(i, j int) bool {
		return skills[i].SkillName < skills[j].SkillName
	})
}

// averageCurrentRating is the mean of the non-null current ratings rounded to
// two decimals, or nil when nothing has been rated yet.
func averageCurrentRating(skills []SkillView) *float64 {
	sum, n := 0, 0
	for _, sk := range skills {
		if sk.CurrentRating != nil {
			sum += *sk.CurrentRating
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := math.Round(float64(sum)/float64(n)*100) / 100
	return &avg
}
