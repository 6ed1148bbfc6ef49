package service

import (
	"context"
	"fmt"

	"skill-matrix/internal/model"

	"gorm.io/gorm"
)

// LookupService serves the read-mostly reference data behind registration
// forms and the skill catalog.
type LookupService struct{ db *gorm.DB }

func NewLookupService(db *gorm.DB) *LookupService { return &LookupService{db: db} }

func (s *LookupService) Roles(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	if err := s.db.WithContext(ctx).Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}
	return roles, nil
}

func (s *LookupService) Designations(ctx context.Context) ([]model.Designation, error) {
	var designations []model.Designation
	if err := s.db.WithContext(ctx).Find(&designations).Error; err != nil {
		return nil, fmt.Errorf("load designations: %w", err)
	}
	return designations, nil
}

func (s *LookupService) Teams(ctx context.Context) ([]model.Team, error) {
	var teams []model.Team
	if err := s.db.WithContext(ctx).Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}
	return teams, nil
}

func (s *LookupService) Categories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := s.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	return categories, nil
}

type HREntry struct {
	EmployeeID   int    `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
}

// HRList names the HR staff a new employee can report to.
func (s *LookupService) HRList(ctx context.Context) ([]HREntry, error) {
	list := []HREntry{}
	err := s.db.WithContext(ctx).Table("employees").
		Select("employees.employee_id, employees.employee_name").
		Joins("JOIN roles ON roles.role_id = employees.role_id").
		Where("roles.role_name = ?", string(model.RoleHR)).
		Scan(&list).Error
	if err != nil {
		return nil, fmt.Errorf("load hr list: %w", err)
	}
	return list, nil
}

type SkillEntry struct {
	SkillID      int    `json:"skill_id"`
	SkillName    string `json:"skill_name"`
	CategoryName string `json:"category_name"`
}

func (s *LookupService) Skills(ctx context.Context) ([]SkillEntry, error) {
	skills := []SkillEntry{}
	err := s.db.WithContext(ctx).Table("skills").
		Select("skills.skill_id, skills.skill_name, categories.category_name").
		Joins("JOIN categories ON categories.category_id = skills.category_id").
		Order("skills.skill_name ASC").
		Scan(&skills).Error
	if err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}
	return skills, nil
}

type SkillLevel struct {
	LevelID     int    `json:"level_id"`
	LevelNumber int    `json:"level_number"`
	Description string `json:"description"`
	SkillName   string `json:"skill_name"`
}

func (s *LookupService) SkillLevels(ctx context.Context, skillID int) ([]SkillLevel, error) {
	levels := []SkillLevel{}
	err := s.db.WithContext(ctx).Table("skill_levels_detailed").
		Select("skill_levels_detailed.level_id, skill_levels_detailed.level_number, skill_levels_detailed.description, skills.skill_name").
		Joins("JOIN skills ON skills.skill_id = skill_levels_detailed.skill_id").
		Where("skill_levels_detailed.skill_id = ?", skillID).
		Order("skill_levels_detailed.level_number ASC").
		Scan(&levels).Error
	if err != nil {
		return nil, fmt.Errorf("load skill levels: %w", err)
	}
	return levels, nil
}

type ThresholdEntry struct {
	SkillID         int    `json:"skill_id"`
	SkillName       string `json:"skill_name"`
	DesignationName string `json:"designation_name"`
	Threshold       int    `json:"threshold"`
}

func (s *LookupService) ThresholdsByDesignation(ctx context.Context, designationID int) ([]ThresholdEntry, error) {
	thresholds := []ThresholdEntry{}
	err := s.db.WithContext(ctx).Table("designation_skill_thresholds").
		Select("designation_skill_thresholds.skill_id, skills.skill_name, designations.designation_name, designation_skill_thresholds.threshold").
		Joins("JOIN skills ON skills.skill_id = designation_skill_thresholds.skill_id").
		Joins("JOIN designations ON designations.designation_id = designation_skill_thresholds.designation_id").
		Where("designation_skill_thresholds.designation_id = ?", designationID).
		Scan(&thresholds).Error
	if err != nil {
		return nil, fmt.Errorf("load thresholds: %w", err)
	}
	return thresholds, nil
}

type TeamOverview struct {
	TeamID         int      `json:"team_id"`
	TeamName       string   `json:"team_name"`
	Lead           *HREntry `json:"lead"`
	EmployeesCount int      `json:"employees_count"`
}

// TeamOverviews lists every team with its lead and headcount.
func (s *LookupService) TeamOverviews(ctx context.Context) ([]TeamOverview, error) {
	db := s.db.WithContext(ctx)

	var teams []model.Team
	if err := db.Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}

	overviews := make([]TeamOverview, 0, len(teams))
	for _, t := range teams {
		o := TeamOverview{TeamID: t.TeamID, TeamName: t.TeamName}
		if t.LeadID != nil {
			var lead model.Employee
			if err := db.Where("employee_id = ?", *t.LeadID).First(&lead).Error; err == nil {
				o.Lead = &HREntry{EmployeeID: lead.EmployeeID, EmployeeName: lead.EmployeeName}
			}
		}
		var n int64
		if err := db.Model(&model.Employee{}).Where("team_id = ?", t.TeamID).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("count members: %w", err)
		}
		o.EmployeesCount = int(n)
		overviews = append(overviews, o)
	}
	return overviews, nil
}

type TeamMember struct {
	EmployeeID   int    `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TeamName     string `json:"team_name"`
	IsActive     bool   `json:"is_active"`
}

func (s *LookupService) TeamMembers(ctx context.Context, teamID int) ([]TeamMember, error) {
	members := []TeamMember{}
	err := s.db.WithContext(ctx).Table("employees").
		Select("employees.employee_id, employees.employee_name, employees.email, roles.role_name AS role, teams.team_name, employees.is_active").
		Joins("JOIN roles ON roles.role_id = employees.role_id").
		Joins("JOIN teams ON teams.team_id = employees.team_id").
		Where("employees.team_id = ?", teamID).
		Scan(&members).Error
	if err != nil {
		return nil, fmt.Errorf("load team members: %w", err)
	}
	return members, nil
}
