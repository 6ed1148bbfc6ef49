package service

import (
	"context"
	"errors"
	"fmt"

	"skill-matrix/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct{ db *gorm.DB }

func NewAuthService(db *gorm.DB) *AuthService { return &AuthService{db: db} }

func (s *AuthService) Login(ctx context.Context, email, password string) (*model.LoginUser, error) {
	db := s.db.WithContext(ctx)

	var emp model.Employee
	if err := db.Where("email = ?", email).First(&emp).Error; err != nil {
		return nil, fmt.Errorf("invalid email or password: %w", ErrNotFound)
	}
	if bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(password)) != nil {
		return nil, fmt.Errorf("invalid email or password: %w", ErrValidation)
	}

	var role model.Role
	if err := db.Where("role_id = ?", emp.RoleID).First(&role).Error; err != nil {
		return nil, fmt.Errorf("load role: %w", err)
	}
	if _, ok := model.ParseRoleKind(role.RoleName); !ok {
		return nil, fmt.Errorf("role %q is not a known role: %w", role.RoleName, ErrValidation)
	}

	user := &model.LoginUser{
		EmployeeID:    emp.EmployeeID,
		EmployeeName:  emp.EmployeeName,
		Email:         emp.Email,
		Role:          role.RoleName,
		DesignationID: emp.DesignationID,
	}

	var des model.Designation
	if err := db.Where("designation_id = ?", emp.DesignationID).First(&des).Error; err == nil {
		user.DesignationName = des.DesignationName
	}
	if emp.TeamID != nil {
		var team model.Team
		if err := db.Where("team_id = ?", *emp.TeamID).First(&team).Error; err == nil {
			user.TeamID = team.TeamID
			user.TeamName = team.TeamName
		}
	}
	return user, nil
}

// Register creates an employee together with their category associations.
// Exactly one category must be marked primary.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.Employee, error) {
	if err := validateCategories(req.Categories); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)

	var existing int64
	if err := db.Model(&model.Employee{}).Where("email = ?", req.Email).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("email already registered: %w", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	emp := model.Employee{
		EmployeeName:  req.EmployeeName,
		Email:         req.Email,
		PasswordHash:  string(hash),
		RoleID:        req.RoleID,
		DesignationID: req.DesignationID,
		TeamID:        req.TeamID,
		HrID:          req.HrID,
		IsActive:      true,
	}
	if err := db.Create(&emp).Error; err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}

	assocs := make([]model.EmployeeCategoryAssociation, 0, len(req.Categories))
	for _, cat := range req.Categories {
		assocs = append(assocs, model.EmployeeCategoryAssociation{
			EmployeeID: emp.EmployeeID,
			CategoryID: cat.CategoryID,
			IsPrimary:  cat.IsPrimary,
		})
	}
	if err := db.Create(&assocs).Error; err != nil {
		return nil, fmt.Errorf("create category associations: %w", err)
	}
	return &emp, nil
}

func validateCategories(categories []model.CategoryInput) error {
	if len(categories) == 0 {
		return fmt.Errorf("at least one category must be assigned: %w", ErrValidation)
	}
	primary := 0
	for _, cat := range categories {
		if cat.IsPrimary {
			primary++
		}
	}
	if primary != 1 {
		return fmt.Errorf("exactly one category must be marked as primary: %w", ErrValidation)
	}
	return nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, employeeID int, oldPassword, newPassword string) error {
	db := s.db.WithContext(ctx)

	var emp model.Employee
	err := db.Where("employee_id = ?", employeeID).First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("employee: %w", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("load employee: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(oldPassword)) != nil {
		return fmt.Errorf("old password is incorrect: %w", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return db.Model(&model.Employee{}).
		Where("employee_id = ?", employeeID).
		Update("password_hash", string(hash)).Error
}

type DirectoryCategory struct {
	CategoryID   int    `json:"category_id"`
	CategoryName string `json:"category_name"`
	IsPrimary    bool   `json:"is_primary"`
}

type DirectoryEntry struct {
	EmployeeID      int                 `json:"employee_id"`
	EmployeeName    string              `json:"employee_name"`
	Email           string              `json:"email"`
	RoleName        string              `json:"role"`
	DesignationName string              `json:"designation"`
	TeamName        string              `json:"team"`
	IsActive        bool                `json:"is_active"`
	Categories      []DirectoryCategory `json:"categories"`
}

// Profile returns the caller's own directory entry.
func (s *AuthService) Profile(ctx context.Context, employeeID int) (*DirectoryEntry, error) {
	var emp model.Employee
	err := s.db.WithContext(ctx).Where("employee_id = ?", employeeID).First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("employee: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load employee: %w", err)
	}
	entries, err := s.directoryEntries(ctx, []model.Employee{emp})
	if err != nil {
		return nil, err
	}
	return &entries[0], nil
}

// Employees is the directory view: HR sees everyone, a lead sees their own
// team without themselves, plain employees see nothing.
func (s *AuthService) Employees(ctx context.Context, caller model.Caller) ([]DirectoryEntry, error) {
	db := s.db.WithContext(ctx)

	var employees []model.Employee
	switch caller.Role {
	case model.RoleHR:
		if err := db.Find(&employees).Error; err != nil {
			return nil, fmt.Errorf("load employees: %w", err)
		}
	case model.RoleLead:
		var teamIDs []int
		err := db.Model(&model.Team{}).Where("lead_id = ?", caller.EmployeeID).Pluck("team_id", &teamIDs).Error
		if err != nil {
			return nil, fmt.Errorf("load led teams: %w", err)
		}
		if len(teamIDs) == 0 {
			return nil, fmt.Errorf("you are not assigned as a lead to any team: %w", ErrForbidden)
		}
		err = db.Where("team_id IN ? AND employee_id <> ?", teamIDs, caller.EmployeeID).Find(&employees).Error
		if err != nil {
			return nil, fmt.Errorf("load team members: %w", err)
		}
	case model.RoleEmployee:
		return nil, fmt.Errorf("access denied: %w", ErrForbidden)
	default:
		return nil, fmt.Errorf("access denied: %w", ErrForbidden)
	}
	return s.directoryEntries(ctx, employees)
}

func (s *AuthService) directoryEntries(ctx context.Context, employees []model.Employee) ([]DirectoryEntry, error) {
	db := s.db.WithContext(ctx)

	var roles []model.Role
	if err := db.Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}
	var designations []model.Designation
	if err := db.Find(&designations).Error; err != nil {
		return nil, fmt.Errorf("load designations: %w", err)
	}
	var teams []model.Team
	if err := db.Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}

	roleNames := make(map[int]string, len(roles))
	for _, r := range roles {
		roleNames[r.RoleID] = r.RoleName
	}
	designationNames := make(map[int]string, len(designations))
	for _, d := range designations {
		designationNames[d.DesignationID] = d.DesignationName
	}
	teamNames := make(map[int]string, len(teams))
	for _, t := range teams {
		teamNames[t.TeamID] = t.TeamName
	}

	ids := make([]int, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.EmployeeID)
	}
	type assocRow struct {
		EmployeeID   int
		CategoryID   int
		CategoryName string
		IsPrimary    bool
	}
	assocs := []assocRow{}
	if len(ids) > 0 {
		err := db.Table("employee_category_associations").
			Select("employee_category_associations.employee_id, categories.category_id, categories.category_name, employee_category_associations.is_primary").
			Joins("JOIN categories ON categories.category_id = employee_category_associations.category_id").
			Where("employee_category_associations.employee_id IN ?", ids).
			Scan(&assocs).Error
		if err != nil {
			return nil, fmt.Errorf("load category associations: %w", err)
		}
	}
	byEmployee := make(map[int][]DirectoryCategory, len(ids))
	for _, a := range assocs {
		byEmployee[a.EmployeeID] = append(byEmployee[a.EmployeeID], DirectoryCategory{
			CategoryID:   a.CategoryID,
			CategoryName: a.CategoryName,
			IsPrimary:    a.IsPrimary,
		})
	}

	entries := make([]DirectoryEntry, 0, len(employees))
	for _, e := range employees {
		entry := DirectoryEntry{
			EmployeeID:      e.EmployeeID,
			EmployeeName:    e.EmployeeName,
			Email:           e.Email,
			RoleName:        roleNames[e.RoleID],
			DesignationName: designationNames[e.DesignationID],
			IsActive:        e.IsActive,
			Categories:      byEmployee[e.EmployeeID],
		}
		if e.TeamID != nil {
			entry.TeamName = teamNames[*e.TeamID]
		}
		if entry.Categories == nil {
			entry.Categories = []DirectoryCategory{}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
