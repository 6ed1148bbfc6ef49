package main

import (
	"fmt"

	"skill-matrix/internal/logger"
	"skill-matrix/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Role{},
		&model.Designation{},
		&model.Team{},
		&model.Employee{},
		&model.Category{},
		&model.EmployeeCategoryAssociation{},
		&model.Skill{},
		&model.SkillLevelDetailed{},
		&model.SkillProgression{},
		&model.DesignationSkillThreshold{},
		&model.Assessment{},
		&model.SkillMatrix{},
	)
}

var levelDescriptions = []string{
	"Aware of the skill and its terminology; needs guidance for any task",
	"Can handle routine tasks with occasional support",
	"Works independently on most tasks, reviews others' routine work",
	"Handles complex work, mentors others, sets local conventions",
	"Recognized authority; drives strategy and standards across teams",
}

// designation -> uniform target rating for every skill.
var designationTargets = map[string]int{
	"Associate Engineer":       2,
	"Software Engineer":        3,
	"Senior Software Engineer": 4,
	"Staff Engineer":           5,
}

var skillsByCategory = map[string][]string{
	"Backend":  {"Go", "SQL", "Kubernetes", "System Design"},
	"Frontend": {"React", "TypeScript", "CSS"},
	"Quality":  {"Test Automation", "Performance Testing"},
}

func seedReferenceData(db *gorm.DB) error {
	for _, name := range []string{string(model.RoleEmployee), string(model.RoleLead), string(model.RoleHR)} {
		role := model.Role{RoleName: name}
		if err := db.Where(model.Role{RoleName: name}).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("role %s: %w", name, err)
		}
	}

	for name := range designationTargets {
		des := model.Designation{DesignationName: name}
		if err := db.Where(model.Designation{DesignationName: name}).FirstOrCreate(&des).Error; err != nil {
			return fmt.Errorf("designation %s: %w", name, err)
		}
	}

	for categoryName, skillNames := range skillsByCategory {
		category := model.Category{CategoryName: categoryName}
		if err := db.Where(model.Category{CategoryName: categoryName}).FirstOrCreate(&category).Error; err != nil {
			return fmt.Errorf("category %s: %w", categoryName, err)
		}
		for _, skillName := range skillNames {
			skill := model.Skill{SkillName: skillName, CategoryID: category.CategoryID, IsActive: true}
			err := db.Where(model.Skill{SkillName: skillName, CategoryID: category.CategoryID}).
				FirstOrCreate(&skill).Error
			if err != nil {
				return fmt.Errorf("skill %s: %w", skillName, err)
			}
			if err := seedSkillLevels(db, skill); err != nil {
				return err
			}
		}
	}

	if err := seedThresholds(db); err != nil {
		return err
	}
	logger.Info("reference data seeded")
	return nil
}

// seedSkillLevels creates the 1..5 level scale for a skill plus the
// progression edge between each adjacent pair.
func seedSkillLevels(db *gorm.DB, skill model.Skill) error {
	levels := make([]model.SkillLevelDetailed, len(levelDescriptions))
	for i, desc := range levelDescriptions {
		level := model.SkillLevelDetailed{SkillID: skill.SkillID, LevelNumber: i + 1}
		err := db.Where(model.SkillLevelDetailed{SkillID: skill.SkillID, LevelNumber: i + 1}).
			Attrs(model.SkillLevelDetailed{Description: fmt.Sprintf("%s: %s", skill.SkillName, desc)}).
			FirstOrCreate(&level).Error
		if err != nil {
			return fmt.Errorf("level %d of %s: %w", i+1, skill.SkillName, err)
		}
		levels[i] = level
	}

	for i := 0; i+1 < len(levels); i++ {
		progression := model.SkillProgression{
			SkillID:     skill.SkillID,
			CategoryID:  skill.CategoryID,
			FromLevelID: levels[i].LevelID,
			ToLevelID:   levels[i+1].LevelID,
		}
		err := db.Where(model.SkillProgression{
			SkillID:     skill.SkillID,
			FromLevelID: levels[i].LevelID,
			ToLevelID:   levels[i+1].LevelID,
		}).Attrs(model.SkillProgression{
			CategoryID: skill.CategoryID,
			Guidance: fmt.Sprintf("Move from level %d to %d in %s: take on work one notch above your current scope and get it reviewed",
				i+1, i+2, skill.SkillName),
			ResourcesLink: fmt.Sprintf("https://wiki.internal/skills/%d", skill.SkillID),
		}).FirstOrCreate(&progression).Error
		if err != nil {
			return fmt.Errorf("progression %d->%d of %s: %w", i+1, i+2, skill.SkillName, err)
		}
	}
	return nil
}

func seedThresholds(db *gorm.DB) error {
	var skills []model.Skill
	if err := db.Find(&skills).Error; err != nil {
		return fmt.Errorf("load skills: %w", err)
	}
	for name, target := range designationTargets {
		var des model.Designation
		if err := db.Where("designation_name = ?", name).First(&des).Error; err != nil {
			return fmt.Errorf("designation %s: %w", name, err)
		}
		for _, skill := range skills {
			threshold := model.DesignationSkillThreshold{SkillID: skill.SkillID, DesignationID: des.DesignationID}
			err := db.Where(model.DesignationSkillThreshold{SkillID: skill.SkillID, DesignationID: des.DesignationID}).
				Attrs(model.DesignationSkillThreshold{Threshold: target}).
				FirstOrCreate(&threshold).Error
			if err != nil {
				return fmt.Errorf("threshold %s/%s: %w", name, skill.SkillName, err)
			}
		}
	}
	return nil
}

// seedDemoOrg creates one HR, one lead with a team, and two team members with
// category assignments, all with password "password123".
func seedDemoOrg(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	hr, err := upsertEmployee(db, "Dana HR", "dana@corp.test", string(hash), string(model.RoleHR), "Senior Software Engineer", nil, nil)
	if err != nil {
		return err
	}
	lead, err := upsertEmployee(db, "Lee Lead", "lee@corp.test", string(hash), string(model.RoleLead), "Senior Software Engineer", nil, &hr.EmployeeID)
	if err != nil {
		return err
	}

	team := model.Team{TeamName: "Platform"}
	err = db.Where(model.Team{TeamName: "Platform"}).
		Attrs(model.Team{LeadID: &lead.EmployeeID}).
		FirstOrCreate(&team).Error
	if err != nil {
		return fmt.Errorf("team: %w", err)
	}

	for _, m := range []struct {
		name, email string
		categories  map[string]bool // category name -> is_primary
	}{
		{"Alice Dev", "alice@corp.test", map[string]bool{"Backend": true}},
		{"Bob Dev", "bob@corp.test", map[string]bool{"Backend": true, "Frontend": false}},
	} {
		emp, err := upsertEmployee(db, m.name, m.email, string(hash), string(model.RoleEmployee), "Software Engineer", &team.TeamID, &hr.EmployeeID)
		if err != nil {
			return err
		}
		for categoryName, primary := range m.categories {
			var category model.Category
			if err := db.Where("category_name = ?", categoryName).First(&category).Error; err != nil {
				return fmt.Errorf("category %s: %w", categoryName, err)
			}
			assoc := model.EmployeeCategoryAssociation{EmployeeID: emp.EmployeeID, CategoryID: category.CategoryID}
			err = db.Where(model.EmployeeCategoryAssociation{EmployeeID: emp.EmployeeID, CategoryID: category.CategoryID}).
				Attrs(model.EmployeeCategoryAssociation{IsPrimary: primary}).
				FirstOrCreate(&assoc).Error
			if err != nil {
				return fmt.Errorf("association %s/%s: %w", m.email, categoryName, err)
			}
		}
	}
	logger.Info("demo org seeded", "hr", hr.EmployeeID, "lead", lead.EmployeeID, "team", team.TeamID)
	return nil
}

func upsertEmployee(db *gorm.DB, name, email, hash, roleName, designationName string, teamID, hrID *int) (*model.Employee, error) {
	var role model.Role
	if err := db.Where("role_name = ?", roleName).First(&role).Error; err != nil {
		return nil, fmt.Errorf("role %s: %w", roleName, err)
	}
	var des model.Designation
	if err := db.Where("designation_name = ?", designationName).First(&des).Error; err != nil {
		return nil, fmt.Errorf("designation %s: %w", designationName, err)
	}

	emp := model.Employee{Email: email}
	err := db.Where(model.Employee{Email: email}).Attrs(model.Employee{
		EmployeeName:  name,
		PasswordHash:  hash,
		RoleID:        role.RoleID,
		DesignationID: des.DesignationID,
		TeamID:        teamID,
		HrID:          hrID,
		IsActive:      true,
	}).FirstOrCreate(&emp).Error
	if err != nil {
		return nil, fmt.Errorf("employee %s: %w", email, err)
	}
	return &emp, nil
}
