package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageCurrentRating(t *testing.T) {
	assert.Nil(t, averageCurrentRating(nil))
	assert.Nil(t, averageCurrentRating([]SkillView{{}, {}}))

	avg := averageCurrentRating([]SkillView{
		{CurrentRating: intPtr(3)},
		{CurrentRating: intPtr(4)},
		{CurrentRating: nil},
	})
	require.NotNil(t, avg)
	assert.Equal(t, 3.5, *avg)

	avg = averageCurrentRating([]SkillView{
		{CurrentRating: intPtr(3)},
		{CurrentRating: intPtr(4)},
		{CurrentRating: intPtr(4)},
	})
	require.NotNil(t, avg)
	assert.Equal(t, 3.67, *avg)
}

func TestSortSkillViews(t *testing.T) {
	skills := []SkillView{{SkillName: "Go"}, {SkillName: "CSS"}, {SkillName: "API Design"}}
	sortSkillViews(skills)
	assert.Equal(t, "API Design", skills[0].SkillName)
	assert.Equal(t, "CSS", skills[1].SkillName)
	assert.Equal(t, "Go", skills[2].SkillName)
}

func TestApprovedSkillMatrix_RequiresApprovedTerminalState(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMatrixService(db)
	svc.now = fixedClock()

	// the query itself filters on status = 3 and hr_approve = true; anything
	// else reads as absent
	mock.ExpectQuery("SELECT .* FROM `assessments`").
		WillReturnRows(sqlmock.NewRows([]string{"assessment_id"}))

	_, err := svc.ApprovedSkillMatrix(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApprovedSkillMatrix_View(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMatrixService(db)
	svc.now = fixedClock()

	mock.ExpectQuery("SELECT .* FROM `assessments`").
		WillReturnRows(sqlmock.NewRows([]string{"assessment_id", "employee_id", "quarter", "year", "status", "hr_approve", "lead_comments", "hr_comments"}).
			AddRow(10, 7, 1, 2025, 3, true, "solid quarter", "approved"))
	mock.ExpectQuery("SELECT .* FROM `employees`").
		WillReturnRows(sqlmock.NewRows([]string{"employee_id", "employee_name", "designation_id"}).
			AddRow(7, "Alice", 2))
	mock.ExpectQuery("SELECT .* FROM `designations`").
		WillReturnRows(sqlmock.NewRows([]string{"designation_id", "designation_name"}).
			AddRow(2, "Software Engineer"))
	mock.ExpectQuery("SELECT .* FROM `skill_matrix`").
		WillReturnRows(sqlmock.NewRows([]string{"skill_matrix_id", "skill_id", "skill_name", "category_id", "category_name", "employee_rating", "lead_rating"}).
			AddRow(101, 11, "Go", 5, "Backend", 4, 3).
			AddRow(102, 12, "CSS", 6, "Frontend", 2, 5))
	mock.ExpectQuery("SELECT .* FROM `designation_skill_thresholds`").
		WillReturnRows(sqlmock.NewRows([]string{"threshold_id", "skill_id", "designation_id", "threshold"}).
			AddRow(1, 11, 2, 4))
	mock.ExpectQuery("SELECT .* FROM `skill_progressions`").
		WillReturnRows(sqlmock.NewRows([]string{"path_id", "skill_id", "skill_name", "from_level_number", "to_level_number", "guidance"}).
			AddRow(1, 11, "Go", 1, 2, "pair on a production service"))

	matrix, err := svc.ApprovedSkillMatrix(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, "Alice", matrix.EmployeeName)
	assert.Equal(t, "Software Engineer", matrix.DesignationName)
	assert.True(t, matrix.HrApprove)

	require.Len(t, matrix.Skills, 2)
	// sorted by skill name ascending
	assert.Equal(t, "CSS", matrix.Skills[0].SkillName)
	assert.Equal(t, "Go", matrix.Skills[1].SkillName)

	// the lead rating is authoritative once present
	goSkill := matrix.Skills[1]
	assert.Equal(t, 4, *goSkill.EmployeeRating)
	assert.Equal(t, 3, *goSkill.LeadRating)
	assert.Equal(t, 3, *goSkill.CurrentRating)
	assert.Equal(t, 4, goSkill.DesignationTarget)

	// no threshold configured defaults to 0
	assert.Equal(t, 0, matrix.Skills[0].DesignationTarget)

	require.Len(t, matrix.ProgressionPaths, 1)
	assert.Equal(t, "pair on a production service", matrix.ProgressionPaths[0].Guidance)
}

func TestTeamSkillMatrix_FallbackForUnapprovedMember(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMatrixService(db)
	svc.now = fixedClock()

	mock.ExpectQuery("SELECT `team_id` FROM `teams`").
		WillReturnRows(sqlmock.NewRows([]string{"team_id"}).AddRow(3))
	mock.ExpectQuery("SELECT .* FROM `employees`").
		WillReturnRows(sqlmock.NewRows([]string{"employee_id", "employee_name", "designation_id", "team_id", "is_active"}).
			AddRow(7, "Alice", 2, 3, true))

	// no approved assessment this cycle
	mock.ExpectQuery("SELECT .* FROM `assessments`").
		WillReturnRows(sqlmock.NewRows([]string{"assessment_id"}))

	// synthesized unfilled matrix
	mock.ExpectQuery("SELECT .* FROM `designations`").
		WillReturnRows(sqlmock.NewRows([]string{"designation_id", "designation_name"}).
			AddRow(2, "Software Engineer"))
	mock.ExpectQuery("SELECT `category_id` FROM `employee_category_associations`").
		WillReturnRows(sqlmock.NewRows([]string{"category_id"}).AddRow(5))
	mock.ExpectQuery("SELECT .* FROM `skills`").
		WillReturnRows(sqlmock.NewRows([]string{"skill_id", "skill_name", "category_id", "category_name"}).
			AddRow(11, "Go", 5, "Backend"))
	mock.ExpectQuery("SELECT .* FROM `designation_skill_thresholds`").
		WillReturnRows(sqlmock.NewRows([]string{"threshold_id", "skill_id", "designation_id", "threshold"}).
			AddRow(1, 11, 2, 4))

	matrix, err := svc.TeamSkillMatrix(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, 1, matrix.Quarter)
	assert.Equal(t, 2025, matrix.Year)
	require.Len(t, matrix.TeamMembers, 1)

	member := matrix.TeamMembers[0]
	assert.Equal(t, "Alice", member.EmployeeName)
	assert.Equal(t, "Software Engineer", member.DesignationName)
	assert.Nil(t, member.AverageCurrentRating)

	require.Len(t, member.Skills, 1)
	assert.Nil(t, member.Skills[0].EmployeeRating)
	assert.Nil(t, member.Skills[0].LeadRating)
	assert.Nil(t, member.Skills[0].CurrentRating)
	assert.Equal(t, 4, member.Skills[0].DesignationTarget)
}

func TestTeamSkillMatrix_AveragesApprovedRatings(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMatrixService(db)
	svc.now = fixedClock()

	mock.ExpectQuery("SELECT `team_id` FROM `teams`").
		WillReturnRows(sqlmock.NewRows([]string{"team_id"}).AddRow(3))
	mock.ExpectQuery("SELECT .* FROM `employees`").
		WillReturnRows(sqlmock.NewRows([]string{"employee_id", "employee_name", "designation_id", "team_id", "is_active"}).
			AddRow(7, "Alice", 2, 3, true))

	// approved view for the member
	mock.ExpectQuery("SELECT .* FROM `assessments`").
		WillReturnRows(sqlmock.NewRows([]string{"assessment_id", "employee_id", "quarter", "year", "status", "hr_approve"}).
			AddRow(10, 7, 1, 2025, 3, true))
	mock.ExpectQuery("SELECT .* FROM `employees`").
		WillReturnRows(sqlmock.NewRows([]string{"employee_id", "employee_name", "designation_id"}).
			AddRow(7, "Alice", 2))
	mock.ExpectQuery("SELECT .* FROM `designations`").
		WillReturnRows(sqlmock.NewRows([]string{"designation_id", "designation_name"}).
			AddRow(2, "Software Engineer"))
	mock.ExpectQuery("SELECT .* FROM `skill_matrix`").
		WillReturnRows(sqlmock.NewRows([]string{"skill_matrix_id", "skill_id", "skill_name", "category_id", "category_name", "employee_rating", "lead_rating"}).
			AddRow(101, 11, "Go", 5, "Backend", 4, 3).
			AddRow(102, 12, "SQL", 5, "Backend", 3, 4))
	mock.ExpectQuery("SELECT .* FROM `designation_skill_thresholds`").
		WillReturnRows(sqlmock.NewRows([]string{"threshold_id", "skill_id", "designation_id", "threshold"}))
	mock.ExpectQuery("SELECT .* FROM `skill_progressions`").
		WillReturnRows(sqlmock.NewRows([]string{"path_id"}))

	matrix, err := svc.TeamSkillMatrix(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, matrix.TeamMembers, 1)

	avg := matrix.TeamMembers[0].AverageCurrentRating
	require.NotNil(t, avg)
	assert.Equal(t, 3.5, *avg)
}
