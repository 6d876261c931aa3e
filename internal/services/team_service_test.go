// internal/services/team_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/models"
)

func newTeamTestService(t *testing.T) *TeamService {
	t.Helper()
	return NewTeamService(setupTestDB(t), nil)
}

func createTestMember(t *testing.T, service *TeamService, email, department string) *models.TeamMember {
	t.Helper()

	member, err := service.CreateTeamMember(&CreateTeamMemberRequest{
		FirstName:  "Karim",
		LastName:   "Benali",
		Email:      email,
		Position:   "Agent de comptoir",
		Department: department,
	})
	require.NoError(t, err)

	return member
}

func TestCreateTeamMemberDefaults(t *testing.T) {
	service := newTeamTestService(t)

	member := createTestMember(t, service, "karim@example.com", string(models.DepartmentSales))

	assert.True(t, member.IsActive)
	assert.Equal(t, models.EmploymentStatusCDI, member.EmploymentStatus)
	assert.Equal(t, "Karim Benali", member.FullName())
}

func TestCreateTeamMemberRejectsDuplicateEmail(t *testing.T) {
	service := newTeamTestService(t)

	createTestMember(t, service, "karim@example.com", string(models.DepartmentSales))

	_, err := service.CreateTeamMember(&CreateTeamMemberRequest{
		FirstName:  "Nadia",
		LastName:   "Alami",
		Email:      "karim@example.com",
		Position:   "Comptable",
		Department: string(models.DepartmentAccounting),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreateTeamMemberRejectsUnknownDepartment(t *testing.T) {
	service := newTeamTestService(t)

	_, err := service.CreateTeamMember(&CreateTeamMemberRequest{
		FirstName:  "Karim",
		LastName:   "Benali",
		Email:      "karim@example.com",
		Position:   "Agent",
		Department: "ASTROLOGIE",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid department")
}

func TestActivateDeactivateTeamMember(t *testing.T) {
	service := newTeamTestService(t)

	member := createTestMember(t, service, "karim@example.com", string(models.DepartmentSales))

	deactivated, err := service.SetActive(member.ID, false)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	active, err := service.GetActiveMembers()
	require.NoError(t, err)
	assert.Empty(t, active)

	_, err = service.SetActive(member.ID, true)
	require.NoError(t, err)

	active, err = service.GetActiveMembers()
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestSearchTeamMembersByDepartmentAndName(t *testing.T) {
	service := newTeamTestService(t)

	createTestMember(t, service, "karim@example.com", string(models.DepartmentSales))
	second, err := service.CreateTeamMember(&CreateTeamMemberRequest{
		FirstName:  "Nadia",
		LastName:   "Alami",
		Email:      "nadia@example.com",
		Position:   "Comptable",
		Department: string(models.DepartmentAccounting),
	})
	require.NoError(t, err)

	params := TeamSearchParams{Department: string(models.DepartmentAccounting)}
	params.Page = 1
	params.Limit = 10

	members, total, err := service.SearchTeamMembers(params)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, members, 1)
	assert.Equal(t, second.ID, members[0].ID)

	params = TeamSearchParams{}
	params.Page = 1
	params.Limit = 10
	params.Search = "benali"

	members, total, err = service.SearchTeamMembers(params)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Karim", members[0].FirstName)
}

func TestTeamStats(t *testing.T) {
	service := newTeamTestService(t)

	createTestMember(t, service, "karim@example.com", string(models.DepartmentSales))
	createTestMember(t, service, "youssef@example.com", string(models.DepartmentSales))
	inactive := createTestMember(t, service, "nadia@example.com", string(models.DepartmentAccounting))

	_, err := service.SetActive(inactive.ID, false)
	require.NoError(t, err)

	stats, err := service.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Active)
	assert.Equal(t, int64(1), stats.Inactive)
	assert.Equal(t, int64(2), stats.ByDepartment[string(models.DepartmentSales)])
	assert.Equal(t, int64(1), stats.ByDepartment[string(models.DepartmentAccounting)])
}

func TestDeleteTeamMemberNotFound(t *testing.T) {
	service := newTeamTestService(t)

	err := service.DeleteTeamMember(77)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "team member not found")
}
