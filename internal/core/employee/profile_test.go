package employee

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile_MapsFields(t *testing.T) {
	t.Parallel()

	g := newFixtureStore()
	carol := g.Employees[3]

	p, err := NewProfile(g, carol, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ID)
	assert.Equal(t, "Carol", p.Name)
	assert.Equal(t, "carol@example.com", p.Email)
	require.NotNil(t, p.DateOfJoining)
	assert.Equal(t, "2022-02-01", *p.DateOfJoining)
	assert.Equal(t, 80000.0, p.Salary)
	assert.Equal(t, "Alice", p.ManagerName)
	assert.Equal(t, "Sales", p.DepartmentName)

	require.Len(t, p.Projects, 2)
	assert.Equal(t, "Atlas", p.Projects[0].Name)
	assert.Equal(t, "Eng", p.Projects[0].DepartmentName)
	assert.Nil(t, p.Projects[0].EndDate)
	assert.Equal(t, "Zephyr", p.Projects[1].Name)
	require.NotNil(t, p.Projects[1].EndDate)
	assert.Equal(t, "2024-12-31", *p.Projects[1].EndDate)

	require.NotNil(t, p.Reviews)
	assert.Empty(t, p.Reviews)
}

func TestNewProfile_DefaultsMissingRelations(t *testing.T) {
	t.Parallel()

	g := NewGraph()
	orphan := &Employee{ID: 7, Name: "Orphan", Email: "orphan@example.com", DepartmentID: 42, ManagerID: int64Ptr(99)}
	g.AddRoot(orphan)

	p, err := NewProfile(g, orphan, nil)

	require.NoError(t, err)
	assert.Equal(t, NoManager, p.ManagerName)
	assert.Equal(t, NoDepartment, p.DepartmentName)
	assert.Nil(t, p.DateOfJoining)
	assert.Empty(t, p.Projects)
}

func TestNewProfile_IsIdempotent(t *testing.T) {
	t.Parallel()

	g := newFixtureStore()
	alice := g.Employees[1]
	reviews := SelectReviews(alice.Reviews, 5)

	first, err := NewProfile(g, alice, reviews)
	require.NoError(t, err)
	second, err := NewProfile(g, alice, reviews)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNewProfile_ReviewSummaries(t *testing.T) {
	t.Parallel()

	g := newFixtureStore()
	bob := g.Employees[2]
	r := review(300, 2, date(2025, 2, 3), "9.75")
	r.Comments = strPtr("great quarter")

	p, err := NewProfile(g, bob, []PerformanceReview{r})

	require.NoError(t, err)
	require.Len(t, p.Reviews, 1)
	assert.Equal(t, int64(300), p.Reviews[0].ID)
	assert.Equal(t, "2025-02-03", *p.Reviews[0].ReviewDate)
	assert.Equal(t, "9.75", p.Reviews[0].Score.StringFixed(2))
	assert.Equal(t, "great quarter", *p.Reviews[0].Comments)
}

func TestNewProfile_DegradesOnMalformedNestedEntities(t *testing.T) {
	t.Parallel()

	g := newFixtureStore()
	bob := *g.Employees[2]
	bob.Assignments = append([]ProjectAssignment{{EmployeeID: 2, ProjectID: 404}}, bob.Assignments...)
	reviews := []PerformanceReview{
		review(1, 2, date(2024, 1, 1), "-0.01"),
		review(2, 2, date(2023, 1, 1), "10.00"),
	}

	p, err := NewProfile(g, &bob, reviews)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMappingDegraded))
	require.NotNil(t, p)
	assert.Equal(t, "Bob", p.Name)
	require.Len(t, p.Projects, 1)
	assert.Equal(t, "Zephyr", p.Projects[0].Name)
	require.Len(t, p.Reviews, 1)
	assert.Equal(t, int64(2), p.Reviews[0].ID)
}

func TestGraph_Reportees(t *testing.T) {
	t.Parallel()

	g := newFixtureStore()

	reportees := g.Reportees(1)

	require.Len(t, reportees, 2)
	assert.Equal(t, "Bob", reportees[0].Name)
	assert.Equal(t, "Carol", reportees[1].Name)
	assert.Empty(t, g.Reportees(2))
}
