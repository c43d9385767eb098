package employee

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type fakeEmployeeRepo struct {
	store      *Graph
	findErr    error
	searchErr  error
	lastFilter *Filter
	calls      int
}

func newFakeEmployeeRepo(store *Graph) *fakeEmployeeRepo {
	return &fakeEmployeeRepo{store: store}
}

func (r *fakeEmployeeRepo) FindByID(_ context.Context, id int64) (*Graph, error) {
	r.calls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	emp, ok := r.store.Employees[id]
	if !ok {
		return nil, ErrEmployeeNotFound
	}
	g := r.snapshot()
	g.Roots = []int64{emp.ID}
	return g, nil
}

func (r *fakeEmployeeRepo) Search(_ context.Context, filter Filter) (*Graph, error) {
	r.calls++
	r.lastFilter = &filter
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	g := r.snapshot()
	ids := make([]int64, 0, len(r.store.Employees))
	for id := range r.store.Employees {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if filter.Matches(g, g.Employees[id]) {
			g.Roots = append(g.Roots, id)
		}
	}
	return g, nil
}

func (r *fakeEmployeeRepo) snapshot() *Graph {
	g := NewGraph()
	for id, e := range r.store.Employees {
		g.Employees[id] = e
	}
	for id, d := range r.store.Departments {
		g.Departments[id] = d
	}
	for id, p := range r.store.Projects {
		g.Projects[id] = p
	}
	return g
}

type countingObserver struct {
	operations []string
}

func (o *countingObserver) ProfileDegraded(operation string) {
	o.operations = append(o.operations, operation)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func int64Ptr(v int64) *int64 {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func review(id int64, employeeID int64, at time.Time, score string) PerformanceReview {
	return PerformanceReview{
		ID:         id,
		EmployeeID: employeeID,
		ReviewDate: at,
		Score:      decimal.RequireFromString(score),
	}
}

// newFixtureStore は 3 名の社員、2 部署、2 プロジェクトを持つ Graph を返します。
//
//	1 Alice: Eng, 上長なし, Atlas, 評価 7 件
//	2 Bob:   Eng, 上長 Alice, Zephyr, 評価 1 件 (2024-06-30)
//	3 Carol: Sales, 上長 Alice, Atlas + Zephyr, 評価なし
func newFixtureStore() *Graph {
	g := NewGraph()
	g.Departments[1] = &Department{ID: 1, Name: "Eng"}
	g.Departments[2] = &Department{ID: 2, Name: "Sales"}
	g.Projects[10] = &Project{ID: 10, Name: "Atlas", StartDate: datePtr(2023, 1, 1), DepartmentID: int64Ptr(1)}
	g.Projects[11] = &Project{ID: 11, Name: "Zephyr", StartDate: datePtr(2023, 5, 1), EndDate: datePtr(2024, 12, 31)}

	alice := &Employee{
		ID:            1,
		Name:          "Alice",
		Email:         "alice@example.com",
		DateOfJoining: datePtr(2019, 4, 1),
		Salary:        120000,
		DepartmentID:  1,
		Assignments:   []ProjectAssignment{{EmployeeID: 1, ProjectID: 10, AssignedDate: date(2023, 1, 2), Role: strPtr("Lead")}},
	}
	for i := 0; i < 7; i++ {
		alice.Reviews = append(alice.Reviews, review(int64(100+i), 1, date(2018+i, 12, 1), "8.50"))
	}

	bob := &Employee{
		ID:            2,
		Name:          "Bob",
		Email:         "bob@example.com",
		DateOfJoining: datePtr(2021, 7, 15),
		Salary:        90000,
		DepartmentID:  1,
		ManagerID:     int64Ptr(1),
		Assignments:   []ProjectAssignment{{EmployeeID: 2, ProjectID: 11, AssignedDate: date(2023, 5, 2)}},
		Reviews:       []PerformanceReview{review(200, 2, date(2024, 6, 30), "7.25")},
	}

	carol := &Employee{
		ID:            3,
		Name:          "Carol",
		Email:         "carol@example.com",
		DateOfJoining: datePtr(2022, 2, 1),
		Salary:        80000,
		DepartmentID:  2,
		ManagerID:     int64Ptr(1),
		Assignments: []ProjectAssignment{
			{EmployeeID: 3, ProjectID: 10, AssignedDate: date(2023, 3, 1)},
			{EmployeeID: 3, ProjectID: 11, AssignedDate: date(2023, 6, 1)},
		},
	}

	g.Employees[1] = alice
	g.Employees[2] = bob
	g.Employees[3] = carol
	return g
}
