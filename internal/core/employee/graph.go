package employee

import "sort"

// Graph は 1 回の読み取りで得たエンティティを ID で引けるようにまとめたスナップショットです。
// Roots は検索に一致した社員の ID を永続化層が返した順に保持します。
type Graph struct {
	Roots       []int64
	Employees   map[int64]*Employee
	Departments map[int64]*Department
	Projects    map[int64]*Project
}

// NewGraph は空の Graph を生成します。
func NewGraph() *Graph {
	return &Graph{
		Employees:   make(map[int64]*Employee),
		Departments: make(map[int64]*Department),
		Projects:    make(map[int64]*Project),
	}
}

// AddRoot は社員を登録し、一致結果として Roots に追加します。
func (g *Graph) AddRoot(e *Employee) {
	if e == nil {
		return
	}
	if _, exists := g.Employees[e.ID]; !exists {
		g.Roots = append(g.Roots, e.ID)
	}
	g.Employees[e.ID] = e
}

// RootEmployees は Roots の順に社員を返します。
func (g *Graph) RootEmployees() []*Employee {
	if g == nil {
		return nil
	}
	out := make([]*Employee, 0, len(g.Roots))
	for _, id := range g.Roots {
		if e, ok := g.Employees[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Department は部署を返します。存在しなければ nil です。
func (g *Graph) Department(id int64) *Department {
	return g.Departments[id]
}

// Project はプロジェクトを返します。存在しなければ nil です。
func (g *Graph) Project(id int64) *Project {
	return g.Projects[id]
}

// Manager は社員の上長を返します。上長がいなければ nil です。
func (g *Graph) Manager(e *Employee) *Employee {
	if e == nil || e.ManagerID == nil {
		return nil
	}
	return g.Employees[*e.ManagerID]
}

// Reportees は managerID を上長に持つ社員を ID 昇順で返します。
func (g *Graph) Reportees(managerID int64) []*Employee {
	var out []*Employee
	for _, e := range g.Employees {
		if e.ManagerID != nil && *e.ManagerID == managerID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AssignedProjects は社員の割り当て順にプロジェクトを返します。解決できない割り当ては含みません。
func (g *Graph) AssignedProjects(e *Employee) []*Project {
	if e == nil {
		return nil
	}
	out := make([]*Project, 0, len(e.Assignments))
	for _, a := range e.Assignments {
		if p := g.Project(a.ProjectID); p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (g *Graph) departmentNamed(id int64) Named {
	if d := g.Department(id); d != nil {
		return d
	}
	return nil
}

func (g *Graph) managerNamed(e *Employee) Named {
	if m := g.Manager(e); m != nil {
		return m
	}
	return nil
}
