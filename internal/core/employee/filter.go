package employee

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// DateLayout は日付の入出力に使う YYYY-MM-DD 形式です。
const DateLayout = "2006-01-02"

// Criteria は検索条件の入力です。各条件は任意で、空のリストと空文字列は未指定として扱います。
// 要素は受け取った値のまま比較するため、空白だけの名前はどの社員にも一致しません。
type Criteria struct {
	Departments []string
	Projects    []string
	ReviewDate  string
}

// Filter は検索条件を組み立てた述語です。有効な条件同士は AND で結合されます。
// すべて未指定の場合は全社員に一致します。
type Filter struct {
	Departments []string
	Projects    []string
	ReviewDate  *time.Time
}

// ComposeFilter は Criteria を検証して Filter を組み立てます。
// 不正な値がある場合は Filter を返さず ErrMalformedFilterValue を返します。
func ComposeFilter(c Criteria) (Filter, error) {
	var f Filter

	f.Departments = dedupNames(c.Departments)
	f.Projects = dedupNames(c.Projects)

	if raw := c.ReviewDate; raw != "" {
		d, err := time.ParseInLocation(DateLayout, raw, time.UTC)
		if err != nil {
			return Filter{}, fmt.Errorf("reviewDate %q: expected YYYY-MM-DD: %w", raw, ErrMalformedFilterValue)
		}
		f.ReviewDate = &d
	}

	return f, nil
}

// IsEmpty は有効な条件が 1 つもないかを返します。
func (f Filter) IsEmpty() bool {
	return len(f.Departments) == 0 && len(f.Projects) == 0 && f.ReviewDate == nil
}

// Matches は Graph 上の社員が Filter に一致するかを判定します。
// 永続化層が組み立てる SQL と同じ意味を持つメモリ上の判定で、テスト用の Repository が利用します。
func (f Filter) Matches(g *Graph, e *Employee) bool {
	if e == nil {
		return false
	}

	if len(f.Departments) > 0 {
		d := g.Department(e.DepartmentID)
		if d == nil || !slices.Contains(f.Departments, d.Name) {
			return false
		}
	}

	if len(f.Projects) > 0 {
		found := false
		for _, p := range g.AssignedProjects(e) {
			if slices.Contains(f.Projects, p.Name) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.ReviewDate != nil {
		found := false
		for _, r := range e.Reviews {
			if sameDate(r.ReviewDate, *f.ReviewDate) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// String はログ出力用の表現を返します。
func (f Filter) String() string {
	if f.IsEmpty() {
		return "all"
	}
	parts := make([]string, 0, 3)
	if len(f.Departments) > 0 {
		parts = append(parts, "department in ["+strings.Join(f.Departments, ",")+"]")
	}
	if len(f.Projects) > 0 {
		parts = append(parts, "projects in ["+strings.Join(f.Projects, ",")+"]")
	}
	if f.ReviewDate != nil {
		parts = append(parts, "reviewDate = "+f.ReviewDate.Format(DateLayout))
	}
	return strings.Join(parts, " and ")
}

// dedupNames は重複を除いた名前を入力順で返します。値そのものは変更しません。
func dedupNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if slices.Contains(out, n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
