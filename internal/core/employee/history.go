package employee

import "sort"

// DefaultMaxReviews はプロフィールに含める評価件数の既定値です。
const DefaultMaxReviews = 5

// SelectReviews は評価を新しい順 (同日は ID 昇順) に並べ、先頭 maxReviews 件を返します。
// 入力スライスは変更しません。maxReviews が 0 以下の場合は全件を返します。
func SelectReviews(reviews []PerformanceReview, maxReviews int) []PerformanceReview {
	if len(reviews) == 0 {
		return []PerformanceReview{}
	}

	selected := make([]PerformanceReview, len(reviews))
	copy(selected, reviews)
	sort.SliceStable(selected, func(i, j int) bool {
		a, b := selected[i], selected[j]
		if !a.ReviewDate.Equal(b.ReviewDate) {
			return a.ReviewDate.After(b.ReviewDate)
		}
		return a.ID < b.ID
	})

	if maxReviews > 0 && len(selected) > maxReviews {
		selected = selected[:maxReviews]
	}
	return selected
}
