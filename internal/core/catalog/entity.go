package catalog

// DropdownItem は参照リスト用の {id, name} の組です。
type DropdownItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
