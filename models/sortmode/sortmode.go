package sortmode

type SortMode int

const (
	Undefined SortMode = iota
	UsageCountDesc
	UsageCountAsc
	LastUsedDesc
	LastUsedAsc
	RandomDraw
	IndexedDesc
)

func ParseQuerySortMode(s string) SortMode {
	switch s {
	case "+", "＋":
		return UsageCountDesc
	case "-", "ー":
		return UsageCountAsc
	case ">", "》", "＞":
		return LastUsedDesc
	case "<", "《", "＜":
		return LastUsedAsc
	case "?", "？":
		return RandomDraw
	case "!", "！":
		return IndexedDesc
	}
	return Undefined
}

// Order is the datastore.Query order for m, or "" for natural ordering.
func (m SortMode) Order() string {
	switch m {
	case UsageCountDesc:
		return "-UsageCount"
	case UsageCountAsc:
		return "UsageCount"
	case LastUsedDesc:
		return "-LastUsed"
	case LastUsedAsc:
		return "LastUsed"
	case IndexedDesc:
		return "-Indexed"
	}
	return ""
}
