package scheduler

import (
	"sort"
	"strings"

	"github.com/repaart/fleet-scheduler/internal/domain"
)

// DisplayAttributes are the presentation attributes of one courier in a
// rendering pass.
type DisplayAttributes struct {
	Color    string `json:"color"`
	Initials string `json:"initials"`
}

var colorPalette = []string{
	"#6366f1", // indigo
	"#f59e0b", // amber
	"#10b981", // emerald
	"#ef4444", // rose
	"#8b5cf6", // violet
	"#0ea5e9", // sky
	"#f97316", // orange
	"#14b8a6", // teal
}

// BuildDisplayAttributes assigns each courier a stable color and initials for
// one rendering pass. The mapping is plain data built from the input alone,
// so repeated calls with the same couriers produce the same assignment
// regardless of call order.
func BuildDisplayAttributes(couriers []domain.Courier) map[string]DisplayAttributes {
	ids := make([]string, 0, len(couriers))
	names := make(map[string]string, len(couriers))
	for _, c := range couriers {
		ids = append(ids, c.ID)
		names[c.ID] = c.FullName
	}
	sort.Strings(ids)

	attrs := make(map[string]DisplayAttributes, len(ids))
	for i, id := range ids {
		attrs[id] = DisplayAttributes{
			Color:    colorPalette[i%len(colorPalette)],
			Initials: initials(names[id]),
		}
	}
	return attrs
}

func initials(fullName string) string {
	var b strings.Builder
	for i, word := range strings.Fields(fullName) {
		if i == 2 {
			break
		}
		r := []rune(word)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	if b.Len() == 0 {
		return "??"
	}
	return b.String()
}
