package fontman

import (
	"reflect"

	"github.com/bradbev/flatfont/src/flat"
)

type slotEntry[T flat.Font] struct {
	font T
	used bool
}

// slotTable owns one font per slot.  Replacing or clearing a slot releases
// the font that was there.
type slotTable[T flat.Font] struct {
	entries []slotEntry[T]
}

func (t *slotTable[T]) get(slot int) (T, bool) {
	if slot < 0 || slot >= len(t.entries) || !t.entries[slot].used {
		var zero T
		return zero, false
	}
	return t.entries[slot].font, true
}

func (t *slotTable[T]) set(slot int, f T) {
	if slot >= len(t.entries) {
		grown := make([]slotEntry[T], slot+1)
		copy(grown, t.entries)
		t.entries = grown
	}
	old := t.entries[slot]
	if old.used && any(old.font) != any(f) {
		old.font.Release()
	}
	t.entries[slot] = slotEntry[T]{font: f, used: !isNil(f)}
}

// isNil reports whether f is nil or a nil pointer held in an interface.
func isNil(f any) bool {
	if f == nil {
		return true
	}
	v := reflect.ValueOf(f)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func (t *slotTable[T]) slots() []int {
	var out []int
	for i, e := range t.entries {
		if e.used {
			out = append(out, i)
		}
	}
	return out
}

func (t *slotTable[T]) reset() {
	for _, e := range t.entries {
		if e.used {
			e.font.Release()
		}
	}
	t.entries = nil
}
