package domain

import "github.com/huc-prioritizer/internal/pkg/errors"

// HeaderCount - число служебных строк (подпись и правила) перед слотами в UI.
// В PickerList они не хранятся.
const HeaderCount = 2

// PickerList - растущий список слотов выбора имён.
// Начинается с одного пустого слота; новый пустой слот добавляется,
// когда последний слот впервые получает значение, пока не достигнут Ceiling.
type PickerList struct {
	Slots   []string `json:"slots"`
	Ceiling int      `json:"ceiling"`
}

// NewPickerList создает список в начальном состоянии
func NewPickerList(ceiling int) PickerList {
	return PickerList{Slots: []string{""}, Ceiling: ceiling}
}

// OnPick записывает value в слот index и возвращает новое состояние.
// Исходный список не меняется.
func (l PickerList) OnPick(index int, value string) (PickerList, error) {
	if index < 0 || index >= len(l.Slots) {
		return l, errors.ErrInvalidSlot.WithDetails(map[string]interface{}{
			"slot":  index,
			"slots": len(l.Slots),
		})
	}
	if value == "" {
		return l, errors.ErrInvalidPick
	}

	last := index == len(l.Slots)-1
	wasEmpty := l.Slots[index] == ""

	slots := make([]string, len(l.Slots), len(l.Slots)+1)
	copy(slots, l.Slots)
	slots[index] = value

	if last && wasEmpty && len(slots) < l.Ceiling {
		slots = append(slots, "")
	}

	return PickerList{Slots: slots, Ceiling: l.Ceiling}, nil
}

// Reset возвращает список к одному пустому слоту
func (l PickerList) Reset() PickerList {
	return NewPickerList(l.Ceiling)
}

// Chosen - непустые значения в порядке слотов, с повторами
func (l PickerList) Chosen() []string {
	out := make([]string, 0, len(l.Slots))
	for _, s := range l.Slots {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (l PickerList) Len() int {
	return len(l.Slots)
}

// AtCeiling - список больше не растёт
func (l PickerList) AtCeiling() bool {
	return len(l.Slots) >= l.Ceiling
}
