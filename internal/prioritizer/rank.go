package prioritizer

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/huc-prioritizer/internal/domain"
)

// DefaultLimit - размер топа, если пользователь не задал число
const DefaultLimit = 3

// Rank сортирует по убыванию балла; при равенстве - по ID единицы,
// затем исходный порядок. limit <= 0 заменяется на DefaultLimit и
// ограничивается диапазоном [1, len(full)].
func Rank(scored []domain.ScoredUnit, limit int) (full, top []domain.ScoredUnit) {
	full = make([]domain.ScoredUnit, len(scored))
	copy(full, scored)

	sort.SliceStable(full, func(i, j int) bool {
		if full[i].Weight != full[j].Weight {
			return full[i].Weight > full[j].Weight
		}
		return full[i].ID < full[j].ID
	})

	k := clampLimit(limit, len(full))
	top = make([]domain.ScoredUnit, k)
	copy(top, full[:k])
	return full, top
}

func clampLimit(limit, n int) int {
	if n == 0 {
		return 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > n {
		return n
	}
	return limit
}

// ParseLimit приводит свободный ввод к размеру топа.
// Нечисловое значение, NaN, бесконечность и ноль дают DefaultLimit,
// дробь усекается, отрицательные и (0,1) дают 1.
func ParseLimit(text string) int {
	return ParseLimitDefault(text, DefaultLimit)
}

// ParseLimitDefault - как ParseLimit, но с настраиваемым значением по умолчанию
func ParseLimitDefault(text string, def int) int {
	if def < 1 {
		def = DefaultLimit
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f == 0 {
		return def
	}
	if f < 1 {
		return 1
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

// Range возвращает минимум и максимум балла; nil для пустого набора
func Range(scored []domain.ScoredUnit) *domain.ScoreRange {
	if len(scored) == 0 {
		return nil
	}
	r := &domain.ScoreRange{Min: scored[0].Weight, Max: scored[0].Weight}
	for _, s := range scored[1:] {
		if s.Weight < r.Min {
			r.Min = s.Weight
		}
		if s.Weight > r.Max {
			r.Max = s.Weight
		}
	}
	return r
}
