package services

import (
	"sort"
	"strings"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Hàm chuẩn hóa chuỗi: bỏ dấu tiếng Việt, chữ thường
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

// Tính độ tương đồng giữa hai chuỗi
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/maxLen
}

// filterByName lọc theo tên không phân biệt dấu, xếp theo độ tương đồng.
// Không có kết quả thì trả về tên gần nhất làm gợi ý.
func filterByName[T any](items []T, name func(T) string, q string) ([]T, string) {
	query := normalizeInput(q)
	if query == "" {
		return items, ""
	}

	type scored struct {
		item  T
		score float64
	}
	var matched []scored
	for _, it := range items {
		n := normalizeInput(name(it))
		if strings.Contains(n, query) {
			matched = append(matched, scored{item: it, score: calculateSimilarity(query, n)})
		}
	}

	if len(matched) == 0 {
		return []T{}, suggestName(items, name, query)
	}

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].score > matched[j].score })
	out := make([]T, 0, len(matched))
	for _, m := range matched {
		out = append(out, m.item)
	}
	return out, ""
}

func suggestName[T any](items []T, name func(T) string, query string) string {
	if len(items) == 0 {
		return ""
	}
	byNormalized := make(map[string]string, len(items))
	keys := make([]string, 0, len(items))
	for _, it := range items {
		n := normalizeInput(name(it))
		if _, ok := byNormalized[n]; !ok {
			byNormalized[n] = name(it)
			keys = append(keys, n)
		}
	}
	cm := closestmatch.New(keys, []int{2, 3})
	return byNormalized[cm.Closest(query)]
}
