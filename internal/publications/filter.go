package publications

import (
	"sort"
	"strconv"
	"strings"

	"github.com/parish-tech/steeple/internal/model"
)

// SearchScope controls which fields free-text search scans. The public
// catalogue searches tags; the admin screens do not. The asymmetry is
// intentional and both behaviors are kept distinct.
type SearchScope int

const (
	ScopeAdmin SearchScope = iota
	ScopePublic
)

// FilterOptions is a conjunction of optional constraints. A nil pointer
// (or empty Search) places no constraint on that dimension.
type FilterOptions struct {
	Year     *int
	Month    *int // 1-12
	Day      *int // 1-31
	Featured *bool
	Search   string
}

// Matches reports whether a publication satisfies every present filter field.
func Matches(p model.Publication, opts FilterOptions, scope SearchScope) bool {
	if opts.Year != nil && p.Date.Year() != *opts.Year {
		return false
	}
	if opts.Month != nil && int(p.Date.Month()) != *opts.Month {
		return false
	}
	if opts.Day != nil && p.Date.Day() != *opts.Day {
		return false
	}
	if opts.Featured != nil {
		// an unset featured flag never matches an explicit filter
		if p.Featured == nil || *p.Featured != *opts.Featured {
			return false
		}
	}
	if opts.Search != "" && !matchesSearch(p, opts.Search, scope) {
		return false
	}
	return true
}

func matchesSearch(p model.Publication, needle string, scope SearchScope) bool {
	needle = strings.ToLower(needle)
	if strings.Contains(strings.ToLower(p.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Content), needle) {
		return true
	}
	if p.Author != nil && strings.Contains(strings.ToLower(*p.Author), needle) {
		return true
	}
	if scope == ScopePublic {
		for _, tag := range p.Tags {
			if strings.Contains(strings.ToLower(tag), needle) {
				return true
			}
		}
	}
	return false
}

// Filter returns the publications satisfying opts, in input order.
// The input slice is never mutated.
func Filter(list []model.Publication, opts FilterOptions, scope SearchScope) []model.Publication {
	out := make([]model.Publication, 0, len(list))
	for _, p := range list {
		if Matches(p, opts, scope) {
			out = append(out, p)
		}
	}
	return out
}

// GroupByYear partitions publications by four-digit year key and sorts each
// group by date descending. The input slice is never mutated.
func GroupByYear(list []model.Publication) map[string][]model.Publication {
	groups := make(map[string][]model.Publication)
	for _, p := range list {
		key := strconv.Itoa(p.Date.Year())
		groups[key] = append(groups[key], p)
	}
	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date.After(group[j].Date)
		})
	}
	return groups
}

// YearKeys returns the group keys in descending numeric order, which is how
// year sections are presented.
func YearKeys(groups map[string][]model.Publication) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a > b
	})
	return keys
}

// MasonryColumns redistributes an already-ordered sequence into column
// buckets by round-robin index. This trades strict reading order for
// balanced column heights; the sorted sequence itself is unchanged.
func MasonryColumns(list []model.Publication, columns int) [][]model.Publication {
	if columns < 1 {
		columns = 1
	}
	out := make([][]model.Publication, columns)
	for i := range out {
		out[i] = []model.Publication{}
	}
	for i, p := range list {
		out[i%columns] = append(out[i%columns], p)
	}
	return out
}
