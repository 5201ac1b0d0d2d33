package publications

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parish-tech/steeple/internal/model"
)

func ptr[T any](v T) *T { return &v }

func pub(id int, title string, date time.Time) model.Publication {
	return model.Publication{ID: id, Title: title, Content: "body", Date: date}
}

func testSet() []model.Publication {
	easter := pub(1, "Easter Service", time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC))
	easter.Featured = ptr(true)
	easter.Author = ptr("Pastor John")

	picnic := pub(2, "Summer Picnic", time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC))
	picnic.Featured = ptr(false)

	carols := pub(3, "Christmas Carols", time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC))
	carols.Tags = []string{"music", "grace notes"}

	advent := pub(4, "Advent Reflections", time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC))

	return []model.Publication{easter, picnic, carols, advent}
}

func ids(list []model.Publication) []int {
	out := make([]int, 0, len(list))
	for _, p := range list {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterByYear(t *testing.T) {
	got := Filter(testSet(), FilterOptions{Year: ptr(2024)}, ScopePublic)
	assert.Equal(t, []int{3, 4}, ids(got))
}

func TestFilterByYearMonthDay(t *testing.T) {
	opts := FilterOptions{Year: ptr(2024), Month: ptr(12), Day: ptr(24)}
	got := Filter(testSet(), opts, ScopePublic)
	assert.Equal(t, []int{3}, ids(got))
}

func TestFilterFeaturedExcludesUnset(t *testing.T) {
	// an unset flag matches neither featured=true nor featured=false
	got := Filter(testSet(), FilterOptions{Featured: ptr(true)}, ScopePublic)
	assert.Equal(t, []int{1}, ids(got))

	got = Filter(testSet(), FilterOptions{Featured: ptr(false)}, ScopePublic)
	assert.Equal(t, []int{2}, ids(got))
}

func TestFilterSearchScopes(t *testing.T) {
	// "grace" only appears in a tag, so only the public scope finds it
	got := Filter(testSet(), FilterOptions{Search: "grace"}, ScopePublic)
	assert.Equal(t, []int{3}, ids(got))

	got = Filter(testSet(), FilterOptions{Search: "grace"}, ScopeAdmin)
	assert.Empty(t, got)

	// title matches are case-insensitive in both scopes
	got = Filter(testSet(), FilterOptions{Search: "CHRISTMAS"}, ScopeAdmin)
	assert.Equal(t, []int{3}, ids(got))

	// author matches too
	got = Filter(testSet(), FilterOptions{Search: "pastor john"}, ScopeAdmin)
	assert.Equal(t, []int{1}, ids(got))
}

func TestFilterConjunction(t *testing.T) {
	opts := FilterOptions{Year: ptr(2025), Featured: ptr(true), Search: "picnic"}
	got := Filter(testSet(), opts, ScopePublic)
	assert.Empty(t, got)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	in := testSet()
	before := ids(in)
	_ = Filter(in, FilterOptions{Year: ptr(2024)}, ScopePublic)
	assert.Equal(t, before, ids(in))
}

func TestGroupByYear(t *testing.T) {
	groups := GroupByYear(testSet())
	require.Len(t, groups, 2)

	// within a group, newest first
	assert.Equal(t, []int{2, 1}, ids(groups["2025"]))
	assert.Equal(t, []int{3, 4}, ids(groups["2024"]))
}

func TestYearKeysDescending(t *testing.T) {
	groups := GroupByYear(testSet())
	assert.Equal(t, []string{"2025", "2024"}, YearKeys(groups))
}

func TestMasonryColumnsRoundRobin(t *testing.T) {
	in := testSet()
	cols := MasonryColumns(in, 3)
	require.Len(t, cols, 3)
	assert.Equal(t, []int{1, 4}, ids(cols[0]))
	assert.Equal(t, []int{2}, ids(cols[1]))
	assert.Equal(t, []int{3}, ids(cols[2]))
}

func TestMasonryColumnsClampsColumnCount(t *testing.T) {
	cols := MasonryColumns(testSet(), 0)
	require.Len(t, cols, 1)
	assert.Equal(t, []int{1, 2, 3, 4}, ids(cols[0]))
}

func TestMasonryColumnsEmptyInput(t *testing.T) {
	cols := MasonryColumns(nil, 2)
	require.Len(t, cols, 2)
	assert.Empty(t, cols[0])
	assert.Empty(t, cols[1])
}
