package aggregates

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/genealogy-backend/internal/data/graph"
	types "github.com/yungbote/genealogy-backend/internal/domain"
)

func node(id types.PersonID, name string) *types.PersonNode {
	return &types.PersonNode{ID: id, Attrs: types.PersonAttributes{Name: name}}
}

func ids(in []types.PersonSummary) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, s.ID)
	}
	return out
}

func TestBuildPersonStripsPlaceholders(t *testing.T) {
	row := graph.FamilyRow{
		Person:   *node(1, "Anchor"),
		Spouses:  []*types.PersonNode{nil},
		Children: []*graph.ChildRow{nil, {Person: nil}},
		Fathers:  []*types.PersonNode{nil},
		Mothers:  nil,
	}
	dto := BuildPerson(row, ViewFull)
	assert.Equal(t, "1", dto.ID)
	assert.Equal(t, "Anchor", dto.Name)
	assert.False(t, dto.IsMarried)
	require.NotNil(t, dto.Marriages)
	assert.Empty(t, dto.Marriages)
}

func TestBuildPersonOneMarriagePerSpouse(t *testing.T) {
	row := graph.FamilyRow{
		Person:  *node(1, "Anchor"),
		Spouses: []*types.PersonNode{node(2, "First"), node(3, "Second"), node(2, "First")},
		Children: []*graph.ChildRow{
			{Person: node(10, "WithFirst"), ParentIDs: []types.PersonID{1, 2}},
			{Person: node(11, "WithSecond"), ParentIDs: []types.PersonID{1, 3}},
			{Person: node(10, "WithFirst"), ParentIDs: []types.PersonID{1}},
		},
		Fathers: []*types.PersonNode{node(20, "Dad")},
		Mothers: []*types.PersonNode{node(21, "Mom"), nil},
	}

	dto := BuildPerson(row, ViewFull)
	require.True(t, dto.IsMarried)
	require.Len(t, dto.Marriages, 2)

	first, second := dto.Marriages[0], dto.Marriages[1]
	assert.Equal(t, "2", first.Spouse.ID)
	assert.Equal(t, "3", second.Spouse.ID)

	// Every marriage carries the anchor's full children set.
	assert.Equal(t, []string{"10", "11"}, ids(first.Children))
	assert.Equal(t, []string{"10", "11"}, ids(second.Children))

	// sharedChildren partitions by co-parent.
	assert.Equal(t, []string{"10"}, ids(first.SharedChildren))
	assert.Equal(t, []string{"11"}, ids(second.SharedChildren))

	assert.Equal(t, []string{"20"}, ids(first.Fathers))
	assert.Equal(t, []string{"21"}, ids(first.Mothers))
}

func TestBuildPersonReducedOmitsParents(t *testing.T) {
	row := graph.FamilyRow{
		Person:  *node(1, "Anchor"),
		Spouses: []*types.PersonNode{node(2, "Spouse")},
		Fathers: []*types.PersonNode{node(20, "Dad")},
	}
	dto := BuildPerson(row, ViewReduced)
	require.Len(t, dto.Marriages, 1)
	assert.Nil(t, dto.Marriages[0].Parents)
	assert.NotNil(t, dto.Marriages[0].Children)
	assert.NotNil(t, dto.Marriages[0].SharedChildren)
}

func TestBuildPersonKeepsDistinctNodesWithEqualAttributes(t *testing.T) {
	row := graph.FamilyRow{
		Person: *node(1, "Anchor"),
		Children: []*graph.ChildRow{
			{Person: node(10, "Twin")},
			{Person: node(11, "Twin")},
		},
		Spouses: []*types.PersonNode{node(2, "Spouse")},
	}
	dto := BuildPerson(row, ViewReduced)
	assert.Equal(t, []string{"10", "11"}, ids(dto.Marriages[0].Children))
}

func TestBuildPeoplePreservesOrder(t *testing.T) {
	rows := []graph.FamilyRow{{Person: *node(5, "e")}, {Person: *node(2, "b")}, {Person: *node(9, "i")}}
	out := BuildPeople(rows, ViewReduced)
	require.Len(t, out, 3)
	assert.Equal(t, "5", out[0].ID)
	assert.Equal(t, "2", out[1].ID)
	assert.Equal(t, "9", out[2].ID)
	assert.Empty(t, BuildPeople(nil, ViewFull))
}

func TestViewString(t *testing.T) {
	assert.Equal(t, "full", ViewFull.String())
	assert.Equal(t, "reduced", ViewReduced.String())
}

func TestBuildPersonFullKeepsEmptyParentKeys(t *testing.T) {
	row := graph.FamilyRow{
		Person:  *node(1, "Anchor"),
		Spouses: []*types.PersonNode{node(2, "Spouse")},
	}
	full, err := json.Marshal(BuildPerson(row, ViewFull))
	require.NoError(t, err)
	assert.Contains(t, string(full), `"fathers":[]`)
	assert.Contains(t, string(full), `"mothers":[]`)

	reduced, err := json.Marshal(BuildPerson(row, ViewReduced))
	require.NoError(t, err)
	assert.NotContains(t, string(reduced), "fathers")
}
