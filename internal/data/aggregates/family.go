package aggregates

import (
	"github.com/yungbote/genealogy-backend/internal/data/graph"
	types "github.com/yungbote/genealogy-backend/internal/domain"
)

// View selects the Marriage shape.
type View int

const (
	// ViewReduced emits {spouse, children, sharedChildren}.
	ViewReduced View = iota
	// ViewFull also attaches the anchor's fathers and mothers to every marriage.
	ViewFull
)

func (v View) String() string {
	if v == ViewFull {
		return "full"
	}
	return "reduced"
}

func BuildPeople(rows []graph.FamilyRow, view View) []types.PersonDTO {
	out := make([]types.PersonDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, BuildPerson(row, view))
	}
	return out
}

func BuildPerson(row graph.FamilyRow, view View) types.PersonDTO {
	spouses := compactNodes(row.Spouses)
	children := compactChildren(row.Children)

	childSummaries := make([]types.PersonSummary, 0, len(children))
	for _, c := range children {
		childSummaries = append(childSummaries, c.Person.Summary())
	}

	var parents *types.Parents
	if view == ViewFull {
		parents = &types.Parents{
			Fathers: summaries(compactNodes(row.Fathers)),
			Mothers: summaries(compactNodes(row.Mothers)),
		}
	}

	marriages := make([]types.Marriage, 0, len(spouses))
	for _, s := range spouses {
		marriages = append(marriages, types.Marriage{
			Spouse:         s.Summary(),
			Children:       childSummaries,
			SharedChildren: sharedWith(children, s.ID),
			Parents:        parents,
		})
	}

	return types.PersonDTO{
		ID:               row.Person.ID.String(),
		PersonAttributes: row.Person.Attrs,
		IsMarried:        len(spouses) > 0,
		Marriages:        marriages,
	}
}

// compactNodes drops nil placeholders and repeated identities, keeping first occurrence.
func compactNodes(in []*types.PersonNode) []types.PersonNode {
	out := make([]types.PersonNode, 0, len(in))
	seen := make(map[types.PersonID]struct{}, len(in))
	for _, n := range in {
		if n == nil {
			continue
		}
		if _, dup := seen[n.ID]; dup {
			continue
		}
		seen[n.ID] = struct{}{}
		out = append(out, *n)
	}
	return out
}

type child struct {
	Person  types.PersonNode
	Parents map[types.PersonID]struct{}
}

// compactChildren is compactNodes for children; parent sets of duplicates are merged.
func compactChildren(in []*graph.ChildRow) []child {
	out := make([]child, 0, len(in))
	index := make(map[types.PersonID]int, len(in))
	for _, c := range in {
		if c == nil || c.Person == nil {
			continue
		}
		i, dup := index[c.Person.ID]
		if !dup {
			i = len(out)
			index[c.Person.ID] = i
			out = append(out, child{Person: *c.Person, Parents: map[types.PersonID]struct{}{}})
		}
		for _, pid := range c.ParentIDs {
			out[i].Parents[pid] = struct{}{}
		}
	}
	return out
}

func sharedWith(children []child, spouse types.PersonID) []types.PersonSummary {
	out := make([]types.PersonSummary, 0, len(children))
	for _, c := range children {
		if _, ok := c.Parents[spouse]; ok {
			out = append(out, c.Person.Summary())
		}
	}
	return out
}

func summaries(nodes []types.PersonNode) []types.PersonSummary {
	out := make([]types.PersonSummary, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Summary())
	}
	return out
}
