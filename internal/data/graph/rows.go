package graph

import (
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	types "github.com/yungbote/genealogy-backend/internal/domain"
)

// FamilyRow is one anchor person with the neighbor sets collected by a traversal.
// A nil entry in any slice is an optional pattern that matched nothing.
type FamilyRow struct {
	Person   types.PersonNode
	Spouses  []*types.PersonNode
	Children []*ChildRow
	Fathers  []*types.PersonNode
	Mothers  []*types.PersonNode
}

// ChildRow carries the identities of every parent edge into the child so
// children can be attributed to a specific marriage.
type ChildRow struct {
	Person    *types.PersonNode
	ParentIDs []types.PersonID
}

type SpouseRow struct {
	Spouse1 types.PersonNode
	Spouse2 types.PersonNode
}

func decodeFamilyRecord(rec *neo4j.Record) (FamilyRow, error) {
	var row FamilyRow
	person, err := decodeAnchor(rec, "id", "person")
	if err != nil {
		return row, err
	}
	row.Person = person
	if row.Spouses, err = decodeNeighborList(rec, "spouses"); err != nil {
		return row, err
	}
	if row.Children, err = decodeChildList(rec, "children"); err != nil {
		return row, err
	}
	if row.Fathers, err = decodeNeighborList(rec, "fathers"); err != nil {
		return row, err
	}
	if row.Mothers, err = decodeNeighborList(rec, "mothers"); err != nil {
		return row, err
	}
	return row, nil
}

func decodeSpouseRecord(rec *neo4j.Record) (SpouseRow, error) {
	var row SpouseRow
	s1, err := decodeAnchor(rec, "spouse1Id", "spouse1")
	if err != nil {
		return row, err
	}
	s2, err := decodeAnchor(rec, "spouse2Id", "spouse2")
	if err != nil {
		return row, err
	}
	row.Spouse1, row.Spouse2 = s1, s2
	return row, nil
}

func decodeAnchor(rec *neo4j.Record, idKey, nodeKey string) (types.PersonNode, error) {
	id, isNil, err := neo4j.GetRecordValue[int64](rec, idKey)
	if err != nil {
		return types.PersonNode{}, fmt.Errorf("decode %s: %w", idKey, err)
	}
	if isNil {
		return types.PersonNode{}, fmt.Errorf("decode %s: null identity", idKey)
	}
	node, isNil, err := neo4j.GetRecordValue[neo4j.Node](rec, nodeKey)
	if err != nil {
		return types.PersonNode{}, fmt.Errorf("decode %s: %w", nodeKey, err)
	}
	if isNil {
		return types.PersonNode{}, fmt.Errorf("decode %s: null node", nodeKey)
	}
	return types.PersonNode{ID: types.PersonID(id), Attrs: types.PersonFromProperties(node.Props)}, nil
}

func decodeCount(rec *neo4j.Record, key string) (int, error) {
	n, isNil, err := neo4j.GetRecordValue[int64](rec, key)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", key, err)
	}
	if isNil {
		return 0, nil
	}
	return int(n), nil
}

// Missing keys decode as empty lists so templates that skip a fan-out can omit the column.
func recordList(rec *neo4j.Record, key string) ([]any, error) {
	if _, ok := rec.Get(key); !ok {
		return nil, nil
	}
	list, isNil, err := neo4j.GetRecordValue[[]any](rec, key)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if isNil {
		return nil, nil
	}
	return list, nil
}

func decodeNeighborList(rec *neo4j.Record, key string) ([]*types.PersonNode, error) {
	list, err := recordList(rec, key)
	if err != nil {
		return nil, err
	}
	out := make([]*types.PersonNode, 0, len(list))
	for _, raw := range list {
		n, err := decodeNeighbor(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func decodeChildList(rec *neo4j.Record, key string) ([]*ChildRow, error) {
	list, err := recordList(rec, key)
	if err != nil {
		return nil, err
	}
	out := make([]*ChildRow, 0, len(list))
	for _, raw := range list {
		n, err := decodeNeighbor(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		if n == nil {
			out = append(out, nil)
			continue
		}
		m, _ := raw.(map[string]any)
		parents, err := decodeIDList(m["parentIds"])
		if err != nil {
			return nil, fmt.Errorf("decode %s parentIds: %w", key, err)
		}
		out = append(out, &ChildRow{Person: n, ParentIDs: parents})
	}
	return out, nil
}

// decodeNeighbor reads a {id, node} map. A null entry, or a map whose node
// is null, yields nil.
func decodeNeighbor(raw any) (*types.PersonNode, error) {
	if raw == nil {
		return nil, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected neighbor type %T", raw)
	}
	if m["node"] == nil || m["id"] == nil {
		return nil, nil
	}
	node, ok := m["node"].(neo4j.Node)
	if !ok {
		return nil, fmt.Errorf("unexpected node type %T", m["node"])
	}
	id, ok := m["id"].(int64)
	if !ok {
		return nil, fmt.Errorf("unexpected id type %T", m["id"])
	}
	return &types.PersonNode{ID: types.PersonID(id), Attrs: types.PersonFromProperties(node.Props)}, nil
}

func decodeIDList(raw any) ([]types.PersonID, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected id list type %T", raw)
	}
	out := make([]types.PersonID, 0, len(list))
	for _, v := range list {
		id, ok := v.(int64)
		if !ok {
			continue
		}
		out = append(out, types.PersonID(id))
	}
	return out, nil
}
