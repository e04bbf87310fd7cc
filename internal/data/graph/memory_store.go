package graph

import (
	"context"
	"sort"
	"sync"

	types "github.com/yungbote/genealogy-backend/internal/domain"
)

// edgeSet counts directed edges from -> to. Repeated CREATEs produce
// parallel edges in the graph database, so the count mirrors that.
type edgeSet map[types.PersonID]map[types.PersonID]int

func (e edgeSet) add(from, to types.PersonID) {
	if e[from] == nil {
		e[from] = map[types.PersonID]int{}
	}
	e[from][to]++
}

func (e edgeSet) remove(from, to types.PersonID) int {
	n := e[from][to]
	if n == 0 {
		return 0
	}
	delete(e[from], to)
	if len(e[from]) == 0 {
		delete(e, from)
	}
	return n
}

func (e edgeSet) detach(id types.PersonID) {
	delete(e, id)
	for from, targets := range e {
		delete(targets, id)
		if len(targets) == 0 {
			delete(e, from)
		}
	}
}

// MemoryStore is an in-process Store with the same traversal semantics as
// the Neo4j templates. Identities are assigned from a monotonic counter.
type MemoryStore struct {
	mu       sync.RWMutex
	nextID   types.PersonID
	people   map[types.PersonID]types.PersonAttributes
	spouseOf edgeSet
	fatherOf edgeSet
	motherOf edgeSet
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		people:   map[types.PersonID]types.PersonAttributes{},
		spouseOf: edgeSet{},
		fatherOf: edgeSet{},
		motherOf: edgeSet{},
	}
}

func (s *MemoryStore) Ping(ctx context.Context) error { return ctx.Err() }

func (s *MemoryStore) CreatePerson(ctx context.Context, attrs types.PersonAttributes) (types.PersonNode, error) {
	if err := ctx.Err(); err != nil {
		return types.PersonNode{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.people[id] = attrs
	return types.PersonNode{ID: id, Attrs: attrs}, nil
}

func (s *MemoryStore) CreateParentChild(ctx context.Context, motherID, fatherID, childID types.PersonID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.has(motherID, fatherID, childID) {
		return 0, nil
	}
	s.motherOf.add(motherID, childID)
	s.fatherOf.add(fatherID, childID)
	return 1, nil
}

func (s *MemoryStore) CreateMarriage(ctx context.Context, spouse1ID, spouse2ID types.PersonID) ([]SpouseRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.has(spouse1ID, spouse2ID) {
		return []SpouseRow{}, nil
	}
	s.spouseOf.add(spouse1ID, spouse2ID)
	s.spouseOf.add(spouse2ID, spouse1ID)
	return []SpouseRow{{Spouse1: s.node(spouse1ID), Spouse2: s.node(spouse2ID)}}, nil
}

func (s *MemoryStore) DeletePerson(ctx context.Context, id types.PersonID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.has(id) {
		return 0, nil
	}
	delete(s.people, id)
	s.spouseOf.detach(id)
	s.fatherOf.detach(id)
	s.motherOf.detach(id)
	return 1, nil
}

func (s *MemoryStore) DeleteMarriage(ctx context.Context, spouse1ID, spouse2ID types.PersonID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.spouseOf.remove(spouse1ID, spouse2ID)
	if spouse1ID != spouse2ID {
		n += s.spouseOf.remove(spouse2ID, spouse1ID)
	}
	return n, nil
}

func (s *MemoryStore) AllPeople(ctx context.Context) ([]FamilyRow, error) {
	return s.families(ctx, func(types.PersonID, types.PersonAttributes) bool { return true }, fanOutFull)
}

func (s *MemoryStore) PeopleByGender(ctx context.Context, gender types.Gender) ([]FamilyRow, error) {
	return s.families(ctx, func(_ types.PersonID, a types.PersonAttributes) bool { return a.Gender == gender }, fanOutNoParents)
}

func (s *MemoryStore) UnmarriedPeople(ctx context.Context) ([]FamilyRow, error) {
	return s.families(ctx, func(id types.PersonID, _ types.PersonAttributes) bool { return !s.married(id) }, fanOutNone)
}

func (s *MemoryStore) MarriedPeople(ctx context.Context) ([]FamilyRow, error) {
	return s.families(ctx, func(id types.PersonID, _ types.PersonAttributes) bool { return s.married(id) }, fanOutNoParents)
}

func (s *MemoryStore) PersonFamily(ctx context.Context, id types.PersonID) ([]FamilyRow, error) {
	return s.families(ctx, func(pid types.PersonID, _ types.PersonAttributes) bool { return pid == id }, fanOutFull)
}

type fanOut int

const (
	fanOutNone fanOut = iota
	fanOutNoParents
	fanOutFull
)

func (s *MemoryStore) families(ctx context.Context, anchor func(types.PersonID, types.PersonAttributes) bool, mode fanOut) ([]FamilyRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]types.PersonID, 0, len(s.people))
	for id, attrs := range s.people {
		if anchor(id, attrs) {
			ids = append(ids, id)
		}
	}
	sortIDs(ids)

	out := make([]FamilyRow, 0, len(ids))
	for _, id := range ids {
		row := FamilyRow{Person: s.node(id)}
		if mode >= fanOutNoParents {
			row.Spouses = s.nodes(s.spousesOf(id))
			for _, cid := range s.childrenOf(id) {
				n := s.node(cid)
				row.Children = append(row.Children, &ChildRow{Person: &n, ParentIDs: s.parentsOf(cid)})
			}
		}
		if mode == fanOutFull {
			row.Fathers = s.nodes(incoming(s.fatherOf, id))
			row.Mothers = s.nodes(incoming(s.motherOf, id))
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *MemoryStore) has(ids ...types.PersonID) bool {
	for _, id := range ids {
		if _, ok := s.people[id]; !ok {
			return false
		}
	}
	return true
}

func (s *MemoryStore) married(id types.PersonID) bool {
	return len(s.spouseOf[id]) > 0 || len(incoming(s.spouseOf, id)) > 0
}

func (s *MemoryStore) node(id types.PersonID) types.PersonNode {
	return types.PersonNode{ID: id, Attrs: s.people[id]}
}

func (s *MemoryStore) nodes(ids []types.PersonID) []*types.PersonNode {
	out := make([]*types.PersonNode, 0, len(ids))
	for _, id := range ids {
		n := s.node(id)
		out = append(out, &n)
	}
	return out
}

// spousesOf follows SPOUSE_OF in either direction.
func (s *MemoryStore) spousesOf(id types.PersonID) []types.PersonID {
	seen := map[types.PersonID]struct{}{}
	for to := range s.spouseOf[id] {
		seen[to] = struct{}{}
	}
	for _, from := range incoming(s.spouseOf, id) {
		seen[from] = struct{}{}
	}
	return keys(seen)
}

func (s *MemoryStore) childrenOf(id types.PersonID) []types.PersonID {
	seen := map[types.PersonID]struct{}{}
	for to := range s.fatherOf[id] {
		seen[to] = struct{}{}
	}
	for to := range s.motherOf[id] {
		seen[to] = struct{}{}
	}
	return keys(seen)
}

func (s *MemoryStore) parentsOf(child types.PersonID) []types.PersonID {
	out := append(incoming(s.fatherOf, child), incoming(s.motherOf, child)...)
	sortIDs(out)
	return out
}

func incoming(e edgeSet, to types.PersonID) []types.PersonID {
	out := []types.PersonID{}
	for from, targets := range e {
		if targets[to] > 0 {
			out = append(out, from)
		}
	}
	sortIDs(out)
	return out
}

func keys(m map[types.PersonID]struct{}) []types.PersonID {
	out := make([]types.PersonID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sortIDs(out)
	return out
}

func sortIDs(ids []types.PersonID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
