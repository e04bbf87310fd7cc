package graph

import (
	"context"

	types "github.com/yungbote/genealogy-backend/internal/domain"
)

// Store is the command and traversal surface over the family graph.
// Every method is a single all-or-nothing transaction.
//
// Write commands report how many anchor rows they matched instead of a
// not-found error; callers decide what zero means.
type Store interface {
	CreatePerson(ctx context.Context, attrs types.PersonAttributes) (types.PersonNode, error)
	CreateParentChild(ctx context.Context, motherID, fatherID, childID types.PersonID) (int, error)
	CreateMarriage(ctx context.Context, spouse1ID, spouse2ID types.PersonID) ([]SpouseRow, error)
	DeletePerson(ctx context.Context, id types.PersonID) (int, error)
	DeleteMarriage(ctx context.Context, spouse1ID, spouse2ID types.PersonID) (int, error)

	AllPeople(ctx context.Context) ([]FamilyRow, error)
	PeopleByGender(ctx context.Context, gender types.Gender) ([]FamilyRow, error)
	UnmarriedPeople(ctx context.Context) ([]FamilyRow, error)
	MarriedPeople(ctx context.Context) ([]FamilyRow, error)
	PersonFamily(ctx context.Context, id types.PersonID) ([]FamilyRow, error)

	Ping(ctx context.Context) error
}

var (
	_ Store = (*Neo4jStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
