package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	types "github.com/yungbote/genealogy-backend/internal/domain"
	"github.com/yungbote/genealogy-backend/internal/platform/logger"
	"github.com/yungbote/genealogy-backend/internal/platform/neo4jdb"
)

var tracer = otel.Tracer("github.com/yungbote/genealogy-backend/internal/data/graph")

type Neo4jStore struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewNeo4jStore(client *neo4jdb.Client, log *logger.Logger) (*Neo4jStore, error) {
	if client == nil || client.Driver == nil {
		return nil, neo4jdb.ErrNotConfigured
	}
	if log == nil {
		return nil, fmt.Errorf("graph: logger required")
	}
	return &Neo4jStore{client: client, log: log.With("store", "Neo4jGenealogy")}, nil
}

// EnsureSchema creates indexes used by the traversal templates. Best effort.
func (s *Neo4jStore) EnsureSchema(ctx context.Context) {
	s.client.RunSchema(ctx, schemaStatements...)
	s.log.Debug("schema statements applied", "count", len(schemaStatements))
}

func (s *Neo4jStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *Neo4jStore) CreatePerson(ctx context.Context, attrs types.PersonAttributes) (types.PersonNode, error) {
	ctx, span := startSpan(ctx, "CreatePerson")
	defer span.End()

	node, err := neo4jdb.Write(ctx, s.client, func(tx neo4j.ManagedTransaction) (types.PersonNode, error) {
		res, err := tx.Run(ctx, cypherCreatePerson, map[string]any{"props": attrs.Properties()})
		if err != nil {
			return types.PersonNode{}, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return types.PersonNode{}, err
		}
		return decodeAnchor(rec, "id", "person")
	})
	return node, endSpan(span, err)
}

func (s *Neo4jStore) CreateParentChild(ctx context.Context, motherID, fatherID, childID types.PersonID) (int, error) {
	ctx, span := startSpan(ctx, "CreateParentChild")
	defer span.End()

	matched, err := neo4jdb.Write(ctx, s.client, func(tx neo4j.ManagedTransaction) (int, error) {
		res, err := tx.Run(ctx, cypherCreateParentChild, map[string]any{
			"motherId": motherID.Int64(),
			"fatherId": fatherID.Int64(),
			"childId":  childID.Int64(),
		})
		if err != nil {
			return 0, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return 0, err
		}
		return decodeCount(rec, "matched")
	})
	return matched, endSpan(span, err)
}

func (s *Neo4jStore) CreateMarriage(ctx context.Context, spouse1ID, spouse2ID types.PersonID) ([]SpouseRow, error) {
	ctx, span := startSpan(ctx, "CreateMarriage")
	defer span.End()

	rows, err := neo4jdb.Write(ctx, s.client, func(tx neo4j.ManagedTransaction) ([]SpouseRow, error) {
		res, err := tx.Run(ctx, cypherCreateMarriage, map[string]any{
			"spouse1Id": spouse1ID.Int64(),
			"spouse2Id": spouse2ID.Int64(),
		})
		if err != nil {
			return nil, err
		}
		recs, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]SpouseRow, 0, len(recs))
		for _, rec := range recs {
			row, err := decodeSpouseRecord(rec)
			if err != nil {
				return nil, err
			}
			out = append(out, row)
		}
		return out, nil
	})
	return rows, endSpan(span, err)
}

func (s *Neo4jStore) DeletePerson(ctx context.Context, id types.PersonID) (int, error) {
	return s.writeCount(ctx, "DeletePerson", cypherDeletePerson, "deleted", map[string]any{"personId": id.Int64()})
}

func (s *Neo4jStore) DeleteMarriage(ctx context.Context, spouse1ID, spouse2ID types.PersonID) (int, error) {
	return s.writeCount(ctx, "DeleteMarriage", cypherDeleteMarriage, "deleted", map[string]any{
		"spouse1Id": spouse1ID.Int64(),
		"spouse2Id": spouse2ID.Int64(),
	})
}

func (s *Neo4jStore) AllPeople(ctx context.Context) ([]FamilyRow, error) {
	return s.readFamilies(ctx, "AllPeople", cypherAllPeople, nil)
}

func (s *Neo4jStore) PeopleByGender(ctx context.Context, gender types.Gender) ([]FamilyRow, error) {
	return s.readFamilies(ctx, "PeopleByGender", cypherPeopleByGender, map[string]any{"gender": string(gender)})
}

func (s *Neo4jStore) UnmarriedPeople(ctx context.Context) ([]FamilyRow, error) {
	return s.readFamilies(ctx, "UnmarriedPeople", cypherUnmarriedPeople, nil)
}

func (s *Neo4jStore) MarriedPeople(ctx context.Context) ([]FamilyRow, error) {
	return s.readFamilies(ctx, "MarriedPeople", cypherMarriedPeople, nil)
}

func (s *Neo4jStore) PersonFamily(ctx context.Context, id types.PersonID) ([]FamilyRow, error) {
	return s.readFamilies(ctx, "PersonFamily", cypherPersonFamily, map[string]any{"personId": id.Int64()})
}

func (s *Neo4jStore) writeCount(ctx context.Context, op, query, key string, params map[string]any) (int, error) {
	ctx, span := startSpan(ctx, op)
	defer span.End()

	n, err := neo4jdb.Write(ctx, s.client, func(tx neo4j.ManagedTransaction) (int, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return 0, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return 0, err
		}
		return decodeCount(rec, key)
	})
	return n, endSpan(span, err)
}

func (s *Neo4jStore) readFamilies(ctx context.Context, op, query string, params map[string]any) ([]FamilyRow, error) {
	ctx, span := startSpan(ctx, op)
	defer span.End()

	rows, err := neo4jdb.Read(ctx, s.client, func(tx neo4j.ManagedTransaction) ([]FamilyRow, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		recs, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]FamilyRow, 0, len(recs))
		for _, rec := range recs {
			row, err := decodeFamilyRecord(rec)
			if err != nil {
				return nil, err
			}
			out = append(out, row)
		}
		return out, nil
	})
	span.SetAttributes(attribute.Int("genealogy.rows", len(rows)))
	return rows, endSpan(span, err)
}

func startSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "graph."+op, trace.WithAttributes(
		attribute.String("db.system", "neo4j"),
		attribute.String("db.operation", op),
	))
}

func endSpan(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
