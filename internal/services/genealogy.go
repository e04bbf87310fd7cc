package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/yungbote/genealogy-backend/internal/data/aggregates"
	"github.com/yungbote/genealogy-backend/internal/data/cache"
	"github.com/yungbote/genealogy-backend/internal/data/graph"
	types "github.com/yungbote/genealogy-backend/internal/domain"
	"github.com/yungbote/genealogy-backend/internal/observability"
	"github.com/yungbote/genealogy-backend/internal/platform/apierr"
	"github.com/yungbote/genealogy-backend/internal/platform/ctxutil"
	"github.com/yungbote/genealogy-backend/internal/platform/logger"
)

type GenealogyService interface {
	AddPerson(ctx context.Context, attrs types.PersonAttributes) (*types.PersonSummary, error)
	AddParentChild(ctx context.Context, motherID, fatherID, childID types.PersonID) error
	AddMarriage(ctx context.Context, spouse1ID, spouse2ID types.PersonID) ([]types.SpousePair, error)
	DeletePerson(ctx context.Context, id types.PersonID) error
	DeleteMarriage(ctx context.Context, spouse1ID, spouse2ID types.PersonID) (*types.DeletedMarriage, error)

	ListPeople(ctx context.Context) ([]types.PersonDTO, error)
	ListByGender(ctx context.Context, gender types.Gender) ([]types.PersonDTO, error)
	ListUnmarried(ctx context.Context) ([]types.PersonDTO, error)
	ListMarried(ctx context.Context) ([]types.PersonDTO, error)
	GetPerson(ctx context.Context, id types.PersonID) (*types.PersonDTO, error)

	Ready(ctx context.Context) error
}

type genealogyService struct {
	store   graph.Store
	cache   cache.ViewCache
	metrics *observability.Metrics
	log     *logger.Logger
}

// NewGenealogyService wires the store behind validation, aggregation and caching.
// viewCache and metrics may be nil.
func NewGenealogyService(store graph.Store, viewCache cache.ViewCache, metrics *observability.Metrics, log *logger.Logger) GenealogyService {
	if viewCache == nil {
		viewCache = cache.NoopViewCache{}
	}
	return &genealogyService{
		store:   store,
		cache:   viewCache,
		metrics: metrics,
		log:     log.With("service", "GenealogyService"),
	}
}

func (s *genealogyService) AddPerson(ctx context.Context, attrs types.PersonAttributes) (*types.PersonSummary, error) {
	attrs, err := types.ValidatePerson(attrs)
	if err != nil {
		return nil, err
	}
	var node types.PersonNode
	err = s.run(ctx, "CreatePerson", func() (err error) {
		node, err = s.store.CreatePerson(ctx, attrs)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	out := node.Summary()
	return &out, nil
}

func (s *genealogyService) AddParentChild(ctx context.Context, motherID, fatherID, childID types.PersonID) error {
	if childID == motherID || childID == fatherID {
		return types.ValidationError("a person cannot be their own parent")
	}
	if motherID == fatherID {
		return types.ValidationError("motherId and fatherId must differ")
	}
	err := s.run(ctx, "CreateParentChild", func() error {
		matched, err := s.store.CreateParentChild(ctx, motherID, fatherID, childID)
		if err != nil {
			return err
		}
		if matched == 0 {
			return types.NotFoundError("mother, father or child does not exist")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *genealogyService) AddMarriage(ctx context.Context, spouse1ID, spouse2ID types.PersonID) ([]types.SpousePair, error) {
	if spouse1ID == spouse2ID {
		return nil, types.ValidationError("a person cannot marry themselves")
	}
	var rows []graph.SpouseRow
	err := s.run(ctx, "CreateMarriage", func() (err error) {
		rows, err = s.store.CreateMarriage(ctx, spouse1ID, spouse2ID)
		if err == nil && len(rows) == 0 {
			err = types.NotFoundError("spouse does not exist")
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	out := make([]types.SpousePair, 0, len(rows))
	for _, r := range rows {
		out = append(out, types.SpousePair{Spouse1: r.Spouse1.Summary(), Spouse2: r.Spouse2.Summary()})
	}
	return out, nil
}

func (s *genealogyService) DeletePerson(ctx context.Context, id types.PersonID) error {
	err := s.run(ctx, "DeletePerson", func() error {
		n, err := s.store.DeletePerson(ctx, id)
		if err == nil && n == 0 {
			err = types.NotFoundError("person does not exist")
		}
		return err
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *genealogyService) DeleteMarriage(ctx context.Context, spouse1ID, spouse2ID types.PersonID) (*types.DeletedMarriage, error) {
	err := s.run(ctx, "DeleteMarriage", func() error {
		n, err := s.store.DeleteMarriage(ctx, spouse1ID, spouse2ID)
		if err == nil && n == 0 {
			err = types.NotFoundError("marriage relationship does not exist")
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return &types.DeletedMarriage{Spouse1ID: spouse1ID, Spouse2ID: spouse2ID}, nil
}

func (s *genealogyService) ListPeople(ctx context.Context) ([]types.PersonDTO, error) {
	return s.list(ctx, "people", "AllPeople", aggregates.ViewFull, s.store.AllPeople)
}

func (s *genealogyService) ListByGender(ctx context.Context, gender types.Gender) ([]types.PersonDTO, error) {
	gender, err := types.ParseGender(string(gender))
	if err != nil {
		return nil, err
	}
	return s.list(ctx, string(gender)+"s", "PeopleByGender", aggregates.ViewReduced, func(ctx context.Context) ([]graph.FamilyRow, error) {
		return s.store.PeopleByGender(ctx, gender)
	})
}

func (s *genealogyService) ListUnmarried(ctx context.Context) ([]types.PersonDTO, error) {
	return s.list(ctx, "unmarried", "UnmarriedPeople", aggregates.ViewReduced, s.store.UnmarriedPeople)
}

func (s *genealogyService) ListMarried(ctx context.Context) ([]types.PersonDTO, error) {
	return s.list(ctx, "married", "MarriedPeople", aggregates.ViewReduced, s.store.MarriedPeople)
}

func (s *genealogyService) GetPerson(ctx context.Context, id types.PersonID) (*types.PersonDTO, error) {
	var rows []graph.FamilyRow
	err := s.run(ctx, "PersonFamily", func() (err error) {
		rows, err = s.store.PersonFamily(ctx, id)
		if err == nil && len(rows) == 0 {
			err = types.NotFoundError("person does not exist")
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	dto := aggregates.BuildPerson(rows[0], aggregates.ViewFull)
	return &dto, nil
}

func (s *genealogyService) Ready(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// list serves a cached view, falling back to the traversal on miss or cache failure.
func (s *genealogyService) list(ctx context.Context, view, op string, shape aggregates.View, load func(context.Context) ([]graph.FamilyRow, error)) ([]types.PersonDTO, error) {
	payload, token, hit, err := s.cache.Lookup(ctx, view)
	switch {
	case err != nil:
		s.metrics.ObserveCache(view, "error")
		s.log.Warn("view cache lookup failed (continuing)", append(ctxutil.LogFields(ctx), "view", view, "error", err)...)
	case hit:
		var out []types.PersonDTO
		if jerr := json.Unmarshal(payload, &out); jerr == nil {
			s.metrics.ObserveCache(view, "hit")
			return out, nil
		}
		s.metrics.ObserveCache(view, "error")
	default:
		s.metrics.ObserveCache(view, "miss")
	}

	var rows []graph.FamilyRow
	if err := s.run(ctx, op, func() (err error) {
		rows, err = load(ctx)
		return err
	}); err != nil {
		return nil, err
	}
	out := aggregates.BuildPeople(rows, shape)

	if token != "" {
		if raw, jerr := json.Marshal(out); jerr == nil {
			if serr := s.cache.Store(ctx, view, token, raw); serr != nil {
				s.log.Warn("view cache store failed (continuing)", "view", view, "error", serr)
			}
		}
	}
	return out, nil
}

// run times a store call and converts unexpected failures into a 500 apierr.
// Not-found and validation errors pass through untouched.
func (s *genealogyService) run(ctx context.Context, op string, fn func() error) error {
	start := time.Now()
	err := fn()
	dur := time.Since(start)
	switch {
	case err == nil:
		s.metrics.ObserveStore(op, "ok", dur)
		return nil
	case errors.Is(err, types.ErrNotFound):
		s.metrics.ObserveStore(op, "not_found", dur)
		return err
	case types.IsClientError(err):
		s.metrics.ObserveStore(op, "invalid", dur)
		return err
	default:
		s.metrics.ObserveStore(op, "error", dur)
		s.log.Error("store operation failed", append(ctxutil.LogFields(ctx), "op", op, "error", err)...)
		return apierr.New(http.StatusInternalServerError, "store_failure", fmt.Errorf("%s: %w", op, err))
	}
}

func (s *genealogyService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("view cache invalidate failed", "error", err)
	}
}
