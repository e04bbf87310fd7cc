package app

import (
	"fmt"
	"strings"

	"github.com/yungbote/genealogy-backend/internal/platform/neo4jdb"
)

type StoreBackend string

const (
	StoreBackendNeo4j  StoreBackend = "neo4j"
	StoreBackendMemory StoreBackend = "memory"
)

type StoreBackendConfigErrorCode string

const (
	StoreBackendConfigErrorUnknownBackend StoreBackendConfigErrorCode = "unknown_store_backend"
	StoreBackendConfigErrorMissingURI     StoreBackendConfigErrorCode = "missing_neo4j_uri"
	StoreBackendConfigErrorInvalidURI     StoreBackendConfigErrorCode = "invalid_neo4j_uri"
)

type StoreBackendConfigError struct {
	Code    StoreBackendConfigErrorCode
	Backend string
	Cause   error
}

func (e *StoreBackendConfigError) Error() string {
	if e == nil {
		return "invalid store backend config"
	}
	return fmt.Sprintf("invalid store backend config (code=%s backend=%q): %v", e.Code, e.Backend, e.Cause)
}

func (e *StoreBackendConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

type StoreBackendConfig struct {
	Backend StoreBackend
	Neo4j   neo4jdb.Config
}

var neo4jSchemes = []string{"neo4j://", "neo4j+s://", "neo4j+ssc://", "bolt://", "bolt+s://", "bolt+ssc://"}

// resolveStoreBackend validates STORE_BACKEND against the Neo4j settings.
// An empty backend means neo4j.
func resolveStoreBackend(raw string, ncfg neo4jdb.Config) (StoreBackendConfig, error) {
	backend := StoreBackend(strings.ToLower(strings.TrimSpace(raw)))
	if backend == "" {
		backend = StoreBackendNeo4j
	}
	switch backend {
	case StoreBackendMemory:
		return StoreBackendConfig{Backend: StoreBackendMemory}, nil
	case StoreBackendNeo4j:
		uri := strings.TrimSpace(ncfg.URI)
		if uri == "" {
			return StoreBackendConfig{}, &StoreBackendConfigError{
				Code:    StoreBackendConfigErrorMissingURI,
				Backend: string(backend),
				Cause:   fmt.Errorf("NEO4J_URI is required"),
			}
		}
		if !hasAnyPrefix(strings.ToLower(uri), neo4jSchemes) {
			return StoreBackendConfig{}, &StoreBackendConfigError{
				Code:    StoreBackendConfigErrorInvalidURI,
				Backend: string(backend),
				Cause:   fmt.Errorf("unsupported neo4j uri scheme in %q", uri),
			}
		}
		ncfg.URI = uri
		return StoreBackendConfig{Backend: StoreBackendNeo4j, Neo4j: ncfg}, nil
	default:
		return StoreBackendConfig{}, &StoreBackendConfigError{
			Code:    StoreBackendConfigErrorUnknownBackend,
			Backend: string(backend),
			Cause:   fmt.Errorf("unsupported store backend %q", backend),
		}
	}
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
