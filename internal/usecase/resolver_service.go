package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/pricelens/backend/internal/domain"
)

// ResolverConfig holds configuration for the resolver service
type ResolverConfig struct {
	EnableDebugLogging bool
}

// ResolverService narrows the catalogue to the items matching a
// brand/name/quantity/feature query. It only reads from the store.
type ResolverService struct {
	catalogue          domain.CatalogueReader
	enableDebugLogging bool
}

// NewResolverService creates a new resolver service
func NewResolverService(catalogue domain.CatalogueReader, config ResolverConfig) *ResolverService {
	return &ResolverService{
		catalogue:          catalogue,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Resolve returns the candidates for a query, the feature tags seen across
// them before feature narrowing, and the id of the single remaining
// candidate when there is exactly one.
func (s *ResolverService) Resolve(ctx context.Context, request *domain.ResolveRequest) (*domain.ResolveResult, error) {
	if request == nil {
		return nil, domain.ErrInvalidRequest
	}

	brand := strings.TrimSpace(request.Brand)
	name := strings.TrimSpace(request.Item)
	if brand == "" || name == "" {
		return nil, domain.ErrBrandAndItemRequired
	}

	rawQuantity := strings.TrimSpace(request.Quantity.String())
	if request.StrictQty && rawQuantity == "" {
		return nil, domain.ErrQuantityRequiredInStrictMode
	}

	items, err := s.catalogue.FindByExactBrandName(ctx, name, brand)
	if err != nil {
		return nil, fmt.Errorf("%w: find by brand and name: %v", domain.ErrStoreFailure, err)
	}

	if s.enableDebugLogging {
		log.Printf("[RESOLVE] %q / %q: %d candidates before filtering (qty=%q strict=%v)",
			brand, name, len(items), rawQuantity, request.StrictQty)
	}

	candidates := items
	if rawQuantity != "" {
		candidates, err = s.filterByQuantity(ctx, items, rawQuantity, request.StrictQty)
		if err != nil {
			return nil, err
		}
	}

	suggested := make(map[string]struct{})
	for _, item := range candidates {
		for _, token := range FeatureTokens(item.Feature) {
			suggested[token] = struct{}{}
		}
	}

	required := requiredFeatureSet(request.SelectedFeatures)
	if len(required) > 0 {
		narrowed := make([]domain.ItemRecord, 0, len(candidates))
		for _, item := range candidates {
			if hasAllFeatures(featureSet(item.Feature), required) {
				narrowed = append(narrowed, item)
			}
		}
		candidates = narrowed
	}

	result := &domain.ResolveResult{
		SuggestedFeatures: sortedKeys(suggested),
		Candidates:        candidates,
	}
	if result.Candidates == nil {
		result.Candidates = []domain.ItemRecord{}
	}
	if len(candidates) == 1 {
		id := candidates[0].ID
		result.ExactID = &id
	}

	if s.enableDebugLogging {
		log.Printf("[RESOLVE] %q / %q: %d candidates after filtering, exact=%v",
			brand, name, len(result.Candidates), result.ExactID != nil)
	}

	return result, nil
}

// filterByQuantity keeps the items whose quantity matches rawQuantity.
// Outside strict mode an unknown quantity on either side passes. In strict
// mode both sides must normalize and be equivalent.
func (s *ResolverService) filterByQuantity(
	ctx context.Context,
	items []domain.ItemRecord,
	rawQuantity string,
	strict bool,
) ([]domain.ItemRecord, error) {
	var query domain.Quantity
	if strict {
		var ok bool
		if query, ok = NormalizeQuantity(rawQuantity); !ok {
			return []domain.ItemRecord{}, nil
		}
	}

	filtered := make([]domain.ItemRecord, 0, len(items))
	for _, item := range items {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		var keep bool
		if strict {
			candidate, ok := NormalizeQuantity(item.Quantity)
			keep = ok && EquivalentQuantities(query, candidate)
		} else {
			keep = SameQuantity(rawQuantity, item.Quantity)
		}

		if s.enableDebugLogging {
			log.Printf("[RESOLVE] candidate %s qty=%q keep=%v", item.ID, item.Quantity, keep)
		}
		if keep {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}
