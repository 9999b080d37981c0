// Package service orchestrates one discovery request through the pipeline:
// SEARCHING -> FILTERING -> ASSEMBLING, with ERRORED reachable from any
// state. Recoverable stage failures are absorbed at the stage boundary; only
// invalid configuration and placeholder-generation failure end the session.
package service

import (
	"context"
	"time"

	"merchant_agent_backend/internal/catalog/bestbuy"
	"merchant_agent_backend/internal/discovery/assemble"
	"merchant_agent_backend/internal/discovery/domain"
	"merchant_agent_backend/internal/discovery/repository"
	"merchant_agent_backend/internal/events"
	"merchant_agent_backend/platform/apperr"
	"merchant_agent_backend/platform/logger"
)

// CatalogClient is the request-scoped catalog source handle.
type CatalogClient interface {
	Search(ctx context.Context, p bestbuy.SearchParams) bestbuy.SearchOutcome
	Close()
}

// CatalogFactory creates a catalog client for one discovery request. The
// orchestrator releases it on every exit path.
type CatalogFactory func() CatalogClient

// Classifier resolves a term to an advisory catalog category.
type Classifier interface {
	Classify(ctx context.Context, term string) (sourceID, key string)
}

// RelevanceFilter narrows oversupplied candidates to the buyer's product.
type RelevanceFilter interface {
	Filter(ctx context.Context, candidates []bestbuy.Product, intent string, desired int) domain.Result[[]bestbuy.Product]
}

// AssembleOptions carries per-offer display data.
type AssembleOptions = assemble.Options

// OfferAssembler builds and emits mandate/metadata pairs.
type OfferAssembler interface {
	FromProduct(ctx context.Context, sessionID string, product bestbuy.Product, seq int, createdAt time.Time, merchantName string) (domain.CartMandate, domain.OfferMetadata, error)
	Assemble(ctx context.Context, sessionID string, item domain.PaymentItem, seq int, createdAt time.Time, opts AssembleOptions) (domain.CartMandate, domain.OfferMetadata, error)
}

// Config bounds one discovery request.
type Config struct {
	ResultCount  int
	Oversample   int
	MerchantName string
}

// Service runs the discovery pipeline.
type Service struct {
	newCatalog  CatalogFactory
	classifier  Classifier
	filter      RelevanceFilter
	assembler   OfferAssembler
	placeholder PlaceholderGenerator
	store       repository.Store
	bus         events.Bus
	log         *logger.Logger
	cfg         Config
	now         func() time.Time
}

// Offer is one assembled mandate with its metadata, in emission order.
type Offer struct {
	Mandate  domain.CartMandate
	Metadata domain.OfferMetadata
}

// Outcome reports a finished discovery session.
type Outcome struct {
	SessionID string
	State     domain.State
	Offers    []Offer
	RiskData  string
	// Degraded lists the fallback reasons of stages that recovered locally.
	Degraded []string
}

// New creates the orchestrator.
func New(newCatalog CatalogFactory, classifier Classifier, filter RelevanceFilter, assembler OfferAssembler, placeholder PlaceholderGenerator, store repository.Store, bus events.Bus, log *logger.Logger, cfg Config) *Service {
	if cfg.ResultCount < 1 {
		cfg.ResultCount = 3
	}
	if floor := cfg.ResultCount * 3; cfg.Oversample < floor {
		cfg.Oversample = floor
	}
	return &Service{
		newCatalog:  newCatalog,
		classifier:  classifier,
		filter:      filter,
		assembler:   assembler,
		placeholder: placeholder,
		store:       store,
		bus:         bus,
		log:         log,
		cfg:         cfg,
		now:         time.Now,
	}
}

// Discover runs one session through the pipeline. Either the full selected
// offer set is emitted and the session completes, or the session fails; a
// partial batch is never reported as success.
func (s *Service) Discover(ctx context.Context, session domain.Session) (Outcome, error) {
	log := s.log.WithSessionID(session.ID)
	outcome := Outcome{SessionID: session.ID, State: domain.StateStart}

	// START: an Intent and risk data must both be present before any
	// external call is made.
	if err := s.validate(session); err != nil {
		return s.fail(ctx, outcome, err)
	}

	catalog := s.newCatalog()
	defer catalog.Close()

	term := session.Intent.NaturalLanguageDescription

	// SEARCHING
	outcome.State = s.transition(log, session.ID, outcome.State, domain.StateSearching)
	searched := s.search(ctx, catalog, term)
	if searched.Degraded() {
		log.StageFallback("search", session.ID, searched.Reason)
		outcome.Degraded = append(outcome.Degraded, "search: "+searched.Reason)
	}
	if err := ctx.Err(); err != nil {
		return s.fail(ctx, outcome, apperr.Wrap(apperr.KindInternal, "discovery cancelled", err))
	}

	createdAt := s.now()
	var offers []Offer
	var err error

	if len(searched.Value) > 0 {
		// FILTERING
		outcome.State = s.transition(log, session.ID, outcome.State, domain.StateFiltering)
		filtered := s.filter.Filter(ctx, searched.Value, term, s.cfg.ResultCount)
		if filtered.Degraded() {
			log.StageFallback("filter", session.ID, filtered.Reason)
			outcome.Degraded = append(outcome.Degraded, "filter: "+filtered.Reason)
		}

		// ASSEMBLING
		outcome.State = s.transition(log, session.ID, outcome.State, domain.StateAssembling)
		offers, err = s.assembleProducts(ctx, session.ID, filtered.Value, createdAt)
	} else {
		// Search and its fallback both yielded nothing: the placeholder
		// path is the last resort, and its failure is fatal.
		outcome.State = s.transition(log, session.ID, outcome.State, domain.StateAssembling)
		offers, err = s.assemblePlaceholders(ctx, session.ID, term, createdAt)
	}
	if err != nil {
		return s.fail(ctx, outcome, err)
	}
	outcome.Offers = offers

	// Attach the session's risk data as the final record before completion.
	if err := s.store.PutRiskData(ctx, session.ID, session.RiskData); err != nil {
		return s.fail(ctx, outcome, apperr.Wrap(apperr.KindInternal, "failed to store risk data", err))
	}
	if err := s.bus.PublishSync(ctx, events.RiskDataAttached{
		BaseEvent: events.NewBaseEvent(),
		SessionID: session.ID,
		RiskData:  session.RiskData,
	}); err != nil {
		return s.fail(ctx, outcome, apperr.Wrap(apperr.KindInternal, "failed to emit risk data", err))
	}
	outcome.RiskData = session.RiskData

	if err := ctx.Err(); err != nil {
		return s.fail(ctx, outcome, apperr.Wrap(apperr.KindInternal, "discovery cancelled", err))
	}

	// COMPLETED
	outcome.State = s.transition(log, session.ID, outcome.State, domain.StateCompleted)
	if err := s.bus.PublishSync(ctx, events.DiscoveryCompleted{
		BaseEvent:  events.NewBaseEvent(),
		SessionID:  session.ID,
		OfferCount: len(outcome.Offers),
	}); err != nil {
		log.Error("failed to emit completion", "error", err.Error())
	}

	log.Info("discovery completed", "session_id", session.ID, "offers", len(outcome.Offers), "degraded_stages", len(outcome.Degraded))
	return outcome, nil
}

func (s *Service) validate(session domain.Session) error {
	if session.Intent.Empty() {
		return apperr.ConfigurationInvalid("discovery requires an intent mandate")
	}
	if session.Intent.Expired(s.now()) {
		return apperr.ConfigurationInvalid("intent mandate is expired")
	}
	if session.RiskData == "" {
		return apperr.ConfigurationInvalid("discovery requires risk data")
	}
	return nil
}

// search narrows by advisory category when one is detected, then queries the
// catalog source. The adapter absorbs its own failures, so the result is a
// non-failing list; emptiness is handled by the placeholder path.
func (s *Service) search(ctx context.Context, catalog CatalogClient, term string) domain.Result[[]bestbuy.Product] {
	var categoryID string
	if s.classifier != nil {
		categoryID, _ = s.classifier.Classify(ctx, term)
	}

	out := catalog.Search(ctx, bestbuy.SearchParams{
		Term:       term,
		MaxResults: s.cfg.ResultCount,
		Oversample: s.cfg.Oversample,
		CategoryID: categoryID,
	})
	if out.FromFallback {
		return domain.Fallback(out.Items, out.FallbackReason)
	}
	return domain.OK(out.Items)
}

func (s *Service) assembleProducts(ctx context.Context, sessionID string, products []bestbuy.Product, createdAt time.Time) ([]Offer, error) {
	offers := make([]Offer, 0, len(products))
	for i, product := range products {
		mandate, metadata, err := s.assembler.FromProduct(ctx, sessionID, product, i+1, createdAt, s.cfg.MerchantName)
		if err != nil {
			return nil, err
		}
		offers = append(offers, Offer{Mandate: mandate, Metadata: metadata})
	}
	return offers, nil
}

func (s *Service) assemblePlaceholders(ctx context.Context, sessionID, term string, createdAt time.Time) ([]Offer, error) {
	items, err := s.placeholder.Generate(ctx, term, s.cfg.ResultCount)
	if err != nil {
		return nil, apperr.UpstreamGenerationFailure("placeholder generation failed", err)
	}

	offers := make([]Offer, 0, len(items))
	for i, item := range items {
		mandate, metadata, err := s.assembler.Assemble(ctx, sessionID, item, i+1, createdAt, AssembleOptions{})
		if err != nil {
			return nil, err
		}
		offers = append(offers, Offer{Mandate: mandate, Metadata: metadata})
	}
	return offers, nil
}

func (s *Service) transition(log *logger.Logger, sessionID string, from, to domain.State) domain.State {
	log.StageTransition(sessionID, string(from), string(to))
	return to
}

// fail moves the session to ERRORED, emits the failure signal, and surfaces
// the error. Held resources are released by the deferred catalog Close.
func (s *Service) fail(ctx context.Context, outcome Outcome, err error) (Outcome, error) {
	outcome.State = domain.StateErrored
	outcome.Offers = nil

	// Publish with a detached context so cancellation does not suppress the
	// terminal failure signal.
	if pubErr := s.bus.PublishSync(context.WithoutCancel(ctx), events.DiscoveryFailed{
		BaseEvent: events.NewBaseEvent(),
		SessionID: outcome.SessionID,
		Reason:    err.Error(),
	}); pubErr != nil {
		s.log.Error("failed to emit discovery failure", "error", pubErr.Error())
	}

	s.log.Error("discovery failed", "session_id", outcome.SessionID, "error", err.Error())
	return outcome, err
}
