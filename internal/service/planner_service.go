package service

import (
	"context"

	"github.com/mvanholst/portfolio-tracker-backend/internal/model"
	"github.com/mvanholst/portfolio-tracker-backend/internal/repository"
)

// PlannerService computes proportional spend plans across target weights and
// can commit a plan as real buys.
type PlannerService struct {
	assetRepo       *repository.AssetRepository
	settingsService *SettingsService
	tradeService    *TradeService
}

// NewPlannerService creates a new PlannerService with the provided dependencies.
func NewPlannerService(
	assetRepo *repository.AssetRepository,
	settingsService *SettingsService,
	tradeService *TradeService,
) *PlannerService {
	return &PlannerService{
		assetRepo:       assetRepo,
		settingsService: settingsService,
		tradeService:    tradeService,
	}
}

// PlanOverrides carries optional request-level overrides for the persisted
// planner settings. Nil fields fall back to the stored settings.
type PlanOverrides struct {
	Budget    *float64
	FeeFlat   *float64
	BufferPct *float64
}

// BuildPlan computes the proportional spend plan over the given assets.
// Spendable capital is the budget minus the flat fee and the percentage
// buffer, floored at zero; an empty plan is returned when nothing is
// spendable. Weights are normalized over the assets considered, so they need
// not sum to one. EstimatedUnits is nil for assets without a price.
// Pure computation, no side effects.
func (s *PlannerService) BuildPlan(assets []model.Asset, budget, feeFlat, bufferPct float64) model.Plan {
	plan := model.Plan{
		Budget:    budget,
		FeesFlat:  feeFlat,
		BufferPct: bufferPct,
	}

	spendable := budget - feeFlat - budget*bufferPct/100
	if spendable <= 0 {
		return plan
	}
	plan.Spendable = spendable

	totalWeight := 0.0
	for _, asset := range assets {
		totalWeight += asset.TargetWeight
	}
	// Zero total weight would divide by zero; fall back to 1 so every
	// amount simply becomes spendable * targetWeight.
	if totalWeight == 0 {
		totalWeight = 1
	}

	for _, asset := range assets {
		line := model.PlanLine{
			Ticker: asset.Ticker,
			Amount: spendable * (asset.TargetWeight / totalWeight),
		}
		if asset.Price > 0 {
			units := line.Amount / asset.Price
			line.EstimatedUnits = &units
		}
		plan.Lines = append(plan.Lines, line)
	}

	return plan
}

// Plan previews the allocation of the configured (or overridden) budget
// across all assets without committing anything.
func (s *PlannerService) Plan(overrides PlanOverrides) (model.Plan, error) {
	assets, err := s.assetRepo.GetAssets()
	if err != nil {
		return model.Plan{}, err
	}
	budget, feeFlat, bufferPct, err := s.resolve(overrides)
	if err != nil {
		return model.Plan{}, err
	}
	return s.BuildPlan(assets, budget, feeFlat, bufferPct), nil
}

// AllocationResult is the outcome of committing a plan: the plan that was
// executed and the transactions it produced.
type AllocationResult struct {
	Plan         model.Plan          `json:"plan"`
	Transactions []model.Transaction `json:"transactions"`
}

// AllocateNow computes the plan restricted to assets with a price and
// immediately commits a buy per planned amount. Assets without a price are
// excluded before weights are normalized, so their weight does not dilute
// the committed buys.
func (s *PlannerService) AllocateNow(ctx context.Context, overrides PlanOverrides) (AllocationResult, error) {
	assets, err := s.assetRepo.GetAssets()
	if err != nil {
		return AllocationResult{}, err
	}

	priced := make([]model.Asset, 0, len(assets))
	for _, asset := range assets {
		if asset.Price > 0 {
			priced = append(priced, asset)
		}
	}

	budget, feeFlat, bufferPct, err := s.resolve(overrides)
	if err != nil {
		return AllocationResult{}, err
	}

	result := AllocationResult{Plan: s.BuildPlan(priced, budget, feeFlat, bufferPct)}
	for _, line := range result.Plan.Lines {
		if line.Amount <= 0 {
			continue
		}
		txn, applied, err := s.tradeService.Buy(ctx, line.Ticker, line.Amount)
		if err != nil {
			return AllocationResult{}, err
		}
		if applied {
			result.Transactions = append(result.Transactions, txn)
		}
	}

	return result, nil
}

func (s *PlannerService) resolve(overrides PlanOverrides) (budget, feeFlat, bufferPct float64, err error) {
	settings, err := s.settingsService.GetSettings()
	if err != nil {
		return 0, 0, 0, err
	}
	budget = settings.Budget
	feeFlat = settings.FeeFlat
	bufferPct = settings.BufferPct
	if overrides.Budget != nil {
		budget = *overrides.Budget
	}
	if overrides.FeeFlat != nil {
		feeFlat = *overrides.FeeFlat
	}
	if overrides.BufferPct != nil {
		bufferPct = *overrides.BufferPct
	}
	return budget, feeFlat, bufferPct, nil
}
