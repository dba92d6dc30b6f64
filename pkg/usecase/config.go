package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/herald/pkg/domain/interfaces"
	"github.com/secmon-lab/herald/pkg/domain/model"
	"github.com/secmon-lab/herald/pkg/domain/types"
)

// ConfigUseCase accepts runtime configuration from the dashboard. Updates are
// only recorded in the activity log; the running process keeps its settings.
type ConfigUseCase struct {
	repo interfaces.Repository
}

func NewConfigUseCase(repo interfaces.Repository) *ConfigUseCase {
	return &ConfigUseCase{repo: repo}
}

func (uc *ConfigUseCase) Update(ctx context.Context, update *model.ConfigUpdate) error {
	if update == nil {
		return goerr.Wrap(ErrValidation, "configuration is required")
	}
	if err := update.Validate(); err != nil {
		return goerr.Wrap(ErrValidation, err.Error())
	}

	if _, err := uc.repo.Log().Append(ctx, types.LogTypeInfo, update.Describe()); err != nil {
		return goerr.Wrap(err, "failed to record configuration update")
	}
	return nil
}
