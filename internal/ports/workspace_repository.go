package ports

import (
	"context"

	"github.com/bnema/brevio-cli/internal/domain"
)

type WorkspaceRepository interface {
	Load(ctx context.Context) (domain.Workspace, error)
	Save(ctx context.Context, workspace domain.Workspace) error
}
