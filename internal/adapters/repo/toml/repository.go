package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/brevio-cli/internal/domain"
	"github.com/bnema/brevio-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	workspacePathKey    = "workspace.path"
	workspaceFileMode   = 0o600
	workspaceDirMode    = 0o700
	workspaceConfigDir  = ".brevio"
	workspaceConfigFile = "workspace.toml"
	tempFilePattern     = ".workspace-*.toml.tmp"
)

type Repository struct {
	workspacePath string
	mu            *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.WorkspaceRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	if !cfg.IsSet(workspacePathKey) {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.SetDefault(workspacePathKey, filepath.Join(homeDir, workspaceConfigDir, workspaceConfigFile))
	}

	workspacePath := cfg.GetString(workspacePathKey)
	if workspacePath == "" {
		return nil, errors.New("workspace path is empty")
	}
	workspacePath, err := normalizeWorkspacePath(workspacePath)
	if err != nil {
		return nil, err
	}

	return &Repository{workspacePath: workspacePath, mu: lockForPath(workspacePath)}, nil
}

func (r *Repository) Path() string {
	return r.workspacePath
}

// Load returns the default workspace when the file does not exist yet.
func (r *Repository) Load(ctx context.Context) (domain.Workspace, error) {
	if err := ctx.Err(); err != nil {
		return domain.Workspace{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, found, err := r.readSchema()
	if err != nil {
		return domain.Workspace{}, err
	}
	if !found {
		return domain.DefaultWorkspace(), nil
	}

	return fromSchema(file), nil
}

func (r *Repository) Save(ctx context.Context, workspace domain.Workspace) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(toSchema(workspace))
}

func (r *Repository) readSchema() (fileSchema, bool, error) {
	data, err := os.ReadFile(r.workspacePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, false, nil
		}
		return fileSchema{}, false, fmt.Errorf("read workspace file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, false, fmt.Errorf("decode workspace file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, false, err
	}
	file.applyDefaults()

	return file, true, nil
}

func normalizeWorkspacePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve workspace path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.workspacePath), workspaceDirMode); err != nil {
		return fmt.Errorf("create workspace directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode workspace file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.workspacePath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp workspace file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp workspace file: %w", err)
	}

	if err := tempFile.Chmod(workspaceFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp workspace file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp workspace file: %w", err)
	}

	if err := os.Rename(tempName, r.workspacePath); err != nil {
		return fmt.Errorf("replace workspace file: %w", err)
	}

	cleanup = false
	return nil
}

func toSchema(workspace domain.Workspace) fileSchema {
	open := make([]string, 0, len(workspace.Panels.OpenPanels))
	for _, key := range workspace.Panels.OpenPanels {
		open = append(open, string(key))
	}

	selection := workspace.Selection
	return fileSchema{
		Version: currentSchemaVersion,
		Selection: selectionSchema{
			Language:     selection.Language,
			Model:        selection.Model,
			Category:     selection.Category,
			Style:        selection.Style,
			SourceType:   string(selection.SourceType),
			SummaryLevel: selection.SummaryLevel,
			OutputFormat: selection.OutputFormat,
		},
		Panels: panelsSchema{
			Open:         open,
			ActiveTool:   string(workspace.Panels.ActiveTool),
			ActiveConfig: string(workspace.Panels.ActiveConfigPanel),
		},
	}
}

// fromSchema drops unknown panel keys instead of failing, so a file written
// by a newer client still loads.
func fromSchema(file fileSchema) domain.Workspace {
	panels := domain.DefaultPanelState()
	panels.OpenPanels = make([]domain.PanelKey, 0, len(file.Panels.Open))
	for _, raw := range file.Panels.Open {
		key, err := domain.ParsePanelKey(raw)
		if err != nil || panels.IsOpen(key) {
			continue
		}
		panels.OpenPanels = append(panels.OpenPanels, key)
	}
	if tool, err := domain.ParseToolKey(file.Panels.ActiveTool); err == nil {
		panels.ActiveTool = tool
	}
	if config, err := domain.ParseConfigKey(file.Panels.ActiveConfig); err == nil {
		panels.ActiveConfigPanel = config
	}

	var sourceType domain.SourceType
	if parsed, err := domain.ParseSourceType(file.Selection.SourceType); err == nil {
		sourceType = parsed
	}

	return domain.Workspace{
		Selection: domain.Selection{
			Language:     file.Selection.Language,
			Model:        file.Selection.Model,
			Category:     file.Selection.Category,
			Style:        file.Selection.Style,
			SourceType:   sourceType,
			SummaryLevel: file.Selection.SummaryLevel,
			OutputFormat: file.Selection.OutputFormat,
		},
		Panels: panels,
	}
}
