package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/utkarsh5026/TrackIt/pkg/config"
	"github.com/utkarsh5026/TrackIt/pkg/model"
	"github.com/utkarsh5026/TrackIt/pkg/repository"
	"github.com/utkarsh5026/TrackIt/pkg/syncer"
	"github.com/utkarsh5026/TrackIt/pkg/trackpath"
	"github.com/utkarsh5026/TrackIt/pkg/transport"
)

// findRepository finds the workspace starting from the current
// directory, walking up to the mount point
func findRepository() (*repository.Repository, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	dir := cwd
	for {
		trackDir := filepath.Join(dir, trackpath.TrackDir)
		if info, err := os.Stat(trackDir); err == nil && info.IsDir() {
			workspace, err := trackpath.NewWorkspacePath(dir)
			if err != nil {
				return nil, fmt.Errorf("invalid workspace path: %w", err)
			}

			repo := repository.NewRepository(workspace)
			if err := repo.Open(); err != nil {
				return nil, err
			}
			return repo, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, fmt.Errorf("not a trackit workspace (or any parent up to mount point)")
		}
		dir = parent
	}
}

// loadConfig loads the layered configuration for a workspace
func loadConfig(ctx context.Context, repo *repository.Repository) (*config.TypedConfig, *config.Manager, error) {
	manager := config.NewManager(repo.TrackPath())
	if err := manager.Load(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return config.NewTypedConfig(manager), manager, nil
}

// findRemote resolves a remote by name or id; with an empty name a
// single configured remote is picked automatically
func findRemote(repo *repository.Repository, name string) (*model.Remote, error) {
	remotes, err := repo.Remotes()
	if err != nil {
		return nil, err
	}

	if name == "" {
		switch len(remotes) {
		case 0:
			return nil, fmt.Errorf("no remotes configured, add one with 'trackit remote add'")
		case 1:
			return remotes[0], nil
		default:
			return nil, fmt.Errorf("%d remotes configured, pick one with --remote", len(remotes))
		}
	}

	for _, remote := range remotes {
		if remote.Name == name || remote.ID == name {
			return remote, nil
		}
	}
	return nil, fmt.Errorf("unknown remote: %s", name)
}

// buildEngine wires a sync engine for a remote using the configured
// transport settings
func buildEngine(repo *repository.Repository, cfg *config.TypedConfig, manager *config.Manager, remote *model.Remote) (*syncer.Engine, error) {
	tr, err := transport.NewHTTPTransport(remote.URL, cfg.SyncTimeout())
	if err != nil {
		return nil, err
	}

	token := os.Getenv("TRACKIT_TOKEN")
	if entry := manager.Get("remote.token"); entry != nil && token == "" {
		token = entry.AsString()
	}
	if token == "" {
		return nil, fmt.Errorf("no remote credentials: set remote.token or TRACKIT_TOKEN")
	}

	return syncer.NewEngine(repo, tr, transport.BearerCredentials(token)), nil
}

// syncOptionsFromConfig seeds sync options with configured defaults
func syncOptionsFromConfig(cfg *config.TypedConfig) syncer.SyncOptions {
	opts := syncer.DefaultSyncOptions()
	opts.BatchSize = cfg.SyncBatchSize()
	opts.Timeout = cfg.SyncTimeout()
	opts.AutoResolve = cfg.SyncAutoResolve()
	return opts
}

// resolveIssue finds an issue by full or abbreviated id
func resolveIssue(repo *repository.Repository, id string) (*model.Issue, error) {
	issue, err := repo.Issue(id)
	if err != nil {
		return nil, err
	}
	if issue != nil {
		return issue, nil
	}

	// Abbreviated ids match by prefix when unambiguous
	issues, err := repo.Issues()
	if err != nil {
		return nil, err
	}

	var matches []*model.Issue
	for _, candidate := range issues {
		if len(id) >= 4 && len(candidate.ID) >= len(id) && candidate.ID[:len(id)] == id {
			matches = append(matches, candidate)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("no issue with id %s", id)
	default:
		return nil, fmt.Errorf("ambiguous issue id %s matches %d issues", id, len(matches))
	}
}
