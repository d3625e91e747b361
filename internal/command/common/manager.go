package common

import (
	"github.com/aldemarvin/extractor/internal/config"
	"github.com/aldemarvin/extractor/internal/core/service"
	"github.com/aldemarvin/extractor/internal/setup"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// GetConfig parses the environment-driven configuration once per process.
func GetConfig(cCtx *cli.Context) (*config.Config, error) {
	conf, err := config.Parse()
	if err != nil {
		return nil, errors.Wrap(err, "could not parse configuration")
	}

	return conf, nil
}

// GetAssemblyManager wires the full dependency graph for a command
// invocation. The manager owns the store; callers defer Close on it.
func GetAssemblyManager(cCtx *cli.Context) (*service.AssemblyManager, *config.Config, error) {
	conf, err := GetConfig(cCtx)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	manager, err := setup.NewAssemblyManagerFromConfig(cCtx.Context, conf)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not create assembly manager")
	}

	return manager, conf, nil
}
