package setup

import (
	"context"

	"github.com/aldemarvin/extractor/internal/adapter/jsondb"
	"github.com/aldemarvin/extractor/internal/config"
	"github.com/aldemarvin/extractor/internal/core/port"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

var getStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (port.Store, error) {
	store, err := jsondb.NewStore(afero.NewOsFs(), conf.Storage.Path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return store, nil
})
