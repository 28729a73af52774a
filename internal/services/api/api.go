// Package api provides the HTTP API for the application
package api

import (
	"solna/internal/platform/config"
	"solna/internal/platform/logger"
	phttp "solna/internal/platform/net/http"
	"solna/internal/platform/store"

	"solna/internal/modkit"
	"solna/internal/modkit/httpkit"
	"solna/internal/modkit/swaggerkit"

	metamod "solna/internal/services/api/meta/module"
	filesmod "solna/internal/services/files/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router and returns the modules it mounted
func Mount(r phttp.Router, opt Options) []modkit.Module {
	// shared deps for modules
	deps := modkit.FromStore(opt.Logger, opt.Config, opt.Store)

	mods := []modkit.Module{
		metamod.New(deps),
		filesmod.New(deps),
	}

	httpkit.MountRoot(r, httpkit.CommonStack(opt.Config), func(root httpkit.Router) {
		swaggerkit.Mount(root, opt.EnableSwagger, "")
		phttp.MountProfiler(root, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			m.MountRoutes(root)
		}
	})
	return mods
}
