package server

import (
	"github.com/danielgtaylor/huma/v2"

	v1 "github.com/creatorstack/tracker/internal/api/v1"
	"github.com/creatorstack/tracker/internal/engine"
)

func registerAPIRoutes(api huma.API, eng *engine.Engine) {
	v1.RegisterTaskRoutes(api, eng)
	v1.RegisterStatsRoutes(api, eng)
}
