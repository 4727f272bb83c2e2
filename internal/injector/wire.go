//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/gogpu/varlet/config"
)

// InitializeEngine assembles an Engine from cfg. The cleanup function
// closes the shader library and the renderer.
func InitializeEngine(cfg *config.Config) (*Engine, func(), error) {
	wire.Build(ProviderSet)
	return nil, nil, nil
}
