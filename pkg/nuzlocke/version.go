// Package nuzlocke holds build metadata of the nuzlocke tools.
package nuzlocke

// Version is the release version. Builds override it with
// -ldflags "-X github.com/mesh-intelligence/nuzlocke/pkg/nuzlocke.Version=...".
var Version = "0.1.0-dev"

// ModulePath is the Go module path.
const ModulePath = "github.com/mesh-intelligence/nuzlocke"
