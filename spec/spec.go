// Package spec bundles the SDL fragments every composed schema starts with:
// the custom directive vocabulary, the common instance tag types and the
// fixed width scalars.
package spec

import "embed"

// Label is the provenance recorded for every type declared in the bundle.
const Label = "S2DM Spec"

// Files lists the bundled fragments in load order.
var Files = []string{
	"custom_directives.graphql",
	"common_types.graphql",
	"custom_scalars.graphql",
}

//go:embed *.graphql
var FS embed.FS
