//go:build poke

package bump

// pokeBuild forces poke mode for every allocator in binaries built with
// -tags poke.
const pokeBuild = true
