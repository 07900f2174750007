//go:build !poke

package bump

const pokeBuild = false
