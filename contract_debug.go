//go:build hsmdebug

package hsm

// debugContracts is the default for WithStrictContracts.
const debugContracts = true
