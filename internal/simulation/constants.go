package simulation

// DefaultMaxTicks bounds a run that never otherwise drains (e.g. a
// misconfigured topology that keeps admitting arrivals forever).
const DefaultMaxTicks = 10_000

// DefaultPathCacheSize is the shortest-path memo capacity used absent a
// configuration override.
const DefaultPathCacheSize = 256
