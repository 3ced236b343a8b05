package hsm

// Version is the engine release.
const Version = "0.4.0"
