package cratekit

// Version is the semantic version of the cratekit library. Commands built
// from this module report it alongside the VCS revision.
const Version = "0.1.0"
