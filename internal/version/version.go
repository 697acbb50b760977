package version

// Version is overridden at build time with -ldflags "-X chromosearch/internal/version.Version=...".
var Version = "dev"
