package version

// Version is overridden at build time with -ldflags "-X extcount/version.Version=...".
var Version = "dev"
