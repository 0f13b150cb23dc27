package build

// Version is injected at build time via -ldflags.
var Version = "dev"
