package app

// Version is set on release builds with -ldflags "-X".
var Version = "0.0.0-dev"
