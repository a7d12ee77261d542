package fieldlayout

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/flexile/fieldlayout.Version=...".
var Version = "0.1.0"
