package desceditor

// Version is the library version, overridable at build time via
// -ldflags "-X github.com/formaniuktaras/Price20.Version=...".
var Version = "0.1.0"
