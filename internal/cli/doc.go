// Parses flags, configures logging and runs cmbuild commands.
//
// Global flags:
//
//	-q, --quiet     Suppress informational output.
//	-v, --verbose   Echo every external command and its exit code.
//	-d, --debug     Enable debug output.
//	-c, --config    Configuration file path.
//
// The build command is the default and accepts flags that override the
// configuration file, including --emscripten-sdk, which takes precedence
// over the EMSCRIPTEN environment variable. Flags override build-time
// defaults set via linker flags; the logger level is adjusted after parsing.
package cli
