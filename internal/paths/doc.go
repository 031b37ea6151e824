// Provides the fixed directory layout used by cmbuild.
//
// User-level configuration follows XDG conventions on Linux and the
// platform-native conventions on macOS and Windows. The staged output tree
// under the output root is fixed by convention so that downstream packaging
// can locate artifacts without reading cmbuild's configuration:
//
//	<output>/runtimes/<rid>/native/     native dynamic library (+ debug symbols)
//	<output>/build/wasm-binaries/cmb.a  merged WebAssembly static archive
//	<output>/manifest.json              descriptor of every staged artifact
package paths
