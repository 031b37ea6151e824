// Package toolchain decides whether the WebAssembly target is buildable and
// describes the Emscripten SDK used to build it.
//
// [Select] consults, in order, an explicit SDK root from the configuration
// and the EMSCRIPTEN environment variable. When neither names a root the
// target is disabled and the returned [Selection] carries a diagnostic for
// the caller to emit. The SDK contents are not validated here; a broken SDK
// surfaces as a configure failure in the cross pipeline.
package toolchain
