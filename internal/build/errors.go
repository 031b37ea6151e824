package build

import "errors"

var (
	ErrInvalidOptions = errors.New("invalid build options")
	ErrConfigure      = errors.New("configure failed")
	ErrBuild          = errors.New("build failed")
	ErrStage          = errors.New("staging failed")
	ErrArchive        = errors.New("archive merge failed")
	ErrManifest       = errors.New("artifact manifest failed")
)
