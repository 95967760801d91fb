package assets

import "errors"

// Sentinel errors for asset operations.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName indicates an empty name or one containing path
	// separators or dots.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidAssetDir indicates the override directory cannot be used.
	ErrInvalidAssetDir = errors.New("invalid asset directory")

	// ErrAssetRead indicates an override exists but could not be read,
	// including symlinks that leave the override directory.
	ErrAssetRead = errors.New("failed to read asset")
)
