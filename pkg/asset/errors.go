package asset

import (
	"errors"

	"github.com/Faultbox/ackasset/pkg/gfx"
	"github.com/Faultbox/ackasset/pkg/stream"
)

// Codec and dispatch errors.
var (
	ErrTruncatedStream   = stream.ErrTruncated
	ErrTypeMismatch      = errors.New("asset type mismatch")
	ErrUnknownAssetType  = errors.New("unknown asset type")
	ErrAssetKindMismatch = errors.New("asset kind mismatch")
	ErrNoDecoder         = errors.New("no decoder for asset kind")
	ErrInvalidAsset      = errors.New("invalid asset")
	ErrRegistrySealed    = errors.New("registry is sealed")
)

// Errors raised by the graphics device and transfer derivation, re-exported
// so callers of this package need not import gfx to match them.
var (
	ErrDevice                   = gfx.ErrDevice
	ErrUnsupportedChannelLayout = gfx.ErrUnsupportedChannelLayout
	ErrUnsupportedTextureTarget = gfx.ErrUnsupportedTextureTarget
)
