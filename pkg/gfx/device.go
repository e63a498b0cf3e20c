package gfx

// TextureID names a texture owned by a Device. Zero is never a valid texture.
type TextureID uint32

// LevelInfo describes mip level 0 of a texture.
type LevelInfo struct {
	Width, Height, Depth int
	InternalFormat       InternalFormat
	Channels             [4]Channel // R, G, B, A
}

// Device is the texture capability the asset codecs consume.
//
// Implementations are bound to whatever execution context their graphics API
// requires; they must report a missing or lost context as ErrDevice rather
// than crash. All pixel transfers use 1-byte row alignment.
type Device interface {
	// TextureInfo queries dimensions, storage format and per-channel depth and kind.
	TextureInfo(tex TextureID) (LevelInfo, error)
	// ReadPixels copies level 0 into dst, which must hold the whole image.
	ReadPixels(tex TextureID, format PixelFormat, typ PixelType, dst []byte) error

	CreateTexture(target Target) (TextureID, error)
	DeleteTexture(tex TextureID) error

	Storage1D(tex TextureID, levels int, format InternalFormat, width int) error
	Storage2D(tex TextureID, levels int, format InternalFormat, width, height int) error
	Storage3D(tex TextureID, levels int, format InternalFormat, width, height, depth int) error

	SubImage1D(tex TextureID, width int, format PixelFormat, typ PixelType, data []byte) error
	SubImage2D(tex TextureID, width, height int, format PixelFormat, typ PixelType, data []byte) error
	SubImage3D(tex TextureID, width, height, depth int, format PixelFormat, typ PixelType, data []byte) error
}
