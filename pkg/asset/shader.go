package asset

// Shader stage types.
const (
	StageFragment uint32 = 0x8B30
	StageVertex   uint32 = 0x8B31
	StageGeometry uint32 = 0x8DD9
	StageCompute  uint32 = 0x91B9
)

// ShaderStage is the source of one pipeline stage.
type ShaderStage struct {
	Stage  uint32
	Source string
}

// Shader is a program's stage sources. The default extension claims the
// shader tag but has no codec for it; a custom extension must supply one.
type Shader struct {
	Stages []ShaderStage
}
