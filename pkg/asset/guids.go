package asset

import "github.com/Faultbox/ackasset/pkg/guid"

// Built-in block tags.
var (
	ModelGUID    = guid.MustParse("c4a67fe0-8274-4390-8ed6-50610b0a54f8")
	MaterialGUID = guid.MustParse("324c6780-82b0-473d-a0a9-e0a34f6beea2")
	BitmapGUID   = guid.MustParse("b40f6426-2d6c-44b3-bd3d-629faa5aefe7")
	MeshGUID     = guid.MustParse("ceb9e222-c803-43ac-81a9-149a32c5f39b")
	ShaderGUID   = guid.MustParse("d247fbc8-7a2a-4521-a2c6-5ab5522c2843")
)
