package pipeline

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-batch/engine/renderer/shader"
)

// SpritePipelineKey is the key of the pipeline returned by NewSpritePipeline.
const SpritePipelineKey = "Sprite"

// NewSpritePipeline creates the alpha-blended, unculled triangle-list pipeline that draws batched
// sprites with the embedded sprite shader.
//
// Parameters:
//   - opts: additional options applied after the sprite defaults
//
// Returns:
//   - Pipeline: the sprite pipeline, not yet registered with a device
//   - error: an error if the sprite shaders could not be built
func NewSpritePipeline(opts ...PipelineBuilderOption) (Pipeline, error) {
	vs, fs, err := shader.NewSpriteShaders()
	if err != nil {
		return nil, fmt.Errorf("failed to build sprite shaders: %w", err)
	}
	options := append([]PipelineBuilderOption{
		WithVertexShader(vs),
		WithFragmentShader(fs),
	}, opts...)
	return NewPipeline(SpritePipelineKey, options...), nil
}
