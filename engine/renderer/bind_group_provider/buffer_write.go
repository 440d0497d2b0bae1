package bind_group_provider

// BufferWrite is one queued upload into a provider's buffer binding. The renderer batches these
// to refresh uniforms such as the camera view-projection before the first draw of a frame.
type BufferWrite struct {
	// Provider owns the destination buffer.
	Provider BindGroupProvider
	// Binding selects the buffer within the provider.
	Binding int
	// Offset is the destination byte offset; it must be a multiple of 4.
	Offset uint64
	// Data is the payload; its length must be a multiple of 4.
	Data []byte
}
