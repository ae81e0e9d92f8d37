package bind_group_provider

// BufferWrite describes a single GPU buffer write operation targeting a specific binding
// on a BindGroupProvider at a given byte offset.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// Marshaler is implemented by the GPU types that serialize into uniform buffers.
type Marshaler interface {
	Marshal() []byte
}

// NewBufferWrite builds a BufferWrite at offset 0 from a marshalable GPU type.
//
// Parameters:
//   - provider: the provider owning the target buffer
//   - binding: the binding index of the target buffer
//   - m: the value to serialize
//
// Returns:
//   - BufferWrite: the staged write
func NewBufferWrite(provider BindGroupProvider, binding int, m Marshaler) BufferWrite {
	return BufferWrite{Provider: provider, Binding: binding, Data: m.Marshal()}
}
