package rewrite

// view is a read-only borrow of a file's bytes.
//
// The backing file must not be modified by anyone else while the view is open.
// Bytes must not be written to or used after Close. Close is idempotent.
type view struct {
	data    []byte
	release func([]byte) error
}

// Bytes returns the mapped content
func (v *view) Bytes() []byte {
	return v.data
}

// Close releases the mapping
func (v *view) Close() error {
	data := v.data
	v.data = nil
	if data == nil || v.release == nil {
		return nil
	}
	return v.release(data)
}
