//go:build tinygo

package kernel

// TinyGo cannot walk the stack at runtime.
func captureStack() []byte {
	return nil
}
