//go:build !fixeddev

package fixed

const devChecks = false

func reportWrap(Descriptor, int64, int64) {}
