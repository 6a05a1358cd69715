//go:build fixeddev

package fixed

import "log/slog"

const devChecks = true

func reportWrap(d Descriptor, in, out int64) {
	Logger().Debug("fixed: raw wrapped", slog.String("format", d.String()), slog.Int64("in", in), slog.Int64("out", out))
}
