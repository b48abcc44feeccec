// Package logctx carries per-run slog attributes (lockfile path, run ID)
// through a context.Context rather than threading a *slog.Logger value
// alongside every call, grounded on the CLI's errgroup-parallel audit loop
// where each worker goroutine needs its own attributed logger view of a
// single shared handler.
package logctx

import (
	"context"
	"log/slog"
	"slices"
)

// ctxkey is a Context key type, unexported so other packages cannot
// construct one.
type ctxkey int

const (
	_ ctxkey = iota

	// attrsKey is used with [context.Context.Value] to retrieve extra
	// logging attributes from [slog.Record] values produced during a run.
	//
	// The value stored is a [slog.Value] of kind "Group".
	attrsKey

	// levelKey is used with [context.Context.Value] to retrieve a
	// per-record minimum [slog.Level].
	levelKey
)

// With returns a context with the arguments stored as [slog.Attr] at the
// attrs key, in the same key-value or slog.Attr shape [slog.Logger.Log]
// accepts.
func With(ctx context.Context, args ...any) context.Context {
	return WithAttr(ctx, argsToAttrSlice(args)...)
}

// WithAttr returns a context with attrs merged into any attributes already
// stored on ctx. A later attr with the same key shadows an earlier one.
func WithAttr(ctx context.Context, attrs ...slog.Attr) context.Context {
	if v, ok := ctx.Value(attrsKey).(slog.Value); ok {
		attrs = append(v.Group(), attrs...)
	}
	seen := make(map[string]struct{}, len(attrs))
	del := func(a slog.Attr) bool {
		_, rm := seen[a.Key]
		seen[a.Key] = struct{}{}
		return rm || (a.Value.Kind() == slog.KindGroup && len(a.Value.Group()) == 0)
	}
	slices.Reverse(attrs)
	attrs = slices.DeleteFunc(attrs, del)
	slices.Reverse(attrs)

	return context.WithValue(ctx, attrsKey, slog.GroupValue(attrs...))
}

// WithLevel returns a context with l stored as the minimum record level a
// wrapped handler should force through regardless of its own configured
// level.
func WithLevel(ctx context.Context, l slog.Leveler) context.Context {
	return context.WithValue(ctx, levelKey, l)
}

func argsToAttrSlice(args []any) []slog.Attr {
	var (
		attr  slog.Attr
		attrs []slog.Attr
	)
	for len(args) > 0 {
		attr, args = argsToAttr(args)
		attrs = append(attrs, attr)
	}
	return attrs
}

func argsToAttr(args []any) (slog.Attr, []any) {
	const badKey = `!BADKEY`
	switch x := args[0].(type) {
	case string:
		if len(args) == 1 {
			return slog.String(badKey, x), nil
		}
		return slog.Any(x, args[1]), args[2:]
	case slog.Attr:
		return x, args[1:]
	default:
		return slog.Any(badKey, x), args[1:]
	}
}
