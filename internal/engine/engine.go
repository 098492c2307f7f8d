package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"codeberg.org/snonux/jsonlingo/internal/translation"
	"codeberg.org/snonux/jsonlingo/internal/tree"
)

// Translator walks a tree and translates its string leaves through the
// backend port. The gate is shared across every tree of the run.
type Translator struct {
	port translation.Port
	gate *Gate
	log  *zap.Logger
}

// New creates a tree translator using the given backend and gate.
func New(port translation.Port, gate *Gate, logger *zap.Logger) *Translator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Translator{port: port, gate: gate, log: logger}
}

// TranslateTree returns a new tree with the same shape as v and every
// string leaf translated. Non-string scalars are carried through
// untouched. The input is never mutated.
func (t *Translator) TranslateTree(ctx context.Context, v tree.Value) (tree.Value, error) {
	return t.translate(ctx, v, "$")
}

func (t *Translator) translate(ctx context.Context, v tree.Value, path string) (tree.Value, error) {
	switch val := v.(type) {
	case tree.String:
		return t.translateLeaf(ctx, val, path)
	case tree.Literal:
		return val, nil
	case tree.Array:
		return t.translateArray(ctx, val, path)
	case tree.Object:
		return t.translateObject(ctx, val, path)
	default:
		return nil, fmt.Errorf("unknown value kind %T at %s", v, path)
	}
}

// translateLeaf is the only place the gate is touched: one permit per
// in-flight backend call, released whether the call succeeds or not.
func (t *Translator) translateLeaf(ctx context.Context, leaf tree.String, path string) (tree.Value, error) {
	if err := t.gate.Acquire(ctx); err != nil {
		return nil, &LeafError{Path: path, Err: err}
	}
	defer t.gate.Release()

	t.log.Debug("translating leaf", zap.String("path", path))

	out, err := t.port.Translate(ctx, string(leaf))
	if err != nil {
		return nil, &LeafError{Path: path, Err: err}
	}
	return tree.String(out), nil
}

// translateArray fans out one sub-task per translatable element and
// reassembles results by position, so output order never depends on
// completion order. Literal elements are copied inline without a task.
func (t *Translator) translateArray(ctx context.Context, arr tree.Array, path string) (tree.Value, error) {
	out := make(tree.Array, len(arr))

	g, ctx := errgroup.WithContext(ctx)
	for i, elem := range arr {
		if lit, ok := elem.(tree.Literal); ok {
			out[i] = lit
			continue
		}
		g.Go(func() error {
			res, err := t.translate(ctx, elem, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// translateObject is translateArray keyed by field position; insertion
// order of the keys is preserved in the rebuilt object.
func (t *Translator) translateObject(ctx context.Context, obj tree.Object, path string) (tree.Value, error) {
	out := make(tree.Object, len(obj))

	g, ctx := errgroup.WithContext(ctx)
	for i, field := range obj {
		out[i].Key = field.Key
		if lit, ok := field.Value.(tree.Literal); ok {
			out[i].Value = lit
			continue
		}
		g.Go(func() error {
			res, err := t.translate(ctx, field.Value, fmt.Sprintf("%s.%s", path, field.Key))
			if err != nil {
				return err
			}
			out[i].Value = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
