package fleetdesc

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/psfleet/internal/descriptor"
)

// translate converts the decoded schema into the descriptor model, validating
// table kinds and id uniqueness along the way.
func (l *Loader) translate(root *fileRoot) (*descriptor.PSParameter, error) {
	ps := &descriptor.PSParameter{Server: &descriptor.ServerParam{}}

	if root.Server != nil {
		seen := make(map[int]bool)
		for _, tb := range root.Server.Tables {
			tp, err := l.translateTable(tb)
			if err != nil {
				return nil, err
			}
			if seen[tp.TableID] {
				return nil, fmt.Errorf("duplicate table_id %d in server block", tp.TableID)
			}
			seen[tp.TableID] = true
			ps.Server.Tables = append(ps.Server.Tables, tp)
		}
	}

	for _, tb := range root.Trainers {
		ps.Trainers = append(ps.Trainers, l.translateTrainer(tb))
	}
	return ps, nil
}

func (l *Loader) translateTable(tb *tableBlock) (*descriptor.TableParam, error) {
	kind := descriptor.TableKind(tb.Kind)
	switch kind {
	case descriptor.KindSparse, descriptor.KindDense, descriptor.KindDataNorm:
	default:
		return nil, fmt.Errorf("table %d: unknown kind %q", tb.TableID, tb.Kind)
	}

	accessor, err := l.translateAccessor(tb.Accessor)
	if err != nil {
		return nil, fmt.Errorf("table %d: %w", tb.TableID, err)
	}

	return &descriptor.TableParam{
		TableID:          tb.TableID,
		Kind:             kind,
		Accessor:         accessor,
		Params:           tb.Params,
		Grads:            tb.Grads,
		SparseTableNames: tb.SparseTableNames,
		LearningRate:     tb.LearningRate,
	}, nil
}

func (l *Loader) translateAccessor(ab *accessorBlock) (*descriptor.Accessor, error) {
	if ab == nil {
		return nil, nil
	}
	a := &descriptor.Accessor{
		Class:           ab.Class,
		FeaDim:          ab.FeaDim,
		EmbedxDim:       ab.EmbedxDim,
		EmbedxThreshold: ab.EmbedxThreshold,
	}

	// Engine-specific accessor attributes pass through opaquely.
	if ab.Remain != nil {
		attrs, diags := ab.Remain.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("accessor attributes: %w", diags)
		}
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("accessor attribute %q: %w", name, diags)
			}
			goVal, err := ctyToGo(val)
			if err != nil {
				return nil, fmt.Errorf("accessor attribute %q: %w", name, err)
			}
			if a.Extra == nil {
				a.Extra = make(map[string]any)
			}
			a.Extra[name] = goVal
		}
	}
	return a, nil
}

func (l *Loader) translateTrainer(tb *trainerBlock) *descriptor.TrainerParam {
	tp := &descriptor.TrainerParam{
		WindowSize: tb.WindowSize,
		SkipOps:    tb.SkipOps,
	}
	for _, sb := range tb.SparseTables {
		tp.SparseTables = append(tp.SparseTables, &descriptor.SparseParticipation{
			TableID:      sb.TableID,
			SlotKey:      sb.SlotKey,
			SlotValue:    sb.SlotValue,
			SlotGradient: sb.SlotGradient,
		})
	}
	for _, db := range tb.DenseTables {
		tp.DenseTables = append(tp.DenseTables, &descriptor.DenseParticipation{
			TableID:          db.TableID,
			LearningRate:     db.LearningRate,
			DenseVariables:   db.DenseVariables,
			DenseGradients:   db.DenseGradients,
			StartTableID:     db.StartTableID,
			SparseTableNames: db.SparseTableNames,
		})
	}
	return tp
}

// ctyToGo converts a constant cty value to its Go counterpart: strings,
// numbers (as float64), bools, and flat lists of those.
func ctyToGo(val cty.Value) (any, error) {
	ty := val.Type()
	switch {
	case ty == cty.String:
		var s string
		if err := gocty.FromCtyValue(val, &s); err != nil {
			return nil, err
		}
		return s, nil
	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(val, &f); err != nil {
			return nil, err
		}
		return f, nil
	case ty == cty.Bool:
		var b bool
		if err := gocty.FromCtyValue(val, &b); err != nil {
			return nil, err
		}
		return b, nil
	case ty.IsTupleType() || ty.IsListType():
		var out []any
		for it := val.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			goVal, err := ctyToGo(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, goVal)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}
