package app

import (
	"context"
	"fmt"

	"github.com/vk/psfleet/internal/ctxlog"
	"github.com/vk/psfleet/internal/descriptor"
)

// Run loads the fleet descriptor, applies the trainer cardinality rule
// against the expected program count, and prints a catalog summary.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run started.", "desc", cfg.DescPath, "programs", cfg.Programs)

	ps, err := a.loader.LoadFile(ctx, cfg.DescPath)
	if err != nil {
		return err
	}

	if cfg.Programs > 0 {
		n := len(ps.Trainers)
		if n != 1 && n != cfg.Programs {
			return fmt.Errorf("trainer param size != program size, %d vs %d", n, cfg.Programs)
		}
	}

	counts := make(map[descriptor.TableKind]int)
	for _, tp := range ps.Server.Tables {
		counts[tp.Kind]++
	}

	fmt.Fprintf(a.out, "fleet descriptor: %s\n", cfg.DescPath)
	fmt.Fprintf(a.out, "server tables: %d (sparse %d, dense %d, datanorm %d)\n",
		len(ps.Server.Tables), counts[descriptor.KindSparse], counts[descriptor.KindDense], counts[descriptor.KindDataNorm])
	for _, tp := range ps.Server.Tables {
		class := "<default>"
		if tp.Accessor != nil {
			class = tp.Accessor.Class
		}
		fmt.Fprintf(a.out, "  table %d kind=%s accessor=%s\n", tp.TableID, tp.Kind, class)
	}
	fmt.Fprintf(a.out, "trainers: %d\n", len(ps.Trainers))
	for i, tp := range ps.Trainers {
		fmt.Fprintf(a.out, "  trainer %d window=%d sparse=%d dense=%d skip_ops=%d\n",
			i, tp.WindowSize, len(tp.SparseTables), len(tp.DenseTables), len(tp.SkipOps))
	}

	if first, ok := ps.Server.FirstSparseTable(); ok && first.Accessor != nil && first.Accessor.Class == descriptor.CtrAccessorClass {
		fmt.Fprintln(a.out, "slot dumping: enabled")
	}

	a.logger.Debug("App.Run finished.")
	return nil
}
