package resolve

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/psfleet/internal/ctxlog"
	"github.com/vk/psfleet/internal/descriptor"
	"github.com/vk/psfleet/internal/discovery"
	"github.com/vk/psfleet/internal/fleetdesc"
	"github.com/vk/psfleet/internal/options"
	"github.com/vk/psfleet/internal/program"
	"github.com/vk/psfleet/internal/tableindex"
)

const (
	trainerName      = "DistMultiTrainer"
	deviceWorkerName = "DownpourSGD"
	optimizerName    = "DownpourSGD"

	defaultWindowSize = 1
)

// dataNormSuffixes route parameters into the data-norm table instead of the
// general dense table.
var dataNormSuffixes = []string{
	".batch_size", ".batch_square_sum", ".batch_sum",
	".batch_size@GRAD", ".batch_square_sum@GRAD", ".batch_sum@GRAD",
}

// workerSkipOps are excluded from generic distributed dense/sparse handling;
// the lookup-table pair is pulled and pushed through the sparse path instead.
var workerSkipOps = []string{discovery.OpLookupTable, discovery.OpLookupTableGrad}

// Resolver builds fleet configurations. It holds no per-call state, so one
// Resolver may serve many Resolve calls as long as the programs themselves
// are not mutated concurrently.
type Resolver struct {
	window   int
	backward Backward
	loader   *fleetdesc.Loader
}

// New returns a Resolver using the given gradient collaborator.
func New(backward Backward) *Resolver {
	return &Resolver{
		window:   defaultWindowSize,
		backward: backward,
		loader:   fleetdesc.NewLoader(),
	}
}

// perProgram is the intermediate state keyed by program handle. Two losses
// over the same program share (and overwrite) one entry.
type perProgram struct {
	sparseTables []string
	tableIO      map[string]*discovery.TableIO
	worker       *descriptor.WorkerBuilder
	paramGrads   []ParamGrad
}

// Resolve produces the fleet configuration for the given losses. Losses are
// processed in list order; identical inputs yield identical table ids. Any
// error means no configuration was produced.
func (r *Resolver) Resolve(ctx context.Context, losses []*program.Loss, base *program.BaseOptimizer, opts *options.Options) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	if len(losses) == 0 {
		return nil, errors.New("resolve: loss list is empty")
	}
	if base == nil {
		return nil, errors.New("resolve: base optimizer is required")
	}
	if opts == nil {
		opts = options.New()
	}

	registry := program.NewRegistry()
	index := tableindex.New()
	state := make(map[program.Handle]*perProgram)
	var order []program.Handle // first-seen handle order
	lossHandles := make([]program.Handle, len(losses))

	for i, loss := range losses {
		h := registry.Register(loss.Program)
		lossHandles[i] = h
		if _, ok := state[h]; !ok {
			order = append(order, h)
		}

		tables := discovery.FindDistributedTables(loss.Program)
		index.AssignSparse(tables)

		tableIO, err := discovery.CollectTableIO(loss.Program, tables)
		if err != nil {
			return nil, fmt.Errorf("resolve: program %d: %w", h, err)
		}

		pairs, err := r.backward.AppendBackward(ctx, loss)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(pairs, func(a, b int) bool {
			return pairs[a].Param.Name < pairs[b].Param.Name
		})

		state[h] = &perProgram{
			sparseTables: tables,
			tableIO:      tableIO,
			worker:       descriptor.NewWorkerBuilder(r.window),
			paramGrads:   pairs,
		}
	}
	logger.Debug("Programs discovered.", "programs", len(order), "sparse_tables", index.Len())

	server := descriptor.NewServerBuilder()

	// A user-supplied descriptor wins wholesale for the server section and
	// seeds the workers. The cardinality rule is checked before any catalog
	// is touched.
	var fileTrainers []*descriptor.TrainerParam
	if opts.FleetDescFile != "" {
		psFile, err := r.loader.LoadFile(ctx, opts.FleetDescFile)
		if err != nil {
			return nil, err
		}
		switch n := len(psFile.Trainers); {
		case n == 1:
			for _, h := range order {
				state[h].worker.CopyFrom(psFile.Trainers[0])
			}
		case n == len(order):
			for i, h := range order {
				state[h].worker.CopyFrom(psFile.Trainers[i])
			}
		default:
			return nil, fmt.Errorf("resolve: trainer param size != program size, %d vs %d", n, len(order))
		}
		fileTrainers = psFile.Trainers
		server.CopyFrom(psFile.Server)
	}

	// Server catalog: one sparse entry per global id, in id order, with the
	// per-table accessor override when one is configured.
	for _, tn := range index.Names() {
		id, _ := index.SparseID(tn)
		server.AddSparseTable(id, opts.SparseTableConfigs[tn])
	}

	// Each worker participates only with its own program's variables.
	for _, h := range order {
		st := state[h]
		for _, tn := range st.sparseTables {
			id, _ := index.SparseID(tn)
			io := st.tableIO[tn]
			st.worker.AddSparseTable(id, varNames(io.Inputs), varNames(io.Outputs), varNames(io.Grads))
		}
	}

	denseStart := index.Len()
	alloc := index.NewDenseAllocator()
	programConfigs := make(map[program.Handle]*ProgramConfig)

	for _, h := range lossHandles {
		st := state[h]
		sparseIDs, err := index.SparseIDs(st.sparseTables)
		if err != nil {
			return nil, fmt.Errorf("resolve: program %d: %w", h, err)
		}
		pc := &ProgramConfig{
			PullSparse: sparseIDs,
			PushSparse: append([]int(nil), sparseIDs...),
		}

		params, grads, dnParams, dnGrads := partitionDataNorm(st.paramGrads)

		denseID := alloc.Next()
		server.AddDenseTable(denseID, params, grads, opts.DenseTableConfig, st.sparseTables)
		st.worker.AddDenseTable(denseID, base.LearningRate, params, grads, denseStart, st.sparseTables)
		pc.PullDense = []int{denseID}
		pc.PushDense = []int{denseID}

		if len(dnParams) != 0 && len(dnGrads) != 0 {
			dnID := alloc.Next()
			server.AddDataNormTable(dnID, base.LearningRate, dnParams, dnGrads, opts.DataNormTableConfig, st.sparseTables)
			st.worker.AddDenseTable(dnID, base.LearningRate, dnParams, dnGrads, denseStart, st.sparseTables)
			pc.PullDense = append(pc.PullDense, dnID)
			pc.PushDense = append(pc.PushDense, dnID)
		}

		st.worker.SetSkipOps(workerSkipOps)
		programConfigs[h] = pc
	}

	psOut := &descriptor.PSParameter{Server: server.Desc().Clone()}
	if len(fileTrainers) > 0 {
		psOut.Trainers = fileTrainers
	} else {
		for _, h := range order {
			psOut.Trainers = append(psOut.Trainers, state[h].worker.Desc().Clone())
		}
	}

	workers := make(map[program.Handle]*descriptor.TrainerParam, len(order))
	for _, h := range order {
		workers[h] = state[h].worker.Desc()
	}

	info := &OptInfo{
		Programs:         registry,
		Workers:          workers,
		ProgramConfigs:   programConfigs,
		FleetDesc:        psOut,
		Trainer:          trainerName,
		DeviceWorker:     deviceWorkerName,
		Optimizer:        optimizerName,
		SkippedOps:       append([]string(nil), workerSkipOps...),
		UseCVM:           opts.UseCVM,
		StatVarNames:     opts.StatVarNames,
		ScaleDataNorm:    opts.ScaleDataNorm,
		CheckNanVarNames: opts.CheckNanVarNames,
		DumpFields:       opts.DumpFields,
		DumpFileNum:      opts.DumpFileNum,
		DumpFieldsPath:   opts.DumpFieldsPath,
		DumpParam:        opts.DumpParam,
		AdjustInsWeight:  opts.AdjustInsWeight,
	}
	if first, ok := psOut.Server.FirstSparseTable(); ok && first.Accessor != nil {
		info.DumpSlot = first.Accessor.Class == descriptor.CtrAccessorClass
	}

	paramGrads := make([][]ParamGrad, len(losses))
	for i, h := range lossHandles {
		paramGrads[i] = state[h].paramGrads
	}

	logger.Debug("Fleet configuration resolved.",
		"server_tables", len(psOut.Server.Tables),
		"trainers", len(psOut.Trainers),
		"dump_slot", info.DumpSlot,
	)
	return &Result{ParamGrads: paramGrads, OptInfo: info}, nil
}

// partitionDataNorm splits parameter/gradient pairs into the regular dense
// set and the data-norm set by the parameter-name suffix rule. A pair lands
// in exactly one set.
func partitionDataNorm(pairs []ParamGrad) (params, grads, dnParams, dnGrads []string) {
	for _, pg := range pairs {
		if isDataNorm(pg.Param.Name) {
			dnParams = append(dnParams, pg.Param.Name)
			dnGrads = append(dnGrads, pg.Grad.Name)
		} else {
			params = append(params, pg.Param.Name)
			grads = append(grads, pg.Grad.Name)
		}
	}
	return params, grads, dnParams, dnGrads
}

func isDataNorm(name string) bool {
	for _, suffix := range dataNormSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func varNames(vars []*program.Variable) []string {
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name
	}
	return names
}
