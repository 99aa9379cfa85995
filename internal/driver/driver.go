package driver

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"lumen/internal/lir"
	"lumen/internal/lower"
	"lumen/internal/project"
	"lumen/internal/source"
	"lumen/internal/unitfile"
)

// Options configures a lowering run.
type Options struct {
	// Jobs caps concurrent unit workers; 0 means NumCPU.
	Jobs int
	// Cache, when non-nil, serves unchanged units from disk.
	Cache *DiskCache
	// Manifest supplies the export configuration; nil admits public
	// declarations only.
	Manifest *project.Manifest
	// Progress receives per-unit stage events.
	Progress ProgressSink
}

// Stats summarizes one lowered unit.
type Stats struct {
	Funcs   int
	Props   int
	Hoisted int
	Exports int
}

// Result is the outcome of lowering one unit file.
type Result struct {
	Path     string
	UnitName string
	// Module is nil when the result was served from the disk cache.
	Module  *lir.Module
	Printed string
	Cached  bool
	Stats   Stats
}

func (o *Options) exportConfig() *project.ExportConfig {
	if o == nil || o.Manifest == nil {
		return nil
	}
	return &o.Manifest.Export
}

func (o *Options) progress() ProgressSink {
	if o == nil || o.Progress == nil {
		return nopSink{}
	}
	return o.Progress
}

func (o *Options) jobs() int {
	if o == nil || o.Jobs <= 0 {
		return runtime.NumCPU()
	}
	return o.Jobs
}

// LowerFile lowers a single unit-description file.
func LowerFile(path string, opts *Options) (*Result, error) {
	sink := opts.progress()
	sink.Publish(Event{Path: path, Stage: StageLoad})

	us := source.NewUnitSet()
	uf, err := us.Load(path)
	if err != nil {
		return nil, err
	}

	if opts != nil && opts.Cache != nil {
		var payload DiskPayload
		if ok, err := opts.Cache.Get(uf.Hash, &payload); err == nil && ok {
			sink.Publish(Event{Path: path, Stage: StageDone, Cached: true})
			return &Result{
				Path:     path,
				UnitName: payload.UnitName,
				Printed:  payload.Printed,
				Cached:   true,
				Stats: Stats{
					Funcs:   int(payload.FuncCount),
					Props:   int(payload.PropCount),
					Hoisted: int(payload.HoistedCount),
					Exports: int(payload.ExportCount),
				},
			}, nil
		}
	}

	unit, err := unitfile.Parse(uf.Path, uf.Content, opts.exportConfig())
	if err != nil {
		return nil, err
	}
	unit.Span(uf.Span())

	sink.Publish(Event{Path: path, Stage: StageLower})
	collector := lower.NewCollector()
	lowerer := lower.New(collector, lower.PrefixFieldResolver{}, collector, nil, unitfile.Translator{})
	lowerer.Classes = lower.MemberClassTranslator{Lowerer: lowerer}

	state := lower.NewUnit(unit.Name)
	if err := lowerer.LowerUnit(state, unit.Decls, collector.Module); err != nil {
		return nil, fmt.Errorf("driver: %s: %w", path, err)
	}

	sink.Publish(Event{Path: path, Stage: StageValidate})
	if err := lir.Validate(collector.Module); err != nil {
		return nil, fmt.Errorf("driver: %s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := lir.Dump(&buf, collector.Module); err != nil {
		return nil, fmt.Errorf("driver: %s: dump: %w", path, err)
	}

	res := &Result{
		Path:     path,
		UnitName: unit.Name,
		Module:   collector.Module,
		Printed:  buf.String(),
		Stats: Stats{
			Funcs:   len(collector.Module.Funcs),
			Props:   len(collector.Module.Props),
			Hoisted: len(collector.Module.Hoisted),
			Exports: len(collector.Module.Exports),
		},
	}

	if opts != nil && opts.Cache != nil {
		if err := cachePut(opts.Cache, uf.Hash, res); err != nil {
			return nil, fmt.Errorf("driver: %s: cache: %w", path, err)
		}
	}
	sink.Publish(Event{Path: path, Stage: StageDone})
	return res, nil
}

func cachePut(cache *DiskCache, key source.Digest, res *Result) error {
	funcs, err := safecast.Conv[uint32](res.Stats.Funcs)
	if err != nil {
		return err
	}
	props, err := safecast.Conv[uint32](res.Stats.Props)
	if err != nil {
		return err
	}
	hoisted, err := safecast.Conv[uint32](res.Stats.Hoisted)
	if err != nil {
		return err
	}
	exports, err := safecast.Conv[uint32](res.Stats.Exports)
	if err != nil {
		return err
	}
	return cache.Put(key, &DiskPayload{
		UnitName:     res.UnitName,
		Path:         res.Path,
		Printed:      res.Printed,
		FuncCount:    funcs,
		PropCount:    props,
		HoistedCount: hoisted,
		ExportCount:  exports,
	})
}

// ListUnitFiles returns the sorted unit-description files under dir.
func ListUnitFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, unitfile.Ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// LowerDir lowers every unit file under dir. Units are processed in
// parallel, but results come back in sorted path order so downstream
// consumers see a deterministic sequence regardless of worker scheduling.
func LowerDir(ctx context.Context, dir string, opts *Options) ([]*Result, error) {
	files, err := ListUnitFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("driver: no %s files in %s", unitfile.Ext, dir)
	}

	sink := opts.progress()
	for _, f := range files {
		sink.Publish(Event{Path: f, Stage: StageQueued})
	}

	results := make([]*Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs())
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := LowerFile(path, opts)
			if err != nil {
				sink.Publish(Event{Path: path, Stage: StageDone, Err: err})
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
