// Package scheduler implements the build target executor.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/AlsoShantanuBorkar/flutter/internal/core/domain"
	"github.com/AlsoShantanuBorkar/flutter/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.TargetExecutor = (*Scheduler)(nil)

// Scheduler runs the target graph of a build with bounded parallelism,
// skipping targets whose fingerprint and outputs are unchanged.
type Scheduler struct {
	builder  ports.GraphBuilder
	store    ports.FingerprintStore
	hasher   ports.Hasher
	verifier ports.OutputVerifier
	tracer   ports.Tracer
	logger   ports.Logger

	parallelism int
	now         func() time.Time

	mu           sync.RWMutex
	targetStatus map[string]domain.TargetStatus
}

// NewScheduler creates a new Scheduler with the given dependencies.
func NewScheduler(
	builder ports.GraphBuilder,
	store ports.FingerprintStore,
	hasher ports.Hasher,
	verifier ports.OutputVerifier,
	tracer ports.Tracer,
	logger ports.Logger,
) *Scheduler {
	return &Scheduler{
		builder:      builder,
		store:        store,
		hasher:       hasher,
		verifier:     verifier,
		tracer:       tracer,
		logger:       logger,
		parallelism:  runtime.NumCPU(),
		now:          time.Now,
		targetStatus: make(map[string]domain.TargetStatus),
	}
}

func (s *Scheduler) initTargetStatuses(targets []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.targetStatus)
	for _, name := range targets {
		s.targetStatus[name] = domain.TargetStatusPending
	}
}

func (s *Scheduler) status(name string) domain.TargetStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.targetStatus[name]
}

func (s *Scheduler) updateStatus(name string, status domain.TargetStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targetStatus[name] = status
}

// Run builds target and everything it depends on.
//
// Target failures are recorded in the result in completion order and stop
// their dependents from running. A returned error means the graph could not
// be built or the context was cancelled.
func (s *Scheduler) Run(
	ctx context.Context,
	target string,
	env *domain.Environment,
	configs []domain.CompilerConfig,
) (*domain.BuildResult, error) {
	graph, err := s.builder.Build(target, env, configs)
	if err != nil {
		return nil, err
	}

	// Explicitly validate the graph to ensure executionOrder is populated
	if err := graph.Validate(); err != nil {
		return nil, err
	}

	state, err := s.newRunState(ctx, graph, target, env)
	if err != nil {
		return nil, err
	}

	fpCtx, span := s.tracer.Start(ctx, "fingerprinting")
	err = state.computeFingerprints(fpCtx)
	if err != nil {
		span.RecordError(err)
	}
	span.End()
	if err != nil {
		return nil, err
	}

	s.initTargetStatuses(state.order)

	return state.runExecutionLoop()
}

type result struct {
	target  string
	err     error
	skipped bool
}

type schedulerRunState struct {
	s           *Scheduler
	ctx         context.Context
	env         *domain.Environment
	graph       *domain.Graph
	targets     map[string]domain.Target
	order       []string
	inDegree    map[string]int
	ready       []string
	active      int
	parallelism int
	resultsCh   chan result

	hashes   map[string]string
	executed map[string]bool
	outcome  *domain.BuildResult
}

func (s *Scheduler) newRunState(
	ctx context.Context,
	graph *domain.Graph,
	root string,
	env *domain.Environment,
) (*schedulerRunState, error) {
	if _, ok := graph.Target(root); !ok {
		return nil, zerr.With(domain.ErrUnknownTarget, "target", root)
	}

	included := collectDependencies(graph, root)

	targets := make(map[string]domain.Target, len(included))
	inDegree := make(map[string]int, len(included))
	order := make([]string, 0, len(included))
	for t := range graph.Walk() {
		if !included[t.Name] {
			continue
		}
		targets[t.Name] = t
		inDegree[t.Name] = len(t.Dependencies)
		order = append(order, t.Name)
	}

	var ready []string
	for _, name := range order {
		if inDegree[name] == 0 {
			ready = append(ready, name)
		}
	}

	parallelism := max(s.parallelism, 1)
	return &schedulerRunState{
		s:           s,
		ctx:         ctx,
		env:         env,
		graph:       graph,
		targets:     targets,
		order:       order,
		inDegree:    inDegree,
		ready:       ready,
		parallelism: parallelism,
		resultsCh:   make(chan result, parallelism),
		hashes:      make(map[string]string, len(targets)),
		executed:    make(map[string]bool, len(targets)),
		outcome:     domain.NewSuccessResult(),
	}, nil
}

// collectDependencies returns root and its transitive dependencies.
func collectDependencies(graph *domain.Graph, root string) map[string]bool {
	visited := map[string]bool{root: true}
	queue := []string{root}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		t, _ := graph.Target(current)
		for _, dep := range t.Dependencies {
			if !visited[dep] {
				visited[dep] = true
				queue = append(queue, dep)
			}
		}
	}
	return visited
}

// computeFingerprints hashes the inputs of every target concurrently. Inputs
// are source files, so no target needs to have run first.
func (state *schedulerRunState) computeFingerprints(ctx context.Context) error {
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(state.parallelism)

	for _, name := range state.order {
		t := state.targets[name]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			hash, err := state.s.hasher.ComputeInputHash(&t, state.env)
			if err != nil {
				return zerr.With(err, "target", t.Name)
			}
			mu.Lock()
			state.hashes[t.Name] = hash
			mu.Unlock()
			return nil
		})
	}

	return g.Wait()
}

func (state *schedulerRunState) runExecutionLoop() (*domain.BuildResult, error) {
	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		// Once cancelled, drain the targets still in flight.
		if state.ctx.Err() != nil {
			if state.active == 0 {
				return nil, state.ctx.Err()
			}
			state.handleResult(<-state.resultsCh)
			continue
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-state.ctx.Done():
		}
	}

	if err := state.ctx.Err(); err != nil {
		return nil, err
	}

	return state.outcome, nil
}

func (state *schedulerRunState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *schedulerRunState) schedule() {
	for len(state.ready) > 0 && state.active < state.parallelism && state.ctx.Err() == nil {
		name := state.ready[0]
		state.ready = state.ready[1:]

		state.active++
		state.s.updateStatus(name, domain.TargetStatusRunning)

		t := state.targets[name]
		force := state.anyDependencyExecuted(&t)
		go state.executeTarget(&t, force)
	}
}

// anyDependencyExecuted reports whether a dependency of t produced fresh
// outputs in this run, in which case t cannot be skipped.
func (state *schedulerRunState) anyDependencyExecuted(t *domain.Target) bool {
	return slices.ContainsFunc(t.Dependencies, func(dep string) bool {
		return state.executed[dep]
	})
}

func (state *schedulerRunState) executeTarget(t *domain.Target, force bool) {
	// The span is ended before the result is sent so the loop never finishes
	// ahead of the recorded span.
	res := func() result {
		ctx, span := state.s.tracer.Start(state.ctx, t.Name)
		defer span.End()

		if !force && state.upToDate(t) {
			span.SetAttribute("flutterweb.cached", true)
			return result{target: t.Name, skipped: true}
		}

		if t.Action == nil {
			return result{target: t.Name}
		}

		err := t.Action.Run(ctx, state.env)
		if err != nil {
			span.RecordError(err)
		}
		return result{target: t.Name, err: err}
	}()

	state.resultsCh <- res
}

// upToDate reports whether the stored fingerprint of t matches its inputs and
// every output is still present. Targets without outputs always run.
func (state *schedulerRunState) upToDate(t *domain.Target) bool {
	if len(t.Outputs) == 0 {
		return false
	}

	fp, err := state.s.store.Get(state.env.BuildDir, t.Name)
	if err != nil {
		state.s.logger.Warn(fmt.Sprintf("ignoring fingerprint of %s: %v", t.Name, err))
		return false
	}
	if fp == nil || fp.InputHash != state.hashes[t.Name] {
		return false
	}

	ok, err := state.s.verifier.VerifyOutputs(state.env.ProjectDir, t.Outputs)
	if err != nil || !ok {
		return false
	}

	state.s.logger.Trace("Skipping target: " + t.Name)
	return true
}

func (state *schedulerRunState) handleResult(res result) {
	state.active--

	if res.err != nil {
		state.handleFailure(res)
		return
	}

	if res.skipped {
		state.s.updateStatus(res.target, domain.TargetStatusCached)
	} else {
		state.executed[res.target] = true
		state.s.updateStatus(res.target, domain.TargetStatusCompleted)
		state.storeFingerprint(res.target)
	}

	for _, dep := range state.graph.Dependents(res.target) {
		if _, ok := state.targets[dep]; !ok {
			continue
		}
		state.inDegree[dep]--
		if state.inDegree[dep] == 0 {
			state.ready = append(state.ready, dep)
		}
	}
}

func (state *schedulerRunState) handleFailure(res result) {
	state.s.updateStatus(res.target, domain.TargetStatusFailed)

	// A target aborted by cancellation is not a build failure.
	if state.ctx.Err() != nil {
		return
	}

	state.outcome.AddException(domain.ExceptionMeasurement{
		Target: res.target,
		Err:    res.err,
		Stack:  stackOf(res.err),
	})
	state.skipDependents(res.target)
}

// skipDependents marks every transitive dependent of name as skipped. They
// never become ready because their in-degree is never decremented.
func (state *schedulerRunState) skipDependents(name string) {
	queue := []string{name}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, dep := range state.graph.Dependents(current) {
			if _, ok := state.targets[dep]; !ok || state.s.status(dep).IsTerminal() {
				continue
			}
			state.s.updateStatus(dep, domain.TargetStatusSkipped)
			queue = append(queue, dep)
		}
	}
}

func (state *schedulerRunState) storeFingerprint(name string) {
	if len(state.targets[name].Outputs) == 0 {
		return
	}
	err := state.s.store.Put(state.env.BuildDir, domain.Fingerprint{
		Target:    name,
		InputHash: state.hashes[name],
		Timestamp: state.s.now(),
	})
	if err != nil {
		// A missing fingerprint only costs a rebuild next time.
		state.s.logger.Warn(fmt.Sprintf("could not record fingerprint of %s: %v", name, err))
	}
}

// stackOf returns the first stack trace captured in the chain of err.
func stackOf(err error) string {
	for err != nil {
		var zErr *zerr.Error
		if !errors.As(err, &zErr) {
			return ""
		}
		if st := zErr.StackTrace(); st != "" {
			return st
		}
		err = zErr.Unwrap()
	}
	return ""
}
