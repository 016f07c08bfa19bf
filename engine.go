package kbd

// pendingAction is a queued (machine id, action set) pair awaiting
// expansion and application in Engine.Transition step 4.
type pendingAction[Id comparable, T any] struct {
	id  Id
	set KeyActionSet[T]
}

// Engine is the orchestrator: it owns the layer stack and the live set of
// key state machines, and exposes the single operation the rest of the
// system drives, Transition.
//
// An Engine must not be shared across goroutines without external
// synchronization: Transition must be called serially by one driver.
type Engine[Id comparable, T any] struct {
	defaultLayer LayerId
	mapper       Mapper[Id, T]
	settings     Settings
	clock        Clock
	logger       Logger
	metrics      *Metrics

	layers   layerStack
	machines map[Id]KeyStateMachine[Id, T]
	order    []Id
}

// NewEngine constructs an Engine with the given default layer and mapper,
// applying any EngineOption overrides over the default thresholds.
func NewEngine[Id comparable, T any](defaultLayer LayerId, mapper Mapper[Id, T], opts ...EngineOption) *Engine[Id, T] {
	cfg := resolveEngineOptions(opts)
	return &Engine[Id, T]{
		defaultLayer: defaultLayer,
		mapper:       mapper,
		settings:     cfg.settings,
		clock:        cfg.clock,
		logger:       cfg.logger,
		metrics:      cfg.metrics,
		machines:     make(map[Id]KeyStateMachine[Id, T]),
	}
}

// ActiveLayer returns the engine's current active layer: the top of the
// layer stack, or the configured default layer if the stack is empty.
func (e *Engine[Id, T]) ActiveLayer() LayerId {
	return e.layers.active(e.defaultLayer)
}

// Transition advances every live state machine by one event and returns the
// externally visible actions produced, applying a fixed six-step algorithm:
// create a machine for a pressed key that is mapped at the active layer and
// has no live machine yet, broadcast the event to every
// live machine in creation order, harvest cleanup actions from machines that
// just finished, apply the resulting actions (mutating the layer stack and
// flattening the rest into the output), drop finished machines, and return.
// The wall clock is sampled once, via the engine's Clock capability, at the
// start of the call: every machine sees the same now for this event, and
// tests can inject a fake Clock to make timeout-dependent transitions
// deterministic.
func (e *Engine[Id, T]) Transition(event Event[Id]) []Action[T] {
	now := e.clock()

	// Step 1: machine creation (press-only).
	if key, ok := event.KeyID(); ok && event.IsKeyPress() {
		if _, exists := e.machines[key]; !exists {
			layer := e.ActiveLayer()
			if conf, found := e.mapper.GetConf(layer, key); found {
				machine := buildMachine[Id, T](key, conf, e.settings)
				e.machines[key] = machine
				e.order = append(e.order, key)
				e.metrics.observeKeyCreated()
			} else {
				e.logger.Warn("unmapped key press", "layer", layer, "key", key)
				e.metrics.observeKeyUnmapped()
			}
		} else {
			e.logger.Debug("duplicate press forwarded to existing machine", "key", key)
		}
	}

	// Step 2: event broadcast, in creation order.
	var pending []pendingAction[Id, T]
	for _, id := range e.order {
		machine, ok := e.machines[id]
		if !ok {
			continue
		}
		if set, emitted := machine.Transition(event, now); emitted {
			pending = append(pending, pendingAction[Id, T]{id: id, set: set})
		}
	}

	// Step 3: cleanup harvest, in the same creation order.
	for _, id := range e.order {
		machine, ok := e.machines[id]
		if !ok || !machine.Finished() {
			continue
		}
		for _, set := range machine.CleanupActions() {
			pending = append(pending, pendingAction[Id, T]{id: id, set: set})
		}
	}

	// Step 4: action application.
	var out []Action[T]
	for _, p := range pending {
		for _, action := range p.set.Actions() {
			switch action.Kind {
			case KeyActionSendKey:
				out = append(out, SendCode(action.Code))
				e.metrics.observeAction(ActionSendCode)
			case KeyActionStopKey:
				out = append(out, StopCode(action.Code))
				e.metrics.observeAction(ActionStop)
			case KeyActionPushLayer:
				e.layers.push(action.Layer)
			case KeyActionPopLayer:
				if !e.layers.pop(action.Layer) {
					e.logger.Debug("pop_layer requested for layer absent from stack", "layer", action.Layer)
				}
			case KeyActionNoOp:
				// nothing
			}
		}
	}

	// Step 5: drop finished machines.
	e.dropFinished()
	e.metrics.setMachinesLive(len(e.order))

	return out
}

// dropFinished removes every machine that has reached an accepting state
// from both the machine map and the creation-order list, preserving the
// relative order of the survivors.
func (e *Engine[Id, T]) dropFinished() {
	survivors := e.order[:0]
	for _, id := range e.order {
		machine, ok := e.machines[id]
		if !ok {
			continue
		}
		if machine.Finished() {
			delete(e.machines, id)
			e.logger.Debug("machine dropped after finishing", "key", id)
			continue
		}
		survivors = append(survivors, id)
	}
	e.order = survivors
}

// buildMachine instantiates the KeyStateMachine matching conf.Kind, wiring
// in the settings threshold appropriate to that activation mode.
func buildMachine[Id comparable, T any](watched Id, conf KeyConf[T], settings Settings) KeyStateMachine[Id, T] {
	switch conf.Kind {
	case KeyConfHold:
		return NewHoldKSM(watched, conf.Tap, conf.Hold, settings.HoldDelay)
	case KeyConfEagerHold:
		return NewEagerHoldKSM(watched, conf.Tap, conf.Hold, settings.HoldDelay)
	case KeyConfDoubleTap:
		return NewDoubleTapKSM(watched, conf.Tap, conf.DoubleTap, settings.DoubleTapRetapDelay, settings.DoubleTapHoldDelay)
	case KeyConfDoubleTapHold:
		return NewDoubleTapHoldKSM(watched, conf.Tap, conf.Hold, conf.DoubleTap, settings.DoubleTapHoldHoldDelay, settings.DoubleTapHoldRetapDelay)
	default: // KeyConfTap
		return NewTapKSM(watched, conf.Tap)
	}
}
