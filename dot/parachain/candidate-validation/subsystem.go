// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	"context"
	"sync"

	"github.com/gammazero/deque"
	"github.com/google/uuid"

	parachaintypes "github.com/RainFallsSilent/polkadot/dot/parachain/types"
	"github.com/RainFallsSilent/polkadot/internal/log"
	"github.com/RainFallsSilent/polkadot/lib/common"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "parachain-candidate-validation"))

// ValidateFromChainState asks the subsystem to validate a candidate using chain state
// to resolve its persisted validation data and validation code.
type ValidateFromChainState struct {
	RelayParent common.Hash
	Descriptor  parachaintypes.CandidateDescriptor
	PoV         parachaintypes.PoV
	Ch          chan parachaintypes.OverseerFuncRes[Outcome]
}

// ValidateFromExhaustive asks the subsystem to validate a candidate against explicitly
// supplied persisted validation data and validation code, bypassing chain-state
// resolution entirely.
type ValidateFromExhaustive struct {
	PersistedValidationData parachaintypes.PersistedValidationData
	ValidationCode          parachaintypes.ValidationCode
	Descriptor              parachaintypes.CandidateDescriptor
	PoV                     parachaintypes.PoV
	Ch                      chan parachaintypes.OverseerFuncRes[Outcome]
}

// Conclude asks the subsystem to stop its message loop. Requests already in flight are
// not waited for; Stop is what waits for them.
type Conclude struct{}

// inFlightRequest is bookkeeping for a request currently being serviced, tracked so
// InFlightCount can report how many requests are being serviced.
type inFlightRequest struct {
	correlationID string
}

// Subsystem is the candidate-validation subsystem: it receives validation requests over
// OverseerToSubsystem, spawns one goroutine per request so a slow PVF execution never
// blocks unrelated requests, and answers on each request's own reply channel.
type Subsystem struct {
	wg       sync.WaitGroup
	stopChan chan struct{}

	SubsystemToOverseer chan<- any
	OverseerToSubsystem <-chan any

	chainState *ChainStateValidator
	exhaustive *ExhaustiveValidator

	inFlightMu sync.Mutex
	inFlight   deque.Deque[inFlightRequest]
}

// NewSubsystem constructs a Subsystem wired to the given chain-state validator and
// exhaustive validator.
func NewSubsystem(
	overseerChan chan<- any,
	chainState *ChainStateValidator,
	exhaustive *ExhaustiveValidator,
) *Subsystem {
	return &Subsystem{
		SubsystemToOverseer: overseerChan,
		stopChan:            make(chan struct{}),
		chainState:          chainState,
		exhaustive:          exhaustive,
	}
}

// Run starts the subsystem's message loop.
func (s *Subsystem) Run(context.Context, chan any, chan any) {
	s.wg.Add(1)
	go s.processMessages(&s.wg)
}

// Name returns the name of the subsystem.
func (*Subsystem) Name() parachaintypes.SubSystemName {
	return parachaintypes.CandidateValidationSubsystemName
}

// ProcessActiveLeavesUpdateSignal processes an active leaves update signal.
func (*Subsystem) ProcessActiveLeavesUpdateSignal(parachaintypes.ActiveLeavesUpdateSignal) error {
	// This subsystem is stateless with respect to the fork-choice tree: every request
	// carries its own relay parent.
	return nil
}

// ProcessBlockFinalizedSignal processes a block finalized signal.
func (*Subsystem) ProcessBlockFinalizedSignal(parachaintypes.BlockFinalizedSignal) error {
	return nil
}

// Stop signals the message loop to conclude and waits for in-flight requests to drain.
func (s *Subsystem) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}

// processMessages is the subsystem's main loop. Each validation request is handed to
// its own goroutine so that one slow or hung PVF execution cannot stall unrelated
// requests; the loop itself never blocks on a reply channel.
func (s *Subsystem) processMessages(wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		select {
		case msg := <-s.OverseerToSubsystem:
			logger.Debugf("received message %v", msg)
			switch msg := msg.(type) {
			case ValidateFromChainState:
				s.spawn(msg.Ch, func(ctx context.Context) Outcome {
					return s.chainState.Validate(ctx, msg.RelayParent, &msg.Descriptor, msg.PoV)
				})

			case ValidateFromExhaustive:
				s.spawn(msg.Ch, func(ctx context.Context) Outcome {
					return s.exhaustive.ValidateFromExhaustive(ctx, &msg.Descriptor, msg.PersistedValidationData, msg.PoV, msg.ValidationCode)
				})

			case parachaintypes.ActiveLeavesUpdateSignal:
				_ = s.ProcessActiveLeavesUpdateSignal(msg)

			case parachaintypes.BlockFinalizedSignal:
				_ = s.ProcessBlockFinalizedSignal(msg)

			case Conclude:
				return

			default:
				logger.Errorf("%s: %T", parachaintypes.ErrUnknownOverseerMessage, msg)
			}

		case <-s.stopChan:
			return
		}
	}
}

// spawn runs validate in its own goroutine, tracks it as in-flight for the duration,
// and delivers its result on ch. The send blocks until the caller receives it or the
// subsystem is stopped; only in the latter case is the reply logged and dropped. A
// caller that stops reading is not detected, so its goroutine waits until Stop.
func (s *Subsystem) spawn(ch chan parachaintypes.OverseerFuncRes[Outcome], validate func(context.Context) Outcome) {
	correlationID := uuid.NewString()

	s.inFlightMu.Lock()
	s.inFlight.PushBack(inFlightRequest{correlationID: correlationID})
	s.inFlightMu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.completeInFlight()

		ctx := context.Background()
		outcome := validate(ctx)

		select {
		case ch <- parachaintypes.OverseerFuncRes[Outcome]{Data: outcome}:
		case <-s.stopChan:
			logger.Warnf("request %s: reply channel abandoned during shutdown", correlationID)
		}
	}()
}

func (s *Subsystem) completeInFlight() {
	s.inFlightMu.Lock()
	defer s.inFlightMu.Unlock()
	if s.inFlight.Len() > 0 {
		s.inFlight.PopFront()
	}
}

// InFlightCount reports how many validation requests are currently being serviced.
func (s *Subsystem) InFlightCount() int {
	s.inFlightMu.Lock()
	defer s.inFlightMu.Unlock()
	return s.inFlight.Len()
}
