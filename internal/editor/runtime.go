package editor

import (
	"context"
	"sync"
	"time"
)

// messageTTL is how long a transient message stays on screen.
const messageTTL = 5 * time.Second

// Runtime owns the editor state and serializes all transitions through a
// single loop. Effects run in their own goroutines and feed their outcome
// back in as actions, so the reducer itself never blocks on I/O.
type Runtime struct {
	client   *Client
	onChange func(State)

	actions chan Action
	done    chan struct{}

	mu    sync.RWMutex
	state State
}

// NewRuntime builds a runtime around an API client. onChange is invoked after
// every transition with the new state; it may be nil.
func NewRuntime(client *Client, onChange func(State)) *Runtime {
	return &Runtime{
		client:   client,
		onChange: onChange,
		actions:  make(chan Action, 64),
		done:     make(chan struct{}),
	}
}

// Start runs the action loop until ctx is cancelled.
func (r *Runtime) Start(ctx context.Context) {
	go r.loop(ctx)
}

// Dispatch queues an action. It is safe from any goroutine and becomes a
// no-op once the runtime has stopped.
func (r *Runtime) Dispatch(a Action) {
	select {
	case r.actions <- a:
	case <-r.done:
	}
}

// State returns a snapshot of the current state.
func (r *Runtime) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

func (r *Runtime) loop(ctx context.Context) {
	defer close(r.done)
	for {
		select {
		case <-ctx.Done():
			return
		case a := <-r.actions:
			r.mu.Lock()
			next, effects := Reduce(r.state, a)
			r.state = next
			r.mu.Unlock()

			if r.onChange != nil {
				r.onChange(next)
			}
			for _, eff := range effects {
				go r.perform(ctx, eff)
			}
		}
	}
}

// perform executes one effect and dispatches its outcome.
func (r *Runtime) perform(ctx context.Context, eff Effect) {
	switch e := eff.(type) {
	case LoadLocales:
		locales, err := r.client.ListLocales(ctx)
		if err != nil {
			return
		}
		r.Dispatch(LocalesLoaded{Locales: locales})

	case LoadRecords:
		records, err := r.client.ListRecords(ctx, e.Kind)
		if err != nil {
			return
		}
		r.Dispatch(RecordsLoaded{Records: records})

	case EncodeFile:
		uri, err := EncodeImageFile(e.Path)
		if err != nil {
			r.Dispatch(EncodeFailed{Message: err.Error()})
			return
		}
		r.Dispatch(FileEncoded{DataURI: uri})

	case SaveDraft:
		msg, err := r.client.SaveRecord(ctx, e)
		if err != nil {
			r.Dispatch(SubmitErr{Message: err.Error()})
			return
		}
		r.Dispatch(SubmitOK{Message: msg})

	case DeleteDraft:
		msg, err := r.client.DeleteRecord(ctx, e.Token, e.Kind, e.ID)
		if err != nil {
			r.Dispatch(DeleteErr{Message: err.Error()})
			return
		}
		r.Dispatch(DeleteOK{Message: msg})

	case RegisterLocale:
		msg, err := r.client.CreateLocale(ctx, e.Token, e.Language)
		if err != nil {
			r.Dispatch(SubmitErr{Message: err.Error()})
			return
		}
		r.Dispatch(SubmitOK{Message: msg})

	case RemoveLocale:
		msg, err := r.client.DeleteLocale(ctx, e.Token, e.Language)
		if err != nil {
			r.Dispatch(DeleteErr{Message: err.Error()})
			return
		}
		r.Dispatch(DeleteOK{Message: msg})

	case ExpireMessage:
		time.AfterFunc(messageTTL, func() {
			r.Dispatch(MessageExpired{Gen: e.Gen})
		})
	}
}
