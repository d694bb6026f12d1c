package main

import (
	"context"
	"errors"
	"time"

	"github.com/teamsite/content-api/internal/editor"
)

// commandContext carries the persistent flags and builds the API client and
// editor runtime on demand.
type commandContext struct {
	addrFlag  *string
	tokenFlag *string
}

func newCommandContext(addrFlag, tokenFlag *string) *commandContext {
	return &commandContext{
		addrFlag:  addrFlag,
		tokenFlag: tokenFlag,
	}
}

func (c *commandContext) client() *editor.Client {
	return editor.NewClient(*c.addrFlag)
}

func (c *commandContext) token() string {
	return *c.tokenFlag
}

// runEditor starts a runtime, hands it to script for dispatching, then waits
// for the operation to settle: not loading, not encoding, with a message. The
// returned state carries the outcome message.
func (c *commandContext) runEditor(parent context.Context, script func(*editor.Runtime)) (editor.State, error) {
	ctx, cancel := context.WithTimeout(parent, time.Minute)
	defer cancel()

	states := make(chan editor.State, 128)
	rt := editor.NewRuntime(c.client(), func(s editor.State) { states <- s })
	rt.Start(ctx)

	script(rt)

	for {
		select {
		case s := <-states:
			if s.Message != "" && !s.Loading && !s.Encoding {
				return s, nil
			}
		case <-ctx.Done():
			return editor.State{}, errors.New("timed out waiting for the server")
		}
	}
}

func parseSection(kind string) (editor.Section, error) {
	switch kind {
	case "member":
		return editor.SectionMember, nil
	case "project":
		return editor.SectionProject, nil
	default:
		return "", errors.New("kind must be member or project")
	}
}
