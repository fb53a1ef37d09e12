package app

import (
	"fmt"

	"github.com/dkeye/muc/internal/core"
)

type BackpressureAction int

const (
	DropEvent BackpressureAction = iota
	Disconnect
)

// Policy decides what happens to an event subscriber whose queue is full.
type Policy interface {
	OnBackPressure(room core.ChatRoom, conn core.SignalConnection) BackpressureAction
}

// SimplePolicy disconnects slow subscribers; they can reconnect and resync.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(core.ChatRoom, core.SignalConnection) BackpressureAction {
	return Disconnect
}

// DropPolicy keeps the subscriber and drops the event.
type DropPolicy struct{}

func (DropPolicy) OnBackPressure(core.ChatRoom, core.SignalConnection) BackpressureAction {
	return DropEvent
}

func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", "disconnect":
		return SimplePolicy{}, nil
	case "drop":
		return DropPolicy{}, nil
	}
	return nil, fmt.Errorf("unknown overflow policy %q", name)
}
