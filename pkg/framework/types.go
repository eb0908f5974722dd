package framework

import (
	"context"
	"time"
)

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable defines a generic interface for background tasks.
type Runnable interface {
	Run(context.Context) error
}

// Message is an event posted into the loop from outside the
// control cycle, e.g. operator input from the interactive shell.
type Message interface{}

// Controller defines one unit of per-cycle control logic.
type Controller interface {
	Control(ControlContext) error
}

// ControlContext provides the context of the current control cycle.
type ControlContext interface {
	// Context retrieves context.Context.
	Context() context.Context
	// Time is the wall-clock time the cycle started.
	Time() time.Time
	// PriorityLevel gets the level currently being executed.
	PriorityLevel() int
	// Messages retrieves the messages collected when this cycle started.
	Messages() MessageStore

	LoopControl
}

// PriorityLevels is the total levels of priorities.
const PriorityLevels int = 16

// Predefined priority levels
const (
	PrLvTop    int = 0
	PrLvHigh   int = 4
	PrLvNormal int = 8
	PrLvLow    int = 12
	PrLvIdle   int = PriorityLevels - 1

	// PrLvRender is the alias of priority level for output projections.
	// Projections run first so they observe the state latched by the
	// previous cycle, matching a render-then-step loop body.
	PrLvRender = PrLvTop
	// PrLvSense is the alias of priority level for input samplers.
	PrLvSense = PrLvHigh
	// PrLvControl is the alias of priority level for state machines.
	PrLvControl = PrLvNormal
	// PrLvPostProc is the alias of priority level for cycle bookkeeping
	// such as timer advancement.
	PrLvPostProc = PrLvIdle - 1
)

// LoopControl exposes access to the controlling loop.
type LoopControl interface {
	// PostMessage enqueues a message for the next cycle.
	PostMessage(Message)
	// TriggerNext schedules the next cycle to be executed immediately
	// after the current one, without waiting for the tick.
	TriggerNext()
}

// MessageStore provides access to the messages of one cycle.
type MessageStore interface {
	// ProcessMessages uses a processor to examine all messages.
	ProcessMessages(MessageProcessor)
	// AddMessages appends messages for the next processing cycle.
	AddMessages(msgs ...Message)
}

// MessageProcessor is used by MessageStore to process messages.
type MessageProcessor interface {
	ProcessMessage(MessageProcessingContext)
}

// ProcessMessageFunc is the func form of MessageProcessor.
type ProcessMessageFunc func(MessageProcessingContext)

// ProcessMessage implements MessageProcessor.
func (f ProcessMessageFunc) ProcessMessage(mc MessageProcessingContext) {
	f(mc)
}

// MessageProcessingContext provides context for the current message.
type MessageProcessingContext interface {
	// CurrentMessage gets the message being processed.
	CurrentMessage() Message
	// MessageTaken indicates the message has been consumed and should
	// be removed from the store.
	MessageTaken()
}

// ControlFunc defines the func form of Controller.
type ControlFunc func(ControlContext) error

// Control implements Controller.
func (f ControlFunc) Control(cc ControlContext) error {
	return f(cc)
}
