package framework

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/golang/glog"
)

// DefaultInterval is the cycle length the loop runs at unless
// configured otherwise. The harness timing model (mode dwell counts,
// display refresh divisors) is derived from a 10 ms cycle.
const DefaultInterval = 10 * time.Millisecond

// Loop drives registered controllers once per fixed-length cycle,
// in priority order within the cycle.
type Loop struct {
	Interval time.Duration

	controllers [PriorityLevels][]Controller
	runners     []Runnable

	messages messageList
	lock     sync.Mutex

	wakeUpCh chan struct{}
}

// LoopAdder provides specific logic to add components to the loop.
type LoopAdder interface {
	AddToLoop(*Loop)
}

type loopCtl struct {
	*Loop
}

type loopCycle struct {
	loopCtl
	ctx           context.Context
	time          time.Time
	priorityLevel int
	messages      messageList
}

type messageList struct {
	head *messageItem
	tail *messageItem
}

type messageItem struct {
	msg  Message
	next *messageItem
}

func (l *messageList) append(item *messageItem) {
	if l.head == nil {
		l.head = item
	} else {
		l.tail.next = item
	}
	l.tail = item
}

func (l *messageList) splice(src *messageList) {
	l.head, l.tail, src.head, src.tail = src.head, src.tail, nil, nil
}

func (l *messageList) concat(lst *messageList) {
	if l.head == nil {
		l.head = lst.head
	} else {
		l.tail.next = lst.head
	}
	if lst.head != nil {
		l.tail = lst.tail
	}
}

var loopCtxKey = &Loop{}

// LoopCtlFrom gets LoopControl from context.
func LoopCtlFrom(ctx context.Context) LoopControl {
	return ctx.Value(loopCtxKey).(LoopControl)
}

// NewLoop creates a Loop running at DefaultInterval.
func NewLoop() *Loop {
	return &Loop{Interval: DefaultInterval, wakeUpCh: make(chan struct{}, 1)}
}

// Add adds LoopAdders.
func (l *Loop) Add(adders ...LoopAdder) *Loop {
	for _, adder := range adders {
		adder.AddToLoop(l)
	}
	return l
}

// AddController registers controllers at a priority level. Controllers
// at the same level run in registration order.
func (l *Loop) AddController(priorityLevel int, ctls ...Controller) *Loop {
	l.controllers[priorityLevel] = append(l.controllers[priorityLevel], ctls...)
	for _, ctl := range ctls {
		if runner, ok := ctl.(Runnable); ok {
			l.runners = append(l.runners, runner)
		}
	}
	return l
}

// AddRunnable adds background tasks hosted alongside the loop.
func (l *Loop) AddRunnable(runnables ...Runnable) *Loop {
	l.runners = append(l.runners, runnables...)
	return l
}

// Run implements Runnable.
func (l *Loop) Run(ctx context.Context) error {
	if l.wakeUpCh == nil {
		l.wakeUpCh = make(chan struct{}, 1)
	}

	runner := NewRunnerWith(context.WithValue(ctx, loopCtxKey, &loopCtl{l}))
	runner.Go(l.runners...)
	defer runner.Wait()

	interval := l.Interval
	if interval == 0 {
		interval = DefaultInterval
	}
	tick := time.Tick(interval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
			l.runCycle(ctx)
		case <-l.wakeUpCh:
			l.runCycle(ctx)
		}
	}
}

// RunOrFail is intended to be used in main to simply run the loop.
func (l *Loop) RunOrFail() {
	if err := l.Run(context.TODO()); err != nil && err != context.Canceled {
		log.Fatalln(err)
	}
}

// PostMessage implements LoopControl.
func (l *Loop) PostMessage(msg Message) {
	l.lock.Lock()
	l.messages.append(&messageItem{msg: msg})
	l.lock.Unlock()
}

// TriggerNext implements LoopControl.
func (l *Loop) TriggerNext() {
	select {
	case l.wakeUpCh <- struct{}{}:
	default:
	}
}

func (l *Loop) runCycle(ctx context.Context) {
	cycle := &loopCycle{loopCtl: loopCtl{l}, time: time.Now()}
	l.lock.Lock()
	cycle.messages.splice(&l.messages)
	l.lock.Unlock()
	cycle.ctx = context.WithValue(ctx, loopCtxKey, cycle)
	for i := 0; i < PriorityLevels; i++ {
		cycle.priorityLevel = i
		for _, ctl := range l.controllers[i] {
			if err := ctl.Control(cycle); err != nil {
				glog.Errorf("controller error: %v", err)
			}
		}
	}
}

func (c *loopCycle) Context() context.Context {
	return c.ctx
}

func (c *loopCycle) Time() time.Time {
	return c.time
}

func (c *loopCycle) PriorityLevel() int {
	return c.priorityLevel
}

func (c *loopCycle) Messages() MessageStore {
	return c
}

// MessageStore implementation over the cycle's spliced list.

type messageContext struct {
	cycle *loopCycle
	item  *messageItem
	taken bool
}

func (c *messageContext) CurrentMessage() Message { return c.item.msg }
func (c *messageContext) MessageTaken()           { c.taken = true }

func (c *loopCycle) ProcessMessages(proc MessageProcessor) {
	var msgs, remains messageList
	msgs.splice(&c.messages)
	for msgs.head != nil {
		mctx := &messageContext{cycle: c, item: msgs.head}
		msgs.head = msgs.head.next
		mctx.item.next = nil
		proc.ProcessMessage(mctx)
		if !mctx.taken {
			remains.append(mctx.item)
		}
	}
	remains.concat(&c.messages)
	c.messages = remains
}

func (c *loopCycle) AddMessages(msgs ...Message) {
	for _, msg := range msgs {
		c.messages.append(&messageItem{msg: msg})
	}
}
