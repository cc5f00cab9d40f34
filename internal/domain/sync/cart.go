package sync

import (
	"time"

	"github.com/google/uuid"
)

// CartState is the state of one order mirroring attempt. Transitions are
// linear and non-reentrant once terminal:
//
//	PENDING → SESSION_ACQUIRED → CART_CLEARED → LINES_ADDED → SUBMITTED | ABORTED
type CartState string

const (
	CartStatePending         CartState = "PENDING"
	CartStateSessionAcquired CartState = "SESSION_ACQUIRED"
	CartStateCartCleared     CartState = "CART_CLEARED"
	CartStateLinesAdded      CartState = "LINES_ADDED"
	CartStateSubmitted       CartState = "SUBMITTED"
	CartStateAborted         CartState = "ABORTED"
)

// IsTerminal reports whether no further transitions are allowed.
func (s CartState) IsTerminal() bool {
	return s == CartStateSubmitted || s == CartStateAborted
}

// CartSession is the transient, ERP-scoped session driving one order
// mirroring attempt. It is never persisted: every cycle restarts at PENDING
// for any order lacking an ERP mirror row. The SID is single-use: a fresh
// session is requested per order, never shared across orders.
type CartSession struct {
	AttemptID  uuid.UUID
	OrderName  string
	SID        string
	State      CartState
	LinesAdded int
	StartedAt  time.Time
}

// NewCartSession starts a PENDING mirroring attempt for the given order.
func NewCartSession(orderName string) *CartSession {
	return &CartSession{
		AttemptID: uuid.New(),
		OrderName: orderName,
		State:     CartStatePending,
		StartedAt: time.Now(),
	}
}

// AcquireSession records the SID returned by the ERP and moves to
// SESSION_ACQUIRED.
func (c *CartSession) AcquireSession(sid string) error {
	if err := c.require(CartStatePending); err != nil {
		return err
	}
	if sid == "" {
		return ErrSessionNotAcquired
	}
	c.SID = sid
	c.State = CartStateSessionAcquired
	return nil
}

// MarkCartCleared records that stray lines under the session were purged
// (or that the cart was already empty).
func (c *CartSession) MarkCartCleared() error {
	if err := c.require(CartStateSessionAcquired); err != nil {
		return err
	}
	c.State = CartStateCartCleared
	return nil
}

// AddLine counts one successfully added cart line. Unresolvable SKUs are
// skipped by the caller and never counted.
func (c *CartSession) AddLine() error {
	if c.State != CartStateCartCleared && c.State != CartStateLinesAdded {
		return c.transitionError()
	}
	c.State = CartStateLinesAdded
	c.LinesAdded++
	return nil
}

// Submit finishes the attempt. An attempt with zero added lines must never
// be submitted; callers abort instead.
func (c *CartSession) Submit() error {
	if err := c.require(CartStateLinesAdded); err != nil {
		return err
	}
	if c.LinesAdded == 0 {
		return ErrNoResolvableLines
	}
	c.State = CartStateSubmitted
	return nil
}

// Abort terminates the attempt. The order stays eligible for retry on the
// next cycle since no mirror row exists.
func (c *CartSession) Abort() {
	if !c.State.IsTerminal() {
		c.State = CartStateAborted
	}
}

func (c *CartSession) require(expected CartState) error {
	if c.State != expected {
		return c.transitionError()
	}
	return nil
}

func (c *CartSession) transitionError() error {
	if c.State.IsTerminal() {
		return ErrSessionTerminal
	}
	return ErrInvalidTransition
}

// CartLine is a line already present in the ERP cart under a session. The
// cart is a per-session mutable resource with no isolation guarantee, so
// leftovers from an aborted attempt must be purged before adding new lines.
type CartLine struct {
	LineID   string
	PrdID    string
	Quantity int
}

// CartItem is a line to add to the ERP cart, resolved from a storefront
// line item against the staged stock variants.
type CartItem struct {
	PrdID    string
	Size     string
	Color    string
	Quantity int
}
