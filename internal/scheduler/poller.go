package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/EricStrohmaier/motivations-bot/internal/models"
)

type UserLister interface {
	GetAllUsers(ctx context.Context) ([]models.UserProfile, error)
}

type MessageAppender interface {
	AppendMessage(ctx context.Context, userID int64, text string, messageType models.MessageType) error
}

type DeliveryLedger interface {
	WasDelivered(ctx context.Context, userID int64, trigger string, goalID string, bucket string) (bool, error)
	RecordDelivery(ctx context.Context, userID int64, trigger string, goalID string, bucket string) error
}

// Transport delivers a message to the user's chat session. An error
// means the message did not reach the user; the caller must not record
// it as sent.
type Transport interface {
	SendMessage(ctx context.Context, userID int64, text string) error
}

// Motivator resolves the text for a motivation trigger: a custom
// message if the user keeps any, a generated one otherwise.
type Motivator interface {
	MotivationMessage(ctx context.Context, user *models.UserProfile) (string, error)
}

// Poller drives the notification schedule: one Tick per interval walks
// the whole population, evaluates each user's triggers, and dispatches
// the results. Failures stay per-user; a tick always attempts every
// user it managed to load.
type Poller struct {
	users     UserLister
	messages  MessageAppender
	ledger    DeliveryLedger
	transport Transport
	motivator Motivator
	evaluator *Evaluator

	interval       time.Duration
	perUserTimeout time.Duration
	concurrency    int

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewPoller(
	users UserLister,
	messages MessageAppender,
	ledger DeliveryLedger,
	transport Transport,
	motivator Motivator,
	evaluator *Evaluator,
	interval time.Duration,
	perUserTimeout time.Duration,
	concurrency int,
) *Poller {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Poller{
		users:          users,
		messages:       messages,
		ledger:         ledger,
		transport:      transport,
		motivator:      motivator,
		evaluator:      evaluator,
		interval:       interval,
		perUserTimeout: perUserTimeout,
		concurrency:    concurrency,
	}
}

// Start launches the polling loop in the background. The external
// cadence no longer has to be trusted for idempotency — the delivery
// ledger catches re-runs inside the same hour — but the interval should
// still match the hour granularity of the trigger conditions.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return fmt.Errorf("poller already running")
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})

	go p.run(ctx, p.stopCh, p.doneCh)
	return nil
}

// Stop signals the loop and waits for the in-flight tick to finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopCh)
	done := p.doneCh
	p.mu.Unlock()

	<-done
}

func (p *Poller) run(ctx context.Context, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case now := <-ticker.C:
			if err := p.Tick(ctx, now.UTC()); err != nil {
				log.Printf("scheduler: tick failed: %v", err)
			}
		}
	}
}

// Tick processes the whole population for one instant. Users are fanned
// out with bounded concurrency and an individual timeout, so one slow
// delivery cannot stall the rest of the tick. Only a population read
// failure aborts the tick; everything else is logged and skipped.
func (p *Poller) Tick(ctx context.Context, nowUTC time.Time) error {
	users, err := p.users.GetAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i := range users {
		user := users[i]
		g.Go(func() error {
			userCtx, cancel := context.WithTimeout(gctx, p.perUserTimeout)
			defer cancel()
			p.processUser(userCtx, &user, nowUTC)
			return nil
		})
	}

	return g.Wait()
}

func (p *Poller) processUser(ctx context.Context, user *models.UserProfile, nowUTC time.Time) {
	outbound, err := p.evaluator.Evaluate(user, nowUTC)
	if err != nil {
		log.Printf("scheduler: skipping user %d: %v", user.UserID, err)
		return
	}
	if len(outbound) == 0 {
		return
	}

	// Evaluate succeeded, so the location resolves.
	loc, _ := user.Location()
	bucket := HourBucket(nowUTC, loc)

	for _, msg := range outbound {
		p.dispatch(ctx, user, msg, bucket)
	}
}

func (p *Poller) dispatch(ctx context.Context, user *models.UserProfile, msg Outbound, bucket string) {
	goalKey := ""
	if msg.Kind == TriggerDeadline {
		goalKey = msg.GoalID.String()
	}

	delivered, err := p.ledger.WasDelivered(ctx, user.UserID, string(msg.Kind), goalKey, bucket)
	if err != nil {
		log.Printf("scheduler: ledger check failed for user %d trigger %s: %v", user.UserID, msg.Kind, err)
		return
	}
	if delivered {
		return
	}

	text := msg.Text
	if msg.Kind == TriggerMotivation {
		text, err = p.motivator.MotivationMessage(ctx, user)
		if err != nil {
			log.Printf("scheduler: motivation for user %d failed: %v", user.UserID, err)
			return
		}
	}

	if err := p.transport.SendMessage(ctx, user.UserID, text); err != nil {
		// Undelivered messages are not logged to history; the next
		// eligible hour retries naturally.
		log.Printf("scheduler: send to user %d failed: %v", user.UserID, err)
		return
	}

	if err := p.messages.AppendMessage(ctx, user.UserID, text, msg.Type); err != nil {
		log.Printf("scheduler: history append for user %d failed: %v", user.UserID, err)
	}
	if err := p.ledger.RecordDelivery(ctx, user.UserID, string(msg.Kind), goalKey, bucket); err != nil {
		log.Printf("scheduler: ledger write for user %d trigger %s failed: %v", user.UserID, msg.Kind, err)
	}
}
