// Package memstore is an in-process implementation of repository.Store. It
// serializes transactions with a single mutex and restores a snapshot when a
// transaction function fails, so it honours the same atomicity contract as the
// Postgres store.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

type state struct {
	users      []domain.User
	tickets    []domain.Ticket
	feedback   []domain.Feedback
	activities []domain.Activity
}

func (s *state) clone() *state {
	c := &state{
		users:      make([]domain.User, len(s.users)),
		tickets:    make([]domain.Ticket, len(s.tickets)),
		feedback:   make([]domain.Feedback, len(s.feedback)),
		activities: make([]domain.Activity, len(s.activities)),
	}
	for i := range s.users {
		c.users[i] = copyUser(s.users[i])
	}
	for i := range s.tickets {
		c.tickets[i] = copyTicket(s.tickets[i])
	}
	copy(c.feedback, s.feedback)
	copy(c.activities, s.activities)
	return c
}

// Store is a mutex-guarded in-memory repository.Store.
type Store struct {
	mu   *sync.Mutex
	st   *state
	inTx bool
	now  func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{mu: &sync.Mutex{}, st: &state{}, now: time.Now}
}

var _ repository.Store = (*Store)(nil)

func (s *Store) Users() repository.UserRepository { return &userRepo{s: s} }
func (s *Store) Tickets() repository.TicketRepository { return &ticketRepo{s: s} }
func (s *Store) Feedback() repository.FeedbackRepository { return &feedbackRepo{s: s} }
func (s *Store) Activities() repository.ActivityRepository { return &activityRepo{s: s} }

func (s *Store) Ping(context.Context) error { return nil }

// WithinTx holds the store lock for the duration of fn and rolls back every
// change if fn returns an error or ctx is done before the commit.
func (s *Store) WithinTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	snapshot := s.st.clone()
	tx := &Store{mu: s.mu, st: s.st, inTx: true, now: s.now}
	if err := fn(tx); err != nil {
		*s.st = *snapshot
		return err
	}
	if err := ctx.Err(); err != nil {
		*s.st = *snapshot
		return err
	}
	return nil
}

func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func copyUser(u domain.User) domain.User {
	if u.ManagerID != nil {
		id := *u.ManagerID
		u.ManagerID = &id
	}
	return u
}

func copyTicket(t domain.Ticket) domain.Ticket {
	if t.HRSubtype != nil {
		v := *t.HRSubtype
		t.HRSubtype = &v
	}
	if t.ITSubtype != nil {
		v := *t.ITSubtype
		t.ITSubtype = &v
	}
	if t.Remarks != nil {
		v := *t.Remarks
		t.Remarks = &v
	}
	if t.Rating != nil {
		v := *t.Rating
		t.Rating = &v
	}
	return t
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *domain.User) error {
	defer r.s.lock()()
	for _, u := range r.s.st.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	if user.ManagerID != nil && r.s.findUser(*user.ManagerID) < 0 {
		return fmt.Errorf("manager %s does not exist", *user.ManagerID)
	}
	now := r.s.now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.st.users = append(r.s.st.users, copyUser(*user))
	return nil
}

// LockHierarchy is a no-op: WithinTx already holds the store lock.
func (r *userRepo) LockHierarchy(context.Context) error { return nil }

func (r *userRepo) SetManager(_ context.Context, userID string, managerID *string) error {
	defer r.s.lock()()
	idx := r.s.findUser(userID)
	if idx < 0 {
		return repository.ErrNotFound
	}
	if managerID != nil {
		if *managerID == userID {
			return errors.New("user cannot be their own manager")
		}
		if r.s.findUser(*managerID) < 0 {
			return fmt.Errorf("manager %s does not exist", *managerID)
		}
		id := *managerID
		managerID = &id
	}
	r.s.st.users[idx].ManagerID = managerID
	r.s.st.users[idx].UpdatedAt = r.s.now()
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	defer r.s.lock()()
	idx := r.s.findUser(id)
	if idx < 0 {
		return nil, repository.ErrNotFound
	}
	u := copyUser(r.s.st.users[idx])
	return &u, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	defer r.s.lock()()
	for _, u := range r.s.st.users {
		if u.Username == username {
			c := copyUser(u)
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	defer r.s.lock()()
	for _, u := range r.s.st.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepo) List(context.Context) ([]domain.User, error) {
	defer r.s.lock()()
	result := make([]domain.User, 0, len(r.s.st.users))
	for _, u := range r.s.st.users {
		result = append(result, copyUser(u))
	}
	return result, nil
}

func (r *userRepo) CountReports(_ context.Context, managerID string) (int, error) {
	defer r.s.lock()()
	count := 0
	for _, u := range r.s.st.users {
		if u.ReportsTo(managerID) {
			count++
		}
	}
	return count, nil
}

func (r *userRepo) ListReportIDs(_ context.Context, managerID string) ([]string, error) {
	defer r.s.lock()()
	ids := []string{}
	for _, u := range r.s.st.users {
		if u.ReportsTo(managerID) {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

func (r *userRepo) DeleteAll(context.Context) error {
	defer r.s.lock()()
	r.s.st.users = nil
	return nil
}

func (s *Store) findUser(id string) int {
	for i := range s.st.users {
		if s.st.users[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) findTicket(id string) int {
	for i := range s.st.tickets {
		if s.st.tickets[i].ID == id {
			return i
		}
	}
	return -1
}

type ticketRepo struct{ s *Store }

func (r *ticketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	defer r.s.lock()()
	if r.s.findUser(ticket.CreatedByID) < 0 {
		return fmt.Errorf("creator %s does not exist", ticket.CreatedByID)
	}
	now := r.s.now()
	ticket.ID = uuid.NewString()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	r.s.st.tickets = append(r.s.st.tickets, copyTicket(*ticket))
	return nil
}

func (r *ticketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	defer r.s.lock()()
	idx := r.s.findTicket(ticket.ID)
	if idx < 0 {
		return repository.ErrNotFound
	}
	updated := copyTicket(*ticket)
	stored := &r.s.st.tickets[idx]
	stored.Status = updated.Status
	stored.Remarks = updated.Remarks
	stored.Rating = updated.Rating
	stored.UpdatedAt = r.s.now()
	ticket.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *ticketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	defer r.s.lock()()
	idx := r.s.findTicket(id)
	if idx < 0 {
		return nil, repository.ErrNotFound
	}
	t := copyTicket(r.s.st.tickets[idx])
	return &t, nil
}

// GetByIDForUpdate is GetByID: the transaction already holds the store lock.
func (r *ticketRepo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Ticket, error) {
	return r.GetByID(ctx, id)
}

func (r *ticketRepo) List(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	defer r.s.lock()()
	var creators map[string]struct{}
	if filter.CreatedByIDs != nil {
		creators = make(map[string]struct{}, len(filter.CreatedByIDs))
		for _, id := range filter.CreatedByIDs {
			creators[id] = struct{}{}
		}
	}

	result := []domain.Ticket{}
	for i := len(r.s.st.tickets) - 1; i >= 0; i-- {
		t := r.s.st.tickets[i]
		if filter.CreatedByID != nil && t.CreatedByID != *filter.CreatedByID {
			continue
		}
		if creators != nil {
			if _, ok := creators[t.CreatedByID]; !ok {
				continue
			}
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, t.Status) {
			continue
		}
		if filter.Type != nil && t.Type != *filter.Type {
			continue
		}
		result = append(result, copyTicket(t))
	}

	if filter.Limit > 0 && filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []domain.Ticket{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (r *ticketRepo) CountByCreator(_ context.Context, creatorID string, status domain.TicketStatus, ticketType domain.TicketType) (int, error) {
	defer r.s.lock()()
	count := 0
	for _, t := range r.s.st.tickets {
		if t.CreatedByID == creatorID && t.Status == status && t.Type == ticketType {
			count++
		}
	}
	return count, nil
}

func (r *ticketRepo) DeleteAll(context.Context) error {
	defer r.s.lock()()
	r.s.st.tickets = nil
	return nil
}

func containsStatus(statuses []domain.TicketStatus, status domain.TicketStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

type feedbackRepo struct{ s *Store }

func (r *feedbackRepo) Create(_ context.Context, feedback *domain.Feedback) error {
	defer r.s.lock()()
	if r.s.findUser(feedback.GivenByID) < 0 || r.s.findUser(feedback.GivenToID) < 0 {
		return errors.New("feedback references unknown user")
	}
	feedback.ID = uuid.NewString()
	feedback.CreatedAt = r.s.now()
	r.s.st.feedback = append(r.s.st.feedback, *feedback)
	return nil
}

func (r *feedbackRepo) List(context.Context) ([]domain.Feedback, error) {
	defer r.s.lock()()
	result := make([]domain.Feedback, 0, len(r.s.st.feedback))
	for i := len(r.s.st.feedback) - 1; i >= 0; i-- {
		result = append(result, r.s.st.feedback[i])
	}
	return result, nil
}

func (r *feedbackRepo) DeleteAll(context.Context) error {
	defer r.s.lock()()
	r.s.st.feedback = nil
	return nil
}

type activityRepo struct{ s *Store }

func (r *activityRepo) Create(_ context.Context, activity *domain.Activity) error {
	defer r.s.lock()()
	if r.s.findUser(activity.UserID) < 0 {
		return fmt.Errorf("activity user %s does not exist", activity.UserID)
	}
	if r.s.findTicket(activity.TicketID) < 0 {
		return fmt.Errorf("activity ticket %s does not exist", activity.TicketID)
	}
	activity.ID = uuid.NewString()
	activity.CreatedAt = r.s.now()
	r.s.st.activities = append(r.s.st.activities, *activity)
	return nil
}

func (r *activityRepo) List(context.Context) ([]repository.ActivityEntry, error) {
	defer r.s.lock()()
	result := []repository.ActivityEntry{}
	for i := len(r.s.st.activities) - 1; i >= 0; i-- {
		result = append(result, r.s.entry(r.s.st.activities[i]))
	}
	return result, nil
}

func (r *activityRepo) ListByTicket(_ context.Context, ticketID string) ([]repository.ActivityEntry, error) {
	defer r.s.lock()()
	result := []repository.ActivityEntry{}
	for _, a := range r.s.st.activities {
		if a.TicketID == ticketID {
			result = append(result, r.s.entry(a))
		}
	}
	return result, nil
}

func (r *activityRepo) DeleteAll(context.Context) error {
	defer r.s.lock()()
	r.s.st.activities = nil
	return nil
}

func (s *Store) entry(a domain.Activity) repository.ActivityEntry {
	entry := repository.ActivityEntry{Activity: a}
	if idx := s.findUser(a.UserID); idx >= 0 {
		entry.Username = s.st.users[idx].Username
	}
	return entry
}
