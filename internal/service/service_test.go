package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/repository/memstore"
	"github.com/spec-kit/helpdesk-service/internal/worker"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

type harness struct {
	ctx        context.Context
	store      repository.Store
	metrics    *observability.Metrics
	users      *UserService
	tickets    *TicketService
	feedback   *FeedbackService
	activities *ActivityService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithStore(t, memstore.New())
}

func newHarnessWithStore(t *testing.T, store repository.Store) *harness {
	t.Helper()
	logger := zap.NewNop()
	dispatcher := events.NewInMemoryDispatcher(logger)
	metrics := observability.NewMetrics()
	worker.StartEventRecorder(dispatcher, metrics, logger)

	activities := NewActivityService(ActivityDependencies{Store: store, Logger: logger})
	return &harness{
		ctx:        context.Background(),
		store:      store,
		metrics:    metrics,
		users:      NewUserService(UserDependencies{Store: store, Dispatcher: dispatcher, Logger: logger}),
		tickets:    NewTicketService(TicketDependencies{Store: store, Activities: activities, Dispatcher: dispatcher, Logger: logger}),
		feedback:   NewFeedbackService(FeedbackDependencies{Store: store, Dispatcher: dispatcher, Logger: logger}),
		activities: activities,
	}
}

func (h *harness) user(t *testing.T, username string, role domain.UserRole, manager *domain.User) *domain.User {
	t.Helper()
	u := &domain.User{Username: username, Email: username + "@example.com", Name: username, Role: role, PasswordHash: "x"}
	if manager != nil {
		u.ManagerID = &manager.ID
	}
	if err := h.store.Users().Create(h.ctx, u); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func (h *harness) ticket(t *testing.T, actor *domain.User, ticketType, hr, it string) *domain.Ticket {
	t.Helper()
	tk, err := h.tickets.CreateTicket(h.ctx, actor, CreateTicketInput{
		Title:       "need help",
		Description: "details",
		Type:        ticketType,
		HRSubtype:   hr,
		ITSubtype:   it,
	})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}
	return tk
}

func (h *harness) act(actor *domain.User, ticketID, action string, rating *int) (*ActionResult, error) {
	return h.tickets.PerformAction(h.ctx, actor, ticketID, ActionInput{Action: action, Remarks: "ok", Rating: rating})
}

func (h *harness) stored(t *testing.T, id string) *domain.Ticket {
	t.Helper()
	tk, err := h.store.Tickets().GetByID(h.ctx, id)
	if err != nil {
		t.Fatalf("get ticket: %v", err)
	}
	return tk
}

func expectCode(t *testing.T, err error, code string) {
	t.Helper()
	if got := apperrors.CodeOf(err); got != code {
		t.Fatalf("expected %s, got %q (%v)", code, got, err)
	}
}

func intPtr(v int) *int { return &v }

func TestCreateTicketRouting(t *testing.T) {
	h := newHarness(t)
	emp := h.user(t, "emp", domain.UserRoleEmployee, nil)

	tk := h.ticket(t, emp, "HR", "COURSE_PURCHASE", "")
	if tk.Status != domain.TicketStatusForwardedToManager || !tk.RequiresApproval {
		t.Fatalf("expected FORWARDED_TO_MANAGER with approval, got %s/%v", tk.Status, tk.RequiresApproval)
	}

	h.user(t, "report", domain.UserRoleEmployee, emp)
	tk = h.ticket(t, emp, "hr", "course_purchase", "")
	if tk.Status != domain.TicketStatusForwardedToHR || tk.RequiresApproval {
		t.Fatalf("expected manager to bypass approval, got %s/%v", tk.Status, tk.RequiresApproval)
	}

	tk = h.ticket(t, emp, "IT", "", "LAPTOP_BOOTUP")
	if tk.Status != domain.TicketStatusForwardedToIT || tk.RequiresApproval {
		t.Fatalf("expected FORWARDED_TO_IT without approval, got %s/%v", tk.Status, tk.RequiresApproval)
	}

	if got := h.metrics.EventCount(string(events.EventTicketCreated), string(domain.TicketStatusForwardedToHR)); got != 1 {
		t.Fatalf("expected one ticket_created event for FORWARDED_TO_HR, got %d", got)
	}
}

func TestCreateTicketRejections(t *testing.T) {
	h := newHarness(t)
	emp := h.user(t, "emp", domain.UserRoleEmployee, nil)
	admin := h.user(t, "admin", domain.UserRoleAdmin, nil)
	hr := h.user(t, "hr", domain.UserRoleHR, nil)

	cases := []struct {
		name  string
		actor *domain.User
		input CreateTicketInput
		code  string
	}{
		{name: "admin", actor: admin, input: CreateTicketInput{Title: "t", Description: "d", Type: "HR", HRSubtype: "PAYROLL"}, code: apperrors.CodeForbidden},
		{name: "hr staff", actor: hr, input: CreateTicketInput{Title: "t", Description: "d", Type: "HR", HRSubtype: "PAYROLL"}, code: apperrors.CodeForbidden},
		{name: "missing title", actor: emp, input: CreateTicketInput{Description: "d", Type: "HR", HRSubtype: "PAYROLL"}, code: apperrors.CodeValidation},
		{name: "subtype mismatch", actor: emp, input: CreateTicketInput{Title: "t", Description: "d", Type: "HR", ITSubtype: "ADD_RAM"}, code: apperrors.CodeValidation},
		{name: "unknown type", actor: emp, input: CreateTicketInput{Title: "t", Description: "d", Type: "FINANCE"}, code: apperrors.CodeValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.tickets.CreateTicket(h.ctx, tc.actor, tc.input)
			expectCode(t, err, tc.code)
		})
	}
}

func TestManagerApprovesSubordinateITTicket(t *testing.T) {
	h := newHarness(t)
	boss := h.user(t, "boss", domain.UserRoleEmployee, nil)
	emp := h.user(t, "emp", domain.UserRoleEmployee, boss)
	outsider := h.user(t, "outsider", domain.UserRoleEmployee, nil)
	h.user(t, "outsiderReport", domain.UserRoleEmployee, outsider)

	tk := h.ticket(t, emp, "IT", "", "ADD_RAM")
	if tk.Status != domain.TicketStatusForwardedToManager {
		t.Fatalf("expected approval queue, got %s", tk.Status)
	}

	_, err := h.act(outsider, tk.ID, "approve", nil)
	expectCode(t, err, apperrors.CodeForbidden)

	res, err := h.act(boss, tk.ID, "APPROVE", nil)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if res.Ticket.Status != domain.TicketStatusForwardedToIT || res.Action != domain.ActionApprove {
		t.Fatalf("unexpected result %+v", res)
	}
	if !h.stored(t, tk.ID).RequiresApproval {
		t.Fatalf("requiresApproval must not change after creation")
	}

	entries, err := h.store.Activities().ListByTicket(h.ctx, tk.ID)
	if err != nil {
		t.Fatalf("list activity: %v", err)
	}
	if len(entries) != 1 || entries[0].Type != domain.ActivityTicketApproved || entries[0].UserID != boss.ID {
		t.Fatalf("expected one TICKET_APPROVED entry by boss, got %+v", entries)
	}
	if got := h.metrics.EventCount(string(events.EventTicketActionPerformed), string(domain.TicketStatusForwardedToIT)); got != 1 {
		t.Fatalf("expected action event to be recorded, got %d", got)
	}
}

func TestResolveCloseAndFeedbackFlow(t *testing.T) {
	h := newHarness(t)
	emp := h.user(t, "emp", domain.UserRoleEmployee, nil)
	it := h.user(t, "it", domain.UserRoleIT, nil)
	hr := h.user(t, "hr", domain.UserRoleHR, nil)

	tk := h.ticket(t, emp, "IT", "", "LAPTOP_BOOTUP")

	_, err := h.feedback.GiveFeedback(h.ctx, emp, GiveFeedbackInput{TargetUsername: "it", Rating: 5})
	expectCode(t, err, apperrors.CodeNoMatchingTickets)

	_, err = h.act(hr, tk.ID, "resolved", nil)
	expectCode(t, err, apperrors.CodeInvalidStatus)

	if _, err := h.act(it, tk.ID, "resolved", nil); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := h.stored(t, tk.ID).Status; got != domain.TicketStatusResolved {
		t.Fatalf("expected RESOLVED, got %s", got)
	}

	fb, err := h.feedback.GiveFeedback(h.ctx, emp, GiveFeedbackInput{TargetUsername: "it", Rating: 4, Comment: " quick fix "})
	if err != nil {
		t.Fatalf("feedback: %v", err)
	}
	if fb.GivenToID != it.ID || fb.Comment == nil || *fb.Comment != "quick fix" {
		t.Fatalf("unexpected feedback %+v", fb)
	}

	_, err = h.feedback.GiveFeedback(h.ctx, emp, GiveFeedbackInput{TargetUsername: "hr", Rating: 4})
	expectCode(t, err, apperrors.CodeNoMatchingTickets)

	_, err = h.act(emp, tk.ID, "close", nil)
	expectCode(t, err, apperrors.CodeRatingRequired)
	if got := h.stored(t, tk.ID); got.Status != domain.TicketStatusResolved || got.Rating != nil {
		t.Fatalf("failed close must not mutate ticket, got %s", got.Status)
	}

	res, err := h.act(emp, tk.ID, "close", intPtr(4))
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	stored := h.stored(t, tk.ID)
	if stored.Status != domain.TicketStatusClosed || stored.Rating == nil || *stored.Rating != 4 {
		t.Fatalf("expected CLOSED with rating 4, got %s/%v", stored.Status, stored.Rating)
	}
	if res.Rating == nil || *res.Rating != 4 {
		t.Fatalf("expected rating in result")
	}
}

func TestFeedbackClosesWithTicket(t *testing.T) {
	h := newHarness(t)
	emp := h.user(t, "emp", domain.UserRoleEmployee, nil)
	it := h.user(t, "it", domain.UserRoleIT, nil)
	tk := h.ticket(t, emp, "IT", "", "NEW_MOUSE")

	if _, err := h.act(it, tk.ID, "resolved", nil); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, err := h.act(emp, tk.ID, "close", intPtr(5)); err != nil {
		t.Fatalf("close: %v", err)
	}

	_, err := h.feedback.GiveFeedback(h.ctx, emp, GiveFeedbackInput{TargetUsername: "it", Rating: 5})
	expectCode(t, err, apperrors.CodeNoMatchingTickets)

	all, err := h.feedback.ListFeedback(h.ctx, h.user(t, "admin", domain.UserRoleAdmin, nil))
	if err != nil {
		t.Fatalf("list feedback: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected no feedback rows, got %d", len(all))
	}
}

func TestReopenOnlyFromRejected(t *testing.T) {
	h := newHarness(t)
	emp := h.user(t, "emp", domain.UserRoleEmployee, nil)
	hr := h.user(t, "hr", domain.UserRoleHR, nil)
	boss := h.user(t, "boss", domain.UserRoleEmployee, nil)
	subordinate := h.user(t, "sub", domain.UserRoleEmployee, boss)

	tk := h.ticket(t, emp, "HR", "PAYROLL", "")
	_, err := h.act(emp, tk.ID, "reopen", nil)
	expectCode(t, err, apperrors.CodeInvalidStatus)

	if _, err := h.act(hr, tk.ID, "rejected", nil); err != nil {
		t.Fatalf("reject: %v", err)
	}
	res, err := h.act(emp, tk.ID, "reopen", nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if res.Ticket.Status != domain.TicketStatusForwardedToHR {
		t.Fatalf("expected reopen to FORWARDED_TO_HR, got %s", res.Ticket.Status)
	}

	approval := h.ticket(t, subordinate, "HR", "ANY_FORM_OF_LETTER", "")
	if _, err := h.act(boss, approval.ID, "rejected", nil); err != nil {
		t.Fatalf("manager reject: %v", err)
	}
	res, err = h.act(subordinate, approval.ID, "reopen", nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if res.Ticket.Status != domain.TicketStatusForwardedToManager {
		t.Fatalf("expected reopen back to manager, got %s", res.Ticket.Status)
	}
}

func TestPerformActionErrorsDoNotMutate(t *testing.T) {
	h := newHarness(t)
	emp := h.user(t, "emp", domain.UserRoleEmployee, nil)
	other := h.user(t, "other", domain.UserRoleEmployee, nil)
	it := h.user(t, "it", domain.UserRoleIT, nil)
	tk := h.ticket(t, emp, "IT", "", "NEW_MOUSE")

	cases := []struct {
		name   string
		actor  *domain.User
		ticket string
		input  ActionInput
		code   string
	}{
		{name: "missing ticket", actor: it, ticket: "00000000-0000-0000-0000-000000000000", input: ActionInput{Action: "resolved", Remarks: "x"}, code: apperrors.CodeNotFound},
		{name: "empty remarks", actor: it, ticket: tk.ID, input: ActionInput{Action: "resolved", Remarks: "  "}, code: apperrors.CodeValidation},
		{name: "rating out of range", actor: emp, ticket: tk.ID, input: ActionInput{Action: "close", Remarks: "x", Rating: intPtr(6)}, code: apperrors.CodeValidation},
		{name: "unknown action", actor: it, ticket: tk.ID, input: ActionInput{Action: "escalate", Remarks: "x"}, code: apperrors.CodeInvalidAction},
		{name: "not owner", actor: other, ticket: tk.ID, input: ActionInput{Action: "close", Remarks: "x"}, code: apperrors.CodeForbidden},
		{name: "owner cannot resolve", actor: emp, ticket: tk.ID, input: ActionInput{Action: "resolved", Remarks: "x"}, code: apperrors.CodeInvalidAction},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.tickets.PerformAction(h.ctx, tc.actor, tc.ticket, tc.input)
			expectCode(t, err, tc.code)
			if got := h.stored(t, tk.ID); got.Status != domain.TicketStatusForwardedToIT || got.Remarks != nil {
				t.Fatalf("ticket mutated: %s", got.Status)
			}
		})
	}
}

type failingActivities struct {
	repository.ActivityRepository
}

func (failingActivities) Create(context.Context, *domain.Activity) error {
	return errors.New("disk full")
}

type failingActivityStore struct {
	repository.Store
}

func (s failingActivityStore) Activities() repository.ActivityRepository {
	return failingActivities{s.Store.Activities()}
}

func (s failingActivityStore) WithinTx(ctx context.Context, fn func(tx repository.Store) error) error {
	return s.Store.WithinTx(ctx, func(tx repository.Store) error {
		return fn(failingActivityStore{tx})
	})
}

func TestPerformActionRollsBackWhenActivityFails(t *testing.T) {
	base := memstore.New()
	h := newHarnessWithStore(t, failingActivityStore{base})
	emp := h.user(t, "emp", domain.UserRoleEmployee, nil)
	it := h.user(t, "it", domain.UserRoleIT, nil)
	tk := h.ticket(t, emp, "IT", "", "NEW_MOUSE")

	_, err := h.act(it, tk.ID, "resolved", nil)
	expectCode(t, err, apperrors.CodeInternal)

	if got := h.stored(t, tk.ID); got.Status != domain.TicketStatusForwardedToIT {
		t.Fatalf("expected rollback, ticket is %s", got.Status)
	}
}

func TestTicketQueries(t *testing.T) {
	h := newHarness(t)
	admin := h.user(t, "admin", domain.UserRoleAdmin, nil)
	hr := h.user(t, "hr", domain.UserRoleHR, nil)
	it := h.user(t, "it", domain.UserRoleIT, nil)
	boss := h.user(t, "boss", domain.UserRoleEmployee, nil)
	emp := h.user(t, "emp", domain.UserRoleEmployee, boss)
	loner := h.user(t, "loner", domain.UserRoleEmployee, nil)

	approval := h.ticket(t, emp, "HR", "COURSE_PURCHASE", "")
	h.ticket(t, emp, "IT", "", "NEW_MOUSE")
	h.ticket(t, loner, "HR", "REFERRAL_APPLICATION", "")
	h.ticket(t, boss, "HR", "PAYROLL", "")

	count := func(tickets []domain.Ticket, err error) int {
		t.Helper()
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		return len(tickets)
	}

	if n := count(h.tickets.ListTickets(h.ctx, admin, ListOptions{})); n != 4 {
		t.Fatalf("admin should see 4 tickets, got %d", n)
	}
	if n := count(h.tickets.ListTickets(h.ctx, emp, ListOptions{})); n != 2 {
		t.Fatalf("employee should see own 2 tickets, got %d", n)
	}
	if n := count(h.tickets.ListTickets(h.ctx, admin, ListOptions{Limit: 1})); n != 1 {
		t.Fatalf("limit not applied, got %d", n)
	}

	if n := count(h.tickets.ListActionTickets(h.ctx, boss, ListOptions{})); n != 1 {
		t.Fatalf("manager should see 1 ticket awaiting approval, got %d", n)
	}
	if n := count(h.tickets.ListActionTickets(h.ctx, admin, ListOptions{})); n != 2 {
		t.Fatalf("admin should see every ticket awaiting approval, got %d", n)
	}
	if n := count(h.tickets.ListActionTickets(h.ctx, hr, ListOptions{})); n != 1 {
		t.Fatalf("hr should see the HR queue, got %d", n)
	}
	if n := count(h.tickets.ListActionTickets(h.ctx, it, ListOptions{})); n != 1 {
		t.Fatalf("it should see the IT queue, got %d", n)
	}
	_, err := h.tickets.ListActionTickets(h.ctx, loner, ListOptions{})
	expectCode(t, err, apperrors.CodeForbidden)

	if n := count(h.tickets.ListReportTickets(h.ctx, boss, ListOptions{})); n != 2 {
		t.Fatalf("manager should see both report tickets, got %d", n)
	}
	if n := count(h.tickets.ListDepartmentTickets(h.ctx, hr, ListOptions{})); n != 3 {
		t.Fatalf("hr department should hold 3 tickets, got %d", n)
	}
	_, err = h.tickets.ListDepartmentTickets(h.ctx, emp, ListOptions{})
	expectCode(t, err, apperrors.CodeForbidden)

	if _, err := h.tickets.GetTicket(h.ctx, emp, approval.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	_, err = h.tickets.GetTicket(h.ctx, loner, approval.ID)
	expectCode(t, err, apperrors.CodeNotFound)
	if _, err := h.tickets.GetTicket(h.ctx, admin, approval.ID); err != nil {
		t.Fatalf("admin get: %v", err)
	}

	if _, err := h.act(boss, approval.ID, "approve", nil); err != nil {
		t.Fatalf("approve: %v", err)
	}
	entries, err := h.tickets.ListTicketActivity(h.ctx, emp, approval.ID)
	if err != nil || len(entries) != 1 || entries[0].Username != "boss" {
		t.Fatalf("unexpected ticket activity %+v (%v)", entries, err)
	}
}

func TestSetManager(t *testing.T) {
	h := newHarness(t)
	admin := h.user(t, "admin", domain.UserRoleAdmin, nil)
	a := h.user(t, "a", domain.UserRoleEmployee, nil)
	h.user(t, "b", domain.UserRoleEmployee, a)
	emp := h.user(t, "emp", domain.UserRoleEmployee, nil)

	cases := []struct {
		name  string
		actor *domain.User
		input SetManagerInput
		code  string
	}{
		{name: "non admin", actor: emp, input: SetManagerInput{Username: "emp", ManagerUsername: "a"}, code: apperrors.CodeForbidden},
		{name: "same user", actor: admin, input: SetManagerInput{Username: "a", ManagerUsername: "A"}, code: apperrors.CodeValidation},
		{name: "missing manager", actor: admin, input: SetManagerInput{Username: "a", ManagerUsername: "ghost"}, code: apperrors.CodeNotFound},
		{name: "cycle", actor: admin, input: SetManagerInput{Username: "a", ManagerUsername: "b"}, code: apperrors.CodeConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.users.SetManager(h.ctx, tc.actor, tc.input)
			expectCode(t, err, tc.code)
		})
	}

	managerBefore, err := h.users.IsManager(h.ctx, emp.ID)
	if err != nil || managerBefore {
		t.Fatalf("emp should not be a manager yet")
	}
	profile, err := h.users.SetManager(h.ctx, admin, SetManagerInput{Username: "a", ManagerUsername: "emp"})
	if err != nil {
		t.Fatalf("set manager: %v", err)
	}
	if profile.Manager == nil || profile.Manager.ID != emp.ID {
		t.Fatalf("unexpected profile %+v", profile)
	}
	managerAfter, err := h.users.IsManager(h.ctx, emp.ID)
	if err != nil || !managerAfter {
		t.Fatalf("emp should be a manager after assignment")
	}

	got, err := h.users.Get(h.ctx, a.ID)
	if err != nil || got.Manager == nil || got.Manager.Username != "emp" {
		t.Fatalf("unexpected profile %+v (%v)", got, err)
	}
	all, err := h.users.List(h.ctx)
	if err != nil || len(all) != 4 {
		t.Fatalf("expected 4 users, got %d (%v)", len(all), err)
	}
}

func TestAdminReads(t *testing.T) {
	h := newHarness(t)
	admin := h.user(t, "admin", domain.UserRoleAdmin, nil)
	emp := h.user(t, "emp", domain.UserRoleEmployee, nil)
	it := h.user(t, "it", domain.UserRoleIT, nil)

	_, err := h.activities.ListActivities(h.ctx, admin)
	expectCode(t, err, apperrors.CodeNotFound)
	_, err = h.activities.ListActivities(h.ctx, emp)
	expectCode(t, err, apperrors.CodeForbidden)

	tk := h.ticket(t, emp, "IT", "", "NEW_KEYBOARD")
	if _, err := h.act(it, tk.ID, "resolved", nil); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, err := h.feedback.GiveFeedback(h.ctx, emp, GiveFeedbackInput{TargetUsername: "it", Rating: 3}); err != nil {
		t.Fatalf("feedback: %v", err)
	}

	entries, err := h.activities.ListActivities(h.ctx, admin)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one activity, got %d (%v)", len(entries), err)
	}
	fb, err := h.feedback.ListFeedback(h.ctx, admin)
	if err != nil || len(fb) != 1 {
		t.Fatalf("expected one feedback, got %d (%v)", len(fb), err)
	}
	_, err = h.feedback.ListFeedback(h.ctx, emp)
	expectCode(t, err, apperrors.CodeForbidden)
}

func TestGiveFeedbackGate(t *testing.T) {
	h := newHarness(t)
	emp := h.user(t, "emp", domain.UserRoleEmployee, nil)
	peer := h.user(t, "peer", domain.UserRoleEmployee, nil)
	hr := h.user(t, "hr", domain.UserRoleHR, nil)

	cases := []struct {
		name  string
		actor *domain.User
		input GiveFeedbackInput
		code  string
	}{
		{name: "hr cannot give", actor: hr, input: GiveFeedbackInput{TargetUsername: "hr", Rating: 3}, code: apperrors.CodeForbidden},
		{name: "unknown target", actor: emp, input: GiveFeedbackInput{TargetUsername: "ghost", Rating: 3}, code: apperrors.CodeNotFound},
		{name: "employee target", actor: emp, input: GiveFeedbackInput{TargetUsername: peer.Username, Rating: 3}, code: apperrors.CodeInvalidTarget},
		{name: "rating too high", actor: emp, input: GiveFeedbackInput{TargetUsername: "hr", Rating: 9}, code: apperrors.CodeValidation},
		{name: "no resolved tickets", actor: emp, input: GiveFeedbackInput{TargetUsername: "hr", Rating: 3}, code: apperrors.CodeNoMatchingTickets},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.feedback.GiveFeedback(h.ctx, tc.actor, tc.input)
			expectCode(t, err, tc.code)
		})
	}
}
