package domain

import (
	"fmt"
	"strings"

	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// Action is an operation requested on an existing ticket.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "rejected"
	ActionResolve Action = "resolved"
	ActionClose   Action = "close"
	ActionReopen  Action = "reopen"
)

// ParseAction normalizes a client supplied action name.
func ParseAction(raw string) Action {
	return Action(strings.ToLower(strings.TrimSpace(raw)))
}

// EffectiveRole is the role an actor assumes for one specific ticket.
type EffectiveRole string

const (
	RoleManagerReviewer EffectiveRole = "MANAGER_REVIEWER"
	RoleHRResolver      EffectiveRole = "HR_RESOLVER"
	RoleITResolver      EffectiveRole = "IT_RESOLVER"
	RoleOwner           EffectiveRole = "OWNER"
	RoleAdminOwner      EffectiveRole = "ADMIN_OWNER"
)

// ActionFacts is everything the rule table needs to decide an action. All of
// it must be read fresh from the store inside the transaction that applies
// the result.
type ActionFacts struct {
	Actor          *User
	ActorIsManager bool
	Ticket         *Ticket
	Creator        *User
}

func (f ActionFacts) ownTicket() bool {
	return f.Ticket.CreatedByID == f.Actor.ID
}

// ActionRequest is the client's intent.
type ActionRequest struct {
	Action  Action
	Remarks string
	Rating  *int
}

// Validate checks the request shape independent of any ticket.
func (r ActionRequest) Validate() error {
	if strings.TrimSpace(string(r.Action)) == "" {
		return apperrors.NewValidationError("action is required")
	}
	if strings.TrimSpace(r.Remarks) == "" {
		return apperrors.NewValidationError("remarks is required")
	}
	if r.Rating != nil && !ValidRating(*r.Rating) {
		return apperrors.NewValidationError("rating must be between 1 and 5")
	}
	return nil
}

// Transition is an authorized status change.
type Transition struct {
	Role     EffectiveRole
	Action   Action
	From     TicketStatus
	To       TicketStatus
	Activity ActivityType
}

// Apply mutates ticket to reflect the transition.
func (t Transition) Apply(ticket *Ticket, req ActionRequest) {
	remarks := strings.TrimSpace(req.Remarks)
	ticket.Status = t.To
	ticket.Remarks = &remarks
	if req.Rating != nil {
		rating := *req.Rating
		ticket.Rating = &rating
	}
}

type actionRule struct {
	role           EffectiveRole
	applies        func(ActionFacts) bool
	authorize      func(ActionFacts) error
	actions        []Action
	expectedStatus TicketStatus
	next           func(ActionFacts, ActionRequest) (TicketStatus, ActivityType, error)
}

func (r actionRule) allows(a Action) bool {
	for _, candidate := range r.actions {
		if candidate == a {
			return true
		}
	}
	return false
}

func (r actionRule) actionList() string {
	names := make([]string, len(r.actions))
	for i, a := range r.actions {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

// actionRules is evaluated top to bottom; the first rule whose predicate holds
// decides the actor's effective role. ADMIN is captured by the HR resolver
// rule, so the ADMIN clauses of the later rules never fire.
var actionRules = []actionRule{
	{
		role: RoleManagerReviewer,
		applies: func(f ActionFacts) bool {
			return f.ActorIsManager && f.Actor.Role == UserRoleEmployee && !f.ownTicket()
		},
		authorize: func(f ActionFacts) error {
			if !f.Creator.ReportsTo(f.Actor.ID) {
				return apperrors.NewForbidden("you can only approve/reject tickets of employees under you")
			}
			return nil
		},
		actions:        []Action{ActionApprove, ActionReject},
		expectedStatus: TicketStatusForwardedToManager,
		next: func(f ActionFacts, req ActionRequest) (TicketStatus, ActivityType, error) {
			if req.Action == ActionApprove {
				return DepartmentQueue(f.Ticket.Type), ActivityTicketApproved, nil
			}
			return TicketStatusRejected, ActivityTicketRejected, nil
		},
	},
	{
		role:           RoleHRResolver,
		applies:        func(f ActionFacts) bool { return f.Actor.HasRole(UserRoleHR, UserRoleAdmin) },
		actions:        []Action{ActionResolve, ActionReject},
		expectedStatus: TicketStatusForwardedToHR,
		next:           resolverTransition,
	},
	{
		role:           RoleITResolver,
		applies:        func(f ActionFacts) bool { return f.Actor.HasRole(UserRoleIT, UserRoleAdmin) },
		actions:        []Action{ActionResolve, ActionReject},
		expectedStatus: TicketStatusForwardedToIT,
		next:           resolverTransition,
	},
	{
		role:      RoleOwner,
		applies:   func(f ActionFacts) bool { return f.Actor.HasRole(UserRoleEmployee, UserRoleAdmin) },
		authorize: requireOwner("you can only perform actions on tickets that you created"),
		actions:   []Action{ActionReopen, ActionClose},
		next: func(f ActionFacts, req ActionRequest) (TicketStatus, ActivityType, error) {
			if req.Action == ActionClose {
				return closeTransition(f, req)
			}
			if f.Ticket.Status != TicketStatusRejected {
				return "", "", apperrors.NewInvalidStatus("ticket can only be reopened if it is in REJECTED status")
			}
			return RoutingStatus(f.Ticket.Type, f.Ticket.RequiresApproval), ActivityTicketReopened, nil
		},
	},
	{
		role:      RoleAdminOwner,
		applies:   func(f ActionFacts) bool { return f.Actor.HasRole(UserRoleAdmin) },
		authorize: requireOwner("you can only close tickets that you created"),
		actions:   []Action{ActionClose},
		next:      closeTransition,
	},
}

func resolverTransition(_ ActionFacts, req ActionRequest) (TicketStatus, ActivityType, error) {
	if req.Action == ActionResolve {
		return TicketStatusResolved, ActivityTicketApproved, nil
	}
	return TicketStatusRejected, ActivityTicketRejected, nil
}

func closeTransition(f ActionFacts, req ActionRequest) (TicketStatus, ActivityType, error) {
	if f.Ticket.Status == TicketStatusResolved && req.Rating == nil {
		return "", "", apperrors.NewRatingRequired()
	}
	return TicketStatusClosed, ActivityTicketClosed, nil
}

func requireOwner(message string) func(ActionFacts) error {
	return func(f ActionFacts) error {
		if !f.ownTicket() {
			return apperrors.NewForbidden(message)
		}
		return nil
	}
}

// RolePrecedence lists effective roles in evaluation order.
func RolePrecedence() []EffectiveRole {
	roles := make([]EffectiveRole, len(actionRules))
	for i, rule := range actionRules {
		roles[i] = rule.role
	}
	return roles
}

// EffectiveRoleFor returns the first matching role, if any.
func EffectiveRoleFor(f ActionFacts) (EffectiveRole, bool) {
	rule, ok := matchRule(f)
	if !ok {
		return "", false
	}
	return rule.role, true
}

func matchRule(f ActionFacts) (actionRule, bool) {
	for _, rule := range actionRules {
		if rule.applies(f) {
			return rule, true
		}
	}
	return actionRule{}, false
}

// ResolveTransition authorizes req against the ticket and computes the next
// status. It never mutates its inputs.
func ResolveTransition(f ActionFacts, req ActionRequest) (Transition, error) {
	if f.Actor == nil || f.Ticket == nil || f.Creator == nil {
		return Transition{}, apperrors.NewInternalError(fmt.Errorf("incomplete action facts"))
	}
	if err := req.Validate(); err != nil {
		return Transition{}, err
	}

	rule, ok := matchRule(f)
	if !ok {
		return Transition{}, apperrors.NewInvalidUserType("user type is not authorized to perform actions on tickets")
	}
	if rule.authorize != nil {
		if err := rule.authorize(f); err != nil {
			return Transition{}, err
		}
	}
	if !rule.allows(req.Action) {
		return Transition{}, apperrors.NewInvalidAction(fmt.Sprintf("action must be one of: %s", rule.actionList()))
	}
	if rule.expectedStatus != "" && f.Ticket.Status != rule.expectedStatus {
		return Transition{}, apperrors.NewInvalidStatus(fmt.Sprintf("ticket must be in %s status for this action", rule.expectedStatus))
	}

	to, activity, err := rule.next(f, req)
	if err != nil {
		return Transition{}, err
	}
	return Transition{
		Role:     rule.role,
		Action:   req.Action,
		From:     f.Ticket.Status,
		To:       to,
		Activity: activity,
	}, nil
}
