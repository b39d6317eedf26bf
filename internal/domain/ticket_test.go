package domain

import "testing"

func TestParseClassification(t *testing.T) {
	cases := []struct {
		name     string
		typ      string
		hr       string
		it       string
		wantErr  bool
		wantType TicketType
	}{
		{name: "hr lowercase", typ: "hr", hr: "course_purchase", wantType: TicketTypeHR},
		{name: "it", typ: "IT", it: "ADD_RAM", wantType: TicketTypeIT},
		{name: "hr with it subtype", typ: "HR", hr: "PAYROLL", it: "ADD_RAM", wantErr: true},
		{name: "it with hr subtype", typ: "IT", hr: "PAYROLL", it: "NEW_MOUSE", wantErr: true},
		{name: "hr missing subtype", typ: "HR", wantErr: true},
		{name: "hr subtype on it type", typ: "IT", it: "PAYROLL", wantErr: true},
		{name: "unknown type", typ: "FINANCE", hr: "PAYROLL", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseClassification(tc.typ, tc.hr, tc.it)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Type != tc.wantType {
				t.Fatalf("expected type %s, got %s", tc.wantType, got.Type)
			}
			if got.Type == TicketTypeHR && (got.HRSubtype == nil || got.ITSubtype != nil) {
				t.Fatalf("HR ticket must carry only an HR subtype: %+v", got)
			}
			if got.Type == TicketTypeIT && (got.ITSubtype == nil || got.HRSubtype != nil) {
				t.Fatalf("IT ticket must carry only an IT subtype: %+v", got)
			}
		})
	}
}

func TestRequiresManagerApproval(t *testing.T) {
	approval := map[string]bool{}
	for sub, needs := range hrSubtypes {
		if needs {
			approval[string(sub)] = true
		}
	}
	for sub, needs := range itSubtypes {
		if needs {
			approval[string(sub)] = true
		}
	}
	want := []string{"ANY_FORM_OF_LETTER", "REFERRAL_APPLICATION", "COURSE_PURCHASE", "ADD_RAM", "NEW_MONITOR"}
	if len(approval) != len(want) {
		t.Fatalf("expected %d approval subtypes, got %d: %v", len(want), len(approval), approval)
	}
	for _, sub := range want {
		if !approval[sub] {
			t.Fatalf("expected %s to require approval", sub)
		}
	}

	c, err := ParseClassification("HR", "PAYROLL", "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if RequiresManagerApproval(c) {
		t.Fatalf("PAYROLL should not require approval")
	}
}

func TestRouteNewTicket(t *testing.T) {
	course, _ := ParseClassification("HR", "COURSE_PURCHASE", "")
	monitor, _ := ParseClassification("IT", "", "NEW_MONITOR")
	mouse, _ := ParseClassification("IT", "", "NEW_MOUSE")

	cases := []struct {
		name       string
		c          TicketClassification
		isManager  bool
		wantApprov bool
		wantStatus TicketStatus
	}{
		{"employee approval subtype", course, false, true, TicketStatusForwardedToManager},
		{"manager bypasses approval", course, true, false, TicketStatusForwardedToHR},
		{"manager it approval subtype", monitor, true, false, TicketStatusForwardedToIT},
		{"employee plain it", mouse, false, false, TicketStatusForwardedToIT},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			approv, status := RouteNewTicket(tc.c, tc.isManager)
			if approv != tc.wantApprov || status != tc.wantStatus {
				t.Fatalf("expected (%v, %s), got (%v, %s)", tc.wantApprov, tc.wantStatus, approv, status)
			}
		})
	}
}
